package et

import (
	"github.com/hashicorp/golang-lru/v2"
	"os"
	"regexp"
	"runtime"
	"strings"
	"unicode"
	"unicode/utf8"
)

// frameStack returns up to two logical frames of the current goroutine. With skip=0
// the first frame is the caller of frameStack. Tests replace it to simulate a
// runtime that can not provide frames.
var frameStack = stackFrames

// sourceCache keeps the lines of source files that were already used for key inference.
var sourceCache = newSourceCache(64)

// a run of word characters. Runs starting with a digit are dropped later on,
// which matches a word boundary based identifier pattern.
var reWord = regexp.MustCompile(`[\p{L}\p{Nd}_]+`)

func newSourceCache(size int) *lru.Cache[string, []string] {
	cache, err := lru.New[string, []string](size)
	if err != nil {
		panic(err)
	}

	return cache
}

func stackFrames(skip int) []runtime.Frame {
	var pcs [8]uintptr

	// 0 is runtime.Callers, 1 is stackFrames itself
	n := runtime.Callers(skip+2, pcs[:])
	if n == 0 {
		return nil
	}

	var result []runtime.Frame

	frames := runtime.CallersFrames(pcs[:n])
	for len(result) < 2 {
		frame, more := frames.Next()
		result = append(result, frame)

		if !more {
			break
		}
	}

	return result
}

// callerKeys infers the keys from the source line that called the extractor.
// With skip=0 the extractor is the function calling callerKeys.
func callerKeys(skip int) ([]string, error) {
	frames := frameStack(skip + 1)
	if len(frames) == 0 {
		return nil, ErrNoFrame
	}

	if len(frames) < 2 || frames[1].Function == "runtime.goexit" {
		return nil, ErrNoCallerFrame
	}

	callSite := frames[1]

	line, ok := sourceLine(callSite.File, callSite.Line)
	if !ok {
		return nil, ErrNoSource
	}

	assignment, _, found := strings.Cut(strings.TrimSpace(line), "=")
	if !found {
		return nil, ErrNoAssignment
	}

	names := identifierNames(assignment)
	if len(names) == 0 {
		return nil, ErrNoAssignment
	}

	return names, nil
}

func sourceLine(file string, line int) (string, bool) {
	if file == "" {
		return "", false
	}

	lines, ok := sourceCache.Get(file)
	if !ok {
		content, err := os.ReadFile(file)
		if err != nil {
			return "", false
		}

		lines = strings.Split(string(content), "\n")
		sourceCache.Add(file, lines)
	}

	if line < 1 || line > len(lines) {
		return "", false
	}

	return lines[line-1], true
}

// identifierNames returns all identifiers found in text, left to right,
// including duplicates. This is a textual heuristic, not a parse: every
// identifier shaped word is returned, e.g. "cfg.Name, err :" yields
// cfg, Name and err.
func identifierNames(text string) []string {
	var names []string

	for _, word := range reWord.FindAllString(text, -1) {
		first, _ := utf8.DecodeRuneInString(word)
		if unicode.IsDigit(first) {
			continue
		}

		names = append(names, word)
	}

	return names
}
