package et

import (
	"golang.org/x/exp/constraints"
	"gopkg.in/yaml.v3"
	"reflect"
	"strconv"
	"strings"
)

// maximum number of aliases to follow in a yaml document before giving up
const maxAliasDepth = 32

// segment is a single step of a path, either a key or an index.
type segment struct {
	Key     string
	Index   int
	IsIndex bool
}

// Get retrieves a nested value from container, following the given path segments.
// Returns nil if any step of the path can not be resolved.
//
// A segment is either a string key or an integer index. A string segment containing dots
// is split into multiple segments, parts consisting of digits only are used as indices:
//
//	data := map[string]any{"result": map[string]any{"users": []any{"Albert"}}}
//	et.Get(data, "result", "users", 0) // "Albert"
//	et.Get(data, "result.users.0")     // "Albert"
//	et.Get(data, "result.groups.0")    // nil
//
// Get walks maps, slices, arrays, structs (using the keys [Into] uses) and yaml
// documents in form of a *yaml.Node. Negative indices count from the end of a sequence.
func Get(container any, segments ...any) any {
	return GetOr(container, nil, segments...)
}

// GetOr works like [Get] but returns def if the path can not be resolved.
func GetOr(container any, def any, segments ...any) any {
	value, ok := Lookup(container, segments...)
	if !ok {
		return def
	}

	return value
}

// GetAs works like [GetOr] but also returns def if the value found is not a T.
func GetAs[T any](container any, def T, segments ...any) T {
	value, ok := Lookup(container, segments...)
	if !ok {
		return def
	}

	typed, ok := value.(T)
	if !ok {
		return def
	}

	return typed
}

// Lookup resolves the path segments within container. The boolean reports whether
// every step of the path could be resolved. Without segments, the container itself is returned.
func Lookup(container any, segments ...any) (any, bool) {
	path, ok := parsePath(segments)
	if !ok {
		return nil, false
	}

	current := container
	for _, seg := range path {
		current, ok = step(current, seg)
		if !ok {
			return nil, false
		}
	}

	return current, true
}

func parsePath(segments []any) ([]segment, bool) {
	var path []segment

	for _, seg := range segments {
		if key, ok := seg.(string); ok {
			path = appendKey(path, key)
			continue
		}

		value := reflect.ValueOf(seg)

		switch {
		case !value.IsValid():
			return nil, false

		case value.Kind() == reflect.String:
			path = appendKey(path, value.String())

		case value.CanInt():
			indexSeg, ok := indexSegment(value.Int())
			if !ok {
				return nil, false
			}

			path = append(path, indexSeg)

		case value.CanUint():
			indexSeg, ok := indexSegment(value.Uint())
			if !ok {
				return nil, false
			}

			path = append(path, indexSeg)

		default:
			return nil, false
		}
	}

	return path, true
}

// appendKey appends key to the path. A dotted key is split into its parts,
// where digit-only parts become indices. Keys without a dot are taken as is.
func appendKey(path []segment, key string) []segment {
	if !strings.Contains(key, ".") {
		return append(path, segment{Key: key})
	}

	for _, part := range strings.Split(key, ".") {
		if isDigits(part) {
			if index, err := strconv.Atoi(part); err == nil {
				path = append(path, segment{Index: index, IsIndex: true})
				continue
			}
		}

		path = append(path, segment{Key: part})
	}

	return path
}

func isDigits(value string) bool {
	if value == "" {
		return false
	}

	for idx := 0; idx < len(value); idx++ {
		if value[idx] < '0' || value[idx] > '9' {
			return false
		}
	}

	return true
}

// indexSegment converts an integer into an index segment,
// failing if the value does not fit into an int.
func indexSegment[I constraints.Integer](value I) (segment, bool) {
	index := int(value)
	if I(index) != value || (index < 0) != (value < 0) {
		return segment{}, false
	}

	return segment{Index: index, IsIndex: true}, true
}

func step(current any, seg segment) (any, bool) {
	switch node := current.(type) {
	case nil:
		return nil, false

	case map[string]any:
		if seg.IsIndex {
			return nil, false
		}

		value, ok := node[seg.Key]
		return value, ok

	case []any:
		index, ok := sequenceIndex(seg, len(node))
		if !ok {
			return nil, false
		}

		return node[index], true

	case *yaml.Node:
		return stepYAML(node, seg)

	case yaml.Node:
		return stepYAML(&node, seg)
	}

	return stepValue(reflect.ValueOf(current), seg)
}

func stepValue(value reflect.Value, seg segment) (any, bool) {
	for value.Kind() == reflect.Pointer || value.Kind() == reflect.Interface {
		if value.IsNil() {
			return nil, false
		}

		value = value.Elem()
	}

	switch value.Kind() {
	case reflect.Map:
		key, ok := mapKey(value.Type().Key(), seg)
		if !ok {
			return nil, false
		}

		elem := value.MapIndex(key)
		if !elem.IsValid() {
			return nil, false
		}

		return elem.Interface(), true

	case reflect.Slice, reflect.Array:
		index, ok := sequenceIndex(seg, value.Len())
		if !ok {
			return nil, false
		}

		return value.Index(index).Interface(), true

	case reflect.Struct:
		if seg.IsIndex {
			return nil, false
		}

		fi, ok := fieldByKey(value.Type(), "json", seg.Key)
		if !ok {
			return nil, false
		}

		return value.FieldByIndex(fi.Index).Interface(), true

	default:
		return nil, false
	}
}

// mapKey builds a key of type keyType for seg. Strings are only used for
// string keys, indices only for integer keys.
func mapKey(keyType reflect.Type, seg segment) (reflect.Value, bool) {
	key := reflect.New(keyType).Elem()

	switch keyType.Kind() {
	case reflect.String:
		if seg.IsIndex {
			return reflect.Value{}, false
		}

		key.SetString(seg.Key)
		return key, true

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if !seg.IsIndex || key.OverflowInt(int64(seg.Index)) {
			return reflect.Value{}, false
		}

		key.SetInt(int64(seg.Index))
		return key, true

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if !seg.IsIndex || seg.Index < 0 || key.OverflowUint(uint64(seg.Index)) {
			return reflect.Value{}, false
		}

		key.SetUint(uint64(seg.Index))
		return key, true

	case reflect.Interface:
		var raw reflect.Value
		if seg.IsIndex {
			raw = reflect.ValueOf(seg.Index)
		} else {
			raw = reflect.ValueOf(seg.Key)
		}

		if !raw.Type().AssignableTo(keyType) {
			return reflect.Value{}, false
		}

		key.Set(raw)
		return key, true

	default:
		return reflect.Value{}, false
	}
}

func sequenceIndex(seg segment, length int) (int, bool) {
	if !seg.IsIndex {
		return 0, false
	}

	index := seg.Index
	if index < 0 {
		index += length
	}

	if index < 0 || index >= length {
		return 0, false
	}

	return index, true
}

func stepYAML(node *yaml.Node, seg segment) (any, bool) {
	node, ok := resolveYAML(node)
	if !ok {
		return nil, false
	}

	switch node.Kind {
	case yaml.MappingNode:
		for idx := 0; idx+1 < len(node.Content); idx += 2 {
			key, ok := resolveYAML(node.Content[idx])
			if ok && yamlKeyMatches(key, seg) {
				value, ok := resolveYAML(node.Content[idx+1])
				return value, ok
			}
		}

		return nil, false

	case yaml.SequenceNode:
		index, ok := sequenceIndex(seg, len(node.Content))
		if !ok {
			return nil, false
		}

		value, ok := resolveYAML(node.Content[index])
		return value, ok

	default:
		return nil, false
	}
}

// resolveYAML unwraps document nodes and follows aliases.
func resolveYAML(node *yaml.Node) (*yaml.Node, bool) {
	for range maxAliasDepth {
		switch {
		case node == nil:
			return nil, false

		case node.Kind == yaml.DocumentNode:
			if len(node.Content) == 0 {
				return nil, false
			}

			node = node.Content[0]

		case node.Kind == yaml.AliasNode:
			node = node.Alias

		default:
			return node, true
		}
	}

	return nil, false
}

func yamlKeyMatches(key *yaml.Node, seg segment) bool {
	if key.Kind != yaml.ScalarNode {
		return false
	}

	if !seg.IsIndex {
		return key.ShortTag() == "!!str" && key.Value == seg.Key
	}

	if key.ShortTag() != "!!int" {
		return false
	}

	index, err := strconv.Atoi(key.Value)
	return err == nil && index == seg.Index
}
