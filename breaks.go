package et

import (
	"errors"
	"log/slog"
	"strings"
)

// reason logged if a Break does not carry one
const defaultBreakReason = "reason not provided"

// Break ends a service operation early. It is not a failure: [CatchBreak] turns
// it into a successful, but stopped [Outcome].
//
// A Break is found anywhere in the error chain, so it can be wrapped
// while it travels up the stack.
type Break struct {
	Reason string
}

func (b *Break) Error() string {
	if b.Reason == "" {
		return "break"
	}

	return "break: " + b.Reason
}

// Stop returns a [Break] with the reason parts joined by a space.
func Stop(reason ...string) error {
	return &Break{Reason: strings.Join(reason, " ")}
}

// Outcome is the result of an operation run by [CatchBreak]. Either the operation
// completed with Value, or it was stopped early for Reason.
type Outcome[T any] struct {
	Value   T
	Stopped bool
	Reason  string
}

// Optional returns a pointer to the value, or nil if the operation was stopped.
func (o Outcome[T]) Optional() *T {
	if o.Stopped {
		return nil
	}

	value := o.Value
	return &value
}

// CatchBreak runs op. If op fails with a [Break], the reason is logged on debug level
// and a stopped [Outcome] is returned without an error. Any other error is returned as is.
// A nil logger uses [slog.Default].
func CatchBreak[T any](logger *slog.Logger, op func() (T, error)) (Outcome[T], error) {
	value, err := op()
	if err == nil {
		return Outcome[T]{Value: value}, nil
	}

	var brk *Break
	if !errors.As(err, &brk) {
		return Outcome[T]{}, err
	}

	reason := brk.Reason
	if reason == "" {
		reason = defaultBreakReason
	}

	loggerOrDefault(logger).Debug("break service operation", slog.String("reason", reason))

	return Outcome[T]{Stopped: true, Reason: reason}, nil
}

// Catch wraps op so that every call goes through [CatchBreak].
func Catch[T any](logger *slog.Logger, op func() (T, error)) func() (Outcome[T], error) {
	return func() (Outcome[T], error) {
		return CatchBreak(logger, op)
	}
}
