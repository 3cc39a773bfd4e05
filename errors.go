package et

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
)

// ErrDestruct is the kind shared by all errors raised while inferring
// keys from the call site.
var ErrDestruct = errors.New("destruct")

var (
	ErrNoFrame       = fmt.Errorf("%w: failed to access a frame", ErrDestruct)
	ErrNoCallerFrame = fmt.Errorf("%w: failed to access caller's frame", ErrDestruct)
	ErrNoSource      = fmt.Errorf("%w: failed to retrieve code context", ErrDestruct)
	ErrNoAssignment  = fmt.Errorf("%w: assignment statement was not found", ErrDestruct)
)

var ErrKeyNotFound = errors.New("key not found")
var ErrArity = errors.New("arity mismatch")

// KeyError reports every requested key that is missing in a mapping,
// in the order the keys were requested.
type KeyError struct {
	Keys []string
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("key(s) %q not found", e.Keys)
}

func (e *KeyError) Is(target error) bool {
	return target == ErrKeyNotFound
}

// ArityError is returned by the fixed size extractors if the number
// of keys does not match the number of returned values.
type ArityError struct {
	Want int
	Got  int
}

func (e *ArityError) Error() string {
	return "want " + strconv.Itoa(e.Want) + " key(s), got " + strconv.Itoa(e.Got)
}

func (e *ArityError) Is(target error) bool {
	return target == ErrArity
}

// TypeError is returned if a value can not be assigned to its target
// without a conversion.
type TypeError struct {
	Key    string
	Target reflect.Type
	Value  reflect.Type
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("key %q: value of type %q is not assignable to %q", e.Key, e.Value, e.Target)
}

// DefaultTypeError is returned if the value passed to [Default] does not
// fit the value type of the mapping.
type DefaultTypeError struct {
	Target reflect.Type
	Value  reflect.Type
}

func (e *DefaultTypeError) Error() string {
	return fmt.Sprintf("default of type %q is not assignable to %q", e.Value, e.Target)
}

type NotSupportedError struct {
	Type reflect.Type
}

func (n NotSupportedError) Error() string {
	return fmt.Sprintf("type %q is not supported", n.Type)
}
