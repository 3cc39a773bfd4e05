package et

import "reflect"

// The default Destructor instance.
var destructor Destructor

// Into assigns the values of m to the fields of the struct target points to,
// using the default [Destructor].
//
// The struct fields name the keys, just like the identifiers of an assignment name
// the keys for [Extract]:
//
//	var person struct {
//	    Name string `json:"name"`
//	    Age  int    `json:"age"`
//	}
//
//	err := et.Into(m, &person)
func Into(m map[string]any, target any) error {
	return destructor.Into(Map[any](m), target)
}

// IntoNew works like [Into] but returns a new instance of T.
func IntoNew[T any](m map[string]any) (T, error) {
	return IntoNewWith[T](&destructor, Map[any](m))
}

func IntoNewWith[T any](d *Destructor, src Mapping[any]) (T, error) {
	var target T
	err := d.Into(src, &target)
	return target, err
}

// Destructor can be used to customize struct destructuring. This type is
// safe for concurrent use.
type Destructor struct {
	// the struct tag that is used to name keys
	structTag string

	// Set to true to leave fields untouched if their key is missing,
	// instead of failing with a KeyError.
	skipMissing bool
}

func NewDestructor() *Destructor {
	return &Destructor{
		structTag: "json",
	}
}

func (d *Destructor) WithTag(structTag string) *Destructor {
	if d.structTag == structTag {
		return d
	}

	return &Destructor{
		structTag:   structTag,
		skipMissing: d.skipMissing,
	}
}

func (d *Destructor) SkipMissing() *Destructor {
	if d.skipMissing {
		return d
	}

	return &Destructor{
		structTag:   d.structTag,
		skipMissing: true,
	}
}

func (d *Destructor) tag() string {
	if d.structTag == "" {
		return "json"
	}

	return d.structTag
}

// Into assigns the values found in src to the fields of the struct target points to.
// Values are never converted, they must be assignable to the fields type. A nil value
// resets the field to its zero value.
//
// All missing keys are reported in a single [KeyError]. The target is only modified
// if no error occurred.
func (d *Destructor) Into(src Mapping[any], target any) error {
	targetValue := reflect.ValueOf(target)
	if targetValue.Kind() != reflect.Pointer || targetValue.IsNil() {
		return NotSupportedError{Type: reflect.TypeOf(target)}
	}

	targetValue = targetValue.Elem()

	ty := targetValue.Type()
	if ty.Kind() != reflect.Struct {
		return NotSupportedError{Type: ty}
	}

	// work on a copy, so target stays untouched in case of an error
	staged := reflect.New(ty).Elem()
	staged.Set(targetValue)

	var missing []string

	for _, field := range fieldsOf(ty, d.tag()) {
		value, ok := src.Lookup(field.Key)
		if !ok {
			missing = append(missing, field.Key)
			continue
		}

		// embedded structs are queued by value only, no nil pointers on the way
		fieldValue := staged.FieldByIndex(field.Index)
		if err := assign(field.Key, fieldValue, value); err != nil {
			return err
		}
	}

	if len(missing) > 0 && !d.skipMissing {
		return &KeyError{Keys: missing}
	}

	targetValue.Set(staged)

	return nil
}

func assign(key string, target reflect.Value, value any) error {
	if value == nil {
		target.SetZero()
		return nil
	}

	sourceValue := reflect.ValueOf(value)
	if !sourceValue.Type().AssignableTo(target.Type()) {
		return &TypeError{Key: key, Target: target.Type(), Value: sourceValue.Type()}
	}

	target.Set(sourceValue)
	return nil
}
