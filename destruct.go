package et

import "reflect"

// Option configures a single extraction.
type Option func(*options)

type options struct {
	def        any
	hasDefault bool
}

// Default makes missing keys resolve to value instead of failing with a [KeyError].
// The value is passed through as is, it must be assignable to the value type of the
// mapping. A nil value resolves to the zero value of the value type.
func Default(value any) Option {
	return func(o *options) {
		o.def = value
		o.hasDefault = true
	}
}

// Extract returns the values stored for keys in m, in the order of keys.
//
// If keys is empty, they are inferred from the source line that calls Extract: every
// identifier to the left of the first '=' becomes a key. For
//
//	values, err := et.Extract(m, nil)
//
// the keys are "values" and "err". Prefer the fixed size variants [Extract1], [Extract2]
// and [Extract3] for inference, they only take as many identifiers as they return values.
func Extract[V any](m map[string]V, keys []string, opts ...Option) ([]V, error) {
	keys, err := resolveKeys(keys, 0)
	if err != nil {
		return nil, err
	}

	return extract(Map[V](m), keys, opts)
}

// ExtractFrom works like [Extract] but reads the values from any [Mapping].
func ExtractFrom[V any](src Mapping[V], keys []string, opts ...Option) ([]V, error) {
	keys, err := resolveKeys(keys, 0)
	if err != nil {
		return nil, err
	}

	return extract(src, keys, opts)
}

// Extract1 returns the single value for one key. If keys is empty, the key is the first
// identifier assigned to on the calling line:
//
//	city, err := et.Extract1(person, nil)
func Extract1[V any](m map[string]V, keys []string, opts ...Option) (V, error) {
	var zero V

	keys, err := resolveKeys(keys, 1)
	if err != nil {
		return zero, err
	}

	values, err := extract(Map[V](m), keys, opts)
	if err != nil {
		return zero, err
	}

	return values[0], nil
}

// Extract2 returns the values for two keys. If keys is empty, the keys are the first two
// identifiers assigned to on the calling line:
//
//	name, age, err := et.Extract2(person, nil)
func Extract2[V any](m map[string]V, keys []string, opts ...Option) (V, V, error) {
	var zero V

	keys, err := resolveKeys(keys, 2)
	if err != nil {
		return zero, zero, err
	}

	values, err := extract(Map[V](m), keys, opts)
	if err != nil {
		return zero, zero, err
	}

	return values[0], values[1], nil
}

// Extract3 returns the values for three keys. If keys is empty, the keys are the first three
// identifiers assigned to on the calling line:
//
//	name, age, city, err := et.Extract3(person, nil)
func Extract3[V any](m map[string]V, keys []string, opts ...Option) (V, V, V, error) {
	var zero V

	keys, err := resolveKeys(keys, 3)
	if err != nil {
		return zero, zero, zero, err
	}

	values, err := extract(Map[V](m), keys, opts)
	if err != nil {
		return zero, zero, zero, err
	}

	return values[0], values[1], values[2], nil
}

// resolveKeys returns the keys to extract. Empty keys are inferred from the
// line calling the function that called resolveKeys. An arity of zero accepts
// any number of keys.
func resolveKeys(keys []string, arity int) ([]string, error) {
	if len(keys) > 0 {
		if arity > 0 && len(keys) != arity {
			return nil, &ArityError{Want: arity, Got: len(keys)}
		}

		return keys, nil
	}

	inferred, err := callerKeys(1)
	if err != nil {
		return nil, err
	}

	if arity == 0 {
		return inferred, nil
	}

	if len(inferred) < arity {
		return nil, &ArityError{Want: arity, Got: len(inferred)}
	}

	return inferred[:arity], nil
}

func extract[V any](src Mapping[V], keys []string, opts []Option) ([]V, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	values := make([]V, len(keys))

	if o.hasDefault {
		def, err := defaultOf[V](o.def)
		if err != nil {
			return nil, err
		}

		for idx, key := range keys {
			value, ok := src.Lookup(key)
			if !ok {
				value = def
			}

			values[idx] = value
		}

		return values, nil
	}

	var missing []string

	for idx, key := range keys {
		value, ok := src.Lookup(key)
		if !ok {
			missing = append(missing, key)
			continue
		}

		values[idx] = value
	}

	if len(missing) > 0 {
		return nil, &KeyError{Keys: missing}
	}

	return values, nil
}

func defaultOf[V any](value any) (V, error) {
	var zero V
	if value == nil {
		return zero, nil
	}

	typed, ok := value.(V)
	if !ok {
		return zero, &DefaultTypeError{Target: reflect.TypeFor[V](), Value: reflect.TypeOf(value)}
	}

	return typed, nil
}
