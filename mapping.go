package et

// Mapping describes read-only, string keyed access to a container of values. It is the
// abstraction the extractor works on when the data does not live in a plain go map.
//
// A [Mapping] only needs to answer a single question: is there a value for the given key,
// and if so, what is it. Implementations must not mutate the underlying container when
// [Mapping.Lookup] is called.
//
// Two ready-to-use implementations are included:
//
//  1. **[Map]**: adapts a `map[string]V`. The conversion is free, as [Map] is just
//     a named map type.
//
//  2. **[MappingFunc]**: adapts a plain function, which makes it easy to expose other
//     key/value shaped sources, e.g. http path values or url query parameters.
//
// Example:
//
//	type PathValues struct {
//	    Request *http.Request
//	}
//
//	func (p PathValues) Lookup(key string) (string, bool) {
//	    value := p.Request.PathValue(key)
//	    return value, value != ""
//	}
type Mapping[V any] interface {
	// Lookup returns the value stored for key. The boolean reports
	// whether the key exists at all.
	Lookup(key string) (V, bool)
}

// Map adapts a `map[string]V` to a [Mapping].
type Map[V any] map[string]V

var _ Mapping[any] = Map[any](nil)

func (m Map[V]) Lookup(key string) (V, bool) {
	value, ok := m[key]
	return value, ok
}

// MappingFunc adapts a function to a [Mapping].
type MappingFunc[V any] func(key string) (V, bool)

var _ Mapping[any] = MappingFunc[any](nil)

func (f MappingFunc[V]) Lookup(key string) (V, bool) {
	return f(key)
}
