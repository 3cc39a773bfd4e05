package et

import (
	"errors"
	"github.com/stretchr/testify/require"
	"runtime"
	"testing"
)

func testPerson() map[string]any {
	return map[string]any{"name": "John", "age": 30, "city": "New York"}
}

func errOf[V any](_ V, err error) error {
	return err
}

func withFrames(t *testing.T, frames []runtime.Frame) {
	previous := frameStack
	frameStack = func(int) []runtime.Frame { return frames }
	t.Cleanup(func() { frameStack = previous })
}

func TestExtract_Keys(t *testing.T) {
	name, age, city, err := Extract3(testPerson(), []string{"name", "age", "city"})
	require.NoError(t, err)
	require.Equal(t, "John", name)
	require.Equal(t, 30, age)
	require.Equal(t, "New York", city)
}

func TestExtract_Inferred(t *testing.T) {
	person := testPerson()

	name, age, city, err := Extract3(person, nil)
	require.NoError(t, err)
	require.Equal(t, "John", name)
	require.Equal(t, 30, age)
	require.Equal(t, "New York", city)
}

func TestExtract_KeepsKeyOrder(t *testing.T) {
	values, err := Extract(testPerson(), []string{"city", "name", "city"})
	require.NoError(t, err)
	require.Equal(t, []any{"New York", "John", "New York"}, values)
}

func TestExtract_SingleKey(t *testing.T) {
	person := testPerson()

	city, err := Extract1(person, []string{"city"})
	require.NoError(t, err)
	require.Equal(t, "New York", city)

	// a bare value, not a slice of one
	x, err := Extract1(map[string]int{"x": 10}, nil)
	require.NoError(t, err)
	require.Equal(t, 10, x)
}

func TestExtract_InferredPairs(t *testing.T) {
	d := map[string]int{"a": 1, "b": 2}

	a, b, err := Extract2(d, nil)
	require.NoError(t, err)
	require.Equal(t, 1, a)
	require.Equal(t, 2, b)
}

func TestExtract_SliceFormKeepsAllIdentifiers(t *testing.T) {
	// the slice form takes every identifier in front of '=' as a key
	vals, err := Extract(map[string]string{"vals": "first"}, nil, Default("none"))
	require.NoError(t, err)
	require.Equal(t, []string{"first", "none"}, vals)
}

func TestExtract_MissingKeys(t *testing.T) {
	person := testPerson()

	firstName, lastName, err := Extract2(person, nil)
	require.ErrorIs(t, err, ErrKeyNotFound)
	require.EqualError(t, err, `key(s) ["firstName" "lastName"] not found`)
	require.Nil(t, firstName)
	require.Nil(t, lastName)

	var keyErr *KeyError
	require.True(t, errors.As(err, &keyErr))
	require.Equal(t, []string{"firstName", "lastName"}, keyErr.Keys)
}

func TestExtract_MissingKeysInKeyOrder(t *testing.T) {
	_, err := Extract(testPerson(), []string{"zip", "name", "country", "age", "street"})
	require.EqualError(t, err, `key(s) ["zip" "country" "street"] not found`)
}

func TestExtract_EmptyMap(t *testing.T) {
	_, err := Extract1(map[string]any{}, []string{"name"})
	require.EqualError(t, err, `key(s) ["name"] not found`)

	_, err = Extract1[any](nil, []string{"name"})
	require.ErrorIs(t, err, ErrKeyNotFound)
}

func TestExtract_Default(t *testing.T) {
	person := testPerson()

	name, age, country, err := Extract3(person, nil, Default("N/A"))
	require.NoError(t, err)
	require.Equal(t, "John", name)
	require.Equal(t, 30, age)
	require.Equal(t, "N/A", country)

	country, err = Extract1(person, []string{"country"}, Default("N/A"))
	require.NoError(t, err)
	require.Equal(t, "N/A", country)
}

func TestExtract_NilDefault(t *testing.T) {
	values, err := Extract(map[string]int{"a": 1}, []string{"a", "b"}, Default(nil))
	require.NoError(t, err)
	require.Equal(t, []int{1, 0}, values)

	value, err := Extract1(testPerson(), []string{"zip"}, Default(nil))
	require.NoError(t, err)
	require.Nil(t, value)
}

func TestExtract_DefaultOfWrongType(t *testing.T) {
	_, err := Extract1(map[string]int{"a": 1}, []string{"a"}, Default("zero"))

	var defaultErr *DefaultTypeError
	require.True(t, errors.As(err, &defaultErr))
	require.Equal(t, `default of type "string" is not assignable to "int"`, err.Error())
}

func TestExtract_Arity(t *testing.T) {
	_, _, err := Extract2(testPerson(), []string{"name"})
	require.ErrorIs(t, err, ErrArity)
	require.EqualError(t, err, "want 2 key(s), got 1")

	_, err = Extract1(testPerson(), []string{"name", "age"})
	require.ErrorIs(t, err, ErrArity)
}

func TestExtract_FunctionCall(t *testing.T) {
	innerFunction := func() (any, any) {
		data := map[string]any{"x": 10, "y": 20}
		x, y, err := Extract2(data, nil)
		require.NoError(t, err)
		return x, y
	}

	x, y := innerFunction()
	require.Equal(t, 10, x)
	require.Equal(t, 20, y)
}

func TestExtract_Nested(t *testing.T) {
	outerFunction := func() (int, int, int, int) {
		data := map[string]int{"a": 1, "b": 2}

		innerFunction := func() (int, int) {
			innerData := map[string]int{"c": 3, "d": 4}
			c, d, err := Extract2(innerData, nil)
			require.NoError(t, err)
			return c, d
		}

		a, b, err := Extract2(data, nil)
		require.NoError(t, err)

		c, d := innerFunction()
		return a, b, c, d
	}

	a, b, c, d := outerFunction()
	require.Equal(t, []int{1, 2, 3, 4}, []int{a, b, c, d})
}

func TestExtractFrom(t *testing.T) {
	upper := MappingFunc[string](func(key string) (string, bool) {
		if key == "" {
			return "", false
		}

		return key + "!", true
	})

	values, err := ExtractFrom[string](upper, []string{"hey", "ho"})
	require.NoError(t, err)
	require.Equal(t, []string{"hey!", "ho!"}, values)

	_, err = ExtractFrom[string](upper, []string{"hey", ""})
	require.ErrorIs(t, err, ErrKeyNotFound)
}

func TestExtract_NoAssignment(t *testing.T) {
	person := testPerson()

	require.ErrorIs(t, errOf(Extract1(person, nil)), ErrNoAssignment)
	require.ErrorIs(t, errOf(Extract1(person, nil)), ErrDestruct)
}

func TestExtract_NoFrame(t *testing.T) {
	withFrames(t, nil)

	_, err := Extract1(testPerson(), nil)
	require.ErrorIs(t, err, ErrNoFrame)
	require.ErrorIs(t, err, ErrDestruct)
	require.EqualError(t, err, "destruct: failed to access a frame")
}

func TestExtract_NoCallerFrame(t *testing.T) {
	withFrames(t, []runtime.Frame{{Function: "github.com/go-gum/et.Extract1[...]"}})

	_, err := Extract1(testPerson(), nil)
	require.ErrorIs(t, err, ErrNoCallerFrame)
	require.EqualError(t, err, "destruct: failed to access caller's frame")
}

func TestExtract_CallerIsGoroutineEntry(t *testing.T) {
	withFrames(t, []runtime.Frame{
		{Function: "github.com/go-gum/et.Extract1[...]"},
		{Function: "runtime.goexit"},
	})

	_, err := Extract1(testPerson(), nil)
	require.ErrorIs(t, err, ErrNoCallerFrame)
}

func TestExtract_NoSource(t *testing.T) {
	_, thisFile, _, ok := runtime.Caller(0)
	require.True(t, ok)

	callSites := []runtime.Frame{
		// built with -trimpath
		{Function: "main.main", File: "github.com/acme/tool/main.go", Line: 12},
		// no file information at all
		{Function: "main.main"},
		// line not in the file
		{Function: "main.main", File: thisFile, Line: 1_000_000},
	}

	for _, callSite := range callSites {
		withFrames(t, []runtime.Frame{{Function: "github.com/go-gum/et.Extract1[...]"}, callSite})

		_, err := Extract1(testPerson(), nil)
		require.ErrorIs(t, err, ErrNoSource)
		require.EqualError(t, err, "destruct: failed to retrieve code context")
	}
}

func TestExtract_ErrorsAreDistinct(t *testing.T) {
	all := []error{ErrNoFrame, ErrNoCallerFrame, ErrNoSource, ErrNoAssignment}
	for idx, err := range all {
		require.ErrorIs(t, err, ErrDestruct)

		for otherIdx, other := range all {
			if idx != otherIdx {
				require.NotErrorIs(t, err, other)
			}
		}
	}
}

func TestExtract_ExplicitKeysSkipInference(t *testing.T) {
	withFrames(t, nil)

	require.NoError(t, errOf(Extract1(testPerson(), []string{"name"})))
}

func TestIdentifierNames(t *testing.T) {
	cases := []struct {
		Text  string
		Names []string
	}{
		{Text: "name, age, city, err :", Names: []string{"name", "age", "city", "err"}},
		{Text: "x ", Names: []string{"x"}},
		{Text: "a, a, err :", Names: []string{"a", "a", "err"}},
		{Text: "cfg.Name, err ", Names: []string{"cfg", "Name", "err"}},
		{Text: `m["key"], ok `, Names: []string{"m", "key", "ok"}},
		{Text: "_, _y, x1, 2z, änderung", Names: []string{"_", "_y", "x1", "änderung"}},
		{Text: "", Names: nil},
		{Text: "  , :", Names: nil},
	}

	for _, c := range cases {
		require.Equal(t, c.Names, identifierNames(c.Text), "text %q", c.Text)
	}
}

func TestCallerKeys(t *testing.T) {
	inferKeys := func() ([]string, error) { return callerKeys(0) }

	keys, err := inferKeys()
	require.NoError(t, err)
	require.Equal(t, []string{"keys", "err"}, keys)
}
