package et

import (
	"reflect"
	"slices"
	"strings"
	"sync"
)

// field is a struct field addressed by the key it is destructured from.
type field struct {
	Key   string
	Type  reflect.Type
	Index []int
}

type fieldsCacheKey struct {
	Type reflect.Type
	Tag  string
}

// resolved fields, indexed by fieldsCacheKey
var fieldsCache sync.Map

// fieldsOf returns the keyed fields of the struct type ty. Embedded structs are flattened
// following the visibility rules of go: a shallower field hides deeper fields with the
// same key, and an explicitly tagged field wins over untagged fields on the same depth.
// Ambiguous keys are dropped.
func fieldsOf(ty reflect.Type, structTag string) []field {
	cacheKey := fieldsCacheKey{Type: ty, Tag: structTag}
	if cached, ok := fieldsCache.Load(cacheKey); ok {
		return cached.([]field)
	}

	fields := collectFields(ty, structTag)
	fieldsCache.Store(cacheKey, fields)

	return fields
}

func collectFields(ty reflect.Type, structTag string) []field {
	if ty.Kind() != reflect.Struct {
		panic("not a struct")
	}

	type pending struct {
		Type        reflect.Type
		ParentIndex []int
	}

	type candidate struct {
		Explicit bool
		Field    field
	}

	// breadth first, so candidates for a key are ordered by depth
	queue := []pending{{Type: ty}}

	candidates := map[string][]candidate{}

	var order []string

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		for idx := range item.Type.NumField() {
			fi := item.Type.Field(idx)
			if !fi.IsExported() {
				continue
			}

			key, explicit := keyOf(fi, structTag)
			if key == "" {
				continue
			}

			// allocate a new slice by limiting the parents capacity
			parent := item.ParentIndex
			index := append(parent[:len(parent):len(parent)], fi.Index...)

			if fi.Anonymous && !explicit {
				if fi.Type.Kind() == reflect.Struct {
					queue = append(queue, pending{fi.Type, index})
				}

				continue
			}

			if len(candidates[key]) == 0 {
				order = append(order, key)
			}

			candidates[key] = append(candidates[key], candidate{
				Explicit: explicit,
				Field:    field{Key: key, Type: fi.Type, Index: index},
			})
		}
	}

	var fields []field

	for _, key := range order {
		all := candidates[key]

		// only the shallowest candidates are visible
		depth := len(all[0].Field.Index)
		visible := slices.DeleteFunc(slices.Clone(all), func(c candidate) bool {
			return len(c.Field.Index) != depth
		})

		if len(visible) == 1 {
			fields = append(fields, visible[0].Field)
			continue
		}

		explicit := slices.DeleteFunc(visible, func(c candidate) bool { return !c.Explicit })
		if len(explicit) == 1 {
			fields = append(fields, explicit[0].Field)
		}

		// no single winner, the key is ambiguous and skipped
	}

	return fields
}

// fieldByKey finds the field for key in the struct type ty.
func fieldByKey(ty reflect.Type, structTag string, key string) (field, bool) {
	for _, fi := range fieldsOf(ty, structTag) {
		if fi.Key == key {
			return fi, true
		}
	}

	return field{}, false
}

func keyOf(fi reflect.StructField, structTag string) (key string, explicit bool) {
	tag := fi.Tag.Get(structTag)

	switch {
	case tag == "":
		return fi.Name, false

	case tag == "-":
		// skip this field
		return "", true
	}

	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		// options only, e.g. ",omitempty"
		return fi.Name, false
	}

	return name, true
}
