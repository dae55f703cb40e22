package format

import (
	"sort"

	"github.com/iancoleman/orderedmap"
)

// ToOrderedMapPtr converts both value and pointer types of OrderedMap to a pointer.
// Returns nil if the value is not an OrderedMap.
func ToOrderedMapPtr(v any) *orderedmap.OrderedMap {
	switch val := v.(type) {
	case *orderedmap.OrderedMap:
		return val
	case orderedmap.OrderedMap:
		return &val
	default:
		return nil
	}
}

// NewObject returns an empty ordered map that does not HTML-escape on encode.
func NewObject() *orderedmap.OrderedMap {
	om := orderedmap.New()
	om.SetEscapeHTML(false)
	return om
}

// FromMap converts a plain map into an ordered map with sorted keys.
// Nested values are left untouched.
func FromMap(m map[string]any) *orderedmap.OrderedMap {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	om := NewObject()
	for _, k := range keys {
		om.Set(k, m[k])
	}
	return om
}
