// Package path provides locations inside configuration trees, used to point
// conversion diagnostics at the offending value.
package path

import (
	"encoding/json"
	"strconv"
)

// Path is a location in a tree: a sequence of mapping keys and array indexes.
// The zero Path is the root. Paths are immutable; Key and Index return new values.
type Path struct {
	segments []any
}

// Root returns the empty path.
func Root() Path {
	return Path{}
}

// Key returns the path extended by a mapping key.
func (p Path) Key(k string) Path {
	return p.extend(k)
}

// Index returns the path extended by an array index.
func (p Path) Index(i int) Path {
	return p.extend(i)
}

func (p Path) extend(seg any) Path {
	segments := make([]any, len(p.segments)+1)
	copy(segments, p.segments)
	segments[len(p.segments)] = seg
	return Path{segments: segments}
}

// IsRoot reports whether p has no segments.
func (p Path) IsRoot() bool {
	return len(p.segments) == 0
}

// Segments returns the path as strings, with indexes in decimal.
func (p Path) Segments() []string {
	out := make([]string, len(p.segments))
	for i, s := range p.segments {
		switch v := s.(type) {
		case string:
			out[i] = v
		case int:
			out[i] = strconv.Itoa(v)
		}
	}
	return out
}

// String returns the path as a JSON array, e.g. ["servers",0,"port"].
// The root is "[]".
func (p Path) String() string {
	if len(p.segments) == 0 {
		return "[]"
	}
	data, _ := json.Marshal(p.segments)
	return string(data)
}
