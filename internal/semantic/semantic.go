// Package semantic maps configuration trees between the JSON, YAML and
// TOML data models.
//
// The JSON-family tree is the pivot: YAML scalars are typed on the way in
// and rendered back to tagged scalars on the way out, and TOML values are
// narrowed to what a TOML document can hold.
package semantic

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/iancoleman/orderedmap"
	"github.com/thirteen37/configbridge/document"
	"github.com/thirteen37/configbridge/format"
	"github.com/thirteen37/configbridge/internal/path"
	"gopkg.in/yaml.v3"
)

func mismatch(to document.Format, p path.Path, msg string, args ...any) error {
	e := &document.Error{
		Kind:    document.ErrTypeMismatch,
		Op:      "convert",
		Format:  to,
		Message: fmt.Sprintf(msg, args...),
	}
	if !p.IsRoot() {
		e.Path = p.String()
	}
	return e
}

// JSONToYAML converts a JSON tree to a YAML node.
func JSONToYAML(v any, opts document.Options) (*yaml.Node, error) {
	return typedToYAML(v, opts.Precision(), path.Root())
}

// YAMLToJSON converts a YAML node to a JSON tree, inferring scalar types.
func YAMLToJSON(n *yaml.Node, opts document.Options) (any, error) {
	return newYAMLReader(opts, document.JSON).value(n, path.Root())
}

// JSONToTOML converts a JSON tree to a TOML tree. The root must be an object.
func JSONToTOML(v any, _ document.Options) (any, error) {
	if !isObject(v) {
		return nil, mismatch(document.TOML, path.Root(), "toml root must be a table, got %s", describe(v))
	}
	return typedToTOML(v, path.Root())
}

// TOMLToJSON converts a TOML tree to a JSON tree. The root must be a table.
// Dates and times become strings.
func TOMLToJSON(v any, _ document.Options) (any, error) {
	return tomlToTyped(v, document.JSON)
}

// YAMLToTOML converts a YAML node to a TOML tree. The root must be a mapping.
func YAMLToTOML(n *yaml.Node, opts document.Options) (any, error) {
	v, err := newYAMLReader(opts, document.TOML).value(n, path.Root())
	if err != nil {
		return nil, err
	}
	if !isObject(v) {
		return nil, mismatch(document.TOML, path.Root(), "toml root must be a table, got %s", describe(v))
	}
	return typedToTOML(v, path.Root())
}

// TOMLToYAML converts a TOML tree to a YAML node. The root must be a table.
func TOMLToYAML(v any, opts document.Options) (*yaml.Node, error) {
	typed, err := tomlToTyped(v, document.YAML)
	if err != nil {
		return nil, err
	}
	return typedToYAML(typed, opts.Precision(), path.Root())
}

func isObject(v any) bool {
	if format.ToOrderedMapPtr(v) != nil {
		return true
	}
	_, ok := v.(map[string]any)
	return ok
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	default:
		if isObject(v) {
			return "object"
		}
		if _, ok := number(v); ok {
			return "number"
		}
		return fmt.Sprintf("%T", v)
	}
}

// number normalizes numeric leaves to int64, uint64 or float64.
func number(v any) (any, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return uint64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return n, true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		return jsonNumber(n)
	default:
		return nil, false
	}
}

func jsonNumber(n json.Number) (any, bool) {
	s := string(n)
	if !strings.ContainsAny(s, ".eE") {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i, true
		}
		if u, err := strconv.ParseUint(s, 10, 64); err == nil {
			return u, true
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return nil, false
	}
	return f, true
}

// entries returns the keys and values of an object in iteration order.
// Plain maps iterate in sorted key order.
func entries(v any) ([]string, func(string) any, bool) {
	om := format.ToOrderedMapPtr(v)
	if om == nil {
		m, ok := v.(map[string]any)
		if !ok {
			return nil, nil, false
		}
		om = format.FromMap(m)
	}
	return om.Keys(), func(k string) any {
		val, _ := om.Get(k)
		return val
	}, true
}

func newObject() *orderedmap.OrderedMap {
	return format.NewObject()
}
