// Package toml provides the TOML and ordered-TOML adapters.
package toml

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/iancoleman/orderedmap"
	"github.com/thirteen37/configbridge/document"
	"github.com/thirteen37/configbridge/format"
	"github.com/thirteen37/configbridge/internal/path"
)

// Adapter implements format.Adapter for TOML text.
//
// Both variants parse into the same order-preserving tree. TOML writes
// keys sorted, OrderedTOML writes them in insertion order.
type Adapter struct {
	format document.Format
}

// New creates the TOML adapter, which sorts keys on output.
func New() *Adapter {
	return &Adapter{format: document.TOML}
}

// NewOrdered creates the ordered-TOML adapter.
func NewOrdered() *Adapter {
	return &Adapter{format: document.OrderedTOML}
}

// Format implements format.Adapter.
func (a *Adapter) Format() document.Format { return a.format }

// Name implements format.Adapter.
func (a *Adapter) Name() string {
	if a.format == document.OrderedTOML {
		return "toml-ordered"
	}
	return "toml"
}

// ParseText implements format.Adapter.
// The root is an *orderedmap.OrderedMap in document key order.
func (a *Adapter) ParseText(data []byte, _ document.Options) (document.Document, error) {
	var raw map[string]any
	meta, err := toml.Decode(string(data), &raw)
	if err != nil {
		return document.Document{}, document.ParseFailure(a.format, err)
	}
	return document.NewTOML(convertToOrderedMapWithMeta(raw, meta, nil)), nil
}

// convertToOrderedMapWithMeta recursively converts map[string]any to *orderedmap.OrderedMap
// using TOML metadata to preserve key order.
func convertToOrderedMapWithMeta(v any, meta toml.MetaData, prefix []string) any {
	switch val := v.(type) {
	case map[string]any:
		result := format.NewObject()
		for _, k := range getKeysInOrder(meta, prefix, val) {
			childPrefix := append(append([]string{}, prefix...), k)
			result.Set(k, convertToOrderedMapWithMeta(val[k], meta, childPrefix))
		}
		return result
	case []map[string]any:
		// Array of tables. Element keys share the array's prefix in the metadata.
		result := make([]any, len(val))
		for i, item := range val {
			result[i] = convertToOrderedMapWithMeta(item, meta, prefix)
		}
		return result
	case []any:
		result := make([]any, len(val))
		for i, item := range val {
			result[i] = convertToOrderedMapWithMeta(item, meta, prefix)
		}
		return result
	default:
		return val
	}
}

// getKeysInOrder returns map keys in document order using TOML metadata.
func getKeysInOrder(meta toml.MetaData, prefix []string, m map[string]any) []string {
	needed := make(map[string]bool, len(m))
	for k := range m {
		needed[k] = true
	}

	ordered := make([]string, 0, len(m))
	seen := make(map[string]bool, len(m))
	for _, key := range meta.Keys() {
		if len(key) == len(prefix)+1 && matchesPrefix(key, prefix) {
			k := key[len(prefix)]
			if needed[k] && !seen[k] {
				ordered = append(ordered, k)
				seen[k] = true
			}
		}
	}

	// Keys only reachable through inline tables are missing from the metadata.
	var rest []string
	for k := range needed {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(ordered, rest...)
}

// matchesPrefix checks if key starts with prefix.
func matchesPrefix(key toml.Key, prefix []string) bool {
	if len(key) < len(prefix) {
		return false
	}
	for i, p := range prefix {
		if key[i] != p {
			return false
		}
	}
	return true
}

// LoadFile implements format.Adapter.
func (a *Adapter) LoadFile(path string, opts document.Options) (document.Document, error) {
	return format.LoadFile(a, path, opts)
}

// DumpText implements format.Adapter.
// The root must be a table and the tree must not contain nulls.
func (a *Adapter) DumpText(doc document.Document, opts document.Options) ([]byte, error) {
	if err := format.CheckKind(doc, a.format); err != nil {
		return nil, err
	}

	root := doc.TOML()
	if !isTable(root) {
		return nil, document.TypeMismatch("dump", a.format, "toml root is not a table")
	}

	e := encodable{precision: opts.Precision(), ordered: a.format.Ordered()}
	tree, err := e.value(root, path.Root())
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	encoder := toml.NewEncoder(&buf)
	encoder.Indent = ""
	if err := encoder.Encode(tree.Interface()); err != nil {
		return nil, fmt.Errorf("failed to serialize TOML: %w", err)
	}
	return buf.Bytes(), nil
}

// SaveFile implements format.Adapter.
func (a *Adapter) SaveFile(doc document.Document, path string, opts document.Options) error {
	return format.SaveFile(a, doc, path, opts)
}

func isTable(v any) bool {
	if format.ToOrderedMapPtr(v) != nil {
		return true
	}
	_, ok := v.(map[string]any)
	return ok
}

// encodable turns a TOML tree into values the BurntSushi encoder accepts.
//
// The encoder sorts map keys but writes struct fields in declaration order,
// so ordered tables become struct values built with reflect.StructOf whose
// field tags carry the map keys.
type encodable struct {
	precision int
	ordered   bool
}

func (e encodable) value(v any, p path.Path) (reflect.Value, error) {
	switch val := v.(type) {
	case *orderedmap.OrderedMap, orderedmap.OrderedMap:
		return e.table(format.ToOrderedMapPtr(val), p)
	case map[string]any:
		return e.table(format.FromMap(val), p)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			rv, err := e.value(item, p.Index(i))
			if err != nil {
				return reflect.Value{}, err
			}
			out[i] = rv.Interface()
		}
		return reflect.ValueOf(out), nil
	case nil:
		return reflect.Value{}, &document.Error{
			Kind:    document.ErrTypeMismatch,
			Op:      "dump",
			Format:  document.TOML,
			Path:    p.String(),
			Message: "toml cannot represent null",
		}
	case float64:
		return reflect.ValueOf(document.RoundFloat(val, e.precision)), nil
	case float32:
		return reflect.ValueOf(document.RoundFloat(float64(val), e.precision)), nil
	case uint64:
		if val > math.MaxInt64 {
			return reflect.ValueOf(float64(val)), nil
		}
		return reflect.ValueOf(int64(val)), nil
	case uint:
		return e.value(uint64(val), p)
	case int:
		return reflect.ValueOf(int64(val)), nil
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return reflect.ValueOf(i), nil
		}
		f, err := val.Float64()
		if err != nil {
			return reflect.Value{}, fmt.Errorf("invalid number %q at %s: %w", val, p, err)
		}
		return e.value(f, p)
	case string, bool, int64, int32, time.Time:
		return reflect.ValueOf(val), nil
	default:
		return reflect.Value{}, &document.Error{
			Kind:    document.ErrTypeMismatch,
			Op:      "dump",
			Format:  document.TOML,
			Path:    p.String(),
			Message: fmt.Sprintf("unsupported value of type %T", v),
		}
	}
}

func (e encodable) table(om *orderedmap.OrderedMap, p path.Path) (reflect.Value, error) {
	keys := om.Keys()
	values := make([]reflect.Value, len(keys))
	for i, k := range keys {
		v, _ := om.Get(k)
		rv, err := e.value(v, p.Key(k))
		if err != nil {
			return reflect.Value{}, err
		}
		values[i] = rv
	}

	if !e.ordered || !taggable(keys) {
		m := make(map[string]any, len(keys))
		for i, k := range keys {
			m[k] = values[i].Interface()
		}
		return reflect.ValueOf(m), nil
	}

	fields := make([]reflect.StructField, len(keys))
	for i, k := range keys {
		fields[i] = reflect.StructField{
			Name: "F" + strconv.Itoa(i),
			Type: values[i].Type(),
			Tag:  reflect.StructTag("toml:" + strconv.Quote(k)),
		}
	}
	s := reflect.New(reflect.StructOf(fields)).Elem()
	for i := range keys {
		s.Field(i).Set(values[i])
	}
	return s, nil
}

// taggable reports whether every key survives as a toml struct tag name.
// The encoder splits tags on commas and treats "" and "-" specially.
func taggable(keys []string) bool {
	for _, k := range keys {
		if k == "" || k == "-" || strings.Contains(k, ",") {
			return false
		}
	}
	return true
}
