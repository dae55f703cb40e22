// Package json provides the JSON and ordered-JSON adapters.
package json

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/iancoleman/orderedmap"
	"github.com/thirteen37/configbridge/document"
	"github.com/thirteen37/configbridge/format"
)

// Adapter implements format.Adapter for JSON text.
//
// Both variants parse into the same order-preserving tree. They differ only
// on output: JSON sorts object keys, OrderedJSON keeps insertion order.
type Adapter struct {
	format document.Format
}

// New creates the JSON adapter, which sorts keys on output.
func New() *Adapter {
	return &Adapter{format: document.JSON}
}

// NewOrdered creates the ordered-JSON adapter.
func NewOrdered() *Adapter {
	return &Adapter{format: document.OrderedJSON}
}

// Format implements format.Adapter.
func (a *Adapter) Format() document.Format { return a.format }

// Name implements format.Adapter.
func (a *Adapter) Name() string {
	if a.format == document.OrderedJSON {
		return "json-ordered"
	}
	return "json"
}

// commentRegex matches single-line // comments.
var commentRegex = regexp.MustCompile(`(?m)^\s*//.*$|//[^"]*$`)

// StripComments removes single-line // comments from JSON.
// This allows parsing JSONC (JSON with comments) files.
func StripComments(data []byte) []byte {
	return commentRegex.ReplaceAll(data, nil)
}

// ParseText implements format.Adapter.
//
// Objects become *orderedmap.OrderedMap, arrays []any and numbers
// json.Number so that 1 and 1.0 stay distinguishable.
func (a *Adapter) ParseText(data []byte, opts document.Options) (document.Document, error) {
	if opts.StripComments {
		data = StripComments(data)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return document.Document{}, document.ParseFailure(a.format, describe(data, err))
	}
	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = fmt.Errorf("invalid character after top-level value at offset %d", dec.InputOffset())
		}
		return document.Document{}, document.ParseFailure(a.format, describe(data, err))
	}
	return document.NewJSON(v), nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}

	switch delim {
	case '{':
		obj := format.NewObject()
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("expected object key, got %v", keyTok)
			}
			val, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			obj.Set(key, val)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return obj, nil
	case '[':
		arr := []any{}
		for dec.More() {
			val, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, val)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return arr, nil
	default:
		return nil, fmt.Errorf("unexpected delimiter %q", delim)
	}
}

// describe adds a line and column to syntax errors.
func describe(data []byte, err error) error {
	var syn *json.SyntaxError
	if errors.As(err, &syn) {
		line, col := position(data, syn.Offset)
		return fmt.Errorf("line %d, column %d: %w", line, col, err)
	}
	return err
}

// position converts a byte offset into a 1-based line and column.
// The decoder reports the offset just past the offending byte.
func position(data []byte, offset int64) (line, col int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	if offset > 0 {
		offset--
	}
	before := data[:offset]
	line = bytes.Count(before, []byte{'\n'}) + 1
	col = int(offset) - bytes.LastIndexByte(before, '\n')
	return line, col
}

// LoadFile implements format.Adapter.
func (a *Adapter) LoadFile(path string, opts document.Options) (document.Document, error) {
	return format.LoadFile(a, path, opts)
}

// DumpText implements format.Adapter.
func (a *Adapter) DumpText(doc document.Document, opts document.Options) ([]byte, error) {
	if err := format.CheckKind(doc, a.format); err != nil {
		return nil, err
	}

	r := renderer{precision: opts.Precision(), sortKeys: !a.format.Ordered()}
	tree, err := r.render(doc.JSON())
	if err != nil {
		return nil, &document.Error{Kind: document.ErrTypeMismatch, Op: "dump", Format: a.format, Cause: err}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(tree); err != nil {
		return nil, fmt.Errorf("failed to serialize JSON: %w", err)
	}
	return buf.Bytes(), nil
}

// SaveFile implements format.Adapter.
func (a *Adapter) SaveFile(doc document.Document, path string, opts document.Options) error {
	return format.SaveFile(a, doc, path, opts)
}

// renderer copies a JSON tree into one ready for encoding/json: floats
// formatted with the configured precision and object keys optionally sorted.
type renderer struct {
	precision int
	sortKeys  bool
}

func (r renderer) render(v any) (any, error) {
	switch val := v.(type) {
	case *orderedmap.OrderedMap:
		return r.object(val)
	case orderedmap.OrderedMap:
		return r.object(&val)
	case map[string]any:
		return r.object(format.FromMap(val))
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			rv, err := r.render(item)
			if err != nil {
				return nil, err
			}
			out[i] = rv
		}
		return out, nil
	case json.Number:
		if !isFloatLiteral(string(val)) {
			return val, nil
		}
		f, err := val.Float64()
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return nil, fmt.Errorf("invalid number %q: %w", val, err)
		}
		// Out of range literals overflow to an infinity and render as null.
		return r.float(f), nil
	case float64:
		return r.float(val), nil
	case float32:
		return r.float(float64(val)), nil
	default:
		return val, nil
	}
}

func (r renderer) object(om *orderedmap.OrderedMap) (any, error) {
	out := format.NewObject()
	for _, k := range om.Keys() {
		v, _ := om.Get(k)
		rv, err := r.render(v)
		if err != nil {
			return nil, err
		}
		out.Set(k, rv)
	}
	if r.sortKeys {
		out.SortKeys(sort.Strings)
	}
	return out, nil
}

// float renders non-finite values as null, since JSON cannot represent them.
func (r renderer) float(f float64) any {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return json.Number(document.FormatFloat(f, r.precision))
}

func isFloatLiteral(s string) bool {
	return strings.ContainsAny(s, ".eE")
}
