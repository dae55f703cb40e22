// Package document defines the tagged tree value that every format adapter
// produces and consumes, together with the format enumeration, conversion
// options and the error taxonomy shared by the rest of configbridge.
package document

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Kind identifies which native tree a Document holds.
type Kind int

const (
	KindNone Kind = iota
	KindJSON
	KindYAML
	KindTOML
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindJSON:
		return "json"
	case KindYAML:
		return "yaml"
	case KindTOML:
		return "toml"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Document holds exactly one native tree together with its kind.
//
// The JSON tree is built from *orderedmap.OrderedMap, []any and scalar
// leaves (json.Number, string, bool, nil, int64, uint64, float64). The YAML
// tree is a *yaml.Node. The TOML tree is normally a *orderedmap.OrderedMap
// root with TOML leaves (int64, float64, bool, string, time.Time).
//
// The zero Document has KindNone and holds nothing.
type Document struct {
	kind  Kind
	value any
}

// NewJSON returns a JSON-family document holding v.
func NewJSON(v any) Document {
	return Document{kind: KindJSON, value: v}
}

// NewYAML returns a YAML document holding n.
// A nil node is stored as a null scalar.
func NewYAML(n *yaml.Node) Document {
	if n == nil {
		n = &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
	return Document{kind: KindYAML, value: n}
}

// NewTOML returns a TOML document holding v.
// The TOML data model requires a table root; that is checked by the
// consumers of the document, not here.
func NewTOML(v any) Document {
	return Document{kind: KindTOML, value: v}
}

// Kind returns the document kind.
func (d Document) Kind() Kind { return d.kind }

// IsEmpty reports whether the document is the zero Document.
func (d Document) IsEmpty() bool { return d.kind == KindNone }

// Value returns the stored tree without checking its kind.
func (d Document) Value() any { return d.value }

// JSON returns the JSON tree. It panics if the document is not KindJSON.
func (d Document) JSON() any {
	d.mustBe(KindJSON)
	return d.value
}

// YAML returns the YAML tree. It panics if the document is not KindYAML.
func (d Document) YAML() *yaml.Node {
	d.mustBe(KindYAML)
	return d.value.(*yaml.Node)
}

// TOML returns the TOML tree. It panics if the document is not KindTOML.
func (d Document) TOML() any {
	d.mustBe(KindTOML)
	return d.value
}

// AsJSON returns the JSON tree and whether the document is KindJSON.
func (d Document) AsJSON() (any, bool) {
	if d.kind != KindJSON {
		return nil, false
	}
	return d.value, true
}

// AsYAML returns the YAML tree and whether the document is KindYAML.
func (d Document) AsYAML() (*yaml.Node, bool) {
	if d.kind != KindYAML {
		return nil, false
	}
	return d.value.(*yaml.Node), true
}

// AsTOML returns the TOML tree and whether the document is KindTOML.
func (d Document) AsTOML() (any, bool) {
	if d.kind != KindTOML {
		return nil, false
	}
	return d.value, true
}

func (d Document) mustBe(k Kind) {
	if d.kind != k {
		panic(fmt.Sprintf("document: %s accessor used on %s document", k, d.kind))
	}
}
