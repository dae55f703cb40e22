package configbridge

import (
	"github.com/thirteen37/configbridge/document"
	"gopkg.in/yaml.v3"
)

// JSON is a JSON tree written with sorted keys.
type JSON struct{ Value any }

// OrderedJSON is a JSON tree written in insertion order.
type OrderedJSON struct{ Value any }

// YAML is a YAML node tree.
type YAML struct{ Node *yaml.Node }

// TOML is a TOML tree written with sorted keys.
type TOML struct{ Value any }

// OrderedTOML is a TOML tree written in insertion order.
type OrderedTOML struct{ Value any }

// Tree is the set of typed trees accepted by the generic helpers. Each one
// is bound to a single format.
type Tree interface {
	JSON | OrderedJSON | YAML | TOML | OrderedTOML
}

// FormatOf returns the format bound to T.
func FormatOf[T Tree]() document.Format {
	var zero T
	switch any(zero).(type) {
	case JSON:
		return document.JSON
	case OrderedJSON:
		return document.OrderedJSON
	case YAML:
		return document.YAML
	case TOML:
		return document.TOML
	case OrderedTOML:
		return document.OrderedTOML
	default:
		return document.Auto
	}
}

func toDocument[T Tree](v T) document.Document {
	switch t := any(v).(type) {
	case JSON:
		return document.NewJSON(t.Value)
	case OrderedJSON:
		return document.NewJSON(t.Value)
	case YAML:
		return document.NewYAML(t.Node)
	case TOML:
		return document.NewTOML(t.Value)
	case OrderedTOML:
		return document.NewTOML(t.Value)
	default:
		return document.Document{}
	}
}

func fromDocument[T Tree](op string, doc document.Document) (T, error) {
	var zero T
	f := FormatOf[T]()
	if doc.Kind() != f.Kind() {
		return zero, document.TypeMismatch(op, f, "document is %s, not %s", doc.Kind(), f.Kind())
	}

	var out any
	switch any(zero).(type) {
	case JSON:
		out = JSON{Value: doc.JSON()}
	case OrderedJSON:
		out = OrderedJSON{Value: doc.JSON()}
	case YAML:
		out = YAML{Node: doc.YAML()}
	case TOML:
		out = TOML{Value: doc.TOML()}
	case OrderedTOML:
		out = OrderedTOML{Value: doc.TOML()}
	}
	return out.(T), nil
}

// Load reads path as T's format using the default engine.
func Load[T Tree](path string, opts document.Options) (T, error) {
	doc, err := Default().Load(path, FormatOf[T](), opts)
	if err != nil {
		var zero T
		return zero, err
	}
	return fromDocument[T]("load", doc)
}

// MustLoad is like Load but panics on error.
func MustLoad[T Tree](path string, opts document.Options) T {
	v, err := Load[T](path, opts)
	if err != nil {
		panic(err)
	}
	return v
}

// Save writes v to path in T's format using the default engine.
func Save[T Tree](path string, v T, opts document.Options) error {
	return Default().Save(toDocument(v), path, FormatOf[T](), opts)
}

// Convert converts v into the To tree through a native bridge.
func Convert[To, From Tree](v From, opts document.Options) (To, error) {
	doc, err := Default().Convert(toDocument(v), FormatOf[To](), opts)
	if err != nil {
		var zero To
		return zero, err
	}
	return fromDocument[To]("convert", doc)
}

// MustConvert is like Convert but panics on error.
func MustConvert[To, From Tree](v From, opts document.Options) To {
	out, err := Convert[To](v, opts)
	if err != nil {
		panic(err)
	}
	return out
}

// ParseText parses text as T's format.
func ParseText[T Tree](text []byte, opts document.Options) (T, error) {
	doc, err := Default().Parse(FormatOf[T](), text, opts)
	if err != nil {
		var zero T
		return zero, err
	}
	return fromDocument[T]("parse", doc)
}

// MustParseText is like ParseText but panics on error.
func MustParseText[T Tree](text []byte, opts document.Options) T {
	v, err := ParseText[T](text, opts)
	if err != nil {
		panic(err)
	}
	return v
}

// DumpText renders v in T's format.
func DumpText[T Tree](v T, opts document.Options) ([]byte, error) {
	return Default().Dump(toDocument(v), FormatOf[T](), opts)
}
