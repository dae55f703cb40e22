// Package converter translates documents and texts between formats.
//
// A Converter holds two tables keyed by (source, destination) format pairs:
// native bridges, which map one document kind to another, and text bridges,
// which map text to text directly. Both tables are filled at startup and are
// read-only afterwards.
package converter

import (
	"sort"

	"github.com/thirteen37/configbridge/document"
	"github.com/thirteen37/configbridge/format"
	"github.com/thirteen37/configbridge/logging"
)

// NativeBridge converts a document of the source kind into a document of
// the destination kind.
type NativeBridge func(doc document.Document, opts document.Options) (document.Document, error)

// TextBridge converts source text directly into destination text.
type TextBridge func(text []byte, opts document.Options) ([]byte, error)

// Pair is an ordered (source, destination) format pair.
type Pair struct {
	From document.Format
	To   document.Format
}

// Converter routes conversions through registered bridges and adapters.
type Converter struct {
	registry *format.Registry
	native   map[Pair]NativeBridge
	text     map[Pair]TextBridge
	logger   logging.Logger
}

// New creates a Converter with empty bridge tables. Adapters for text
// conversion are looked up in registry at call time.
func New(registry *format.Registry, logger logging.Logger) *Converter {
	return &Converter{
		registry: registry,
		native:   make(map[Pair]NativeBridge),
		text:     make(map[Pair]TextBridge),
		logger:   logging.OrNop(logger),
	}
}

// nativeKey collapses ordering variants, since both variants of a family
// share one document kind.
func nativeKey(from, to document.Format) Pair {
	return Pair{From: from.Family(), To: to.Family()}
}

// RegisterNativeBridge sets the native bridge for from → to, replacing any
// previous one. Ordering variants share a bridge.
func (c *Converter) RegisterNativeBridge(from, to document.Format, b NativeBridge) {
	key := nativeKey(from, to)
	c.native[key] = b
	c.logger.Debug("registered native bridge", "from", key.From.String(), "to", key.To.String())
}

// RegisterTextBridge sets the text bridge for exactly from → to.
func (c *Converter) RegisterTextBridge(from, to document.Format, b TextBridge) {
	c.text[Pair{From: from, To: to}] = b
	c.logger.Debug("registered text bridge", "from", from.String(), "to", to.String())
}

// HasNativeBridge reports whether Convert can turn a from document into to.
func (c *Converter) HasNativeBridge(from, to document.Format) bool {
	_, ok := c.native[nativeKey(from, to)]
	return ok
}

// NativePairs returns the registered native bridge pairs, sorted.
func (c *Converter) NativePairs() []Pair {
	out := make([]Pair, 0, len(c.native))
	for p := range c.native {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].To < out[j].To
	})
	return out
}

// kindFormat returns the base format of a document kind.
func kindFormat(k document.Kind) document.Format {
	switch k {
	case document.KindJSON:
		return document.JSON
	case document.KindYAML:
		return document.YAML
	case document.KindTOML:
		return document.TOML
	default:
		return document.Auto
	}
}

// Convert converts doc into a document for the to format using a native
// bridge. There is no fallback: a pair without a bridge is unsupported.
func (c *Converter) Convert(doc document.Document, to document.Format, opts document.Options) (document.Document, error) {
	if doc.IsEmpty() {
		return document.Document{}, document.TypeMismatch("convert", to, "empty document")
	}

	from := kindFormat(doc.Kind())
	b, ok := c.native[nativeKey(from, to)]
	if !ok {
		return document.Document{}, document.Unsupported(from, to)
	}

	c.logger.Debug("native bridge", "from", from.String(), "to", to.String())
	return b(doc, opts)
}

// ConvertText converts text in the from format into the to format.
//
// A text bridge registered for the exact pair is used first. Otherwise the
// text is parsed with the source adapter and dumped with the destination
// adapter, going through a native bridge when the two formats store
// different document kinds. Pairs with neither are unsupported.
func (c *Converter) ConvertText(from, to document.Format, text []byte, opts document.Options) ([]byte, error) {
	if b, ok := c.text[Pair{From: from, To: to}]; ok {
		c.logger.Debug("text bridge", "from", from.String(), "to", to.String())
		return b(text, opts)
	}

	sameKind := from.Kind() != document.KindNone && from.Kind() == to.Kind()
	if !sameKind && !c.HasNativeBridge(from, to) {
		return nil, document.Unsupported(from, to)
	}

	src, err := c.registry.Lookup(from)
	if err != nil {
		return nil, err
	}
	dst, err := c.registry.Lookup(to)
	if err != nil {
		return nil, err
	}

	doc, err := src.ParseText(text, opts)
	if err != nil {
		return nil, err
	}

	if !sameKind {
		doc, err = c.Convert(doc, to, opts)
		if err != nil {
			return nil, err
		}
	} else {
		c.logger.Debug("adapter chain", "from", src.Name(), "to", dst.Name())
	}
	return dst.DumpText(doc, opts)
}

// ConvertFile reads inputPath, converts it and writes outputPath. Auto
// formats are inferred from the file extensions.
func (c *Converter) ConvertFile(inputPath string, inputFormat document.Format, outputPath string, outputFormat document.Format, opts document.Options) error {
	from, err := resolve(inputPath, inputFormat)
	if err != nil {
		return err
	}
	to, err := resolve(outputPath, outputFormat)
	if err != nil {
		return err
	}

	data, err := format.ReadFile(inputPath)
	if err != nil {
		return err
	}
	out, err := c.ConvertText(from, to, data, opts)
	if err != nil {
		return err
	}
	return format.WriteFile(outputPath, out)
}

func resolve(path string, f document.Format) (document.Format, error) {
	if f != document.Auto {
		return f, nil
	}
	if guessed := document.GuessFormat(path); guessed != document.Auto {
		return guessed, nil
	}
	return document.Auto, &document.Error{
		Kind:    document.ErrUnregisteredFormat,
		Op:      "convert",
		Path:    path,
		Message: "cannot infer format from file extension",
	}
}
