// Package yaml provides the YAML adapter.
package yaml

import (
	"bytes"
	"fmt"

	"github.com/thirteen37/configbridge/document"
	"github.com/thirteen37/configbridge/format"
	"gopkg.in/yaml.v3"
)

// Indent is the number of spaces used per nesting level on output.
const Indent = 2

// Adapter implements format.Adapter for YAML text.
// The tree is the *yaml.Node of the first document in the stream.
type Adapter struct{}

// New creates a YAML adapter.
func New() *Adapter {
	return &Adapter{}
}

// Format implements format.Adapter.
func (a *Adapter) Format() document.Format { return document.YAML }

// Name implements format.Adapter.
func (a *Adapter) Name() string { return "yaml" }

// ParseText implements format.Adapter.
// Empty input yields a null scalar.
func (a *Adapter) ParseText(data []byte, _ document.Options) (document.Document, error) {
	var n yaml.Node
	if err := yaml.Unmarshal(data, &n); err != nil {
		return document.Document{}, document.ParseFailure(document.YAML, err)
	}

	switch {
	case n.Kind == 0:
		return document.NewYAML(nil), nil
	case n.Kind == yaml.DocumentNode && len(n.Content) > 0:
		return document.NewYAML(n.Content[0]), nil
	case n.Kind == yaml.DocumentNode:
		return document.NewYAML(nil), nil
	default:
		return document.NewYAML(&n), nil
	}
}

// LoadFile implements format.Adapter.
func (a *Adapter) LoadFile(path string, opts document.Options) (document.Document, error) {
	return format.LoadFile(a, path, opts)
}

// DumpText implements format.Adapter.
func (a *Adapter) DumpText(doc document.Document, _ document.Options) ([]byte, error) {
	if err := format.CheckKind(doc, document.YAML); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(Indent)
	if err := enc.Encode(doc.YAML()); err != nil {
		return nil, fmt.Errorf("failed to serialize YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to serialize YAML: %w", err)
	}
	return buf.Bytes(), nil
}

// SaveFile implements format.Adapter.
func (a *Adapter) SaveFile(doc document.Document, path string, opts document.Options) error {
	return format.SaveFile(a, doc, path, opts)
}
