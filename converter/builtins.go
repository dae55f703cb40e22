package converter

import (
	"github.com/thirteen37/configbridge/document"
	"github.com/thirteen37/configbridge/internal/semantic"
)

// RegisterBuiltins registers the native bridges between the JSON, YAML and
// TOML families in both directions, plus a deep copy within each family.
func RegisterBuiltins(c *Converter) {
	c.RegisterNativeBridge(document.JSON, document.YAML, func(doc document.Document, opts document.Options) (document.Document, error) {
		n, err := semantic.JSONToYAML(doc.JSON(), opts)
		if err != nil {
			return document.Document{}, err
		}
		return document.NewYAML(n), nil
	})
	c.RegisterNativeBridge(document.YAML, document.JSON, func(doc document.Document, opts document.Options) (document.Document, error) {
		v, err := semantic.YAMLToJSON(doc.YAML(), opts)
		if err != nil {
			return document.Document{}, err
		}
		return document.NewJSON(v), nil
	})

	c.RegisterNativeBridge(document.JSON, document.TOML, func(doc document.Document, opts document.Options) (document.Document, error) {
		v, err := semantic.JSONToTOML(doc.JSON(), opts)
		if err != nil {
			return document.Document{}, err
		}
		return document.NewTOML(v), nil
	})
	c.RegisterNativeBridge(document.TOML, document.JSON, func(doc document.Document, opts document.Options) (document.Document, error) {
		v, err := semantic.TOMLToJSON(doc.TOML(), opts)
		if err != nil {
			return document.Document{}, err
		}
		return document.NewJSON(v), nil
	})

	c.RegisterNativeBridge(document.YAML, document.TOML, func(doc document.Document, opts document.Options) (document.Document, error) {
		v, err := semantic.YAMLToTOML(doc.YAML(), opts)
		if err != nil {
			return document.Document{}, err
		}
		return document.NewTOML(v), nil
	})
	c.RegisterNativeBridge(document.TOML, document.YAML, func(doc document.Document, opts document.Options) (document.Document, error) {
		n, err := semantic.TOMLToYAML(doc.TOML(), opts)
		if err != nil {
			return document.Document{}, err
		}
		return document.NewYAML(n), nil
	})

	c.RegisterNativeBridge(document.JSON, document.JSON, func(doc document.Document, _ document.Options) (document.Document, error) {
		return document.NewJSON(semantic.CopyTree(doc.JSON())), nil
	})
	c.RegisterNativeBridge(document.YAML, document.YAML, func(doc document.Document, _ document.Options) (document.Document, error) {
		return document.NewYAML(semantic.CopyYAML(doc.YAML())), nil
	})
	c.RegisterNativeBridge(document.TOML, document.TOML, func(doc document.Document, _ document.Options) (document.Document, error) {
		return document.NewTOML(semantic.CopyTree(doc.TOML())), nil
	})
}
