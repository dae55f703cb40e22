package configbridge

import (
	"sync"

	"github.com/thirteen37/configbridge/converter"
	"github.com/thirteen37/configbridge/document"
	"github.com/thirteen37/configbridge/format"
	jsonfmt "github.com/thirteen37/configbridge/format/json"
	tomlfmt "github.com/thirteen37/configbridge/format/toml"
	yamlfmt "github.com/thirteen37/configbridge/format/yaml"
	"github.com/thirteen37/configbridge/logging"
)

// Engine owns a Registry populated with the built-in adapters and a
// Converter populated with the built-in bridges.
//
// An Engine is read-only once New returns. Concurrent calls are safe as
// long as callers do not register further adapters or bridges.
type Engine struct {
	registry  *format.Registry
	converter *converter.Converter
	logger    logging.Logger
}

// Option configures an Engine.
type Option func(*engineConfig)

type engineConfig struct {
	logger   logging.Logger
	adapters []format.Adapter
}

// WithLogger sets the logger for the engine, its registry and converter.
func WithLogger(l logging.Logger) Option {
	return func(cfg *engineConfig) {
		cfg.logger = l
	}
}

// WithAdapter registers an extra adapter after the built-in ones. An
// adapter for a format that already has one replaces it.
func WithAdapter(a format.Adapter) Option {
	return func(cfg *engineConfig) {
		cfg.adapters = append(cfg.adapters, a)
	}
}

// New builds an Engine: it registers the JSON, ordered-JSON, YAML, TOML and
// ordered-TOML adapters, then the built-in native bridges.
func New(opts ...Option) *Engine {
	cfg := engineConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	logger := logging.OrNop(cfg.logger)

	registry := format.NewRegistry(logger.With("component", "registry"))
	registry.Register(jsonfmt.New())
	registry.Register(jsonfmt.NewOrdered())
	registry.Register(yamlfmt.New())
	registry.Register(tomlfmt.New())
	registry.Register(tomlfmt.NewOrdered())
	for _, a := range cfg.adapters {
		registry.Register(a)
	}

	conv := converter.New(registry, logger.With("component", "converter"))
	converter.RegisterBuiltins(conv)

	return &Engine{registry: registry, converter: conv, logger: logger}
}

var (
	defaultOnce   sync.Once
	defaultEngine *Engine
)

// Default returns the shared Engine, building it on first use.
func Default() *Engine {
	defaultOnce.Do(func() {
		defaultEngine = New()
	})
	return defaultEngine
}

// Registry returns the engine's adapter registry.
func (e *Engine) Registry() *format.Registry { return e.registry }

// Converter returns the engine's converter.
func (e *Engine) Converter() *converter.Converter { return e.converter }

func (e *Engine) adapter(f document.Format, path string) (format.Adapter, error) {
	if f == document.Auto && path != "" {
		f = document.GuessFormat(path)
	}
	if f == document.Auto {
		return nil, &document.Error{
			Kind:    document.ErrUnregisteredFormat,
			Op:      "lookup",
			Path:    path,
			Message: "format is auto and cannot be inferred",
		}
	}
	return e.registry.Lookup(f)
}

// Parse parses text with the adapter for f.
func (e *Engine) Parse(f document.Format, text []byte, opts document.Options) (document.Document, error) {
	a, err := e.adapter(f, "")
	if err != nil {
		return document.Document{}, err
	}
	return a.ParseText(text, opts)
}

// Dump renders doc with the adapter for f. The document kind must match f.
func (e *Engine) Dump(doc document.Document, f document.Format, opts document.Options) ([]byte, error) {
	a, err := e.adapter(f, "")
	if err != nil {
		return nil, err
	}
	return a.DumpText(doc, opts)
}

// Load reads path with the adapter for f. Auto infers f from the extension.
func (e *Engine) Load(path string, f document.Format, opts document.Options) (document.Document, error) {
	a, err := e.adapter(f, path)
	if err != nil {
		return document.Document{}, err
	}
	e.logger.Debug("load", "path", path, "adapter", a.Name())
	return a.LoadFile(path, opts)
}

// Save writes doc to path with the adapter for f. Auto infers f from the
// extension.
func (e *Engine) Save(doc document.Document, path string, f document.Format, opts document.Options) error {
	a, err := e.adapter(f, path)
	if err != nil {
		return err
	}
	e.logger.Debug("save", "path", path, "adapter", a.Name())
	return a.SaveFile(doc, path, opts)
}

// Convert converts doc to the to format with a native bridge.
func (e *Engine) Convert(doc document.Document, to document.Format, opts document.Options) (document.Document, error) {
	return e.converter.Convert(doc, to, opts)
}

// ConvertText converts text between formats. See converter.Converter.ConvertText.
func (e *Engine) ConvertText(from, to document.Format, text []byte, opts document.Options) ([]byte, error) {
	return e.converter.ConvertText(from, to, text, opts)
}

// ConvertFile converts a file into another. Auto formats are inferred from
// the extensions.
func (e *Engine) ConvertFile(inputPath string, inputFormat document.Format, outputPath string, outputFormat document.Format, opts document.Options) error {
	return e.converter.ConvertFile(inputPath, inputFormat, outputPath, outputFormat, opts)
}
