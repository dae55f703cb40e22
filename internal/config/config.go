// Package config provides options file handling for the configbridge CLI.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/thirteen37/configbridge/document"
	"gopkg.in/yaml.v3"
)

// File represents an options file. It may be written in JSON, YAML or
// TOML; the extension decides.
type File struct {
	// FloatPrecision is the number of significant digits for floats.
	// Zero keeps the default.
	FloatPrecision int `json:"floatPrecision,omitempty" yaml:"floatPrecision,omitempty" toml:"floatPrecision,omitempty"`

	StrictBooleans     bool `json:"strictBooleans,omitempty" yaml:"strictBooleans,omitempty" toml:"strictBooleans,omitempty"`
	DisableAutoBoolean bool `json:"disableAutoBoolean,omitempty" yaml:"disableAutoBoolean,omitempty" toml:"disableAutoBoolean,omitempty"`
	DisableAutoNumber  bool `json:"disableAutoNumber,omitempty" yaml:"disableAutoNumber,omitempty" toml:"disableAutoNumber,omitempty"`
	StripComments      bool `json:"stripComments,omitempty" yaml:"stripComments,omitempty" toml:"stripComments,omitempty"`
}

// Load reads an options File. Unknown keys are rejected.
func Load(filename string) (*File, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read options file: %w", err)
	}

	var cfg File
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&cfg)
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&cfg)
		if errors.Is(err, io.EOF) {
			err = nil
		}
	case ".toml":
		var meta toml.MetaData
		meta, err = toml.Decode(string(data), &cfg)
		if err == nil {
			if undecoded := meta.Undecoded(); len(undecoded) > 0 {
				err = fmt.Errorf("unknown key %q", undecoded[0].String())
			}
		}
	default:
		return nil, fmt.Errorf("unsupported options file extension %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse options file: %w", err)
	}
	return &cfg, nil
}

// Save writes the File, encoded according to the extension of filename.
func (c *File) Save(filename string) error {
	var (
		data []byte
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".json":
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	case ".toml":
		var buf bytes.Buffer
		err = toml.NewEncoder(&buf).Encode(c)
		data = buf.Bytes()
	default:
		return fmt.Errorf("unsupported options file extension %q", ext)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal options: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write options file: %w", err)
	}

	return nil
}

// Options converts the file into conversion options.
func (c *File) Options() document.Options {
	return document.Options{
		FloatPrecision:     c.FloatPrecision,
		StrictBooleans:     c.StrictBooleans,
		DisableAutoBoolean: c.DisableAutoBoolean,
		DisableAutoNumber:  c.DisableAutoNumber,
		StripComments:      c.StripComments,
	}
}
