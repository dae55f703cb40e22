package document

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies a textual configuration format.
type Format int

const (
	// Auto asks for the format to be inferred from a file extension.
	Auto Format = iota
	JSON
	OrderedJSON
	YAML
	TOML
	OrderedTOML
	// INI is reserved. No adapter implements it.
	INI
	// XML is reserved. No adapter implements it.
	XML
)

var formatNames = map[Format]string{
	Auto:        "auto",
	JSON:        "json",
	OrderedJSON: "ordered-json",
	YAML:        "yaml",
	TOML:        "toml",
	OrderedTOML: "ordered-toml",
	INI:         "ini",
	XML:         "xml",
}

// Formats returns every known format except Auto.
func Formats() []Format {
	return []Format{JSON, OrderedJSON, YAML, TOML, OrderedTOML, INI, XML}
}

// String returns the format name.
func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("format(%d)", int(f))
}

// Kind returns the storage family a document of this format uses.
// Reserved and unknown formats have no family.
func (f Format) Kind() Kind {
	switch f {
	case JSON, OrderedJSON:
		return KindJSON
	case YAML:
		return KindYAML
	case TOML, OrderedTOML:
		return KindTOML
	default:
		return KindNone
	}
}

// Family collapses the ordering variants onto their base format.
func (f Format) Family() Format {
	switch f {
	case OrderedJSON:
		return JSON
	case OrderedTOML:
		return TOML
	default:
		return f
	}
}

// Ordered reports whether the textual form keeps key insertion order.
// YAML mappings are sequences of pairs and always keep it.
func (f Format) Ordered() bool {
	switch f {
	case OrderedJSON, OrderedTOML, YAML:
		return true
	default:
		return false
	}
}

// ParseFormat parses a format name as produced by String.
// A few common aliases ("yml", "ojson", "otoml") are accepted.
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "yml":
		return YAML, nil
	case "ojson", "json-ordered":
		return OrderedJSON, nil
	case "otoml", "toml-ordered":
		return OrderedTOML, nil
	}
	for f, n := range formatNames {
		if n == name {
			return f, nil
		}
	}
	return Auto, fmt.Errorf("unknown format %q", s)
}

// GuessFormat infers a format from the extension of path.
// Unrecognized or missing extensions yield Auto.
func GuessFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON
	case ".yaml", ".yml":
		return YAML
	case ".toml":
		return TOML
	case ".ini":
		return INI
	case ".xml":
		return XML
	default:
		return Auto
	}
}
