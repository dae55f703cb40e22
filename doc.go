// Package configbridge loads configuration files written in JSON, YAML or
// TOML and converts them between those formats while keeping value types,
// nesting and, where the target allows it, key order.
//
// # Overview
//
// The library is built from a few small packages:
//
//   - document: the Document sum type, the Format enumeration, Options and errors
//   - format: the Adapter contract and the Registry, with one adapter
//     package per format (format/json, format/yaml, format/toml)
//   - converter: native bridges (Document to Document) and text bridges
//     (text to text) keyed by format pairs
//
// An Engine wires all of them together. New builds one; Default returns a
// shared one built on first use.
//
// # Quick Start
//
// Convert a file, inferring both formats from the extensions:
//
//	err := configbridge.Default().ConvertFile("app.yaml", document.Auto, "app.json", document.Auto, document.Options{})
//
// Work with typed trees:
//
//	cfg, err := configbridge.Load[configbridge.YAML]("app.yaml", document.Options{})
//	if err != nil {
//		log.Fatal(err)
//	}
//	out, err := configbridge.Convert[configbridge.OrderedJSON](cfg, document.Options{})
//
// # Type mapping
//
// YAML scalars are untyped. On conversion they are typed by explicit tag,
// then by token: null (~, null), booleans (true/false, plus yes/no/on/off
// unless Options.StrictBooleans is set), integers and floats. Quoted
// scalars are always strings. In the other direction integral floats are
// written as "1.0" and strings that would read back as another type are
// quoted.
//
// TOML documents must have a table at the root. TOML has no null, so null
// becomes the empty string. Dates and times become strings in other formats.
//
// # Errors
//
// Every error is a *document.Error and matches one of the sentinels
// document.ErrParse, document.ErrIO, document.ErrTypeMismatch,
// document.ErrUnsupportedConversion or document.ErrUnregisteredFormat with
// errors.Is. The Must* helpers panic with the same error instead.
package configbridge
