package semantic

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/thirteen37/configbridge/document"
	"gopkg.in/yaml.v3"
)

// floatPattern is the YAML 1.2 core schema float grammar, minus the
// special .inf/.nan tokens which are matched separately.
var floatPattern = regexp.MustCompile(`^[-+]?(\.[0-9]+|[0-9]+(\.[0-9]*)?)([eE][-+]?[0-9]+)?$`)

var nullTokens = map[string]bool{
	"":     true,
	"~":    true,
	"null": true,
	"Null": true,
	"NULL": true,
}

var (
	strictTrue  = map[string]bool{"true": true}
	strictFalse = map[string]bool{"false": true}

	lenientTrue = map[string]bool{
		"true": true, "True": true, "TRUE": true,
		"yes": true, "Yes": true, "YES": true,
		"on": true, "On": true, "ON": true,
	}
	lenientFalse = map[string]bool{
		"false": true, "False": true, "FALSE": true,
		"no": true, "No": true, "NO": true,
		"off": true, "Off": true, "OFF": true,
	}
)

var specialFloats = map[string]float64{
	".inf": math.Inf(1), ".Inf": math.Inf(1), ".INF": math.Inf(1),
	"+.inf": math.Inf(1), "+.Inf": math.Inf(1), "+.INF": math.Inf(1),
	"-.inf": math.Inf(-1), "-.Inf": math.Inf(-1), "-.INF": math.Inf(-1),
	".nan": math.NaN(), ".NaN": math.NaN(), ".NAN": math.NaN(),
}

// scalarValue infers the typed value of a YAML scalar node.
//
// An explicit tag decides the type; a value that does not parse under its
// tag is kept as a string. Quoted and block scalars are strings. Plain
// scalars are tried as null, boolean, integer and float in that order.
func scalarValue(n *yaml.Node, opts document.Options) any {
	if n.Style&yaml.TaggedStyle != 0 {
		return taggedValue(n.Tag, n.Value)
	}
	if n.Style&(yaml.DoubleQuotedStyle|yaml.SingleQuotedStyle|yaml.LiteralStyle|yaml.FoldedStyle) != 0 {
		return n.Value
	}
	return plainValue(n.Value, opts)
}

func taggedValue(tag, value string) any {
	switch tag {
	case "!!null":
		return nil
	case "!!bool":
		if b, ok := parseBool(value, false); ok {
			return b
		}
	case "!!int":
		if i, ok := parseInt(value); ok {
			return i
		}
	case "!!float":
		if f, ok := parseFloat(value); ok {
			return f
		}
		if i, ok := parseInt(value); ok {
			return toFloat(i)
		}
	}
	return value
}

func plainValue(s string, opts document.Options) any {
	if nullTokens[s] {
		return nil
	}
	if !opts.DisableAutoBoolean {
		if b, ok := parseBool(s, opts.StrictBooleans); ok {
			return b
		}
	}
	if !opts.DisableAutoNumber {
		if i, ok := parseInt(s); ok {
			return i
		}
		if f, ok := parseFloat(s); ok {
			return f
		}
	}
	return s
}

func parseBool(s string, strict bool) (bool, bool) {
	t, f := lenientTrue, lenientFalse
	if strict {
		t, f = strictTrue, strictFalse
	}
	switch {
	case t[s]:
		return true, true
	case f[s]:
		return false, true
	default:
		return false, false
	}
}

// parseInt accepts decimal integers and 0x, 0o and 0b prefixed integers.
// Positive values past the int64 range come back as uint64.
func parseInt(s string) (any, bool) {
	body := strings.TrimLeft(s, "+-")
	if body == "" || len(s)-len(body) > 1 {
		return nil, false
	}

	base := 10
	if len(body) > 2 && body[0] == '0' && strings.IndexByte("xob", body[1]) >= 0 {
		base = 0
	} else if strings.Trim(body, "0123456789") != "" {
		return nil, false
	}

	i, err := strconv.ParseInt(s, base, 64)
	if err == nil {
		return i, true
	}
	if errors.Is(err, strconv.ErrRange) && s[0] != '-' {
		if u, err := strconv.ParseUint(strings.TrimPrefix(s, "+"), base, 64); err == nil {
			return u, true
		}
	}
	return nil, false
}

func parseFloat(s string) (float64, bool) {
	if f, ok := specialFloats[s]; ok {
		return f, true
	}
	if !floatPattern.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case int64:
		return float64(n)
	case uint64:
		return float64(n)
	default:
		return 0
	}
}

// ambiguous reports whether s, written as a plain YAML scalar, would be
// read back as something other than the same string.
func ambiguous(s string) bool {
	_, isString := plainValue(s, document.Options{}).(string)
	return !isString
}
