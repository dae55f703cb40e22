package document

import (
	"math"
	"strconv"
	"strings"
)

// DefaultFloatPrecision is the number of significant digits used when
// Options.FloatPrecision is zero.
const DefaultFloatPrecision = 6

// Options controls cross-format conversion and rendering.
//
// The zero value is the baseline: six significant float digits and lenient
// scalar inference. Options are passed by value and never modified.
type Options struct {
	// FloatPrecision is the number of significant digits for non-integral
	// floats. Zero selects DefaultFloatPrecision; a negative value selects
	// the shortest representation that round-trips.
	FloatPrecision int

	// StrictBooleans limits boolean inference on untyped YAML scalars to
	// the literal tokens "true" and "false".
	StrictBooleans bool

	// DisableAutoBoolean keeps untyped YAML scalars that look boolean as strings.
	DisableAutoBoolean bool

	// DisableAutoNumber keeps untyped YAML scalars that look numeric as strings.
	DisableAutoNumber bool

	// StripComments removes // line comments from JSON input (JSONC).
	StripComments bool
}

// Precision returns the effective float precision.
func (o Options) Precision() int {
	if o.FloatPrecision == 0 {
		return DefaultFloatPrecision
	}
	return o.FloatPrecision
}

// FormatFloat renders a finite float so that it always reads back as a float.
//
// Integral values are written with exactly one fractional digit ("1.0").
// Other values use precision significant digits with trailing zeros trimmed;
// ".0" is appended if the result would otherwise look like an integer.
// Non-finite values are rendered as Go does ("NaN", "+Inf", "-Inf") and are
// expected to be handled by the caller first.
func FormatFloat(v float64, precision int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	if precision == 0 {
		precision = DefaultFloatPrecision
	}
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	s := strconv.FormatFloat(v, 'g', precision, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// RoundFloat rounds v to precision significant digits.
func RoundFloat(v float64, precision int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || precision < 0 {
		return v
	}
	if precision == 0 {
		precision = DefaultFloatPrecision
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'g', precision, 64), 64)
	if err != nil {
		return v
	}
	return r
}
