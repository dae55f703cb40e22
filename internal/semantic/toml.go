package semantic

import (
	"math"
	"time"

	"github.com/thirteen37/configbridge/document"
	"github.com/thirteen37/configbridge/internal/path"
)

const (
	localDatetimeLayout = "2006-01-02T15:04:05.999999999"
	localDateLayout     = "2006-01-02"
	localTimeLayout     = "15:04:05.999999999"
)

// Zone names the TOML decoder gives to local dates and times.
const (
	localDatetimeZone = "datetime-local"
	localDateZone     = "date-local"
	localTimeZone     = "time-local"
)

// formatTime renders a TOML date or time in its canonical text form.
// Local values are recognized by the zone names the TOML decoder assigns.
func formatTime(t time.Time) string {
	switch t.Location().String() {
	case localDatetimeZone:
		return t.Format(localDatetimeLayout)
	case localDateZone:
		return t.Format(localDateLayout)
	case localTimeZone:
		return t.Format(localTimeLayout)
	default:
		return t.Format(time.RFC3339Nano)
	}
}

// tomlToTyped converts a TOML tree into a JSON-family tree.
func tomlToTyped(v any, to document.Format) (any, error) {
	if !isObject(v) {
		return nil, mismatch(to, path.Root(), "toml root is not a table")
	}
	return tomlValue(v, to, path.Root())
}

func tomlValue(v any, to document.Format, p path.Path) (any, error) {
	if keys, get, ok := entries(v); ok {
		out := newObject()
		for _, k := range keys {
			child, err := tomlValue(get(k), to, p.Key(k))
			if err != nil {
				return nil, err
			}
			out.Set(k, child)
		}
		return out, nil
	}

	switch val := v.(type) {
	case []any:
		return tomlArray(len(val), func(i int) any { return val[i] }, to, p)
	case []map[string]any:
		return tomlArray(len(val), func(i int) any { return val[i] }, to, p)
	case time.Time:
		return formatTime(val), nil
	case string, bool:
		return val, nil
	}

	if n, ok := number(v); ok {
		return n, nil
	}
	return nil, mismatch(to, p, "unsupported toml value of type %T", v)
}

func tomlArray(n int, at func(int) any, to document.Format, p path.Path) (any, error) {
	out := make([]any, n)
	for i := range out {
		v, err := tomlValue(at(i), to, p.Index(i))
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// typedToTOML narrows a JSON-family tree to TOML values: null becomes the
// empty string and unsigned integers past the int64 range become floats.
func typedToTOML(v any, p path.Path) (any, error) {
	if keys, get, ok := entries(v); ok {
		out := newObject()
		for _, k := range keys {
			child, err := typedToTOML(get(k), p.Key(k))
			if err != nil {
				return nil, err
			}
			out.Set(k, child)
		}
		return out, nil
	}

	switch val := v.(type) {
	case nil:
		return "", nil
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			child, err := typedToTOML(item, p.Index(i))
			if err != nil {
				return nil, err
			}
			out[i] = child
		}
		return out, nil
	case string, bool, time.Time:
		return val, nil
	}

	n, ok := number(v)
	if !ok {
		return nil, mismatch(document.TOML, p, "unsupported value of type %T", v)
	}
	if u, ok := n.(uint64); ok {
		if u > math.MaxInt64 {
			return float64(u), nil
		}
		return int64(u), nil
	}
	return n, nil
}
