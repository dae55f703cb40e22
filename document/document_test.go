package document

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDocument_ZeroValue(t *testing.T) {
	var d Document
	assert.True(t, d.IsEmpty())
	assert.Equal(t, KindNone, d.Kind())
	assert.Nil(t, d.Value())
}

func TestDocument_Accessors(t *testing.T) {
	j := NewJSON([]any{"a"})
	assert.Equal(t, KindJSON, j.Kind())
	assert.Equal(t, []any{"a"}, j.JSON())

	v, ok := j.AsJSON()
	assert.True(t, ok)
	assert.Equal(t, []any{"a"}, v)

	_, ok = j.AsYAML()
	assert.False(t, ok)
	_, ok = j.AsTOML()
	assert.False(t, ok)

	assert.Panics(t, func() { j.YAML() })
	assert.Panics(t, func() { j.TOML() })
}

func TestDocument_NewYAMLNil(t *testing.T) {
	d := NewYAML(nil)
	require.Equal(t, KindYAML, d.Kind())
	n := d.YAML()
	assert.Equal(t, yaml.ScalarNode, n.Kind)
	assert.Equal(t, "!!null", n.Tag)
}

func TestDocument_JSONNullIsNotEmpty(t *testing.T) {
	d := NewJSON(nil)
	assert.False(t, d.IsEmpty())
	assert.Nil(t, d.JSON())
}

func TestGuessFormat(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"config.json", JSON},
		{"CONFIG.JSON", JSON},
		{"a/b/c.yaml", YAML},
		{"c.yml", YAML},
		{"c.toml", TOML},
		{"c.ini", INI},
		{"c.xml", XML},
		{"c.txt", Auto},
		{"Makefile", Auto},
		{"", Auto},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, GuessFormat(tt.path))
		})
	}
}

func TestParseFormat(t *testing.T) {
	for _, f := range Formats() {
		got, err := ParseFormat(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}

	got, err := ParseFormat(" YML ")
	require.NoError(t, err)
	assert.Equal(t, YAML, got)

	got, err = ParseFormat("ojson")
	require.NoError(t, err)
	assert.Equal(t, OrderedJSON, got)

	_, err = ParseFormat("hcl")
	assert.Error(t, err)
}

func TestFormat_KindAndFamily(t *testing.T) {
	assert.Equal(t, KindJSON, OrderedJSON.Kind())
	assert.Equal(t, KindTOML, OrderedTOML.Kind())
	assert.Equal(t, KindNone, INI.Kind())
	assert.Equal(t, KindNone, Auto.Kind())

	assert.Equal(t, JSON, OrderedJSON.Family())
	assert.Equal(t, TOML, OrderedTOML.Family())
	assert.Equal(t, YAML, YAML.Family())

	assert.True(t, OrderedJSON.Ordered())
	assert.False(t, JSON.Ordered())
	assert.Equal(t, "format(99)", Format(99).String())
}

func TestFormatFloat(t *testing.T) {
	a, b := 0.1, 0.2
	sum := a + b

	tests := []struct {
		v         float64
		precision int
		want      string
	}{
		{1.0, 6, "1.0"},
		{0, 6, "0.0"},
		{-3, 6, "-3.0"},
		{3.14, 6, "3.14"},
		{3.14159265, 6, "3.14159"},
		{3.14159265, 3, "3.14"},
		{3.14159265, 0, "3.14159"},
		{sum, 6, "0.3"},
		{sum, -1, "0.30000000000000004"},
		{2.5e-7, 6, "2.5e-07"},
		{1e16, 6, "10000000000000000.0"},
		{-1e20, 6, "-100000000000000000000.0"},
		{1.5e20, -1, "150000000000000000000.0"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v/%d", tt.v, tt.precision), func(t *testing.T) {
			assert.Equal(t, tt.want, FormatFloat(tt.v, tt.precision))
		})
	}
}

func TestRoundFloat(t *testing.T) {
	assert.Equal(t, 3.14159, RoundFloat(3.14159265, 6))
	assert.Equal(t, 3.14159265, RoundFloat(3.14159265, -1))
	assert.True(t, math.IsInf(RoundFloat(math.Inf(1), 6), 1))
}

func TestOptions_Precision(t *testing.T) {
	assert.Equal(t, DefaultFloatPrecision, Options{}.Precision())
	assert.Equal(t, 3, Options{FloatPrecision: 3}.Precision())
	assert.Equal(t, -1, Options{FloatPrecision: -1}.Precision())
}

func TestError(t *testing.T) {
	cause := errors.New("boom")
	err := fmt.Errorf("failed to load: %w", ParseFailure(JSON, cause))

	assert.ErrorIs(t, err, ErrParse)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrIO)

	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, JSON, e.Format)
	assert.Equal(t, "parse json: parse error: boom", e.Error())

	assert.Equal(t,
		"convert: unsupported conversion: no bridge from json to ini",
		Unsupported(JSON, INI).Error())
	assert.Equal(t,
		"lookup: unregistered format: no adapter for xml",
		Unregistered(XML).Error())
	assert.Equal(t,
		"convert toml: type mismatch: toml root is not a table",
		TypeMismatch("convert", TOML, "toml root is not a table").Error())
	assert.Equal(t,
		"read: i/o error at /x: boom",
		IOFailure("read", "/x", cause).Error())
}
