package semantic

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/iancoleman/orderedmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thirteen37/configbridge/document"
	"gopkg.in/yaml.v3"
)

func parseYAML(t *testing.T, src string) *yaml.Node {
	t.Helper()
	var n yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(src), &n))
	return &n
}

// decodeTOML decodes TOML text so that dates and times carry the decoder's
// local zones.
func decodeTOML(t *testing.T, src string) map[string]any {
	t.Helper()
	var raw map[string]any
	_, err := toml.Decode(src, &raw)
	require.NoError(t, err)
	return raw
}

func get(t *testing.T, v any, key string) any {
	t.Helper()
	om, ok := v.(*orderedmap.OrderedMap)
	require.True(t, ok, "got %T", v)
	val, ok := om.Get(key)
	require.True(t, ok, "missing key %q", key)
	return val
}

func TestPlainValue(t *testing.T) {
	strict := document.Options{StrictBooleans: true}

	tests := []struct {
		name  string
		input string
		opts  document.Options
		want  any
	}{
		{"tilde", "~", document.Options{}, nil},
		{"null word", "Null", document.Options{}, nil},
		{"empty", "", document.Options{}, nil},
		{"true", "true", document.Options{}, true},
		{"yes lenient", "yes", document.Options{}, true},
		{"Off lenient", "Off", document.Options{}, false},
		{"yes strict", "yes", strict, "yes"},
		{"True strict", "True", strict, "True"},
		{"false strict", "false", strict, false},
		{"bool disabled", "true", document.Options{DisableAutoBoolean: true}, "true"},
		{"decimal", "12", document.Options{}, int64(12)},
		{"negative", "-7", document.Options{}, int64(-7)},
		{"plus sign", "+7", document.Options{}, int64(7)},
		{"leading zeros", "007", document.Options{}, int64(7)},
		{"hex", "0x1F", document.Options{}, int64(31)},
		{"octal", "0o17", document.Options{}, int64(15)},
		{"binary", "0b101", document.Options{}, int64(5)},
		{"uint64", "18446744073709551615", document.Options{}, uint64(math.MaxUint64)},
		{"past uint64", "99999999999999999999", document.Options{}, 1e20},
		{"float", "3.14", document.Options{}, 3.14},
		{"exponent", "1e3", document.Options{}, 1000.0},
		{"leading dot", ".5", document.Options{}, 0.5},
		{"number disabled", "12", document.Options{DisableAutoNumber: true}, "12"},
		{"underscores", "1_000", document.Options{}, "1_000"},
		{"double sign", "+-1", document.Options{}, "+-1"},
		{"version", "1.2.3", document.Options{}, "1.2.3"},
		{"word", "hello", document.Options{}, "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, plainValue(tt.input, tt.opts))
		})
	}
}

func TestPlainValue_SpecialFloats(t *testing.T) {
	assert.True(t, math.IsInf(plainValue(".inf", document.Options{}).(float64), 1))
	assert.True(t, math.IsInf(plainValue("-.Inf", document.Options{}).(float64), -1))
	assert.True(t, math.IsNaN(plainValue(".NaN", document.Options{}).(float64)))
	assert.Equal(t, ".iNf", plainValue(".iNf", document.Options{}))
}

func TestYAMLToJSON_Scalars(t *testing.T) {
	src := `tagged_str: !!str 123
quoted: '12'
double: "true"
tagged_int: !!int 42
tagged_float: !!float 1
tagged_bool: !!bool yes
bad_int: !!int abc
tagged_null: !!null ""
block: |
  12
custom: !thing 5
`
	v, err := YAMLToJSON(parseYAML(t, src), document.Options{StrictBooleans: true})
	require.NoError(t, err)

	assert.Equal(t, "123", get(t, v, "tagged_str"))
	assert.Equal(t, "12", get(t, v, "quoted"))
	assert.Equal(t, "true", get(t, v, "double"))
	assert.Equal(t, int64(42), get(t, v, "tagged_int"))
	assert.Equal(t, 1.0, get(t, v, "tagged_float"))
	assert.Equal(t, true, get(t, v, "tagged_bool"))
	assert.Equal(t, "abc", get(t, v, "bad_int"))
	assert.Nil(t, get(t, v, "tagged_null"))
	assert.Equal(t, "12\n", get(t, v, "block"))
	assert.Equal(t, "5", get(t, v, "custom"))
}

func TestYAMLToJSON_Document(t *testing.T) {
	v, err := YAMLToJSON(parseYAML(t, "name: test\nvalue: 3.14\nactive: true\ntags: [a, b]\n"), document.Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "value", "active", "tags"}, v.(*orderedmap.OrderedMap).Keys())
	assert.Equal(t, "test", get(t, v, "name"))
	assert.Equal(t, 3.14, get(t, v, "value"))
	assert.Equal(t, true, get(t, v, "active"))
	assert.Equal(t, []any{"a", "b"}, get(t, v, "tags"))
}

func TestYAMLToJSON_MergeKeys(t *testing.T) {
	src := `base: &base
  a: 1
  b: 2
extra: &extra
  c: 5
  d: 6
child:
  <<: *base
  b: 3
both:
  <<: [*extra, {c: 7, e: 8}]
quoted:
  "<<": literal
`
	v, err := YAMLToJSON(parseYAML(t, src), document.Options{})
	require.NoError(t, err)

	child := get(t, v, "child")
	assert.Equal(t, []string{"a", "b"}, child.(*orderedmap.OrderedMap).Keys())
	assert.Equal(t, int64(1), get(t, child, "a"))
	assert.Equal(t, int64(3), get(t, child, "b"))

	both := get(t, v, "both")
	assert.Equal(t, []string{"c", "d", "e"}, both.(*orderedmap.OrderedMap).Keys())
	assert.Equal(t, int64(5), get(t, both, "c"))
	assert.Equal(t, int64(8), get(t, both, "e"))

	assert.Equal(t, "literal", get(t, get(t, v, "quoted"), "<<"))
}

func TestYAMLToJSON_Aliases(t *testing.T) {
	v, err := YAMLToJSON(parseYAML(t, "a: &x [1, 2]\nb: *x\n"), document.Options{})
	require.NoError(t, err)
	assert.Equal(t, []any{int64(1), int64(2)}, get(t, v, "b"))

	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	seq.Content = []*yaml.Node{{Kind: yaml.AliasNode, Value: "x", Alias: seq}}
	_, err = YAMLToJSON(seq, document.Options{})
	assert.ErrorIs(t, err, document.ErrTypeMismatch)
}

func TestYAMLToJSON_Errors(t *testing.T) {
	_, err := YAMLToJSON(parseYAML(t, "outer:\n  ? [a, b]\n  : 1\n"), document.Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, document.ErrTypeMismatch)
	assert.Contains(t, err.Error(), `["outer"]`)

	_, err = YAMLToJSON(parseYAML(t, "<<: 5\n"), document.Options{})
	assert.ErrorIs(t, err, document.ErrTypeMismatch)

	for _, src := range []string{
		"a: &a\n  x: 1\n  <<: *a\n",
		"a: &a\n  x: 1\n  <<: [*a]\n",
		"a: &a\n  x: 1\n  b: *a\n",
	} {
		_, err = YAMLToJSON(parseYAML(t, src), document.Options{})
		require.Error(t, err, src)
		assert.ErrorIs(t, err, document.ErrTypeMismatch)
		assert.Contains(t, err.Error(), `recursive alias "a"`)
	}
}

func TestYAMLToJSON_SharedMergeSource(t *testing.T) {
	src := "base: &base\n  x: 1\none:\n  <<: *base\ntwo:\n  <<: [*base]\n  y: 2\n"
	v, err := YAMLToJSON(parseYAML(t, src), document.Options{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), get(t, get(t, v, "one"), "x"))
	assert.Equal(t, int64(1), get(t, get(t, v, "two"), "x"))
	assert.Equal(t, int64(2), get(t, get(t, v, "two"), "y"))
}

func TestJSONToYAML(t *testing.T) {
	tree := orderedmap.New()
	tree.Set("f", 1.0)
	tree.Set("i", int64(1))
	tree.Set("s", "yes")
	tree.Set("plain", "hello")
	tree.Set("n", nil)
	tree.Set("u", uint64(math.MaxUint64))
	tree.Set("nan", math.NaN())
	tree.Set("num", json.Number("2.50"))
	tree.Set("list", []any{true, "12"})

	n, err := JSONToYAML(tree, document.Options{})
	require.NoError(t, err)
	require.Equal(t, yaml.MappingNode, n.Kind)

	values := map[string]*yaml.Node{}
	for i := 0; i < len(n.Content); i += 2 {
		values[n.Content[i].Value] = n.Content[i+1]
	}

	tests := []struct {
		key   string
		tag   string
		value string
		style yaml.Style
	}{
		{"f", "!!float", "1.0", 0},
		{"i", "!!int", "1", 0},
		{"s", "!!str", "yes", yaml.DoubleQuotedStyle},
		{"plain", "!!str", "hello", 0},
		{"n", "!!null", "null", 0},
		{"u", "!!int", "18446744073709551615", 0},
		{"nan", "!!float", ".nan", 0},
		{"num", "!!float", "2.5", 0},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			node := values[tt.key]
			require.NotNil(t, node)
			assert.Equal(t, tt.tag, node.Tag)
			assert.Equal(t, tt.value, node.Value)
			assert.Equal(t, tt.style, node.Style)
		})
	}

	list := values["list"]
	require.Len(t, list.Content, 2)
	assert.Equal(t, "!!bool", list.Content[0].Tag)
	assert.Equal(t, yaml.DoubleQuotedStyle, list.Content[1].Style)
}

func TestJSONToYAML_RoundTrip(t *testing.T) {
	tree := orderedmap.New()
	tree.Set("one", 1.0)
	tree.Set("flag", "on")
	tree.Set("nothing", nil)

	n, err := JSONToYAML(tree, document.Options{})
	require.NoError(t, err)
	back, err := YAMLToJSON(n, document.Options{})
	require.NoError(t, err)

	assert.Equal(t, 1.0, get(t, back, "one"))
	assert.Equal(t, "on", get(t, back, "flag"))
	assert.Nil(t, get(t, back, "nothing"))
}

func TestJSONToYAML_Unsupported(t *testing.T) {
	tree := orderedmap.New()
	tree.Set("a", []any{struct{}{}})

	_, err := JSONToYAML(tree, document.Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, document.ErrTypeMismatch)
	assert.Contains(t, err.Error(), `["a",0]`)
}

func TestTOMLToJSON(t *testing.T) {
	raw := decodeTOML(t, "date = 1979-05-27\ndatetime = 1979-05-27T07:32:00.5\ntime = 07:32:00\noffset = 1979-05-27T07:32:00Z\n")
	tree := orderedmap.New()
	for _, k := range []string{"date", "datetime", "time", "offset"} {
		tree.Set(k, raw[k])
	}
	tree.Set("servers", []map[string]any{{"port": int64(80)}})

	v, err := TOMLToJSON(tree, document.Options{})
	require.NoError(t, err)

	assert.Equal(t, "1979-05-27", get(t, v, "date"))
	assert.Equal(t, "1979-05-27T07:32:00.5", get(t, v, "datetime"))
	assert.Equal(t, "07:32:00", get(t, v, "time"))
	assert.Equal(t, "1979-05-27T07:32:00Z", get(t, v, "offset"))

	servers, ok := get(t, v, "servers").([]any)
	require.True(t, ok)
	require.Len(t, servers, 1)
	assert.Equal(t, int64(80), get(t, servers[0], "port"))
}

func TestTOMLToJSON_RootNotTable(t *testing.T) {
	_, err := TOMLToJSON([]any{map[string]any{"a": int64(1)}}, document.Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, document.ErrTypeMismatch)
	assert.Contains(t, err.Error(), "toml root is not a table")

	_, err = TOMLToYAML("scalar", document.Options{})
	assert.ErrorIs(t, err, document.ErrTypeMismatch)
}

func TestJSONToTOML(t *testing.T) {
	tree := orderedmap.New()
	tree.Set("n", nil)
	tree.Set("big", uint64(math.MaxUint64))
	tree.Set("small", uint64(5))
	tree.Set("num", json.Number("7"))
	tree.Set("list", []any{nil, json.Number("1.5")})

	v, err := JSONToTOML(tree, document.Options{})
	require.NoError(t, err)

	assert.Equal(t, "", get(t, v, "n"))
	assert.Equal(t, float64(math.MaxUint64), get(t, v, "big"))
	assert.Equal(t, int64(5), get(t, v, "small"))
	assert.Equal(t, int64(7), get(t, v, "num"))
	assert.Equal(t, []any{"", 1.5}, get(t, v, "list"))
}

func TestJSONToTOML_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		contains string
	}{
		{"array root", []any{int64(1)}, "got array"},
		{"scalar root", "x", "got string"},
		{"null root", nil, "got null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := JSONToTOML(tt.input, document.Options{})
			require.Error(t, err)
			assert.ErrorIs(t, err, document.ErrTypeMismatch)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestYAMLToTOML(t *testing.T) {
	v, err := YAMLToTOML(parseYAML(t, "a: ~\nb: [1, yes]\n"), document.Options{})
	require.NoError(t, err)
	assert.Equal(t, "", get(t, v, "a"))
	assert.Equal(t, []any{int64(1), true}, get(t, v, "b"))

	_, err = YAMLToTOML(parseYAML(t, "- a\n- b\n"), document.Options{})
	assert.ErrorIs(t, err, document.ErrTypeMismatch)
}

func TestTOMLToYAML(t *testing.T) {
	tree := orderedmap.New()
	tree.Set("when", decodeTOML(t, "when = 1979-05-27\n")["when"])
	tree.Set("ratio", 2.0)

	n, err := TOMLToYAML(tree, document.Options{})
	require.NoError(t, err)
	require.Len(t, n.Content, 4)
	assert.Equal(t, "!!str", n.Content[1].Tag)
	assert.Equal(t, "1979-05-27", n.Content[1].Value)
	assert.Equal(t, "2.0", n.Content[3].Value)
}

func TestCopyTree(t *testing.T) {
	inner := orderedmap.New()
	inner.Set("x", int64(1))
	tree := orderedmap.New()
	tree.Set("inner", inner)
	tree.Set("list", []any{"a"})

	c := CopyTree(tree).(*orderedmap.OrderedMap)
	inner.Set("x", int64(2))
	tree.Set("extra", true)

	assert.Equal(t, []string{"inner", "list"}, c.Keys())
	assert.Equal(t, int64(1), get(t, get(t, c, "inner"), "x"))
	assert.Equal(t, "scalar", CopyTree("scalar"))
}

func TestCopyYAML(t *testing.T) {
	n := parseYAML(t, "a: &x [1]\nb: *x\n")

	c := CopyYAML(n)
	require.NotSame(t, n, c)

	root := c.Content[0]
	anchor, alias := root.Content[1], root.Content[3]
	assert.Same(t, anchor, alias.Alias)
	assert.NotSame(t, n.Content[0].Content[1], anchor)
}
