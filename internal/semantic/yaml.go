package semantic

import (
	"math"
	"strconv"
	"time"

	"github.com/iancoleman/orderedmap"
	"github.com/thirteen37/configbridge/document"
	"github.com/thirteen37/configbridge/internal/path"
	"gopkg.in/yaml.v3"
)

// yamlReader turns a YAML node into a typed tree.
type yamlReader struct {
	opts document.Options
	to   document.Format

	// resolving holds the aliases and mappings currently being expanded, to
	// reject cycles.
	resolving map[*yaml.Node]bool
}

func newYAMLReader(opts document.Options, to document.Format) *yamlReader {
	return &yamlReader{opts: opts, to: to, resolving: make(map[*yaml.Node]bool)}
}

func (r *yamlReader) value(n *yaml.Node, p path.Path) (any, error) {
	if n == nil {
		return nil, nil
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return r.value(n.Content[0], p)
	case yaml.AliasNode:
		if r.resolving[n] {
			return nil, mismatch(r.to, p, "recursive alias %q", n.Value)
		}
		r.resolving[n] = true
		defer delete(r.resolving, n)
		return r.value(n.Alias, p)
	case yaml.ScalarNode:
		return scalarValue(n, r.opts), nil
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for i, item := range n.Content {
			v, err := r.value(item, p.Index(i))
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.MappingNode:
		return r.mapping(n, p)
	default:
		return nil, mismatch(r.to, p, "unknown yaml node kind %d", n.Kind)
	}
}

// mapping converts a mapping node. Entries pulled in through merge keys
// take the position of the merge key and never override explicit keys.
func (r *yamlReader) mapping(n *yaml.Node, p path.Path) (any, error) {
	if len(n.Content)%2 != 0 {
		return nil, mismatch(r.to, p, "mapping has an odd number of nodes")
	}
	if r.resolving[n] {
		return nil, mismatch(r.to, p, "recursive alias %q", n.Anchor)
	}
	r.resolving[n] = true
	defer delete(r.resolving, n)

	explicit := make(map[string]bool, len(n.Content)/2)
	for i := 0; i < len(n.Content); i += 2 {
		k := resolveAlias(n.Content[i])
		if k.Kind == yaml.ScalarNode && !isMergeKey(k) {
			explicit[k.Value] = true
		}
	}

	out := newObject()
	for i := 0; i < len(n.Content); i += 2 {
		keyNode, valNode := resolveAlias(n.Content[i]), n.Content[i+1]
		if keyNode.Kind != yaml.ScalarNode {
			return nil, mismatch(r.to, p, "mapping key at line %d must be a scalar", keyNode.Line)
		}

		if isMergeKey(keyNode) {
			if err := r.merge(out, valNode, explicit, p); err != nil {
				return nil, err
			}
			continue
		}

		key := keyNode.Value
		v, err := r.value(valNode, p.Key(key))
		if err != nil {
			return nil, err
		}
		out.Set(key, v)
	}
	return out, nil
}

// merge applies the value of a "<<" key: a mapping or a sequence of
// mappings, earlier ones taking precedence.
func (r *yamlReader) merge(out *orderedmap.OrderedMap, src *yaml.Node, explicit map[string]bool, p path.Path) error {
	src = resolveAlias(src)

	var sources []*yaml.Node
	switch src.Kind {
	case yaml.MappingNode:
		sources = []*yaml.Node{src}
	case yaml.SequenceNode:
		for _, item := range src.Content {
			item = resolveAlias(item)
			if item.Kind != yaml.MappingNode {
				return mismatch(r.to, p, "merge sequence entries must be mappings")
			}
			sources = append(sources, item)
		}
	default:
		return mismatch(r.to, p, "merge value must be a mapping or a sequence of mappings")
	}

	for _, s := range sources {
		v, err := r.value(s, p)
		if err != nil {
			return err
		}
		keys, get, _ := entries(v)
		for _, k := range keys {
			if explicit[k] {
				continue
			}
			if _, exists := out.Get(k); exists {
				continue
			}
			out.Set(k, get(k))
		}
	}
	return nil
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func isMergeKey(n *yaml.Node) bool {
	if n.Value != "<<" {
		return false
	}
	return n.Tag == "!!merge" || (n.Style == 0 && n.Tag == "")
}

// typedToYAML renders a typed tree as YAML nodes.
//
// Floats always carry a fractional part or exponent so they stay floats,
// and strings that would read back as another type are double-quoted.
func typedToYAML(v any, precision int, p path.Path) (*yaml.Node, error) {
	if keys, get, ok := entries(v); ok {
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, k := range keys {
			child, err := typedToYAML(get(k), precision, p.Key(k))
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}, child)
		}
		return n, nil
	}

	switch val := v.(type) {
	case nil:
		return scalarNode("!!null", "null"), nil
	case []any:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for i, item := range val {
			child, err := typedToYAML(item, precision, p.Index(i))
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, child)
		}
		return n, nil
	case bool:
		return scalarNode("!!bool", strconv.FormatBool(val)), nil
	case string:
		return stringNode(val), nil
	case time.Time:
		return stringNode(formatTime(val)), nil
	}

	num, ok := number(v)
	if !ok {
		return nil, mismatch(document.YAML, p, "unsupported value of type %T", v)
	}
	switch n := num.(type) {
	case int64:
		return scalarNode("!!int", strconv.FormatInt(n, 10)), nil
	case uint64:
		return scalarNode("!!int", strconv.FormatUint(n, 10)), nil
	default:
		return floatNode(n.(float64), precision), nil
	}
}

func scalarNode(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func stringNode(s string) *yaml.Node {
	n := scalarNode("!!str", s)
	if ambiguous(s) {
		n.Style = yaml.DoubleQuotedStyle
	}
	return n
}

func floatNode(f float64, precision int) *yaml.Node {
	switch {
	case math.IsNaN(f):
		return scalarNode("!!float", ".nan")
	case math.IsInf(f, 1):
		return scalarNode("!!float", ".inf")
	case math.IsInf(f, -1):
		return scalarNode("!!float", "-.inf")
	default:
		return scalarNode("!!float", document.FormatFloat(f, precision))
	}
}
