package semantic

import (
	"gopkg.in/yaml.v3"
)

// CopyTree returns a deep copy of a JSON or TOML tree. Objects come back
// as *orderedmap.OrderedMap; leaves are shared.
func CopyTree(v any) any {
	if keys, get, ok := entries(v); ok {
		out := newObject()
		for _, k := range keys {
			out.Set(k, CopyTree(get(k)))
		}
		return out
	}

	switch val := v.(type) {
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = CopyTree(item)
		}
		return out
	case []map[string]any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = CopyTree(item)
		}
		return out
	default:
		return v
	}
}

// CopyYAML returns a deep copy of a YAML node. Aliases in the copy point
// at the copied anchors.
func CopyYAML(n *yaml.Node) *yaml.Node {
	return copyNode(n, make(map[*yaml.Node]*yaml.Node))
}

func copyNode(n *yaml.Node, seen map[*yaml.Node]*yaml.Node) *yaml.Node {
	if n == nil {
		return nil
	}
	if c, ok := seen[n]; ok {
		return c
	}

	c := *n
	seen[n] = &c
	if n.Content != nil {
		c.Content = make([]*yaml.Node, len(n.Content))
		for i, child := range n.Content {
			c.Content[i] = copyNode(child, seen)
		}
	}
	c.Alias = copyNode(n.Alias, seen)
	return &c
}
