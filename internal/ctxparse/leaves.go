package ctxparse

import (
	"strconv"

	yaml "gopkg.in/yaml.v3"
)

// Leaf is a scalar (or alias) inside a record tree.
type Leaf struct {
	Path string
	// Key is the mapping key of the leaf, or of the enclosing sequence.
	Key string
	// Parent is the mapping or sequence node holding the leaf.
	Parent *yaml.Node
	Node   *yaml.Node
}

// Leaves flattens root depth first, in document order. Paths use
// `a.b[0].c` syntax.
func Leaves(root *yaml.Node) []Leaf {
	var out []Leaf
	var walk func(n, parent *yaml.Node, path, key string)
	walk = func(n, parent *yaml.Node, path, key string) {
		switch n.Kind {
		case yaml.DocumentNode:
			for _, c := range n.Content {
				walk(c, parent, path, key)
			}
		case yaml.MappingNode:
			for i := 0; i+1 < len(n.Content); i += 2 {
				k := n.Content[i].Value
				p := k
				if path != "" {
					p = path + "." + k
				}
				walk(n.Content[i+1], n, p, k)
			}
		case yaml.SequenceNode:
			for i, c := range n.Content {
				walk(c, n, path+"["+strconv.Itoa(i)+"]", key)
			}
		default:
			out = append(out, Leaf{Path: path, Key: key, Parent: parent, Node: n})
		}
	}
	walk(root, nil, "", "")
	return out
}

var textTags = map[string]bool{
	"!!str":       true,
	"!!int":       true,
	"!!float":     true,
	"!!timestamp": true,
}

// IsText reports whether a leaf holds a value that can be classified:
// strings, numbers and dates. Booleans, nulls and aliases can not.
func IsText(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && textTags[n.ShortTag()]
}

// Clone deep-copies a node tree. Alias targets are cloned once and shared
// the same way as in the source.
func Clone(n *yaml.Node) *yaml.Node {
	seen := map[*yaml.Node]*yaml.Node{}
	var cp func(*yaml.Node) *yaml.Node
	cp = func(src *yaml.Node) *yaml.Node {
		if src == nil {
			return nil
		}
		if dst, ok := seen[src]; ok {
			return dst
		}
		dst := *src
		seen[src] = &dst
		if len(src.Content) > 0 {
			dst.Content = make([]*yaml.Node, len(src.Content))
			for i, c := range src.Content {
				dst.Content[i] = cp(c)
			}
		}
		dst.Alias = cp(src.Alias)
		return &dst
	}
	return cp(n)
}

// SetString replaces the value of a scalar with a quoted string.
func SetString(n *yaml.Node, s string) {
	n.Kind = yaml.ScalarNode
	n.Tag = "!!str"
	n.Style = yaml.DoubleQuotedStyle
	n.Value = s
}
