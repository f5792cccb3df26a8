package parsing

import (
	"fmt"
	"strings"
)

// Node is an immutable parse-tree record produced by a successful
// Matcher.match: the exact text consumed, the ordered child nodes
// produced by sub-matchers, and an optional rule name carried from
// whichever named matcher produced it. Nodes are value-like: two
// nodes are equal iff their structure and names are equal.
type Node struct {
	text     string
	children []Node
	name     string
}

// NewNode builds a Node with the given name (may be empty for
// unnamed matchers), consumed text, and children.
func NewNode(name, text string, children []Node) Node {
	return Node{name: name, text: text, children: children}
}

func (n Node) Text() string     { return n.text }
func (n Node) Children() []Node { return n.children }
func (n Node) Name() string     { return n.name }

// Equal reports whether n and other have the same name, text, and
// recursively equal children.
func (n Node) Equal(other Node) bool {
	if n.name != other.name || n.text != other.text {
		return false
	}
	if len(n.children) != len(other.children) {
		return false
	}
	for i := range n.children {
		if !n.children[i].Equal(other.children[i]) {
			return false
		}
	}
	return true
}

// String renders n as a single-line debug form, e.g. `name<"text">[child, child]`.
func (n Node) String() string {
	var s strings.Builder
	if n.name != "" {
		s.WriteString(n.name)
	}
	fmt.Fprintf(&s, "<%q>", n.text)
	if len(n.children) > 0 {
		s.WriteString("[")
		for i, c := range n.children {
			if i > 0 {
				s.WriteString(", ")
			}
			s.WriteString(c.String())
		}
		s.WriteString("]")
	}
	return s.String()
}

// DumpNode renders n as an indented multi-line tree, used by the CLI
// to print a parse result.
func DumpNode(n Node) string {
	var s strings.Builder
	dumpNode(&s, n, 0)
	return s.String()
}

func dumpNode(s *strings.Builder, n Node, depth int) {
	s.WriteString(strings.Repeat("  ", depth))
	if n.name != "" {
		s.WriteString(n.name)
		s.WriteString(" ")
	}
	fmt.Fprintf(s, "%q\n", n.text)
	for _, c := range n.children {
		dumpNode(s, c, depth+1)
	}
}
