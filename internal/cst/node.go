package cst

import (
	sitter "github.com/smacker/go-tree-sitter"

	"fixit/internal/source"
)

// Node is a lightweight handle; the zero Node is null.
type Node struct {
	n    *sitter.Node
	tree *Tree
	Kind Kind
}

func (n Node) IsNull() bool { return n.n == nil }

// Type is the raw grammar type, e.g. "comparison_operator" or "==".
func (n Node) Type() string { return n.n.Type() }

func (n Node) IsNamed() bool { return n.n.IsNamed() }

func (n Node) Span() source.Span {
	return source.Span{File: n.tree.File.ID, Start: n.n.StartByte(), End: n.n.EndByte()}
}

// Start uses the file's own line table, so a lone '\r' counts as a line break.
func (n Node) Start() source.LineCol { return n.tree.File.Position(n.n.StartByte()) }

func (n Node) End() source.LineCol { return n.tree.File.Position(n.n.EndByte()) }

func (n Node) Text() string {
	return string(n.tree.File.Content[n.n.StartByte():n.n.EndByte()])
}

func (n Node) ChildCount() int { return int(n.n.ChildCount()) }

func (n Node) Child(i int) Node { return n.tree.wrap(n.n.Child(i)) }

func (n Node) NamedChildCount() int { return int(n.n.NamedChildCount()) }

func (n Node) NamedChild(i int) Node { return n.tree.wrap(n.n.NamedChild(i)) }

// Field returns the child stored under a grammar field name.
func (n Node) Field(name string) (Node, bool) {
	c := n.tree.wrap(n.n.ChildByFieldName(name))
	return c, !c.IsNull()
}

func (n Node) Parent() Node { return n.tree.wrap(n.n.Parent()) }

// Children returns all children, named and anonymous.
func (n Node) Children() []Node {
	out := make([]Node, n.ChildCount())
	for i := range out {
		out[i] = n.Child(i)
	}
	return out
}
