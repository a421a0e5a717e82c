// Package cst wraps tree-sitter's Python grammar: parsing, node positions
// in the same line/column convention as the tokenizer, and a batched
// visitor walk.
package cst

import (
	"context"
	"errors"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"fixit/internal/source"
)

// ErrSyntax is wrapped by every ParseError.
var ErrSyntax = errors.New("syntax error")

// ParseError points at the first ERROR or MISSING node.
type ParseError struct {
	Path string
	Pos  source.LineCol
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Path, e.Pos.Line, e.Pos.Col+1, e.Msg)
}

func (e *ParseError) Unwrap() error { return ErrSyntax }

// Tree is a parsed file. Close releases the tree-sitter memory.
type Tree struct {
	File *source.File
	t    *sitter.Tree
}

// Parse builds a tree for file. A tree containing errors is closed and
// reported as *ParseError.
func Parse(ctx context.Context, file *source.File) (*Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(python.GetLanguage())

	t, err := parser.ParseCtx(ctx, nil, file.Content)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse %s: %w", file.Path, err)
	}
	tree := &Tree{File: file, t: t}
	root := t.RootNode()
	if root == nil {
		t.Close()
		return nil, &ParseError{Path: file.Path, Pos: source.LineCol{Line: 1}, Msg: "empty parse tree"}
	}
	if root.HasError() {
		// узлы живут в памяти дерева: читаем всё до Close
		perr := syntaxError(file, firstError(root))
		t.Close()
		return nil, perr
	}
	return tree, nil
}

func syntaxError(file *source.File, bad *sitter.Node) *ParseError {
	perr := &ParseError{Path: file.Path, Pos: source.LineCol{Line: 1}, Msg: "invalid syntax"}
	if bad == nil {
		return perr
	}
	if bad.IsMissing() {
		perr.Msg = fmt.Sprintf("missing %q", bad.Type())
	}
	perr.Pos = file.Position(bad.StartByte())
	return perr
}

func firstError(n *sitter.Node) *sitter.Node {
	if n.Type() == "ERROR" || n.IsMissing() {
		return n
	}
	if !n.HasError() {
		return nil
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if c := n.Child(i); c != nil {
			if bad := firstError(c); bad != nil {
				return bad
			}
		}
	}
	return nil
}

func (t *Tree) Root() Node {
	return t.wrap(t.t.RootNode())
}

func (t *Tree) Close() {
	if t != nil && t.t != nil {
		t.t.Close()
		t.t = nil
	}
}

func (t *Tree) wrap(n *sitter.Node) Node {
	if n == nil {
		return Node{}
	}
	return Node{n: n, tree: t, Kind: KindOf(n.Type())}
}
