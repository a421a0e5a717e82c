package cst

import sitter "github.com/smacker/go-tree-sitter"

// Visitor receives nodes of the kinds it subscribes to. Kinds returning nil
// subscribes to every node.
type Visitor interface {
	Kinds() []Kind
	Visit(n Node) error
	Leave(n Node) error
}

// BaseVisitor supplies no-op Visit and Leave.
type BaseVisitor struct{}

func (BaseVisitor) Visit(Node) error { return nil }
func (BaseVisitor) Leave(Node) error { return nil }

// Walk traverses the tree exactly once, depth first. For each node it calls
// Visit on every subscribed visitor in order, then Leave after the node's
// children. The first error stops the walk.
func Walk(t *Tree, visitors ...Visitor) error {
	var (
		table [kindCount][]Visitor
		all   []Visitor
	)
	for _, v := range visitors {
		kinds := v.Kinds()
		if kinds == nil {
			all = append(all, v)
			continue
		}
		for _, k := range kinds {
			if k < kindCount {
				table[k] = append(table[k], v)
			}
		}
	}
	dispatch := func(n Node, leave bool) error {
		for _, group := range [2][]Visitor{all, table[n.Kind]} {
			for _, v := range group {
				var err error
				if leave {
					err = v.Leave(n)
				} else {
					err = v.Visit(n)
				}
				if err != nil {
					return err
				}
			}
		}
		return nil
	}

	root := t.t.RootNode()
	cursor := sitter.NewTreeCursor(root)
	defer cursor.Close()
	for {
		n := t.wrap(cursor.CurrentNode())
		if err := dispatch(n, false); err != nil {
			return err
		}
		if cursor.GoToFirstChild() {
			continue
		}
		// лист: закрываем его и поднимаемся, пока нет следующего соседа
		for {
			if err := dispatch(t.wrap(cursor.CurrentNode()), true); err != nil {
				return err
			}
			if cursor.GoToNextSibling() {
				break
			}
			if !cursor.GoToParent() {
				return nil
			}
		}
	}
}
