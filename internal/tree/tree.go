// Package tree maintains the navigation hierarchy: one node per page path,
// each owning the ordered widget declarations rendered on that page.
package tree

import (
	"github.com/covao/chibiui/internal/path"
	"github.com/covao/chibiui/internal/widget"
)

// Node is one navigable page. Nodes exist for every ancestor of every
// declared path and are never deleted while the session lives.
type Node struct {
	Path    string
	Widgets []widget.Decl

	parent   *Node
	children []*Node
	byName   map[string]*Node
}

// Name returns the leaf segment of the node path; the root has none.
func (n *Node) Name() string { return path.Base(n.Path) }

// Children returns the child nodes in creation order.
func (n *Node) Children() []*Node {
	if len(n.children) == 0 {
		return nil
	}
	dup := make([]*Node, len(n.children))
	copy(dup, n.children)
	return dup
}

// Parent returns the owning node, nil for the root.
func (n *Node) Parent() *Node { return n.parent }

// Tree indexes nodes by normalized path and auto-creates missing ancestors.
// It is not synchronized; the session serializes access.
type Tree struct {
	root     *Node
	nodes    map[string]*Node
	onCreate func(*Node)
}

func New() *Tree {
	root := &Node{Path: path.Root, byName: make(map[string]*Node)}
	return &Tree{
		root:  root,
		nodes: map[string]*Node{path.Root: root},
	}
}

// SetOnCreate registers an observer invoked once for every newly created
// node, in root-down order. The renderer uses it to grow its tree pane.
func (t *Tree) SetOnCreate(fn func(*Node)) { t.onCreate = fn }

// Root returns the root node.
func (t *Tree) Root() *Node { return t.root }

// Node looks up a node by path.
func (t *Tree) Node(p string) (*Node, bool) {
	node, ok := t.nodes[path.Normalize(p)]
	return node, ok
}

// Ensure walks p from the root, creating every missing prefix node, and
// returns the node at p. Existing prefixes are left untouched, so repeated
// calls never duplicate tree entries.
func (t *Tree) Ensure(p string) *Node {
	current := t.root
	for _, segment := range path.Segments(path.Normalize(p)) {
		next, ok := current.byName[segment]
		if !ok {
			next = &Node{
				Path:   path.FullKey(current.Path, segment),
				parent: current,
				byName: make(map[string]*Node),
			}
			current.byName[segment] = next
			current.children = append(current.children, next)
			t.nodes[next.Path] = next
			if t.onCreate != nil {
				t.onCreate(next)
			}
		}
		current = next
	}
	return current
}

// Declare appends decl to the node at p, creating the node and its ancestors
// as needed. A declaration matching an existing (kind, label) pair on the
// node is ignored; the second return reports whether decl was appended.
func (t *Tree) Declare(p string, decl widget.Decl) (*Node, bool) {
	node := t.Ensure(p)
	for _, existing := range node.Widgets {
		if existing.Matches(decl) {
			return node, false
		}
	}
	node.Widgets = append(node.Widgets, decl)
	return node, true
}

// Walk visits every node depth-first in creation order, root first.
func (t *Tree) Walk(fn func(*Node)) {
	var visit func(*Node)
	visit = func(n *Node) {
		fn(n)
		for _, child := range n.children {
			visit(child)
		}
	}
	visit(t.root)
}

// Len reports the number of nodes, the root included.
func (t *Tree) Len() int { return len(t.nodes) }
