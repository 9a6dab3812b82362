// Copyright © 2026 VibeTerm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: vibe/tree.go
// Summary: Binary split tree for workspace pane layout.
// Usage: Owned by a Workspace; every structural mutation goes through Tree.

package vibe

// Ratio bounds for split nodes. Clamping rather than rejecting keeps every
// descendant pane at a strictly positive rendered size.
const (
	MinSplitRatio     = 0.05
	MaxSplitRatio     = 0.95
	DefaultSplitRatio = 0.5
)

// PaneID identifies a leaf pane. IDs are minted monotonically per workspace
// and never reused, so a stale ID can only fail with ErrNotFound, never
// alias a different pane.
type PaneID uint64

// SplitDir is the axis of a split node.
type SplitDir int

const (
	// SplitHorizontal places children side by side (left | right).
	SplitHorizontal SplitDir = iota
	// SplitVertical stacks children (top / bottom).
	SplitVertical
)

func (d SplitDir) String() string {
	if d == SplitHorizontal {
		return "horizontal"
	}
	return "vertical"
}

// Content is the opaque payload hosted by a leaf pane: a terminal session,
// a file viewer, anything the layout system does not need to understand.
type Content interface {
	Title() string
	Close()
}

// Node is either a leaf hosting content or a split dividing space between
// exactly two children. Children are owned exclusively by their parent, so
// the structure is a strict binary tree with no sharing or cycles.
type Node struct {
	parent *Node

	// leaf fields
	id      PaneID
	content Content

	// split fields
	dir    SplitDir
	ratio  float64
	first  *Node
	second *Node
}

// IsLeaf reports whether the node hosts content.
func (n *Node) IsLeaf() bool { return n.first == nil }

// ID returns the pane identifier of a leaf. Zero value for split nodes.
func (n *Node) ID() PaneID { return n.id }

// Content returns the payload of a leaf, nil for split nodes.
func (n *Node) Content() Content { return n.content }

// Dir returns the split axis. Meaningful only for split nodes.
func (n *Node) Dir() SplitDir { return n.dir }

// Ratio returns the first child's fractional share of a split node.
func (n *Node) Ratio() float64 { return n.ratio }

// First returns the left/top child, nil for leaves.
func (n *Node) First() *Node { return n.first }

// Second returns the right/bottom child, nil for leaves.
func (n *Node) Second() *Node { return n.second }

// firstLeaf descends to the leftmost/topmost leaf of the subtree.
func (n *Node) firstLeaf() *Node {
	curr := n
	for !curr.IsLeaf() {
		curr = curr.first
	}
	return curr
}

// Tree manages the binary split hierarchy of panes for one workspace.
// Exactly one leaf is focused at all times.
type Tree struct {
	root    *Node
	focused *Node
}

// NewTree creates a tree consisting of a single focused pane.
func NewTree(id PaneID, content Content) *Tree {
	leaf := &Node{id: id, content: content}
	return &Tree{root: leaf, focused: leaf}
}

// Root returns the root node.
func (t *Tree) Root() *Node { return t.root }

// Focused returns the focused leaf.
func (t *Tree) Focused() *Node { return t.focused }

// FocusedID returns the identifier of the focused pane.
func (t *Tree) FocusedID() PaneID { return t.focused.id }

// PaneCount returns the number of leaves.
func (t *Tree) PaneCount() int {
	return countLeaves(t.root)
}

func countLeaves(n *Node) int {
	if n.IsLeaf() {
		return 1
	}
	return countLeaves(n.first) + countLeaves(n.second)
}

// PaneIDs returns all pane identifiers in depth-first order, first child
// before second. This is the traversal order used by focus cycling.
func (t *Tree) PaneIDs() []PaneID {
	var ids []PaneID
	t.Walk(func(n *Node) {
		if n.IsLeaf() {
			ids = append(ids, n.id)
		}
	})
	return ids
}

// Walk visits every node depth-first, first child before second.
func (t *Tree) Walk(fn func(*Node)) {
	walk(t.root, fn)
}

func walk(n *Node, fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	walk(n.first, fn)
	walk(n.second, fn)
}

// FindLeaf returns the leaf with the given pane ID, or nil.
func (t *Tree) FindLeaf(id PaneID) *Node {
	var found *Node
	t.Walk(func(n *Node) {
		if found == nil && n.IsLeaf() && n.id == id {
			found = n
		}
	})
	return found
}

// Split replaces the target leaf with a split node whose first child keeps
// the original pane and whose second child is a new leaf with the provided
// identifier and content. The new leaf becomes focused. The tree is left
// untouched on error.
func (t *Tree) Split(target PaneID, dir SplitDir, newID PaneID, content Content) error {
	leaf := t.FindLeaf(target)
	if leaf == nil {
		return ErrNotFound
	}

	original := &Node{id: leaf.id, content: leaf.content, parent: leaf}
	added := &Node{id: newID, content: content, parent: leaf}

	// The leaf itself becomes the split node so the parent link stays valid.
	leaf.id = 0
	leaf.content = nil
	leaf.dir = dir
	leaf.ratio = DefaultSplitRatio
	leaf.first = original
	leaf.second = added

	t.focused = added
	return nil
}

// Remove detaches the target leaf, promotes its sibling subtree unchanged
// into the parent's place, and returns the removed content. The caller
// decides whether the content is discarded (Close) or kept (ExtractSubtree).
func (t *Tree) Remove(target PaneID) (Content, error) {
	leaf := t.FindLeaf(target)
	if leaf == nil {
		return nil, ErrNotFound
	}
	if leaf.parent == nil {
		return nil, ErrLastPane
	}

	parent := leaf.parent
	sibling := parent.second
	if sibling == leaf {
		sibling = parent.first
	}

	wasFocused := t.focused == leaf
	content := leaf.content

	grand := parent.parent
	sibling.parent = grand
	if grand == nil {
		t.root = sibling
	} else if grand.first == parent {
		grand.first = sibling
	} else {
		grand.second = sibling
	}

	if wasFocused {
		t.focused = sibling.firstLeaf()
	}
	return content, nil
}

// InsertAdjacent replaces the anchor leaf with a split node pairing it with
// a new leaf holding the provided identifier and content. With before=true
// the new leaf takes the first (left/top) slot. The inserted leaf becomes
// focused.
func (t *Tree) InsertAdjacent(anchor PaneID, id PaneID, content Content, dir SplitDir, before bool) error {
	leaf := t.FindLeaf(anchor)
	if leaf == nil {
		return ErrNotFound
	}

	original := &Node{id: leaf.id, content: leaf.content, parent: leaf}
	added := &Node{id: id, content: content, parent: leaf}

	leaf.id = 0
	leaf.content = nil
	leaf.dir = dir
	leaf.ratio = DefaultSplitRatio
	if before {
		leaf.first = added
		leaf.second = original
	} else {
		leaf.first = original
		leaf.second = added
	}

	t.focused = added
	return nil
}

// SplitPath addresses a split node from the root: false descends into the
// first child, true into the second. The empty path is the root itself.
type SplitPath []bool

// SplitAt resolves a path to its split node, or nil if the path runs off
// the tree or ends on a leaf.
func (t *Tree) SplitAt(path SplitPath) *Node {
	curr := t.root
	for _, second := range path {
		if curr.IsLeaf() {
			return nil
		}
		if second {
			curr = curr.second
		} else {
			curr = curr.first
		}
	}
	if curr.IsLeaf() {
		return nil
	}
	return curr
}

// ResizeSplitAt stores a clamped ratio on the split node at the given path.
// Tree shape is never altered by resizing.
func (t *Tree) ResizeSplitAt(path SplitPath, ratio float64) error {
	split := t.SplitAt(path)
	if split == nil {
		return ErrNotFound
	}
	split.ratio = clampRatio(ratio)
	return nil
}

// ResizeSplitOf stores a clamped ratio on the split node directly above the
// given pane. A root-level sole pane has no enclosing split.
func (t *Tree) ResizeSplitOf(pane PaneID, ratio float64) error {
	leaf := t.FindLeaf(pane)
	if leaf == nil || leaf.parent == nil {
		return ErrNotFound
	}
	leaf.parent.ratio = clampRatio(ratio)
	return nil
}

// PathTo returns the root path of the leaf holding the given pane.
func (t *Tree) PathTo(pane PaneID) (SplitPath, bool) {
	var path SplitPath
	var find func(n *Node) bool
	find = func(n *Node) bool {
		if n.IsLeaf() {
			return n.id == pane
		}
		path = append(path, false)
		if find(n.first) {
			return true
		}
		path[len(path)-1] = true
		if find(n.second) {
			return true
		}
		path = path[:len(path)-1]
		return false
	}
	if !find(t.root) {
		return nil, false
	}
	return path, true
}

// SetFocus moves focus to the given pane.
func (t *Tree) SetFocus(id PaneID) error {
	leaf := t.FindLeaf(id)
	if leaf == nil {
		return ErrNotFound
	}
	t.focused = leaf
	return nil
}

// FocusNext moves focus to the next leaf in depth-first order, wrapping at
// the end. A pure function of tree shape and current focus.
func (t *Tree) FocusNext() {
	t.cycleFocus(1)
}

// FocusPrevious moves focus to the previous leaf in depth-first order,
// wrapping at the start.
func (t *Tree) FocusPrevious() {
	t.cycleFocus(-1)
}

func (t *Tree) cycleFocus(step int) {
	ids := t.PaneIDs()
	for i, id := range ids {
		if id == t.focused.id {
			next := (i + step + len(ids)) % len(ids)
			t.focused = t.FindLeaf(ids[next])
			return
		}
	}
}

func clampRatio(r float64) float64 {
	if r < MinSplitRatio {
		return MinSplitRatio
	}
	if r > MaxSplitRatio {
		return MaxSplitRatio
	}
	return r
}
