// Copyright © 2026 VibeTerm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: vibe/workspace.go
// Summary: A workspace is one tab: a named layout tree plus pane identity.
// Usage: All pane operations on a tab go through its Workspace, which mints
//        identifiers and keeps the focus invariant.

package vibe

import "log"

// Workspace owns one layout tree, its focused pane and the monotonically
// increasing counter used to mint pane identifiers. Mutation is
// single-owner: the desktop event loop is the only caller.
type Workspace struct {
	name    string
	dir     string
	tree    *Tree
	nextID  PaneID
	desktop *Desktop
}

// NewWorkspace creates a workspace whose tree holds a single pane with the
// given content.
func NewWorkspace(name, dir string, content Content) *Workspace {
	return &Workspace{
		name:   name,
		dir:    dir,
		tree:   NewTree(0, content),
		nextID: 1,
	}
}

// Name returns the tab title.
func (w *Workspace) Name() string { return w.name }

// SetName renames the tab.
func (w *Workspace) SetName(name string) { w.name = name }

// Dir returns the workspace working directory.
func (w *Workspace) Dir() string { return w.dir }

// SetDir updates the workspace working directory.
func (w *Workspace) SetDir(dir string) { w.dir = dir }

// Tree exposes the layout tree for rendering and inspection.
func (w *Workspace) Tree() *Tree { return w.tree }

// FocusedPane returns the identifier of the focused pane.
func (w *Workspace) FocusedPane() PaneID { return w.tree.FocusedID() }

// PaneCount returns the number of panes in the tab.
func (w *Workspace) PaneCount() int { return w.tree.PaneCount() }

func (w *Workspace) mintID() PaneID {
	id := w.nextID
	w.nextID++
	return id
}

func (w *Workspace) treeChanged() {
	if w.desktop != nil {
		w.desktop.broadcastTreeChanged(w)
	}
}

func (w *Workspace) focusChanged() {
	if w.desktop != nil {
		w.desktop.broadcastFocusChanged(w)
	}
}

// Split replaces the target pane with a split pairing it with a freshly
// minted pane holding content. Returns the new pane's identifier; the new
// pane is focused.
func (w *Workspace) Split(target PaneID, dir SplitDir, content Content) (PaneID, error) {
	id := w.mintID()
	if err := w.tree.Split(target, dir, id, content); err != nil {
		w.nextID-- // the minted ID was never used
		return 0, err
	}
	log.Printf("workspace %q: split pane %d %s, new pane %d", w.name, target, dir, id)
	w.treeChanged()
	w.focusChanged()
	return id, nil
}

// SplitFocused splits the currently focused pane.
func (w *Workspace) SplitFocused(dir SplitDir, content Content) (PaneID, error) {
	return w.Split(w.FocusedPane(), dir, content)
}

// Close removes the target pane and shuts down its content. The sibling
// subtree is promoted unchanged; if the closed pane was focused, focus
// moves to the promoted sibling's first leaf. Closing the sole pane fails
// with ErrLastPane.
func (w *Workspace) Close(target PaneID) error {
	wasFocused := w.FocusedPane() == target
	content, err := w.tree.Remove(target)
	if err != nil {
		return err
	}
	if content != nil {
		content.Close()
	}
	log.Printf("workspace %q: closed pane %d", w.name, target)
	w.treeChanged()
	if wasFocused {
		w.focusChanged()
	}
	return nil
}

// CloseFocused closes the focused pane.
func (w *Workspace) CloseFocused() error {
	return w.Close(w.FocusedPane())
}

// Resize stores a clamped ratio on the split node at the given path.
func (w *Workspace) Resize(path SplitPath, ratio float64) error {
	if err := w.tree.ResizeSplitAt(path, ratio); err != nil {
		return err
	}
	w.treeChanged()
	return nil
}

// ResizeAround stores a clamped ratio on the split enclosing a pane.
func (w *Workspace) ResizeAround(pane PaneID, ratio float64) error {
	if err := w.tree.ResizeSplitOf(pane, ratio); err != nil {
		return err
	}
	w.treeChanged()
	return nil
}

// FocusNext moves focus to the next pane in traversal order, wrapping.
func (w *Workspace) FocusNext() {
	w.tree.FocusNext()
	w.focusChanged()
}

// FocusPrevious moves focus to the previous pane, wrapping.
func (w *Workspace) FocusPrevious() {
	w.tree.FocusPrevious()
	w.focusChanged()
}

// Focus moves focus to a specific pane.
func (w *Workspace) Focus(id PaneID) error {
	if err := w.tree.SetFocus(id); err != nil {
		return err
	}
	w.focusChanged()
	return nil
}

// Detached is a pane lifted out of the tree by ExtractSubtree, waiting to
// be reinserted. The identifier travels with the content so a moved pane
// keeps its identity.
type Detached struct {
	ID      PaneID
	Content Content
}

// ExtractSubtree removes the pane from the tree exactly as Close would but
// hands back the detached content instead of discarding it. The sole pane
// cannot be extracted.
func (w *Workspace) ExtractSubtree(pane PaneID) (Detached, error) {
	content, err := w.tree.Remove(pane)
	if err != nil {
		return Detached{}, err
	}
	w.treeChanged()
	return Detached{ID: pane, Content: content}, nil
}

// InsertSubtree reinserts detached content next to the anchor pane on the
// side implied by the drop zone. The pane keeps its original identifier and
// becomes focused.
func (w *Workspace) InsertSubtree(anchor PaneID, zone DropZone, d Detached) (PaneID, error) {
	if err := w.tree.InsertAdjacent(anchor, d.ID, d.Content, zone.SplitDir(), zone.Before()); err != nil {
		return 0, err
	}
	w.treeChanged()
	w.focusChanged()
	return d.ID, nil
}

// MovePane relocates a pane next to the anchor as an atomic
// extract-then-insert. If the insert fails because the anchor disappeared,
// the detached pane is reinserted at its original neighbour so no pane is
// ever lost.
func (w *Workspace) MovePane(source, anchor PaneID, zone DropZone) error {
	if source == anchor {
		return nil
	}
	if w.tree.FindLeaf(anchor) == nil {
		return ErrNotFound
	}

	// Remember where the pane came from so a failed insert can roll back.
	origin, originZone, ok := w.restorePoint(source)
	if !ok {
		return ErrNotFound
	}

	detached, err := w.ExtractSubtree(source)
	if err != nil {
		return err
	}

	if _, err := w.InsertSubtree(anchor, zone, detached); err != nil {
		if _, rbErr := w.InsertSubtree(origin, originZone, detached); rbErr != nil {
			// Both the anchor and the origin vanished between validation and
			// insert; with single-owner mutation this cannot happen.
			log.Printf("workspace %q: move rollback failed: %v", w.name, rbErr)
		}
		return err
	}
	log.Printf("workspace %q: moved pane %d to %s of pane %d", w.name, source, zone, anchor)
	return nil
}

// restorePoint captures the sibling and relative position of a pane so it
// can be reinserted where it was.
func (w *Workspace) restorePoint(pane PaneID) (PaneID, DropZone, bool) {
	leaf := w.tree.FindLeaf(pane)
	if leaf == nil || leaf.parent == nil {
		return 0, DropRight, false
	}
	parent := leaf.parent
	sibling := parent.second
	first := true
	if sibling == leaf {
		sibling = parent.first
		first = false
	}

	var zone DropZone
	if parent.dir == SplitVertical {
		if first {
			zone = DropTop
		} else {
			zone = DropBottom
		}
	} else {
		if first {
			zone = DropLeft
		} else {
			zone = DropRight
		}
	}
	return sibling.firstLeaf().id, zone, true
}

// CloseAll shuts down every pane content. Used when the tab is closed.
func (w *Workspace) CloseAll() {
	w.tree.Walk(func(n *Node) {
		if n.IsLeaf() && n.Content() != nil {
			n.Content().Close()
		}
	})
}
