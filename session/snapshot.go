// Copyright © 2026 VibeTerm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: session/snapshot.go
// Summary: Converts live desktop state to a storable layout description and
//          back. Only structure survives a restart: split shapes, ratios,
//          per-pane directories and focus, never shell contents.

package session

import (
	"fmt"

	"github.com/framegrace/vibeterm/vibe"
)

// Snapshot is one saved session.
type Snapshot struct {
	Tabs      []TabSnapshot `json:"tabs"`
	ActiveTab int           `json:"active_tab"`
}

// TabSnapshot is one workspace: its name, root directory, layout and the
// focused leaf as an index into the tree's depth-first pane order.
type TabSnapshot struct {
	Name    string      `json:"name"`
	Dir     string      `json:"dir"`
	Layout  *LayoutNode `json:"layout"`
	Focused int         `json:"focused,omitempty"`
}

// LayoutNode is the JSON form of the split tree. Leaves carry the pane's
// working directory so a restore can start its shell there.
type LayoutNode struct {
	Kind   string        `json:"kind"` // "leaf" or "split"
	Dir    string        `json:"dir,omitempty"`
	Split  vibe.SplitDir `json:"split,omitempty"`
	Ratio  float64       `json:"ratio,omitempty"`
	First  *LayoutNode   `json:"first,omitempty"`
	Second *LayoutNode   `json:"second,omitempty"`
}

// dirContent is implemented by pane content that knows its working
// directory, e.g. a shell session.
type dirContent interface {
	Dir() string
}

// Capture snapshots the whole desktop.
func Capture(d *vibe.Desktop) Snapshot {
	snap := Snapshot{ActiveTab: d.ActiveIndex()}
	for _, ws := range d.Workspaces() {
		snap.Tabs = append(snap.Tabs, TabSnapshot{
			Name:    ws.Name(),
			Dir:     ws.Dir(),
			Layout:  captureNode(ws.Tree().Root(), ws.Dir()),
			Focused: focusedIndex(ws),
		})
	}
	return snap
}

// focusedIndex locates the focused leaf in depth-first order. The restored
// tree reproduces the same shape, so the index survives the round trip even
// though pane IDs do not.
func focusedIndex(ws *vibe.Workspace) int {
	focused := ws.FocusedPane()
	for i, id := range ws.Tree().PaneIDs() {
		if id == focused {
			return i
		}
	}
	return 0
}

func captureNode(n *vibe.Node, fallbackDir string) *LayoutNode {
	if n == nil {
		return nil
	}
	if n.IsLeaf() {
		dir := fallbackDir
		if dc, ok := n.Content().(dirContent); ok && dc.Dir() != "" {
			dir = dc.Dir()
		}
		return &LayoutNode{Kind: "leaf", Dir: dir}
	}
	return &LayoutNode{
		Kind:   "split",
		Split:  n.Dir(),
		Ratio:  n.Ratio(),
		First:  captureNode(n.First(), fallbackDir),
		Second: captureNode(n.Second(), fallbackDir),
	}
}

// Restore rebuilds a desktop from a snapshot, minting fresh panes through
// the factory. The snapshot must carry at least one tab with a layout.
func Restore(snap Snapshot, factory vibe.ContentFactory) (*vibe.Desktop, error) {
	if len(snap.Tabs) == 0 {
		return nil, fmt.Errorf("restore: empty snapshot")
	}

	d, err := vibe.NewDesktop(seedDir(snap.Tabs[0]), factory)
	if err != nil {
		return nil, err
	}
	if err := restoreTab(d.Active(), snap.Tabs[0], factory); err != nil {
		return nil, err
	}

	for _, tab := range snap.Tabs[1:] {
		ws, err := d.NewTab(seedDir(tab))
		if err != nil {
			return nil, err
		}
		if err := restoreTab(ws, tab, factory); err != nil {
			return nil, err
		}
	}

	if snap.ActiveTab >= 0 && snap.ActiveTab < len(snap.Tabs) {
		if err := d.SelectTab(snap.ActiveTab); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func restoreTab(ws *vibe.Workspace, tab TabSnapshot, factory vibe.ContentFactory) error {
	ws.SetName(tab.Name)
	ws.SetDir(tab.Dir)
	if tab.Layout != nil {
		if err := materialize(ws, ws.FocusedPane(), tab.Layout, factory); err != nil {
			return err
		}
	}
	if ids := ws.Tree().PaneIDs(); tab.Focused >= 0 && tab.Focused < len(ids) {
		if err := ws.Focus(ids[tab.Focused]); err != nil {
			return err
		}
	}
	return nil
}

// seedDir is the directory for the pane a fresh tab starts with. It must be
// the first leaf's recorded directory, not the tab's, or that leaf's shell
// would start in the wrong place after a restore.
func seedDir(tab TabSnapshot) string {
	if dir := leafDir(tab.Layout); dir != "" {
		return dir
	}
	return tab.Dir
}

// materialize grows the stored subtree out of the single pane `target`.
// Splits are applied pre-order; the ratio is set before descending so the
// resize always addresses the split just created.
func materialize(ws *vibe.Workspace, target vibe.PaneID, node *LayoutNode, factory vibe.ContentFactory) error {
	if node.Kind != "split" {
		return nil
	}
	if node.First == nil || node.Second == nil {
		return fmt.Errorf("restore: malformed split node")
	}

	content, err := factory(leafDir(node.Second))
	if err != nil {
		return err
	}
	secondID, err := ws.Split(target, node.Split, content)
	if err != nil {
		return err
	}
	if err := ws.ResizeAround(target, node.Ratio); err != nil {
		return err
	}

	if err := materialize(ws, target, node.First, factory); err != nil {
		return err
	}
	return materialize(ws, secondID, node.Second, factory)
}

// leafDir finds the directory of the first leaf under node.
func leafDir(node *LayoutNode) string {
	for node != nil && node.Kind == "split" {
		node = node.First
	}
	if node == nil {
		return ""
	}
	return node.Dir
}
