// Copyright © 2026 VibeTerm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: vibe/tree_test.go
// Summary: Exercises the binary split tree invariants.
// Usage: Executed during `go test` to guard against regressions.

package vibe

import (
	"errors"
	"fmt"
	"testing"
)

type stubContent struct {
	title  string
	closed bool
}

func (c *stubContent) Title() string { return c.title }
func (c *stubContent) Close()        { c.closed = true }

func newStub(title string) *stubContent {
	return &stubContent{title: title}
}

// checkTreeShape verifies the strict binary tree invariants: every split
// has exactly two children, every leaf ID is unique, leaves == splits + 1,
// and parent links are consistent.
func checkTreeShape(t *testing.T, tr *Tree) {
	t.Helper()

	leaves, splits := 0, 0
	seen := make(map[PaneID]bool)
	tr.Walk(func(n *Node) {
		if n.IsLeaf() {
			leaves++
			if seen[n.ID()] {
				t.Fatalf("duplicate pane ID %d", n.ID())
			}
			seen[n.ID()] = true
			if n.First() != nil || n.Second() != nil {
				t.Fatalf("leaf %d has children", n.ID())
			}
		} else {
			splits++
			if n.First() == nil || n.Second() == nil {
				t.Fatal("split node without two children")
			}
			if n.First().parent != n || n.Second().parent != n {
				t.Fatal("child parent link broken")
			}
			if n.Ratio() < MinSplitRatio || n.Ratio() > MaxSplitRatio {
				t.Fatalf("split ratio %v outside [%v, %v]", n.Ratio(), MinSplitRatio, MaxSplitRatio)
			}
		}
	})

	if leaves != splits+1 {
		t.Fatalf("got %d leaves for %d splits, want splits+1", leaves, splits)
	}
	if tr.Focused() == nil || !tr.Focused().IsLeaf() {
		t.Fatal("focused node is not a leaf")
	}
	if !seen[tr.FocusedID()] {
		t.Fatalf("focused pane %d not in tree", tr.FocusedID())
	}
}

func TestSplitCreatesSiblingAndFocusesIt(t *testing.T) {
	tr := NewTree(0, newStub("A"))

	if err := tr.Split(0, SplitHorizontal, 1, newStub("B")); err != nil {
		t.Fatalf("Split: %v", err)
	}
	checkTreeShape(t, tr)

	if got := tr.PaneCount(); got != 2 {
		t.Fatalf("pane count = %d, want 2", got)
	}
	if tr.FocusedID() != 1 {
		t.Fatalf("focused = %d, want new pane 1", tr.FocusedID())
	}

	root := tr.Root()
	if root.IsLeaf() || root.Dir() != SplitHorizontal || root.Ratio() != DefaultSplitRatio {
		t.Fatalf("root is not a horizontal split at default ratio")
	}
	if root.First().ID() != 0 || root.Second().ID() != 1 {
		t.Fatalf("child order = (%d, %d), want (0, 1)", root.First().ID(), root.Second().ID())
	}
}

func TestSplitUnknownPane(t *testing.T) {
	tr := NewTree(0, newStub("A"))
	if err := tr.Split(42, SplitVertical, 1, newStub("B")); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if tr.PaneCount() != 1 {
		t.Fatal("failed split must not alter the tree")
	}
}

func TestCloseSolePaneProtected(t *testing.T) {
	tr := NewTree(0, newStub("A"))
	if _, err := tr.Remove(0); !errors.Is(err, ErrLastPane) {
		t.Fatalf("err = %v, want ErrLastPane", err)
	}
	if !tr.Root().IsLeaf() || tr.Root().ID() != 0 {
		t.Fatal("tree changed by rejected close")
	}
}

func TestCloseCollapsesSplit(t *testing.T) {
	tr := NewTree(0, newStub("A"))
	if err := tr.Split(0, SplitHorizontal, 1, newStub("B")); err != nil {
		t.Fatalf("Split: %v", err)
	}

	// A is not focused (B is), so closing A must leave focus on B.
	if _, err := tr.Remove(0); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	checkTreeShape(t, tr)
	if !tr.Root().IsLeaf() || tr.Root().ID() != 1 {
		t.Fatalf("root = pane %d, want promoted pane 1", tr.Root().ID())
	}
	if tr.FocusedID() != 1 {
		t.Fatalf("focused = %d, want 1", tr.FocusedID())
	}
}

func TestCloseFocusedTransfersToSiblingFirstLeaf(t *testing.T) {
	tr := NewTree(0, newStub("A"))
	if err := tr.Split(0, SplitHorizontal, 1, newStub("B")); err != nil {
		t.Fatal(err)
	}
	// Split A vertically so B's sibling is itself a split: ((A/C) | B).
	if err := tr.Split(0, SplitVertical, 2, newStub("C")); err != nil {
		t.Fatal(err)
	}
	if err := tr.SetFocus(1); err != nil {
		t.Fatal(err)
	}

	if _, err := tr.Remove(1); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	checkTreeShape(t, tr)
	// The promoted sibling is the (A/C) split; its first leaf is A.
	if tr.FocusedID() != 0 {
		t.Fatalf("focused = %d, want first leaf 0 of promoted subtree", tr.FocusedID())
	}
}

func TestSplitThenCloseNewPaneRestoresShapeAndFocus(t *testing.T) {
	tr := NewTree(0, newStub("A"))
	if err := tr.Split(0, SplitHorizontal, 1, newStub("B")); err != nil {
		t.Fatal(err)
	}
	if err := tr.Split(1, SplitVertical, 2, newStub("C")); err != nil {
		t.Fatal(err)
	}

	if _, err := tr.Remove(2); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	checkTreeShape(t, tr)

	root := tr.Root()
	if root.IsLeaf() || root.Dir() != SplitHorizontal {
		t.Fatal("outer split not restored")
	}
	if root.First().ID() != 0 || root.Second().ID() != 1 {
		t.Fatal("pre-split leaves not restored")
	}
	if tr.FocusedID() != 1 {
		t.Fatalf("focused = %d, want original pane 1", tr.FocusedID())
	}
}

func TestRandomSplitCloseSequencesKeepTreeValid(t *testing.T) {
	tr := NewTree(0, newStub("p0"))
	next := PaneID(1)

	// Deterministic pseudo-random walk over split and close.
	state := uint64(0x9E3779B97F4A7C15)
	rnd := func(n int) int {
		state ^= state << 13
		state ^= state >> 7
		state ^= state << 17
		return int(state % uint64(n))
	}

	for i := 0; i < 200; i++ {
		ids := tr.PaneIDs()
		target := ids[rnd(len(ids))]
		if rnd(3) == 0 && len(ids) > 1 {
			if _, err := tr.Remove(target); err != nil {
				t.Fatalf("step %d: Remove(%d): %v", i, target, err)
			}
		} else {
			dir := SplitHorizontal
			if rnd(2) == 1 {
				dir = SplitVertical
			}
			if err := tr.Split(target, dir, next, newStub(fmt.Sprintf("p%d", next))); err != nil {
				t.Fatalf("step %d: Split(%d): %v", i, target, err)
			}
			next++
		}
		checkTreeShape(t, tr)
	}
}

func TestFocusCycleReturnsToStart(t *testing.T) {
	tr := NewTree(0, newStub("A"))
	if err := tr.Split(0, SplitHorizontal, 1, newStub("B")); err != nil {
		t.Fatal(err)
	}
	if err := tr.Split(1, SplitVertical, 2, newStub("C")); err != nil {
		t.Fatal(err)
	}
	if err := tr.Split(0, SplitVertical, 3, newStub("D")); err != nil {
		t.Fatal(err)
	}

	start := tr.FocusedID()
	n := tr.PaneCount()
	for i := 0; i < n; i++ {
		tr.FocusNext()
	}
	if tr.FocusedID() != start {
		t.Fatalf("after %d FocusNext calls focus = %d, want %d", n, tr.FocusedID(), start)
	}
	for i := 0; i < n; i++ {
		tr.FocusPrevious()
	}
	if tr.FocusedID() != start {
		t.Fatalf("after %d FocusPrevious calls focus = %d, want %d", n, tr.FocusedID(), start)
	}
}

func TestFocusOrderIsDepthFirst(t *testing.T) {
	tr := NewTree(0, newStub("A"))
	if err := tr.Split(0, SplitHorizontal, 1, newStub("B")); err != nil {
		t.Fatal(err)
	}
	if err := tr.Split(0, SplitVertical, 2, newStub("C")); err != nil {
		t.Fatal(err)
	}
	// Tree is ((A/C) | B): DFS leaf order 0, 2, 1.
	want := []PaneID{0, 2, 1}
	got := tr.PaneIDs()
	if len(got) != len(want) {
		t.Fatalf("pane ids = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("pane ids = %v, want %v", got, want)
		}
	}

	if err := tr.SetFocus(0); err != nil {
		t.Fatal(err)
	}
	tr.FocusNext()
	if tr.FocusedID() != 2 {
		t.Fatalf("focus after next = %d, want 2", tr.FocusedID())
	}
	tr.FocusPrevious()
	tr.FocusPrevious()
	if tr.FocusedID() != 1 {
		t.Fatalf("focus after wrapping previous = %d, want 1", tr.FocusedID())
	}
}

func TestResizeClampsRatio(t *testing.T) {
	tr := NewTree(0, newStub("A"))
	if err := tr.Split(0, SplitHorizontal, 1, newStub("B")); err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		req  float64
		want float64
	}{
		{1.5, MaxSplitRatio},
		{-3.0, MinSplitRatio},
		{0.3, 0.3},
		{0.0, MinSplitRatio},
		{1.0, MaxSplitRatio},
	}
	for _, c := range cases {
		if err := tr.ResizeSplitAt(nil, c.req); err != nil {
			t.Fatalf("ResizeSplitAt(%v): %v", c.req, err)
		}
		if got := tr.Root().Ratio(); got != c.want {
			t.Errorf("ratio after request %v = %v, want %v", c.req, got, c.want)
		}
	}
}

func TestResizeUnknownLocator(t *testing.T) {
	tr := NewTree(0, newStub("A"))
	if err := tr.ResizeSplitAt(SplitPath{false}, 0.5); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if err := tr.ResizeSplitOf(0, 0.5); !errors.Is(err, ErrNotFound) {
		t.Fatalf("sole pane has no enclosing split, err = %v, want ErrNotFound", err)
	}
}

func TestResizeSplitOfChildPane(t *testing.T) {
	tr := NewTree(0, newStub("A"))
	if err := tr.Split(0, SplitHorizontal, 1, newStub("B")); err != nil {
		t.Fatal(err)
	}
	if err := tr.ResizeSplitOf(1, 0.7); err != nil {
		t.Fatalf("ResizeSplitOf: %v", err)
	}
	if got := tr.Root().Ratio(); got != 0.7 {
		t.Fatalf("ratio = %v, want 0.7", got)
	}
}

func TestPathTo(t *testing.T) {
	tr := NewTree(0, newStub("A"))
	if err := tr.Split(0, SplitHorizontal, 1, newStub("B")); err != nil {
		t.Fatal(err)
	}
	if err := tr.Split(1, SplitVertical, 2, newStub("C")); err != nil {
		t.Fatal(err)
	}

	path, ok := tr.PathTo(2)
	if !ok {
		t.Fatal("PathTo(2) not found")
	}
	node := tr.Root()
	for _, second := range path {
		if second {
			node = node.Second()
		} else {
			node = node.First()
		}
	}
	if !node.IsLeaf() || node.ID() != 2 {
		t.Fatalf("path %v does not lead to pane 2", path)
	}

	if _, ok := tr.PathTo(99); ok {
		t.Fatal("PathTo(99) should not resolve")
	}
}

func TestInsertAdjacentZoneOrdering(t *testing.T) {
	for _, zone := range []DropZone{DropTop, DropBottom, DropLeft, DropRight} {
		tr := NewTree(0, newStub("A"))
		if err := tr.InsertAdjacent(0, 7, newStub("M"), zone.SplitDir(), zone.Before()); err != nil {
			t.Fatalf("zone %v: %v", zone, err)
		}
		checkTreeShape(t, tr)
		root := tr.Root()
		if root.Dir() != zone.SplitDir() {
			t.Errorf("zone %v: dir = %v, want %v", zone, root.Dir(), zone.SplitDir())
		}
		movedFirst := root.First().ID() == 7
		if movedFirst != zone.Before() {
			t.Errorf("zone %v: moved pane first = %v, want %v", zone, movedFirst, zone.Before())
		}
		if tr.FocusedID() != 7 {
			t.Errorf("zone %v: focused = %d, want inserted pane 7", zone, tr.FocusedID())
		}
	}
}
