// Copyright © 2026 VibeTerm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: vibe/workspace_test.go
// Summary: Exercises workspace pane operations, identity and drag-drop moves.

package vibe

import (
	"errors"
	"testing"
)

func newTestWorkspace() *Workspace {
	return NewWorkspace("test", "/tmp", newStub("A"))
}

func TestWorkspaceMintsMonotonicIDs(t *testing.T) {
	ws := newTestWorkspace()

	id1, err := ws.SplitFocused(SplitHorizontal, newStub("B"))
	if err != nil {
		t.Fatal(err)
	}
	id2, err := ws.SplitFocused(SplitVertical, newStub("C"))
	if err != nil {
		t.Fatal(err)
	}
	if id1 != 1 || id2 != 2 {
		t.Fatalf("minted ids = %d, %d, want 1, 2", id1, id2)
	}

	// Removing a pane must not make its ID eligible for reuse.
	if err := ws.Close(id2); err != nil {
		t.Fatal(err)
	}
	id3, err := ws.SplitFocused(SplitHorizontal, newStub("D"))
	if err != nil {
		t.Fatal(err)
	}
	if id3 != 3 {
		t.Fatalf("minted id after close = %d, want 3", id3)
	}
}

func TestWorkspaceSplitFailureDoesNotBurnID(t *testing.T) {
	ws := newTestWorkspace()
	if _, err := ws.Split(99, SplitHorizontal, newStub("B")); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	id, err := ws.SplitFocused(SplitHorizontal, newStub("B"))
	if err != nil {
		t.Fatal(err)
	}
	if id != 1 {
		t.Fatalf("id = %d, want 1", id)
	}
}

func TestWorkspaceCloseShutsDownContent(t *testing.T) {
	ws := newTestWorkspace()
	b := newStub("B")
	id, err := ws.SplitFocused(SplitHorizontal, b)
	if err != nil {
		t.Fatal(err)
	}
	if err := ws.Close(id); err != nil {
		t.Fatal(err)
	}
	if !b.closed {
		t.Fatal("closed pane content was not shut down")
	}
}

func TestWorkspaceCloseLastPane(t *testing.T) {
	ws := newTestWorkspace()
	if err := ws.CloseFocused(); !errors.Is(err, ErrLastPane) {
		t.Fatalf("err = %v, want ErrLastPane", err)
	}
	if ws.PaneCount() != 1 {
		t.Fatal("tree changed by rejected close")
	}
}

func TestExtractInsertPreservesCountAndIdentity(t *testing.T) {
	ws := newTestWorkspace()
	bc := newStub("B")
	idB, err := ws.SplitFocused(SplitHorizontal, bc)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ws.SplitFocused(SplitVertical, newStub("C")); err != nil {
		t.Fatal(err)
	}
	before := ws.PaneCount()

	detached, err := ws.ExtractSubtree(idB)
	if err != nil {
		t.Fatalf("ExtractSubtree: %v", err)
	}
	if detached.ID != idB || detached.Content != bc {
		t.Fatal("detached pane lost its identity or content")
	}
	if ws.PaneCount() != before-1 {
		t.Fatalf("pane count after extract = %d, want %d", ws.PaneCount(), before-1)
	}

	got, err := ws.InsertSubtree(0, DropLeft, detached)
	if err != nil {
		t.Fatalf("InsertSubtree: %v", err)
	}
	if got != idB {
		t.Fatalf("inserted pane id = %d, want original %d", got, idB)
	}
	if ws.PaneCount() != before {
		t.Fatalf("pane count after insert = %d, want %d", ws.PaneCount(), before)
	}
	checkTreeShape(t, ws.Tree())

	// The moved pane must sit to the left of the anchor.
	anchor := ws.Tree().FindLeaf(0)
	parent := anchor.parent
	if parent.Dir() != SplitHorizontal || parent.First().ID() != idB {
		t.Fatal("moved pane is not the left sibling of the anchor")
	}
	if ws.FocusedPane() != idB {
		t.Fatalf("focused = %d, want moved pane %d", ws.FocusedPane(), idB)
	}
}

func TestExtractSolePaneProtected(t *testing.T) {
	ws := newTestWorkspace()
	if _, err := ws.ExtractSubtree(0); !errors.Is(err, ErrLastPane) {
		t.Fatalf("err = %v, want ErrLastPane", err)
	}
}

func TestMovePaneAllZones(t *testing.T) {
	for _, zone := range []DropZone{DropTop, DropBottom, DropLeft, DropRight} {
		ws := newTestWorkspace()
		idB, err := ws.SplitFocused(SplitHorizontal, newStub("B"))
		if err != nil {
			t.Fatal(err)
		}
		idC, err := ws.SplitFocused(SplitVertical, newStub("C"))
		if err != nil {
			t.Fatal(err)
		}
		before := ws.PaneCount()

		if err := ws.MovePane(idC, 0, zone); err != nil {
			t.Fatalf("zone %v: MovePane: %v", zone, err)
		}
		if ws.PaneCount() != before {
			t.Fatalf("zone %v: pane count changed by move", zone)
		}
		checkTreeShape(t, ws.Tree())

		anchor := ws.Tree().FindLeaf(0)
		parent := anchor.parent
		if parent.Dir() != zone.SplitDir() {
			t.Errorf("zone %v: split dir = %v, want %v", zone, parent.Dir(), zone.SplitDir())
		}
		moved := parent.Second()
		if zone.Before() {
			moved = parent.First()
		}
		if moved.ID() != idC {
			t.Errorf("zone %v: pane %d not adjacent to anchor on expected side", zone, idC)
		}
		_ = idB
	}
}

func TestMovePaneToItselfIsNoOp(t *testing.T) {
	ws := newTestWorkspace()
	idB, err := ws.SplitFocused(SplitHorizontal, newStub("B"))
	if err != nil {
		t.Fatal(err)
	}
	before := ws.PaneCount()
	if err := ws.MovePane(idB, idB, DropLeft); err != nil {
		t.Fatalf("MovePane onto itself: %v", err)
	}
	if ws.PaneCount() != before {
		t.Fatal("self-move changed the tree")
	}
}

func TestMovePaneUnknownAnchor(t *testing.T) {
	ws := newTestWorkspace()
	idB, err := ws.SplitFocused(SplitHorizontal, newStub("B"))
	if err != nil {
		t.Fatal(err)
	}
	before := ws.PaneCount()
	if err := ws.MovePane(idB, 42, DropTop); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	// The source pane must still be present: nothing was extracted.
	if ws.PaneCount() != before || ws.Tree().FindLeaf(idB) == nil {
		t.Fatal("failed move lost a pane")
	}
}
