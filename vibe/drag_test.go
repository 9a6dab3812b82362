// Copyright © 2026 VibeTerm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: vibe/drag_test.go
// Summary: Exercises the drag state machine and drop zone hit testing.

package vibe

import "testing"

func twoPaneLayout(t *testing.T) (*Tree, *ComputedLayout) {
	t.Helper()
	tr := NewTree(0, newStub("A"))
	if err := tr.Split(0, SplitHorizontal, 1, newStub("B")); err != nil {
		t.Fatal(err)
	}
	return tr, ComputeLayout(tr, Rect{W: 200, H: 100}, 0)
}

func TestDragBelowThresholdStaysPending(t *testing.T) {
	_, layout := twoPaneLayout(t)
	var c DragController

	c.Begin(0, 10, 10)
	c.Update(13, 13) // ~4.2 travel, below threshold
	if c.Phase() != DragPending {
		t.Fatalf("phase = %v, want DragPending", c.Phase())
	}
	if _, ok := c.ProspectiveZone(layout); ok {
		t.Fatal("pending drag must not report a drop zone")
	}

	// Releasing now is a click, not a drop.
	if _, _, ok := c.Drop(layout); ok {
		t.Fatal("sub-threshold release must not drop")
	}
	if c.Phase() != DragIdle {
		t.Fatal("controller not reset after release")
	}
}

func TestDragActivatesAfterThreshold(t *testing.T) {
	_, layout := twoPaneLayout(t)
	var c DragController

	c.Begin(0, 10, 10)
	c.Update(30, 10)
	if c.Phase() != DragActive {
		t.Fatalf("phase = %v, want DragActive", c.Phase())
	}

	// Pointer over the left strip of pane 1 (pane 1 spans x 100..200).
	c.Update(105, 50)
	zone, ok := c.ProspectiveZone(layout)
	if !ok {
		t.Fatal("no prospective zone over pane 1 left strip")
	}
	if zone.Target != 1 || zone.Zone != DropLeft {
		t.Fatalf("zone = %+v, want DropLeft on pane 1", zone)
	}

	source, zone, ok := c.Drop(layout)
	if !ok || source != 0 || zone.Zone != DropLeft {
		t.Fatalf("drop = (%d, %+v, %v), want pane 0 on left of pane 1", source, zone, ok)
	}
}

func TestDragCancelResetsWithoutMutation(t *testing.T) {
	tr, layout := twoPaneLayout(t)
	before := tr.PaneCount()
	var c DragController

	c.Begin(0, 10, 10)
	c.Update(150, 50)
	if c.Phase() != DragActive {
		t.Fatal("drag should be active")
	}
	c.Cancel()
	if c.Phase() != DragIdle {
		t.Fatal("cancel did not reset controller")
	}
	if tr.PaneCount() != before {
		t.Fatal("dragging mutated the tree")
	}
	if _, _, ok := c.Drop(layout); ok {
		t.Fatal("drop after cancel must fail")
	}
}

func TestDropZonesExcludeSourceAndCoverEdges(t *testing.T) {
	_, layout := twoPaneLayout(t)

	zones := ComputeDropZones(layout, 0)
	if len(zones) != 4 {
		t.Fatalf("got %d zones, want 4 (source excluded)", len(zones))
	}
	seen := map[DropZone]bool{}
	for _, z := range zones {
		if z.Target != 1 {
			t.Fatalf("zone target = %d, want 1", z.Target)
		}
		seen[z.Zone] = true
	}
	for _, z := range []DropZone{DropTop, DropBottom, DropLeft, DropRight} {
		if !seen[z] {
			t.Errorf("missing %v zone", z)
		}
	}
}

func TestDropZoneCenterIsNeutral(t *testing.T) {
	_, layout := twoPaneLayout(t)
	var c DragController
	c.Begin(0, 10, 10)
	c.Update(150, 50) // dead center of pane 1

	if zone, ok := c.ProspectiveZone(layout); ok {
		t.Fatalf("center of pane reported zone %+v, want none", zone)
	}
}
