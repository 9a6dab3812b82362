// Copyright © 2026 VibeTerm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: vibe/drag.go
// Summary: Drag interaction state machine for pane relocation.
// Usage: Lives in the input layer; the tree is only mutated on drop, so a
//        cancelled drag trivially leaves the layout in its pre-drag shape.

package vibe

import "math"

// DropZone names the edge strip of an anchor pane a drag lands in. The zone
// fixes both the split axis and which side the moved pane takes.
type DropZone int

const (
	DropTop DropZone = iota
	DropBottom
	DropLeft
	DropRight
)

// SplitDir returns the split axis implied by the zone: vertical for
// top/bottom, horizontal for left/right.
func (z DropZone) SplitDir() SplitDir {
	if z == DropTop || z == DropBottom {
		return SplitVertical
	}
	return SplitHorizontal
}

// Before reports whether the dropped pane takes the first (left/top) slot.
func (z DropZone) Before() bool {
	return z == DropTop || z == DropLeft
}

func (z DropZone) String() string {
	switch z {
	case DropTop:
		return "top"
	case DropBottom:
		return "bottom"
	case DropLeft:
		return "left"
	}
	return "right"
}

// dropEdgeRatio is the share of a pane's extent claimed by each edge strip.
const dropEdgeRatio = 0.25

// DropZoneInfo is one candidate landing strip for an in-flight drag.
type DropZoneInfo struct {
	Target PaneID
	Zone   DropZone
	Rect   Rect
}

// ComputeDropZones returns the four edge strips of every pane other than
// the drag source.
func ComputeDropZones(layout *ComputedLayout, source PaneID) []DropZoneInfo {
	var zones []DropZoneInfo
	for id, r := range layout.PaneRects {
		if id == source {
			continue
		}
		eh := r.H * dropEdgeRatio
		ew := r.W * dropEdgeRatio
		zones = append(zones,
			DropZoneInfo{Target: id, Zone: DropTop, Rect: Rect{X: r.X, Y: r.Y, W: r.W, H: eh}},
			DropZoneInfo{Target: id, Zone: DropBottom, Rect: Rect{X: r.X, Y: r.Y + r.H - eh, W: r.W, H: eh}},
			DropZoneInfo{Target: id, Zone: DropLeft, Rect: Rect{X: r.X, Y: r.Y, W: ew, H: r.H}},
			DropZoneInfo{Target: id, Zone: DropRight, Rect: Rect{X: r.X + r.W - ew, Y: r.Y, W: ew, H: r.H}},
		)
	}
	return zones
}

// DragPhase is the lifecycle of one pointer-driven pane drag.
type DragPhase int

const (
	// DragIdle means no button is held over a pane.
	DragIdle DragPhase = iota
	// DragPending means the button is down but movement has not yet passed
	// the activation threshold, so the gesture may still be a plain click.
	DragPending
	// DragActive means the gesture is committed as a drag.
	DragActive
)

// DragThreshold is the pointer travel required before a press becomes a
// drag rather than a click.
const DragThreshold = 8.0

// DragController tracks a single pane drag. It never touches the tree
// itself: callers execute the move only on a successful Drop.
type DragController struct {
	phase          DragPhase
	source         PaneID
	startX, startY float64
	currX, currY   float64
}

// Phase returns the current lifecycle phase.
func (c *DragController) Phase() DragPhase { return c.phase }

// Source returns the pane the drag started on.
func (c *DragController) Source() PaneID { return c.source }

// Begin records a button press over a pane. The drag stays pending until
// the pointer travels past the threshold.
func (c *DragController) Begin(source PaneID, x, y float64) {
	c.phase = DragPending
	c.source = source
	c.startX, c.startY = x, y
	c.currX, c.currY = x, y
}

// Update records pointer movement and promotes a pending drag once the
// threshold is exceeded.
func (c *DragController) Update(x, y float64) {
	if c.phase == DragIdle {
		return
	}
	c.currX, c.currY = x, y
	if c.phase == DragPending {
		dx, dy := x-c.startX, y-c.startY
		if math.Hypot(dx, dy) >= DragThreshold {
			c.phase = DragActive
		}
	}
}

// ProspectiveZone returns the drop zone currently under the pointer, if the
// drag is active. Computing the target without mutating anything is what
// makes Cancel free.
func (c *DragController) ProspectiveZone(layout *ComputedLayout) (DropZoneInfo, bool) {
	if c.phase != DragActive {
		return DropZoneInfo{}, false
	}
	for _, z := range ComputeDropZones(layout, c.source) {
		if z.Rect.Contains(c.currX, c.currY) {
			return z, true
		}
	}
	return DropZoneInfo{}, false
}

// Drop finishes the gesture. It reports the source pane and the zone under
// the pointer; ok is false when the drag never activated or the pointer was
// not over a landing strip, in which case the gesture was a plain click.
func (c *DragController) Drop(layout *ComputedLayout) (PaneID, DropZoneInfo, bool) {
	zone, ok := c.ProspectiveZone(layout)
	source := c.source
	c.reset()
	return source, zone, ok
}

// Cancel abandons the gesture, e.g. on Escape. No tree restoration is
// needed because nothing was mutated while dragging.
func (c *DragController) Cancel() {
	c.reset()
}

func (c *DragController) reset() {
	c.phase = DragIdle
	c.source = 0
	c.startX, c.startY = 0, 0
	c.currX, c.currY = 0, 0
}
