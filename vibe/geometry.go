// Copyright © 2026 VibeTerm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: vibe/geometry.go
// Summary: Maps the layout tree onto screen rectangles and divider bars.
// Usage: Consumed by the renderer and by drag/drop hit testing.

package vibe

// DividerWidth is the default thickness of the draggable bar between two
// sibling subtrees, in the same unit as the layout rectangle (cells for the
// terminal renderer).
const DividerWidth = 1.0

// Rect is an axis-aligned rectangle. Units are whatever the caller computes
// the layout in; the terminal renderer uses character cells.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// DividerInfo describes one draggable divider for rendering and hit testing.
type DividerInfo struct {
	// Path addresses the split node this divider belongs to.
	Path SplitPath
	Dir  SplitDir
	Rect Rect
}

// ComputedLayout is the result of subdividing a rectangle over the tree.
type ComputedLayout struct {
	PaneRects map[PaneID]Rect
	Dividers  []DividerInfo
}

// ComputeLayout recursively subdivides area over the tree: each split node
// hands its first child the clamped ratio share along the split axis, minus
// the divider bar between them.
func ComputeLayout(t *Tree, area Rect, dividerWidth float64) *ComputedLayout {
	out := &ComputedLayout{PaneRects: make(map[PaneID]Rect)}
	var path SplitPath
	computeNode(t.Root(), area, dividerWidth, &path, out)
	return out
}

func computeNode(n *Node, area Rect, dividerWidth float64, path *SplitPath, out *ComputedLayout) {
	if n.IsLeaf() {
		out.PaneRects[n.ID()] = area
		return
	}

	first, divider, second := splitRect(area, n.Dir(), n.Ratio(), dividerWidth)

	out.Dividers = append(out.Dividers, DividerInfo{
		Path: append(SplitPath{}, *path...),
		Dir:  n.Dir(),
		Rect: divider,
	})

	*path = append(*path, false)
	computeNode(n.First(), first, dividerWidth, path, out)
	(*path)[len(*path)-1] = true
	computeNode(n.Second(), second, dividerWidth, path, out)
	*path = (*path)[:len(*path)-1]
}

// splitRect divides area into (first, divider, second) along the given axis.
func splitRect(area Rect, dir SplitDir, ratio, dividerWidth float64) (Rect, Rect, Rect) {
	ratio = clampRatio(ratio)

	if dir == SplitHorizontal {
		avail := area.W - dividerWidth
		if avail < 0 {
			avail = 0
		}
		firstW := avail * ratio
		first := Rect{X: area.X, Y: area.Y, W: firstW, H: area.H}
		divider := Rect{X: area.X + firstW, Y: area.Y, W: dividerWidth, H: area.H}
		second := Rect{X: area.X + firstW + dividerWidth, Y: area.Y, W: avail - firstW, H: area.H}
		return first, divider, second
	}

	avail := area.H - dividerWidth
	if avail < 0 {
		avail = 0
	}
	firstH := avail * ratio
	first := Rect{X: area.X, Y: area.Y, W: area.W, H: firstH}
	divider := Rect{X: area.X, Y: area.Y + firstH, W: area.W, H: dividerWidth}
	second := Rect{X: area.X, Y: area.Y + firstH + dividerWidth, W: area.W, H: avail - firstH}
	return first, divider, second
}

// PaneAt returns the pane whose rectangle contains the point.
func (l *ComputedLayout) PaneAt(x, y float64) (PaneID, bool) {
	for id, r := range l.PaneRects {
		if r.Contains(x, y) {
			return id, true
		}
	}
	return 0, false
}

// DividerAt returns the index of the divider containing the point, or -1.
func (l *ComputedLayout) DividerAt(x, y float64) int {
	for i, d := range l.Dividers {
		if d.Rect.Contains(x, y) {
			return i
		}
	}
	return -1
}
