// Copyright © 2026 VibeTerm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: render/renderer.go
// Summary: Draws the desktop: tab bar, pane boxes, dividers, status bar.
// Usage: Stateless between frames; consumes the layout computed from the
//        active workspace tree each time Render is called.

package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/vibeterm/vibe"
)

// Renderer maps the desktop state onto a screen driver.
type Renderer struct {
	driver  ScreenDriver
	theme   Theme
	sidebar int // columns reserved on the left, 0 when hidden
}

// NewRenderer creates a renderer on the given driver.
func NewRenderer(driver ScreenDriver, theme Theme) *Renderer {
	return &Renderer{driver: driver, theme: theme}
}

// SetTheme swaps the palette, e.g. after a preferences change.
func (r *Renderer) SetTheme(theme Theme) {
	r.theme = theme
}

// SetSidebarWidth reserves columns on the left for the sidebar; 0 hides it.
func (r *Renderer) SetSidebarWidth(w int) {
	if w < 0 {
		w = 0
	}
	r.sidebar = w
}

// SidebarWidth returns the reserved sidebar columns.
func (r *Renderer) SidebarWidth() int { return r.sidebar }

// Layout recomputes the pane geometry for the current screen size. The tab
// bar takes the top row and the status bar the bottom row.
func (r *Renderer) Layout(d *vibe.Desktop, dividerWidth float64) *vibe.ComputedLayout {
	w, h := r.driver.Size()
	area := r.paneArea(w, h)
	return vibe.ComputeLayout(d.Active().Tree(), area, dividerWidth)
}

func (r *Renderer) paneArea(w, h int) vibe.Rect {
	top := 1.0 // tab bar
	bottom := 1.0
	left := float64(r.sidebar)
	pw := float64(w) - left
	if pw < 0 {
		pw = 0
	}
	ph := float64(h) - top - bottom
	if ph < 0 {
		ph = 0
	}
	return vibe.Rect{X: left, Y: top, W: pw, H: ph}
}

// Render draws one full frame. sidebar may be nil when the sidebar is
// hidden.
func (r *Renderer) Render(d *vibe.Desktop, layout *vibe.ComputedLayout, drop *vibe.DropZoneInfo, sidebar []Line) {
	w, h := r.driver.Size()
	r.fill(0, 0, w, h, ' ', tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Text))

	r.drawTabBar(d, w)
	r.drawDividers(layout)
	r.drawPanes(d.Active(), layout)
	if drop != nil {
		r.drawDropHint(*drop)
	}
	r.drawStatusBar(d, w, h)
	r.drawSidebarFrame(h)
	r.drawSidebarLines(sidebar, h)

	r.driver.HideCursor()
	r.driver.Show()
}

func (r *Renderer) fill(x, y, w, h int, ch rune, style tcell.Style) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			r.driver.SetContent(col, row, ch, nil, style)
		}
	}
}

func (r *Renderer) drawText(x, y, maxWidth int, text string, style tcell.Style) int {
	col := x
	for _, ch := range text {
		cw := runewidth.RuneWidth(ch)
		if col+cw > x+maxWidth {
			break
		}
		r.driver.SetContent(col, y, ch, nil, style)
		col += cw
	}
	return col - x
}

func (r *Renderer) drawTabBar(d *vibe.Desktop, w int) {
	barStyle := tcell.StyleDefault.Background(r.theme.Surface).Foreground(r.theme.TextDim)
	r.fill(0, 0, w, 1, ' ', barStyle)

	x := 0
	for i, ws := range d.Workspaces() {
		label := fmt.Sprintf(" %s ", ws.Name())
		style := barStyle
		if i == d.ActiveIndex() {
			style = tcell.StyleDefault.Background(r.theme.Primary).Foreground(r.theme.Background).Bold(true)
		}
		x += r.drawText(x, 0, w-x, label, style)
		if x >= w {
			break
		}
	}
}

// TabAt maps a tab-bar column to a workspace index, mirroring the label
// layout drawTabBar produces.
func (r *Renderer) TabAt(d *vibe.Desktop, x int) (int, bool) {
	col := 0
	for i, ws := range d.Workspaces() {
		width := runewidth.StringWidth(" " + ws.Name() + " ")
		if x >= col && x < col+width {
			return i, true
		}
		col += width
	}
	return 0, false
}

func (r *Renderer) drawStatusBar(d *vibe.Desktop, w, h int) {
	if h < 2 {
		return
	}
	y := h - 1
	style := tcell.StyleDefault.Background(r.theme.Surface).Foreground(r.theme.Text)
	r.fill(0, y, w, 1, ' ', style)

	ws := d.Active()
	title := ""
	if focused := ws.Tree().Focused(); focused != nil && focused.Content() != nil {
		title = focused.Content().Title()
	}
	left := fmt.Sprintf(" %s — %s", title, ws.Dir())
	r.drawText(0, y, w, left, style)

	right := fmt.Sprintf("%d panes ", ws.PaneCount())
	rw := runewidth.StringWidth(right)
	if rw < w {
		r.drawText(w-rw, y, rw, right, tcell.StyleDefault.Background(r.theme.Surface).Foreground(r.theme.TextDim))
	}
}

func (r *Renderer) drawDividers(layout *vibe.ComputedLayout) {
	style := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Border)
	for _, d := range layout.Dividers {
		x, y, w, h := cellRect(d.Rect)
		ch := '│'
		if d.Dir == vibe.SplitVertical {
			ch = '─'
		}
		r.fill(x, y, w, h, ch, style)
	}
}

func (r *Renderer) drawPanes(ws *vibe.Workspace, layout *vibe.ComputedLayout) {
	focused := ws.FocusedPane()
	ws.Tree().Walk(func(n *vibe.Node) {
		if !n.IsLeaf() {
			return
		}
		rect, ok := layout.PaneRects[n.ID()]
		if !ok {
			return
		}
		r.drawPane(n, rect, n.ID() == focused)
	})
}

func (r *Renderer) drawPane(n *vibe.Node, rect vibe.Rect, focused bool) {
	x, y, w, h := cellRect(rect)
	if w < 2 || h < 2 {
		return
	}

	borderColor := r.theme.Border
	if focused {
		borderColor = r.theme.Primary
	}
	borderStyle := tcell.StyleDefault.Background(r.theme.Background).Foreground(borderColor)
	r.drawBox(x, y, w, h, borderStyle)

	title := ""
	if n.Content() != nil {
		title = n.Content().Title()
	}
	if title != "" {
		r.drawText(x+2, y, w-4, " "+title+" ", borderStyle.Bold(focused))
	}

	viewable, ok := n.Content().(Viewable)
	if !ok {
		return
	}
	innerW, innerH := w-2, h-2
	textStyle := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Text)
	for row, line := range viewable.ViewLines(innerW, innerH) {
		if row >= innerH {
			break
		}
		col := 0
		for _, seg := range line {
			style := textStyle
			if seg.Color != "" {
				style = textStyle.Foreground(tcell.GetColor(seg.Color))
			}
			col += r.drawText(x+1+col, y+1+row, innerW-col, seg.Text, style)
			if col >= innerW {
				break
			}
		}
	}
}

func (r *Renderer) drawBox(x, y, w, h int, style tcell.Style) {
	for col := x + 1; col < x+w-1; col++ {
		r.driver.SetContent(col, y, '─', nil, style)
		r.driver.SetContent(col, y+h-1, '─', nil, style)
	}
	for row := y + 1; row < y+h-1; row++ {
		r.driver.SetContent(x, row, '│', nil, style)
		r.driver.SetContent(x+w-1, row, '│', nil, style)
	}
	r.driver.SetContent(x, y, '┌', nil, style)
	r.driver.SetContent(x+w-1, y, '┐', nil, style)
	r.driver.SetContent(x, y+h-1, '└', nil, style)
	r.driver.SetContent(x+w-1, y+h-1, '┘', nil, style)
}

func (r *Renderer) drawSidebarFrame(h int) {
	if r.sidebar <= 0 || h < 3 {
		return
	}
	style := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Border)
	for row := 1; row < h-1; row++ {
		r.driver.SetContent(r.sidebar-1, row, '│', nil, style)
	}
}

func (r *Renderer) drawSidebarLines(lines []Line, h int) {
	if r.sidebar <= 1 {
		return
	}
	innerW := r.sidebar - 1
	textStyle := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Text)
	for row, line := range lines {
		y := 1 + row
		if y >= h-1 {
			break
		}
		col := 0
		for _, seg := range line {
			style := textStyle
			if seg.Color != "" {
				style = textStyle.Foreground(tcell.GetColor(seg.Color))
			}
			col += r.drawText(col, y, innerW-col, seg.Text, style)
			if col >= innerW {
				break
			}
		}
	}
}

func (r *Renderer) drawDropHint(zone vibe.DropZoneInfo) {
	x, y, w, h := cellRect(zone.Rect)
	style := tcell.StyleDefault.Background(r.theme.Selection).Foreground(r.theme.Text)
	r.fill(x, y, w, h, '░', style)
}

// cellRect truncates a fractional rect onto the character grid.
func cellRect(r vibe.Rect) (int, int, int, int) {
	return int(r.X), int(r.Y), int(r.W), int(r.H)
}
