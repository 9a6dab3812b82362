// Copyright © 2026 VibeTerm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: render/palette.go
// Summary: Draws the command palette as a centered overlay box.

package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/vibeterm/palette"
)

const (
	paletteMaxWidth = 60
	paletteMaxRows  = 12
)

// RenderPalette draws the open palette over the current frame and shows the
// result. Call after Render.
func (r *Renderer) RenderPalette(p *palette.Palette) {
	sw, sh := r.driver.Size()
	w := paletteMaxWidth
	if w > sw-4 {
		w = sw - 4
	}
	if w < 10 {
		return
	}

	results := p.Results()
	rows := len(results)
	if rows > paletteMaxRows {
		rows = paletteMaxRows
	}
	h := rows + 4 // border, query line, separator, border
	if h > sh-2 {
		h = sh - 2
		rows = h - 4
	}
	if rows < 0 {
		return
	}
	x := (sw - w) / 2
	y := (sh - h) / 3

	boxStyle := tcell.StyleDefault.Background(r.theme.Surface).Foreground(r.theme.Text)
	borderStyle := tcell.StyleDefault.Background(r.theme.Surface).Foreground(r.theme.Primary)

	r.fill(x, y, w, h, ' ', boxStyle)
	r.drawBox(x, y, w, h, borderStyle)

	r.drawText(x+2, y+1, w-4, "> "+p.Query(), boxStyle.Bold(true))
	for col := x + 1; col < x+w-1; col++ {
		r.driver.SetContent(col, y+2, '─', nil, borderStyle)
	}

	// Window the results around the cursor.
	start := 0
	cursor := p.Cursor()
	if cursor >= rows {
		start = cursor - rows + 1
	}
	for i := 0; i < rows && start+i < len(results); i++ {
		cmd := results[start+i]
		style := boxStyle
		if start+i == cursor {
			style = tcell.StyleDefault.Background(r.theme.Selection).Foreground(r.theme.Text).Bold(true)
			r.fill(x+1, y+3+i, w-2, 1, ' ', style)
		}
		label := cmd.Name
		if cmd.Category != "" {
			pad := w - 4 - runewidth.StringWidth(label) - runewidth.StringWidth(cmd.Category)
			if pad > 1 {
				label += spaces(pad) + cmd.Category
			}
		}
		r.drawText(x+2, y+3+i, w-4, label, style)
	}

	r.driver.Show()
}

func spaces(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
