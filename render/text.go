// Copyright © 2026 VibeTerm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: render/text.go
// Summary: Styled text model handed from pane content to the renderer.

package render

// Segment is a run of text in a single color. Color is a hex string like
// "#E07A5F"; empty means the theme's default text color.
type Segment struct {
	Text  string
	Color string
}

// Line is one row of styled segments.
type Line []Segment

// Viewable content paints itself as styled lines fitting the given box.
// Pane content that does not implement Viewable renders as an empty box
// with only border and title.
type Viewable interface {
	ViewLines(width, height int) []Line
}

// PlainLines wraps raw strings into unstyled lines.
func PlainLines(rows []string) []Line {
	lines := make([]Line, len(rows))
	for i, row := range rows {
		lines[i] = Line{{Text: row}}
	}
	return lines
}
