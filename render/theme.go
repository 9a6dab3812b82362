// Copyright © 2026 VibeTerm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: render/theme.go
// Summary: Runtime theme resolved from the config store.

package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/vibeterm/config"
)

// Theme holds the resolved colors used while drawing.
type Theme struct {
	Background   tcell.Color
	Surface      tcell.Color
	Text         tcell.Color
	TextDim      tcell.Color
	Primary      tcell.Color
	Secondary    tcell.Color
	Border       tcell.Color
	Selection    tcell.Color
	HighlightSty string
}

// LoadTheme resolves the theme section of the system config.
func LoadTheme() Theme {
	cfg := config.System()
	get := func(key, fallback string) tcell.Color {
		return tcell.GetColor(cfg.GetString("theme", key, fallback))
	}
	return Theme{
		Background:   get("background", "#2E1A16"),
		Surface:      get("surface", "#3A241E"),
		Text:         get("text", "#F4F1DE"),
		TextDim:      get("text_dim", "#A0968A"),
		Primary:      get("primary", "#E07A5F"),
		Secondary:    get("secondary", "#81B29A"),
		Border:       get("border", "#5A3E35"),
		Selection:    get("selection", "#6B4A3E"),
		HighlightSty: cfg.GetString("ui", "highlight_style", "catppuccin-mocha"),
	}
}
