// Copyright © 2026 VibeTerm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/defaults.go
// Summary: Default values for the VibeTerm configuration file.

package config

func applySystemDefaults(cfg Config) {
	if cfg == nil {
		return
	}
	cfg.RegisterDefaults("theme", Section{
		// Dark brown default palette.
		"background":    "#2E1A16",
		"surface":       "#3A241E",
		"surface_light": "#462E26",
		"text":          "#F4F1DE",
		"text_dim":      "#A0968A",
		"primary":       "#E07A5F",
		"secondary":     "#81B29A",
		"border":        "#5A3E35",
		"selection":     "#6B4A3E",
	})
	cfg.RegisterDefaults("font", Section{
		"family": "monospace",
		"size":   14.0,
	})
	cfg.RegisterDefaults("ui", Section{
		"show_sidebar":     true,
		"sidebar_width":    28,
		"show_status_bar":  true,
		"divider_width":    1,
		"highlight_style":  "catppuccin-mocha",
		"confirm_close":    true,
		"scrollback_lines": 2000,
	})
	cfg.RegisterDefaults("watcher", Section{
		"enabled":     true,
		"debounce_ms": 200,
	})
	cfg.RegisterDefaults("context", Section{
		"git_status_enabled":     true,
		"git_refresh_interval_s": 5,
		"max_pinned_files":       16,
		"cwd_poll_interval_ms":   500,
		"sidebar_max_depth":      6,
		"sidebar_max_files":      2000,
	})
}
