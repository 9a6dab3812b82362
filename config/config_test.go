// Copyright © 2026 VibeTerm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/config_test.go
// Summary: Exercises config defaults, typed accessors and persistence.

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func withTempConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	Reset()
	t.Cleanup(Reset)
	return dir
}

func TestDefaultsAppliedOnMissingFile(t *testing.T) {
	withTempConfig(t)

	cfg := System()
	if Err() != nil {
		t.Fatalf("load error on missing file: %v", Err())
	}
	if got := cfg.GetString("theme", "background", ""); got != "#2E1A16" {
		t.Fatalf("default background = %q", got)
	}
	if !cfg.GetBool("ui", "show_sidebar", false) {
		t.Fatal("default show_sidebar should be true")
	}
	if got := cfg.GetInt("context", "git_refresh_interval_s", 0); got != 5 {
		t.Fatalf("default git refresh interval = %d", got)
	}
}

func TestLoadMergesUserValuesOverDefaults(t *testing.T) {
	dir := withTempConfig(t)

	path := filepath.Join(dir, "vibeterm", "vibeterm.json")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	payload := `{"theme": {"background": "#000000"}, "ui": {"sidebar_width": 40}}`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}
	Reset()

	cfg := System()
	if got := cfg.GetString("theme", "background", ""); got != "#000000" {
		t.Fatalf("user background not honored, got %q", got)
	}
	// Untouched keys in the same section keep their defaults.
	if got := cfg.GetString("theme", "text", ""); got != "#F4F1DE" {
		t.Fatalf("default text lost, got %q", got)
	}
	if got := cfg.GetInt("ui", "sidebar_width", 0); got != 40 {
		t.Fatalf("sidebar_width = %d, want 40", got)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	withTempConfig(t)

	System().Set("theme", "primary", "#FFAA00")
	if err := Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	Reset()

	if got := System().GetString("theme", "primary", ""); got != "#FFAA00" {
		t.Fatalf("persisted primary = %q, want #FFAA00", got)
	}
}

func TestTypedAccessorCoercions(t *testing.T) {
	withTempConfig(t)
	cfg := System()
	cfg.Set("ui", "divider_width", "3")
	cfg.Set("ui", "show_status_bar", "false")
	cfg.Set("font", "size", 16)

	if got := cfg.GetInt("ui", "divider_width", 0); got != 3 {
		t.Fatalf("string-to-int coercion = %d", got)
	}
	if cfg.GetBool("ui", "show_status_bar", true) {
		t.Fatal("string-to-bool coercion failed")
	}
	if got := cfg.GetFloat("font", "size", 0); got != 16 {
		t.Fatalf("int-to-float coercion = %v", got)
	}
	if got := cfg.GetString("nope", "missing", "fallback"); got != "fallback" {
		t.Fatalf("missing section fallback = %q", got)
	}
}
