// Copyright © 2026 VibeTerm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/paths.go
// Summary: Path helpers for VibeTerm configuration and state.

package config

import (
	"os"
	"path/filepath"
)

const systemConfigName = "vibeterm.json"

func configRoot() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "vibeterm"), nil
}

func systemConfigPath() (string, error) {
	root, err := configRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, systemConfigName), nil
}

// StateDir returns the directory for mutable state: logs and the session
// database. Falls back to the config root when no state home is available.
func StateDir() (string, error) {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "vibeterm"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return configRoot()
	}
	return filepath.Join(home, ".local", "state", "vibeterm"), nil
}
