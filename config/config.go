// Copyright © 2026 VibeTerm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/config.go
// Summary: System configuration store for VibeTerm.
// Usage: Package-level store; sections are loaded once and saved as JSON
//        under the user config directory.

package config

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// Config stores configuration sections as JSON-compatible data.
type Config map[string]interface{}

// Section stores key/value pairs for a configuration section.
type Section map[string]interface{}

var (
	mu      sync.RWMutex
	once    sync.Once
	system  Config
	loadErr error
)

// Err returns the most recent system config load error.
func Err() error {
	once.Do(initStore)
	mu.RLock()
	defer mu.RUnlock()
	return loadErr
}

// System returns the system configuration (vibeterm.json).
func System() Config {
	once.Do(initStore)
	mu.RLock()
	defer mu.RUnlock()
	return system
}

func initStore() {
	mu.Lock()
	defer mu.Unlock()
	system = make(Config)
	loadErr = loadSystemLocked()
	applySystemDefaults(system)
}

func loadSystemLocked() error {
	path, err := systemConfigPath()
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if err := json.Unmarshal(data, &system); err != nil {
		log.Printf("config: failed to parse %s: %v", path, err)
		return err
	}
	return nil
}

// Save writes the system configuration back to disk.
func Save() error {
	once.Do(initStore)
	mu.RLock()
	defer mu.RUnlock()

	path, err := systemConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(system, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Reset clears the store so the next access reloads from disk. Test hook.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	once = sync.Once{}
	system = nil
	loadErr = nil
}
