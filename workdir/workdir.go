// Copyright © 2026 VibeTerm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: workdir/workdir.go
// Summary: Builds the sidebar's file listing: a bounded recursive scan of
//          the working directory, plus project-root detection.

package workdir

import (
	"os"
	"path/filepath"
	"sort"
)

// Entry is one row of the sidebar tree.
type Entry struct {
	Path  string // relative to the scan root
	Name  string
	IsDir bool
	Depth int
}

// ScanLimits bound a scan so a pane opened in $HOME stays responsive.
type ScanLimits struct {
	MaxDepth int // directory levels below the root; 0 means root only
	MaxFiles int // total entries collected before the scan stops
}

// DefaultLimits mirrors the context.sidebar_* config defaults.
var DefaultLimits = ScanLimits{MaxDepth: 6, MaxFiles: 2000}

// projectMarkers identify a directory as a project root, checked in order.
var projectMarkers = []string{
	".git",
	"go.mod",
	"package.json",
	"Cargo.toml",
	"pyproject.toml",
	"Makefile",
}

// Scan walks root depth-first, directories before files at each level, both
// groups sorted by name. Dotfiles and dot-directories are skipped. The walk
// stops quietly once limits.MaxFiles entries are collected; unreadable
// directories are skipped rather than failing the scan.
func Scan(root string, limits ScanLimits) ([]Entry, error) {
	if limits.MaxFiles <= 0 {
		limits = DefaultLimits
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, &os.PathError{Op: "scan", Path: root, Err: os.ErrInvalid}
	}

	var out []Entry
	scanDir(root, "", 0, limits, &out)
	return out, nil
}

func scanDir(root, rel string, depth int, limits ScanLimits, out *[]Entry) {
	if len(*out) >= limits.MaxFiles {
		return
	}
	entries, err := os.ReadDir(filepath.Join(root, rel))
	if err != nil {
		return
	}

	var dirs, files []os.DirEntry
	for _, e := range entries {
		if e.Name()[0] == '.' {
			continue
		}
		if e.IsDir() {
			dirs = append(dirs, e)
		} else {
			files = append(files, e)
		}
	}
	byName := func(s []os.DirEntry) {
		sort.Slice(s, func(i, j int) bool { return s[i].Name() < s[j].Name() })
	}
	byName(dirs)
	byName(files)

	for _, d := range dirs {
		if len(*out) >= limits.MaxFiles {
			return
		}
		childRel := filepath.Join(rel, d.Name())
		*out = append(*out, Entry{Path: childRel, Name: d.Name(), IsDir: true, Depth: depth})
		if depth < limits.MaxDepth {
			scanDir(root, childRel, depth+1, limits, out)
		}
	}
	for _, f := range files {
		if len(*out) >= limits.MaxFiles {
			return
		}
		childRel := filepath.Join(rel, f.Name())
		*out = append(*out, Entry{Path: childRel, Name: f.Name(), IsDir: false, Depth: depth})
	}
}

// IsProjectRoot reports whether dir carries a recognized project marker.
func IsProjectRoot(dir string) bool {
	for _, marker := range projectMarkers {
		if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
			return true
		}
	}
	return false
}

// FindProjectRoot walks upward from dir to the nearest project root. The
// second return is false when no ancestor carries a marker.
func FindProjectRoot(dir string) (string, bool) {
	cur, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	for {
		if IsProjectRoot(cur) {
			return cur, true
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return "", false
		}
		cur = parent
	}
}
