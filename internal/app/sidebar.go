// Copyright © 2026 VibeTerm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/app/sidebar.go
// Summary: Formats the context snapshot into sidebar lines: project header,
//          git branch, pinned files, then the directory tree.

package app

import (
	"path/filepath"
	"strings"

	"github.com/framegrace/vibeterm/contextmgr"
	"github.com/framegrace/vibeterm/gitstatus"
	"github.com/framegrace/vibeterm/render"
	"github.com/framegrace/vibeterm/workdir"
)

const (
	colorHeader   = "#E8A849"
	colorBranch   = "#7FB069"
	colorDim      = "#8A7A6E"
	colorModified = "#E8A849"
	colorAdded    = "#7FB069"
	colorDeleted  = "#C84C3C"
	colorConflict = "#C84C3C"
	colorPinned   = "#B5838D"
)

func sidebarLines(snap contextmgr.Snapshot, width int) []render.Line {
	var lines []render.Line
	add := func(segs ...render.Segment) {
		lines = append(lines, render.Line(segs))
	}

	header := filepath.Base(snap.Dir)
	if snap.ProjectRoot != "" {
		header = filepath.Base(snap.ProjectRoot)
	}
	add(render.Segment{Text: " " + header, Color: colorHeader})

	if snap.IsRepo {
		branch := snap.Git.Branch
		marker := ""
		if snap.Git.Dirty() {
			marker = " *"
		}
		add(render.Segment{Text: "  " + branch, Color: colorBranch},
			render.Segment{Text: marker, Color: colorModified})
	}
	add()

	if len(snap.Pinned) > 0 {
		add(render.Segment{Text: " pinned", Color: colorDim})
		for _, pin := range snap.Pinned {
			add(render.Segment{Text: "  ⊙ ", Color: colorPinned},
				render.Segment{Text: contextmgr.DisplayName(snap.Pinned, pin)})
		}
		add()
	}

	for _, e := range snap.Entries {
		indent := strings.Repeat("  ", e.Depth+1)
		name := e.Name
		if e.IsDir {
			add(render.Segment{Text: indent + name + "/", Color: colorDim})
			continue
		}
		seg := render.Segment{Text: indent + name}
		if state, ok := gitState(snap, e.Path); ok {
			seg.Color = stateColor(state)
		}
		add(seg)
	}

	// Clip to width so a long path cannot leak under the panes.
	for i, line := range lines {
		lines[i] = clipLine(line, width)
	}
	return lines
}

// sidebarEntryAt maps a sidebar row (0 = first line under the tab bar) back
// to the directory entry rendered there. Must mirror sidebarLines' layout.
func sidebarEntryAt(snap contextmgr.Snapshot, row int) (workdir.Entry, bool) {
	offset := 1 // header
	if snap.IsRepo {
		offset++
	}
	offset++ // blank
	if len(snap.Pinned) > 0 {
		offset += 1 + len(snap.Pinned) + 1
	}
	i := row - offset
	if i < 0 || i >= len(snap.Entries) {
		return workdir.Entry{}, false
	}
	return snap.Entries[i], true
}

// gitState resolves an entry's porcelain state; entries are relative to the
// scan dir while git paths are relative to the repo root.
func gitState(snap contextmgr.Snapshot, rel string) (gitstatus.FileState, bool) {
	if !snap.IsRepo {
		return 0, false
	}
	candidates := []string{rel}
	if snap.ProjectRoot != "" && snap.ProjectRoot != snap.Dir {
		if sub, err := filepath.Rel(snap.ProjectRoot, filepath.Join(snap.Dir, rel)); err == nil {
			candidates = append(candidates, filepath.ToSlash(sub))
		}
	}
	for _, c := range candidates {
		if state, ok := snap.Git.Files[c]; ok {
			return state, true
		}
	}
	return 0, false
}

func stateColor(state gitstatus.FileState) string {
	switch state {
	case gitstatus.StateAdded, gitstatus.StateUntracked:
		return colorAdded
	case gitstatus.StateDeleted:
		return colorDeleted
	case gitstatus.StateConflicted:
		return colorConflict
	default:
		return colorModified
	}
}

func clipLine(line render.Line, width int) render.Line {
	var out render.Line
	used := 0
	for _, seg := range line {
		if used >= width {
			break
		}
		runes := []rune(seg.Text)
		if used+len(runes) > width {
			runes = runes[:width-used]
		}
		out = append(out, render.Segment{Text: string(runes), Color: seg.Color})
		used += len(runes)
	}
	return out
}
