// Copyright © 2026 VibeTerm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: palette/palette.go
// Summary: The command palette: a named-action registry with fuzzy search
//          and a cursor over the filtered results.

package palette

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Command is one palette entry.
type Command struct {
	Name     string // what the user types against, e.g. "Split Right"
	Category string // groups entries in the listing, e.g. "Pane"
	Action   func() error
}

// Registry holds the available commands in registration order.
type Registry struct {
	commands []Command
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds cmd. A later registration with the same name replaces the
// earlier one, so apps can override built-ins.
func (r *Registry) Register(cmd Command) {
	for i, existing := range r.commands {
		if existing.Name == cmd.Name {
			r.commands[i] = cmd
			return
		}
	}
	r.commands = append(r.commands, cmd)
}

// Commands returns all entries in registration order.
func (r *Registry) Commands() []Command {
	return append([]Command(nil), r.commands...)
}

// Filter returns commands matching query, best match first. An empty query
// returns everything in registration order.
func (r *Registry) Filter(query string) []Command {
	query = strings.TrimSpace(query)
	if query == "" {
		return r.Commands()
	}

	names := make([]string, len(r.commands))
	for i, c := range r.commands {
		names[i] = c.Name
	}

	ranks := fuzzy.RankFindNormalizedFold(query, names)
	sort.Stable(ranks)

	byName := make(map[string]Command, len(r.commands))
	for _, c := range r.commands {
		byName[c.Name] = c
	}

	out := make([]Command, 0, len(ranks))
	for _, rank := range ranks {
		out = append(out, byName[rank.Target])
	}
	return out
}

// Palette is the open-palette UI state: the query plus a cursor into the
// filtered results.
type Palette struct {
	registry *Registry
	query    string
	results  []Command
	cursor   int
}

// Open builds palette state over a registry with an empty query.
func Open(registry *Registry) *Palette {
	p := &Palette{registry: registry}
	p.SetQuery("")
	return p
}

// SetQuery replaces the query and resets the cursor.
func (p *Palette) SetQuery(query string) {
	p.query = query
	p.results = p.registry.Filter(query)
	p.cursor = 0
}

// Query returns the current query text.
func (p *Palette) Query() string { return p.query }

// Results returns the current filtered commands.
func (p *Palette) Results() []Command {
	return append([]Command(nil), p.results...)
}

// Cursor returns the selected index, -1 when there are no results.
func (p *Palette) Cursor() int {
	if len(p.results) == 0 {
		return -1
	}
	return p.cursor
}

// MoveCursor shifts the selection by delta, wrapping at either end.
func (p *Palette) MoveCursor(delta int) {
	n := len(p.results)
	if n == 0 {
		return
	}
	p.cursor = ((p.cursor+delta)%n + n) % n
}

// Execute runs the selected command; ok is false when nothing is selected.
func (p *Palette) Execute() (ok bool, err error) {
	if len(p.results) == 0 {
		return false, nil
	}
	return true, p.results[p.cursor].Action()
}
