// Copyright © 2026 VibeTerm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: vibe/desktop.go
// Summary: Desktop owns the ordered workspaces (tabs) and the active one.
// Usage: The single owner of all layout state; mutated only from the UI
//        event loop, background services report in over channels.

package vibe

import (
	"fmt"
	"log"
	"os"
)

// ContentFactory creates the content for a fresh pane, typically a shell
// session rooted in the workspace directory.
type ContentFactory func(dir string) (Content, error)

// Desktop is the application state: every tab, which one is active, and the
// dispatcher collaborators subscribe to.
type Desktop struct {
	workspaces []*Workspace
	active     int
	dispatcher *EventDispatcher
	factory    ContentFactory
	tabSeq     int
}

// NewDesktop creates a desktop with a single workspace built from the
// factory, rooted in dir (the process working directory when empty).
func NewDesktop(dir string, factory ContentFactory) (*Desktop, error) {
	if dir == "" {
		if wd, err := os.Getwd(); err == nil {
			dir = wd
		} else {
			dir = "/"
		}
	}
	d := &Desktop{
		dispatcher: NewEventDispatcher(),
		factory:    factory,
	}
	if _, err := d.NewTab(dir); err != nil {
		return nil, err
	}
	return d, nil
}

// Subscribe registers a listener for desktop events.
func (d *Desktop) Subscribe(listener Listener) {
	d.dispatcher.Subscribe(listener)
}

// Unsubscribe removes a listener.
func (d *Desktop) Unsubscribe(listener Listener) {
	d.dispatcher.Unsubscribe(listener)
}

// Workspaces returns the tabs in display order. Callers must not mutate the
// returned slice.
func (d *Desktop) Workspaces() []*Workspace {
	return d.workspaces
}

// Active returns the active workspace.
func (d *Desktop) Active() *Workspace {
	return d.workspaces[d.active]
}

// ActiveIndex returns the index of the active workspace.
func (d *Desktop) ActiveIndex() int {
	return d.active
}

// NewTab appends a workspace rooted in dir and makes it active.
func (d *Desktop) NewTab(dir string) (*Workspace, error) {
	content, err := d.factory(dir)
	if err != nil {
		return nil, err
	}
	d.tabSeq++
	ws := NewWorkspace(tabName(d.tabSeq), dir, content)
	ws.desktop = d
	d.workspaces = append(d.workspaces, ws)
	d.active = len(d.workspaces) - 1
	log.Printf("desktop: opened tab %q in %s", ws.Name(), dir)
	d.dispatcher.Broadcast(Event{Type: EventTabsChanged})
	d.dispatcher.Broadcast(Event{Type: EventTabSelected, Payload: ws})
	return ws, nil
}

func tabName(seq int) string {
	return fmt.Sprintf("Tab %d", seq)
}

// CloseTab closes the workspace at index, shutting down its panes. The last
// tab cannot be closed; the desktop always shows at least one workspace.
func (d *Desktop) CloseTab(index int) error {
	if index < 0 || index >= len(d.workspaces) {
		return ErrNotFound
	}
	if len(d.workspaces) == 1 {
		return ErrLastPane
	}
	ws := d.workspaces[index]
	ws.CloseAll()
	d.workspaces = append(d.workspaces[:index], d.workspaces[index+1:]...)
	if d.active >= len(d.workspaces) {
		d.active = len(d.workspaces) - 1
	} else if d.active > index {
		d.active--
	}
	log.Printf("desktop: closed tab %q", ws.Name())
	d.dispatcher.Broadcast(Event{Type: EventTabsChanged})
	d.dispatcher.Broadcast(Event{Type: EventTabSelected, Payload: d.Active()})
	return nil
}

// SelectTab makes the workspace at index active.
func (d *Desktop) SelectTab(index int) error {
	if index < 0 || index >= len(d.workspaces) {
		return ErrNotFound
	}
	if index == d.active {
		return nil
	}
	d.active = index
	d.dispatcher.Broadcast(Event{Type: EventTabSelected, Payload: d.Active()})
	return nil
}

// NextTab cycles to the following tab.
func (d *Desktop) NextTab() {
	_ = d.SelectTab((d.active + 1) % len(d.workspaces))
}

// PrevTab cycles to the preceding tab.
func (d *Desktop) PrevTab() {
	_ = d.SelectTab((d.active - 1 + len(d.workspaces)) % len(d.workspaces))
}

// MoveTab reorders a tab from one index to another, keeping the same
// workspace active.
func (d *Desktop) MoveTab(from, to int) error {
	if from < 0 || from >= len(d.workspaces) || to < 0 || to >= len(d.workspaces) {
		return ErrNotFound
	}
	if from == to {
		return nil
	}
	activeWs := d.Active()
	ws := d.workspaces[from]
	d.workspaces = append(d.workspaces[:from], d.workspaces[from+1:]...)
	rest := append([]*Workspace{}, d.workspaces[to:]...)
	d.workspaces = append(d.workspaces[:to], ws)
	d.workspaces = append(d.workspaces, rest...)
	for i, w := range d.workspaces {
		if w == activeWs {
			d.active = i
			break
		}
	}
	d.dispatcher.Broadcast(Event{Type: EventTabsChanged})
	return nil
}

// NewPaneContent builds content for a split in the given workspace.
func (d *Desktop) NewPaneContent(ws *Workspace) (Content, error) {
	return d.factory(ws.Dir())
}

// Close shuts down every workspace.
func (d *Desktop) Close() {
	for _, ws := range d.workspaces {
		ws.CloseAll()
	}
}

func (d *Desktop) broadcastTreeChanged(ws *Workspace) {
	d.dispatcher.Broadcast(Event{Type: EventTreeChanged, Payload: ws})
}

func (d *Desktop) broadcastFocusChanged(ws *Workspace) {
	d.dispatcher.Broadcast(Event{Type: EventPaneFocusChanged, Payload: ws})
}
