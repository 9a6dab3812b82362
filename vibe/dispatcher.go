// Copyright © 2026 VibeTerm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: vibe/dispatcher.go
// Summary: Event fan-out between the desktop, workspaces and collaborators.

package vibe

import "sync"

// EventType defines the type of an event.
type EventType int

const (
	// Pane events
	EventPaneFocusChanged EventType = iota
	EventPaneClosed
	EventTreeChanged
	// Tab events
	EventTabsChanged
	EventTabSelected
	// Global events
	EventThemeChanged
)

// Event is a message passed through the system: a type plus an arbitrary
// payload.
type Event struct {
	Type    EventType
	Payload interface{}
}

// Listener receives broadcast events.
type Listener interface {
	OnEvent(event Event)
}

// EventDispatcher manages a list of listeners and broadcasts events to them.
type EventDispatcher struct {
	mu        sync.RWMutex
	listeners []Listener
}

// NewEventDispatcher creates a new dispatcher.
func NewEventDispatcher() *EventDispatcher {
	return &EventDispatcher{listeners: make([]Listener, 0)}
}

// Subscribe adds a listener.
func (d *EventDispatcher) Subscribe(listener Listener) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners = append(d.listeners, listener)
}

// Unsubscribe removes a listener.
func (d *EventDispatcher) Unsubscribe(listener Listener) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, l := range d.listeners {
		if l == listener {
			d.listeners = append(d.listeners[:i], d.listeners[i+1:]...)
			break
		}
	}
}

// Broadcast sends an event to all subscribed listeners.
func (d *EventDispatcher) Broadcast(event Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, l := range d.listeners {
		l.OnEvent(event)
	}
}
