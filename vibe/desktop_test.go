// Copyright © 2026 VibeTerm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: vibe/desktop_test.go
// Summary: Exercises tab lifecycle and event broadcasting on the desktop.

package vibe

import (
	"errors"
	"testing"
)

func stubFactory(dir string) (Content, error) {
	return newStub("shell:" + dir), nil
}

type recordingListener struct {
	events []Event
}

func (l *recordingListener) OnEvent(ev Event) {
	l.events = append(l.events, ev)
}

func (l *recordingListener) count(t EventType) int {
	n := 0
	for _, ev := range l.events {
		if ev.Type == t {
			n++
		}
	}
	return n
}

func TestDesktopStartsWithOneTab(t *testing.T) {
	d, err := NewDesktop("/work", stubFactory)
	if err != nil {
		t.Fatal(err)
	}
	if len(d.Workspaces()) != 1 {
		t.Fatalf("got %d tabs, want 1", len(d.Workspaces()))
	}
	if d.Active().Dir() != "/work" {
		t.Fatalf("active dir = %q, want /work", d.Active().Dir())
	}
	if d.Active().PaneCount() != 1 {
		t.Fatal("new tab must hold exactly one pane")
	}
}

func TestDesktopTabLifecycle(t *testing.T) {
	d, err := NewDesktop("/a", stubFactory)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := d.NewTab("/b"); err != nil {
		t.Fatal(err)
	}
	if _, err := d.NewTab("/c"); err != nil {
		t.Fatal(err)
	}

	if d.ActiveIndex() != 2 {
		t.Fatalf("active index = %d, want newest tab 2", d.ActiveIndex())
	}

	d.NextTab()
	if d.ActiveIndex() != 0 {
		t.Fatalf("NextTab did not wrap, index = %d", d.ActiveIndex())
	}
	d.PrevTab()
	if d.ActiveIndex() != 2 {
		t.Fatalf("PrevTab did not wrap, index = %d", d.ActiveIndex())
	}

	if err := d.CloseTab(1); err != nil {
		t.Fatal(err)
	}
	if len(d.Workspaces()) != 2 {
		t.Fatalf("got %d tabs after close, want 2", len(d.Workspaces()))
	}
	// Active tab (/c) sat after the closed index and must stay active.
	if d.Active().Dir() != "/c" {
		t.Fatalf("active dir = %q, want /c", d.Active().Dir())
	}
}

func TestDesktopLastTabProtected(t *testing.T) {
	d, err := NewDesktop("/a", stubFactory)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.CloseTab(0); !errors.Is(err, ErrLastPane) {
		t.Fatalf("err = %v, want ErrLastPane", err)
	}
}

func TestDesktopMoveTabKeepsActiveWorkspace(t *testing.T) {
	d, err := NewDesktop("/a", stubFactory)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := d.NewTab("/b"); err != nil {
		t.Fatal(err)
	}
	if _, err := d.NewTab("/c"); err != nil {
		t.Fatal(err)
	}
	if err := d.SelectTab(1); err != nil {
		t.Fatal(err)
	}

	if err := d.MoveTab(1, 0); err != nil {
		t.Fatal(err)
	}
	if d.Active().Dir() != "/b" {
		t.Fatalf("active dir = %q, want /b to follow its tab", d.Active().Dir())
	}
	if d.Workspaces()[0].Dir() != "/b" {
		t.Fatalf("tab order = %q first, want /b", d.Workspaces()[0].Dir())
	}
}

func TestDesktopBroadcastsTreeAndFocusEvents(t *testing.T) {
	d, err := NewDesktop("/a", stubFactory)
	if err != nil {
		t.Fatal(err)
	}
	l := &recordingListener{}
	d.Subscribe(l)

	ws := d.Active()
	if _, err := ws.SplitFocused(SplitHorizontal, newStub("B")); err != nil {
		t.Fatal(err)
	}
	if l.count(EventTreeChanged) != 1 {
		t.Fatalf("tree-changed events = %d, want 1", l.count(EventTreeChanged))
	}
	if l.count(EventPaneFocusChanged) != 1 {
		t.Fatalf("focus-changed events = %d, want 1", l.count(EventPaneFocusChanged))
	}

	ws.FocusNext()
	if l.count(EventPaneFocusChanged) != 2 {
		t.Fatalf("focus-changed events = %d, want 2", l.count(EventPaneFocusChanged))
	}

	d.Unsubscribe(l)
	ws.FocusNext()
	if l.count(EventPaneFocusChanged) != 2 {
		t.Fatal("unsubscribed listener still received events")
	}
}

func TestDesktopCloseShutsDownAllContent(t *testing.T) {
	d, err := NewDesktop("/a", stubFactory)
	if err != nil {
		t.Fatal(err)
	}
	ws := d.Active()
	b := newStub("B")
	if _, err := ws.SplitFocused(SplitVertical, b); err != nil {
		t.Fatal(err)
	}

	d.Close()
	if !b.closed {
		t.Fatal("desktop close did not stop pane content")
	}
	root := ws.Tree().Root().First().Content().(*stubContent)
	if !root.closed {
		t.Fatal("desktop close did not stop the root pane content")
	}
}
