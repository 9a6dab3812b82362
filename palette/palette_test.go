// Copyright © 2026 VibeTerm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: palette/palette_test.go

package palette

import (
	"errors"
	"testing"
)

func testRegistry() *Registry {
	r := NewRegistry()
	noop := func() error { return nil }
	r.Register(Command{Name: "Split Right", Category: "Pane", Action: noop})
	r.Register(Command{Name: "Split Down", Category: "Pane", Action: noop})
	r.Register(Command{Name: "Close Pane", Category: "Pane", Action: noop})
	r.Register(Command{Name: "New Tab", Category: "Tab", Action: noop})
	r.Register(Command{Name: "Next Tab", Category: "Tab", Action: noop})
	return r
}

func names(cmds []Command) []string {
	out := make([]string, len(cmds))
	for i, c := range cmds {
		out[i] = c.Name
	}
	return out
}

func TestFilterEmptyQueryReturnsAll(t *testing.T) {
	r := testRegistry()
	got := r.Filter("")
	if len(got) != 5 || got[0].Name != "Split Right" {
		t.Errorf("Filter(\"\") = %v", names(got))
	}
}

func TestFilterFuzzyMatch(t *testing.T) {
	r := testRegistry()
	got := r.Filter("spl")
	if len(got) != 2 {
		t.Fatalf("Filter(spl) = %v", names(got))
	}
	for _, c := range got {
		if c.Category != "Pane" {
			t.Errorf("unexpected match %q", c.Name)
		}
	}
}

func TestFilterIsCaseInsensitive(t *testing.T) {
	r := testRegistry()
	if got := r.Filter("TAB"); len(got) != 2 {
		t.Errorf("Filter(TAB) = %v", names(got))
	}
}

func TestFilterNoMatch(t *testing.T) {
	r := testRegistry()
	if got := r.Filter("zzzz"); len(got) != 0 {
		t.Errorf("Filter(zzzz) = %v", names(got))
	}
}

func TestRegisterReplacesByName(t *testing.T) {
	r := testRegistry()
	called := false
	r.Register(Command{Name: "New Tab", Category: "Tab", Action: func() error {
		called = true
		return nil
	}})
	if len(r.Commands()) != 5 {
		t.Fatalf("re-registration grew the registry: %v", names(r.Commands()))
	}

	p := Open(r)
	p.SetQuery("New Tab")
	if ok, err := p.Execute(); !ok || err != nil {
		t.Fatalf("Execute = %v, %v", ok, err)
	}
	if !called {
		t.Error("replacement action not invoked")
	}
}

func TestCursorWraps(t *testing.T) {
	p := Open(testRegistry())
	if p.Cursor() != 0 {
		t.Fatalf("initial cursor = %d", p.Cursor())
	}
	p.MoveCursor(-1)
	if p.Cursor() != 4 {
		t.Errorf("cursor after up from top = %d, want 4", p.Cursor())
	}
	p.MoveCursor(1)
	if p.Cursor() != 0 {
		t.Errorf("cursor after wrap down = %d, want 0", p.Cursor())
	}
}

func TestSetQueryResetsCursor(t *testing.T) {
	p := Open(testRegistry())
	p.MoveCursor(2)
	p.SetQuery("tab")
	if p.Cursor() != 0 {
		t.Errorf("cursor = %d after query change, want 0", p.Cursor())
	}
}

func TestExecuteEmptyResults(t *testing.T) {
	p := Open(testRegistry())
	p.SetQuery("zzzz")
	if p.Cursor() != -1 {
		t.Errorf("cursor = %d with no results, want -1", p.Cursor())
	}
	if ok, _ := p.Execute(); ok {
		t.Error("Execute reported ok with no results")
	}
	p.MoveCursor(1) // must not panic
}

func TestExecutePropagatesError(t *testing.T) {
	r := NewRegistry()
	boom := errors.New("boom")
	r.Register(Command{Name: "Fail", Action: func() error { return boom }})
	p := Open(r)
	if ok, err := p.Execute(); !ok || !errors.Is(err, boom) {
		t.Errorf("Execute = %v, %v", ok, err)
	}
}
