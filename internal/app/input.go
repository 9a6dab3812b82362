// Copyright © 2026 VibeTerm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/app/input.go
// Summary: Translates tcell events into desktop operations. Alt-chords are
//          the app's own bindings; everything else is forwarded raw to the
//          focused shell.

package app

import (
	"io"
	"log"
	"path/filepath"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/vibeterm/vibe"
	"github.com/framegrace/vibeterm/viewer"
)

func (a *App) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		// frame() recomputes geometry from driver.Size.
	case *tcell.EventKey:
		a.handleKey(ev)
	case *tcell.EventMouse:
		a.handleMouse(ev)
	}
}

func (a *App) handleKey(ev *tcell.EventKey) {
	if a.pal != nil {
		a.handlePaletteKey(ev)
		return
	}

	if ev.Modifiers()&tcell.ModAlt != 0 {
		if a.handleChord(ev) {
			return
		}
	}
	if ev.Key() == tcell.KeyEscape && a.drag.Phase() != vibe.DragIdle {
		a.drag.Cancel()
		return
	}
	a.forwardKey(ev)
}

// handleChord runs the Alt bindings; false means the chord is unbound and
// falls through to the shell.
func (a *App) handleChord(ev *tcell.EventKey) bool {
	if ev.Key() != tcell.KeyRune {
		return false
	}
	ws := a.desktop.Active()
	switch r := ev.Rune(); r {
	case 'd':
		a.splitFocused(vibe.SplitHorizontal)
	case 's':
		a.splitFocused(vibe.SplitVertical)
	case 'w':
		if err := ws.CloseFocused(); err != nil {
			log.Printf("app: close pane: %v", err)
		}
		a.focusChanged()
	case 'o':
		ws.FocusNext()
		a.focusChanged()
	case 'i':
		ws.FocusPrevious()
		a.focusChanged()
	case 't':
		if _, err := a.desktop.NewTab(a.ctx.Snapshot().Dir); err != nil {
			log.Printf("app: new tab: %v", err)
		}
		a.focusChanged()
	case 'q':
		if err := a.desktop.CloseTab(a.desktop.ActiveIndex()); err != nil {
			log.Printf("app: close tab: %v", err)
		}
		a.focusChanged()
	case ']':
		a.desktop.NextTab()
		a.focusChanged()
	case '[':
		a.desktop.PrevTab()
		a.focusChanged()
	case 'b':
		a.toggleSidebar()
	case 'p':
		a.openPalette()
	case 'x':
		a.quit = true
	case '1', '2', '3', '4', '5', '6', '7', '8', '9':
		if err := a.desktop.SelectTab(int(r - '1')); err == nil {
			a.focusChanged()
		}
	default:
		return false
	}
	return true
}

func (a *App) splitFocused(dir vibe.SplitDir) {
	ws := a.desktop.Active()
	content, err := a.newContent(a.ctx.Snapshot().Dir)
	if err != nil {
		log.Printf("app: spawn shell: %v", err)
		return
	}
	if _, err := ws.SplitFocused(dir, content); err != nil {
		content.Close()
		log.Printf("app: split: %v", err)
	}
	a.focusChanged()
}

func (a *App) toggleSidebar() {
	a.sidebarVisible = !a.sidebarVisible
	if a.sidebarVisible {
		a.renderer.SetSidebarWidth(a.sidebarWidth)
	} else {
		a.renderer.SetSidebarWidth(0)
	}
}

// forwardKey sends the keystroke to the focused shell.
func (a *App) forwardKey(ev *tcell.EventKey) {
	focused := a.desktop.Active().Tree().Focused()
	if focused == nil {
		return
	}
	w, ok := focused.Content().(io.Writer)
	if !ok {
		return
	}
	if b := keyBytes(ev); len(b) > 0 {
		if _, err := w.Write(b); err != nil {
			log.Printf("app: write to shell: %v", err)
		}
	}
}

// keyBytes encodes a tcell key the way a terminal would put it on the wire.
func keyBytes(ev *tcell.EventKey) []byte {
	switch ev.Key() {
	case tcell.KeyRune:
		return []byte(string(ev.Rune()))
	case tcell.KeyEnter:
		return []byte{'\r'}
	case tcell.KeyTab:
		return []byte{'\t'}
	case tcell.KeyBacktab:
		return []byte("\x1b[Z")
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return []byte{0x7f}
	case tcell.KeyEscape:
		return []byte{0x1b}
	case tcell.KeyUp:
		return []byte("\x1b[A")
	case tcell.KeyDown:
		return []byte("\x1b[B")
	case tcell.KeyRight:
		return []byte("\x1b[C")
	case tcell.KeyLeft:
		return []byte("\x1b[D")
	case tcell.KeyHome:
		return []byte("\x1b[H")
	case tcell.KeyEnd:
		return []byte("\x1b[F")
	case tcell.KeyPgUp:
		return []byte("\x1b[5~")
	case tcell.KeyPgDn:
		return []byte("\x1b[6~")
	case tcell.KeyDelete:
		return []byte("\x1b[3~")
	}
	// Control characters map straight through (KeyCtrlA == 0x01 …).
	if k := ev.Key(); k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return []byte{byte(k)}
	}
	return nil
}

func (a *App) handleMouse(ev *tcell.EventMouse) {
	xi, yi := ev.Position()
	x, y := float64(xi), float64(yi)
	buttons := ev.Buttons()

	switch {
	case buttons&tcell.Button1 != 0:
		a.handleButtonDown(x, y)
	default:
		a.handleButtonUp(x, y)
	}
}

func (a *App) handleButtonDown(x, y float64) {
	ws := a.desktop.Active()

	// In-flight gestures get the motion.
	if a.tabDrag.held {
		if !a.tabDrag.active && absf(x-a.tabDrag.startX) >= tabDragThreshold {
			a.tabDrag.active = true
		}
		return
	}
	if a.divider >= 0 {
		a.dragDivider(x, y)
		return
	}
	if a.drag.Phase() != vibe.DragIdle {
		a.drag.Update(x, y)
		return
	}

	// Fresh press: tab bar, then sidebar, then divider, then pane.
	if y < 1 {
		if i, ok := a.renderer.TabAt(a.desktop, int(x)); ok {
			a.tabDrag = tabDragState{held: true, from: i, startX: x}
		}
		return
	}
	if a.sidebarVisible && x < float64(a.sidebarWidth)-1 {
		a.sidebarClick(int(y) - 1)
		return
	}
	if i := a.layout.DividerAt(x, y); i >= 0 {
		a.divider = i
		return
	}
	if id, ok := a.layout.PaneAt(x, y); ok {
		if err := ws.Focus(id); err == nil {
			a.focusChanged()
		}
		a.drag.Begin(id, x, y)
	}
}

func (a *App) handleButtonUp(x, y float64) {
	if a.tabDrag.held {
		a.finishTabDrag(x)
		return
	}
	if a.divider >= 0 {
		a.divider = -1
		return
	}
	if a.drag.Phase() == vibe.DragIdle {
		return
	}
	a.drag.Update(x, y)
	source, zone, ok := a.drag.Drop(a.layout)
	if !ok {
		return // plain click, focus already moved on press
	}
	if err := a.desktop.Active().MovePane(source, zone.Target, zone.Zone); err != nil {
		log.Printf("app: move pane: %v", err)
	}
	a.focusChanged()
}

// finishTabDrag either selects the pressed tab (plain click) or moves it to
// the release position.
func (a *App) finishTabDrag(x float64) {
	drag := a.tabDrag
	a.tabDrag = tabDragState{}

	if !drag.active {
		if err := a.desktop.SelectTab(drag.from); err == nil {
			a.focusChanged()
		}
		return
	}
	to, ok := a.renderer.TabAt(a.desktop, int(x))
	if !ok {
		// Released past the last label: move to the end.
		to = len(a.desktop.Workspaces()) - 1
	}
	if err := a.desktop.MoveTab(drag.from, to); err != nil {
		log.Printf("app: move tab: %v", err)
	}
}

// sidebarClick opens the clicked file entry as a viewer pane split off the
// focused one.
func (a *App) sidebarClick(row int) {
	snap := a.ctx.Snapshot()
	entry, ok := sidebarEntryAt(snap, row)
	if !ok || entry.IsDir {
		return
	}
	view, err := viewer.Open(filepath.Join(snap.Dir, entry.Path))
	if err != nil {
		log.Printf("app: open %s: %v", entry.Path, err)
		return
	}
	if _, err := a.desktop.Active().SplitFocused(vibe.SplitHorizontal, view); err != nil {
		view.Close()
		log.Printf("app: split viewer: %v", err)
	}
	a.focusChanged()
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// dragDivider recomputes the grabbed divider's split ratio from the pointer
// position within the split's own bounds.
func (a *App) dragDivider(x, y float64) {
	if a.divider >= len(a.layout.Dividers) {
		a.divider = -1
		return
	}
	div := a.layout.Dividers[a.divider]
	ws := a.desktop.Active()
	node := ws.Tree().SplitAt(div.Path)
	if node == nil {
		a.divider = -1
		return
	}
	bounds := subtreeBounds(a.layout, node)

	var ratio float64
	if div.Dir == vibe.SplitHorizontal {
		avail := bounds.W - vibe.DividerWidth
		if avail <= 0 {
			return
		}
		ratio = (x - bounds.X) / avail
	} else {
		avail := bounds.H - vibe.DividerWidth
		if avail <= 0 {
			return
		}
		ratio = (y - bounds.Y) / avail
	}
	if err := ws.Resize(div.Path, ratio); err != nil {
		log.Printf("app: resize: %v", err)
	}
}

// subtreeBounds is the union of the leaf rectangles under node.
func subtreeBounds(layout *vibe.ComputedLayout, node *vibe.Node) vibe.Rect {
	var out vibe.Rect
	first := true
	var walk func(n *vibe.Node)
	walk = func(n *vibe.Node) {
		if n == nil {
			return
		}
		if !n.IsLeaf() {
			walk(n.First())
			walk(n.Second())
			return
		}
		r, ok := layout.PaneRects[n.ID()]
		if !ok {
			return
		}
		if first {
			out = r
			first = false
			return
		}
		x2 := out.X + out.W
		y2 := out.Y + out.H
		if r.X < out.X {
			out.X = r.X
		}
		if r.Y < out.Y {
			out.Y = r.Y
		}
		if r.X+r.W > x2 {
			x2 = r.X + r.W
		}
		if r.Y+r.H > y2 {
			y2 = r.Y + r.H
		}
		out.W = x2 - out.X
		out.H = y2 - out.Y
	}
	walk(node)
	return out
}
