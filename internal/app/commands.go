// Copyright © 2026 VibeTerm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/app/commands.go
// Summary: Built-in palette commands and the palette's key handling.

package app

import (
	"log"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/vibeterm/palette"
	"github.com/framegrace/vibeterm/vibe"
)

func (a *App) registerCommands() {
	reg := func(name, category string, action func() error) {
		a.registry.Register(palette.Command{Name: name, Category: category, Action: action})
	}

	reg("Split Right", "Pane", func() error {
		a.splitFocused(vibe.SplitHorizontal)
		return nil
	})
	reg("Split Down", "Pane", func() error {
		a.splitFocused(vibe.SplitVertical)
		return nil
	})
	reg("Close Pane", "Pane", func() error {
		err := a.desktop.Active().CloseFocused()
		a.focusChanged()
		return err
	})
	reg("Focus Next Pane", "Pane", func() error {
		a.desktop.Active().FocusNext()
		a.focusChanged()
		return nil
	})
	reg("Focus Previous Pane", "Pane", func() error {
		a.desktop.Active().FocusPrevious()
		a.focusChanged()
		return nil
	})

	reg("New Tab", "Tab", func() error {
		_, err := a.desktop.NewTab(a.ctx.Snapshot().Dir)
		a.focusChanged()
		return err
	})
	reg("Close Tab", "Tab", func() error {
		err := a.desktop.CloseTab(a.desktop.ActiveIndex())
		a.focusChanged()
		return err
	})
	reg("Next Tab", "Tab", func() error {
		a.desktop.NextTab()
		a.focusChanged()
		return nil
	})
	reg("Previous Tab", "Tab", func() error {
		a.desktop.PrevTab()
		a.focusChanged()
		return nil
	})

	reg("Toggle Sidebar", "View", func() error {
		a.toggleSidebar()
		return nil
	})
	reg("Save Session", "Session", a.saveSession)
	reg("Quit", "Application", func() error {
		a.quit = true
		return nil
	})
}

func (a *App) openPalette() {
	a.pal = palette.Open(a.registry)
}

func (a *App) closePalette() {
	a.pal = nil
}

func (a *App) handlePaletteKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		a.closePalette()
	case tcell.KeyEnter:
		pal := a.pal
		a.closePalette()
		if ok, err := pal.Execute(); ok && err != nil {
			log.Printf("palette: %v", err)
		}
	case tcell.KeyUp:
		a.pal.MoveCursor(-1)
	case tcell.KeyDown, tcell.KeyTab:
		a.pal.MoveCursor(1)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		q := a.pal.Query()
		if len(q) > 0 {
			a.pal.SetQuery(q[:len(q)-1])
		}
	case tcell.KeyRune:
		a.pal.SetQuery(a.pal.Query() + string(ev.Rune()))
	}
}
