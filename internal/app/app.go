// Copyright © 2026 VibeTerm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/app/app.go
// Summary: Wires the desktop, renderer, sidebar and input into the single
//          UI loop. All tree mutation happens on this goroutine; background
//          services only signal it.

package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/vibeterm/config"
	"github.com/framegrace/vibeterm/contextmgr"
	"github.com/framegrace/vibeterm/palette"
	"github.com/framegrace/vibeterm/render"
	"github.com/framegrace/vibeterm/session"
	"github.com/framegrace/vibeterm/term"
	"github.com/framegrace/vibeterm/vibe"
	"github.com/framegrace/vibeterm/workdir"
)

// App owns one running UI.
type App struct {
	driver   render.ScreenDriver
	renderer *render.Renderer
	desktop  *vibe.Desktop
	ctx      *contextmgr.Manager

	registry *palette.Registry
	pal      *palette.Palette // nil while closed

	drag    vibe.DragController
	layout  *vibe.ComputedLayout
	divider int // index of the divider being dragged, -1 when none
	tabDrag tabDragState

	sidebarWidth   int
	sidebarVisible bool

	store       *session.Store
	sessionName string

	redraw chan struct{}
	cwdCh  chan cwdEvent
	quit   bool
}

type cwdEvent struct {
	content vibe.Content
	dir     string
}

// tabDragState tracks a press on the tab bar that may become a reorder.
type tabDragState struct {
	held   bool
	active bool
	from   int
	startX float64
}

// tabDragThreshold is the horizontal travel before a tab press becomes a
// reorder instead of a select.
const tabDragThreshold = 5.0

// Options configure a new App.
type Options struct {
	Driver      render.ScreenDriver
	Dir         string
	Store       *session.Store // optional; disables persistence when nil
	SessionName string         // restored on start when present in the store
}

// paneContent couples a shell session with its cwd tracker so closing the
// pane stops both.
type paneContent struct {
	*term.Session
	tracker *term.CwdTracker
}

func (p *paneContent) Close() {
	if p.tracker != nil {
		p.tracker.Stop()
	}
	p.Session.Close()
}

// Dir reports the shell's live working directory, falling back to where it
// started, so captured sessions restore panes where the user last was.
func (p *paneContent) Dir() string {
	if p.tracker != nil {
		if cwd := p.tracker.Current(); cwd != "" {
			return cwd
		}
	}
	return p.Session.Dir()
}

// New builds the app: config-driven theme and sidebar, a desktop restored
// from the named session when possible, fresh otherwise.
func New(opts Options) (*App, error) {
	cfg := config.System()

	a := &App{
		driver:         opts.Driver,
		divider:        -1,
		sidebarVisible: cfg.GetBool("ui", "show_sidebar", true),
		sidebarWidth:   cfg.GetInt("ui", "sidebar_width", 28),
		store:          opts.Store,
		sessionName:    opts.SessionName,
		redraw:         make(chan struct{}, 1),
		cwdCh:          make(chan cwdEvent, 8),
	}

	ctxMgr, err := contextmgr.New(opts.Dir, contextmgr.Options{
		Limits: workdirLimits(cfg),
		GitInterval: time.Duration(
			cfg.GetInt("context", "git_refresh_interval_s", 5)) * time.Second,
		Debounce: time.Duration(
			cfg.GetInt("watcher", "debounce_ms", 200)) * time.Millisecond,
		MaxPinned: cfg.GetInt("context", "max_pinned_files", contextmgr.DefaultMaxPinned),
		OnUpdate:  a.invalidate,
	})
	if err != nil {
		return nil, fmt.Errorf("start context manager: %w", err)
	}
	a.ctx = ctxMgr

	desktop, err := a.openDesktop(opts)
	if err != nil {
		ctxMgr.Close()
		return nil, err
	}
	a.desktop = desktop

	a.renderer = render.NewRenderer(opts.Driver, render.LoadTheme())
	if a.sidebarVisible {
		a.renderer.SetSidebarWidth(a.sidebarWidth)
	}

	a.registry = palette.NewRegistry()
	a.registerCommands()
	return a, nil
}

func (a *App) openDesktop(opts Options) (*vibe.Desktop, error) {
	if a.store != nil && opts.SessionName != "" {
		snap, err := a.store.Load(context.Background(), opts.SessionName)
		switch {
		case err == nil:
			return session.Restore(snap, a.newContent)
		case !errors.Is(err, session.ErrNotFound):
			return nil, fmt.Errorf("load session %q: %w", opts.SessionName, err)
		}
		// Unknown name: a fresh desktop that will be saved under it.
	}
	return vibe.NewDesktop(opts.Dir, a.newContent)
}

// newContent is the desktop's content factory: one shell per pane, followed
// around the filesystem by a cwd tracker.
func (a *App) newContent(dir string) (vibe.Content, error) {
	cfg := config.System()
	sess, err := term.NewSession(dir, term.Options{
		Scrollback: cfg.GetInt("ui", "scrollback_lines", term.DefaultScrollback),
		OnUpdate:   a.invalidate,
	})
	if err != nil {
		return nil, err
	}

	pc := &paneContent{Session: sess}
	interval := time.Duration(
		cfg.GetInt("context", "cwd_poll_interval_ms", 500)) * time.Millisecond
	pc.tracker = term.NewCwdTracker(sess.Pid(), interval, func(cwd string) {
		sess.SetTitle(filepath.Base(cwd))
		select {
		case a.cwdCh <- cwdEvent{content: pc, dir: cwd}:
		default:
		}
	})
	pc.tracker.Start()
	return pc, nil
}

func workdirLimits(cfg config.Config) workdir.ScanLimits {
	return workdir.ScanLimits{
		MaxDepth: cfg.GetInt("context", "sidebar_max_depth", 6),
		MaxFiles: cfg.GetInt("context", "sidebar_max_files", 2000),
	}
}

// invalidate wakes the UI loop for a redraw. Safe from any goroutine.
func (a *App) invalidate() {
	select {
	case a.redraw <- struct{}{}:
	default:
	}
}

// Run drives the UI until quit. It owns the screen for its whole lifetime.
func (a *App) Run() error {
	if err := a.driver.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer a.driver.Fini()
	defer a.shutdown()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := a.driver.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	for !a.quit {
		a.frame()
		select {
		case ev := <-events:
			a.handleEvent(ev)
		case <-a.redraw:
		case ev := <-a.cwdCh:
			a.handleCwd(ev)
		}
	}
	return nil
}

// frame recomputes geometry, resizes shells to their cells and draws.
func (a *App) frame() {
	a.layout = a.renderer.Layout(a.desktop, vibe.DividerWidth)
	a.resizeSessions()

	var drop *vibe.DropZoneInfo
	if zone, ok := a.drag.ProspectiveZone(a.layout); ok {
		drop = &zone
	}

	var sidebar []render.Line
	if a.sidebarVisible {
		sidebar = sidebarLines(a.ctx.Snapshot(), a.sidebarWidth-1)
	}

	a.renderer.Render(a.desktop, a.layout, drop, sidebar)
	if a.pal != nil {
		a.renderer.RenderPalette(a.pal)
	}
}

type resizable interface {
	Resize(cols, rows int)
}

func (a *App) resizeSessions() {
	a.desktop.Active().Tree().Walk(func(n *vibe.Node) {
		if !n.IsLeaf() {
			return
		}
		rect, ok := a.layout.PaneRects[n.ID()]
		if !ok {
			return
		}
		if rs, ok := n.Content().(resizable); ok {
			// Interior of the bordered box.
			rs.Resize(int(rect.W)-2, int(rect.H)-2)
		}
	})
}

// handleCwd forwards a shell's directory change to the sidebar when that
// shell is the focused pane.
func (a *App) handleCwd(ev cwdEvent) {
	focused := a.desktop.Active().Tree().Focused()
	if focused != nil && focused.Content() == ev.content {
		a.ctx.SetDir(ev.dir)
	}
}

// focusChanged re-points the sidebar at the newly focused pane's directory.
func (a *App) focusChanged() {
	focused := a.desktop.Active().Tree().Focused()
	if focused == nil {
		return
	}
	if pc, ok := focused.Content().(*paneContent); ok {
		if dir := pc.tracker.Current(); dir != "" {
			a.ctx.SetDir(dir)
		} else {
			a.ctx.SetDir(pc.Dir())
		}
	}
}

// saveSession persists the current layout under the active session name.
func (a *App) saveSession() error {
	if a.store == nil {
		return nil
	}
	name := a.sessionName
	if name == "" {
		name = "default"
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := a.store.Save(ctx, name, session.Capture(a.desktop)); err != nil {
		return fmt.Errorf("save session %q: %w", name, err)
	}
	return nil
}

func (a *App) shutdown() {
	if err := a.saveSession(); err != nil {
		log.Printf("app: %v", err)
	}
	a.desktop.Close()
	a.ctx.Close()
}
