// Copyright © 2026 VibeTerm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: contextmgr/contextmgr.go
// Summary: The sidebar's model. Follows the focused pane's directory,
//          composes the file listing with git state, and keeps the user's
//          pinned files.

package contextmgr

import (
	"errors"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/framegrace/vibeterm/gitstatus"
	"github.com/framegrace/vibeterm/watcher"
	"github.com/framegrace/vibeterm/workdir"
)

// DefaultMaxPinned matches the context.max_pinned_files default.
const DefaultMaxPinned = 16

// ErrPinLimit is returned when the pin list is full.
var ErrPinLimit = errors.New("pinned file limit reached")

// Snapshot is what the sidebar renders: computed off the UI loop, read from
// it.
type Snapshot struct {
	Dir         string
	ProjectRoot string
	Entries     []workdir.Entry
	Git         gitstatus.Status
	IsRepo      bool
	Pinned      []string
}

// Options configure a manager; zero values use the config defaults.
type Options struct {
	Limits      workdir.ScanLimits
	GitInterval time.Duration
	Debounce    time.Duration
	MaxPinned   int

	// OnUpdate fires after each snapshot rebuild, from the manager
	// goroutine. Used to wake the UI loop.
	OnUpdate func()
}

// Manager tracks one directory at a time, the focused pane's.
type Manager struct {
	opts Options

	mu       sync.RWMutex
	snapshot Snapshot
	pinned   []string
	git      *gitstatus.Cache

	fsw *watcher.Service

	dirCh    chan string
	stop     chan struct{}
	stopOnce sync.Once
}

// New creates a manager rooted at dir and starts its background loop.
func New(dir string, opts Options) (*Manager, error) {
	if opts.MaxPinned <= 0 {
		opts.MaxPinned = DefaultMaxPinned
	}
	fsw, err := watcher.New(opts.Debounce)
	if err != nil {
		return nil, err
	}

	m := &Manager{
		opts:  opts,
		fsw:   fsw,
		dirCh: make(chan string, 4),
		stop:  make(chan struct{}),
	}
	go m.loop()
	m.SetDir(dir)
	return m, nil
}

// SetDir points the manager at a new directory, typically from the cwd
// tracker of the focused pane. Cheap when unchanged.
func (m *Manager) SetDir(dir string) {
	select {
	case m.dirCh <- dir:
	case <-m.stop:
	}
}

// Snapshot returns the latest sidebar state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot
}

// Pin adds path to the pinned list. Re-pinning is a no-op.
func (m *Manager) Pin(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.pinned {
		if p == path {
			return nil
		}
	}
	if len(m.pinned) >= m.opts.MaxPinned {
		return ErrPinLimit
	}
	m.pinned = append(m.pinned, path)
	m.snapshot.Pinned = append([]string(nil), m.pinned...)
	return nil
}

// Unpin removes path from the pinned list; unknown paths are ignored.
func (m *Manager) Unpin(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, p := range m.pinned {
		if p == path {
			m.pinned = append(m.pinned[:i], m.pinned[i+1:]...)
			break
		}
	}
	m.snapshot.Pinned = append([]string(nil), m.pinned...)
}

// Pinned returns the pinned paths in pin order.
func (m *Manager) Pinned() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.pinned...)
}

// Close stops the loop and its collaborators.
func (m *Manager) Close() {
	m.stopOnce.Do(func() {
		close(m.stop)
		m.fsw.Close()
		m.mu.Lock()
		if m.git != nil {
			m.git.Stop()
		}
		m.mu.Unlock()
	})
}

func (m *Manager) loop() {
	var current string
	for {
		select {
		case <-m.stop:
			return
		case dir := <-m.dirCh:
			// Collapse a queued burst of cd events to the last one.
			for {
				select {
				case dir = <-m.dirCh:
					continue
				default:
				}
				break
			}
			if dir == current {
				continue
			}
			m.switchDir(current, dir)
			current = dir
		case <-m.fsw.C:
			m.rebuild(current)
		}
	}
}

func (m *Manager) switchDir(old, dir string) {
	if old != "" {
		if err := m.fsw.Unwatch(old); err != nil {
			log.Printf("contextmgr: unwatch %s: %v", old, err)
		}
	}
	if err := m.fsw.Watch(dir); err != nil {
		log.Printf("contextmgr: watch %s: %v", dir, err)
	}

	root := dir
	if found, ok := workdir.FindProjectRoot(dir); ok {
		root = found
	}
	next := gitstatus.NewCache(root, m.opts.GitInterval)

	m.mu.Lock()
	if m.git != nil {
		m.git.Stop()
	}
	m.git = next
	m.mu.Unlock()
	next.Start()

	m.rebuild(dir)
}

func (m *Manager) rebuild(dir string) {
	if dir == "" {
		return
	}
	entries, err := workdir.Scan(dir, m.opts.Limits)
	if err != nil {
		log.Printf("contextmgr: scan %s: %v", dir, err)
	}

	snap := Snapshot{
		Dir:     dir,
		Entries: entries,
	}
	if root, ok := workdir.FindProjectRoot(dir); ok {
		snap.ProjectRoot = root
	}
	m.mu.RLock()
	git := m.git
	m.mu.RUnlock()
	if git != nil {
		snap.Git, snap.IsRepo = git.Latest()
	}

	m.mu.Lock()
	snap.Pinned = append([]string(nil), m.pinned...)
	m.snapshot = snap
	m.mu.Unlock()

	if m.opts.OnUpdate != nil {
		m.opts.OnUpdate()
	}
}

// DisplayName shortens a pinned path for the sidebar: the basename, with
// the parent directory when two pins collide.
func DisplayName(pinned []string, path string) string {
	base := filepath.Base(path)
	for _, other := range pinned {
		if other != path && filepath.Base(other) == base {
			return filepath.Join(filepath.Base(filepath.Dir(path)), base)
		}
	}
	return base
}
