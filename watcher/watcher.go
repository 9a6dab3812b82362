// Copyright © 2026 VibeTerm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: watcher/watcher.go
// Summary: Debounced filesystem watcher feeding the sidebar refresh. Raw
//          fsnotify events are batched so a `go build` storm produces one
//          refresh, not hundreds.

package watcher

import (
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce matches the watcher.debounce_ms config default.
const DefaultDebounce = 200 * time.Millisecond

// Change is one coalesced filesystem event.
type Change struct {
	Path string
	Op   fsnotify.Op
}

// ignoredDirs never trigger refreshes; their churn is noise to the sidebar.
var ignoredDirs = []string{".git", "node_modules", "target", ".cache"}

// Service owns one fsnotify watcher and delivers debounced batches on C.
type Service struct {
	fsw      *fsnotify.Watcher
	debounce time.Duration

	// C receives one batch per quiet period. The consumer drains it from
	// the UI loop; a slow consumer drops batches rather than blocking.
	C chan []Change

	mu      sync.Mutex
	pending map[string]fsnotify.Op

	stop     chan struct{}
	stopOnce sync.Once
}

// New creates a service with the given debounce window (DefaultDebounce
// when zero or negative).
func New(debounce time.Duration) (*Service, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	s := &Service{
		fsw:      fsw,
		debounce: debounce,
		C:        make(chan []Change, 1),
		pending:  make(map[string]fsnotify.Op),
		stop:     make(chan struct{}),
	}
	go s.loop()
	return s, nil
}

// Watch registers dir for events. Ignored directories are refused silently.
func (s *Service) Watch(dir string) error {
	if Ignored(dir) {
		return nil
	}
	return s.fsw.Add(dir)
}

// Unwatch removes dir from the watch set.
func (s *Service) Unwatch(dir string) error {
	return s.fsw.Remove(dir)
}

func (s *Service) loop() {
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-s.stop:
			if timer != nil {
				timer.Stop()
			}
			return
		case ev, ok := <-s.fsw.Events:
			if !ok {
				return
			}
			if Ignored(ev.Name) {
				continue
			}
			s.mu.Lock()
			s.pending[ev.Name] |= ev.Op
			s.mu.Unlock()
			if timer == nil {
				timer = time.NewTimer(s.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(s.debounce)
			}
			fire = timer.C
		case err, ok := <-s.fsw.Errors:
			if !ok {
				return
			}
			log.Printf("watcher: %v", err)
		case <-fire:
			s.flush()
			fire = nil
		}
	}
}

func (s *Service) flush() {
	s.mu.Lock()
	if len(s.pending) == 0 {
		s.mu.Unlock()
		return
	}
	batch := make([]Change, 0, len(s.pending))
	for path, op := range s.pending {
		batch = append(batch, Change{Path: path, Op: op})
	}
	s.pending = make(map[string]fsnotify.Op)
	s.mu.Unlock()

	select {
	case s.C <- batch:
	default:
		// Consumer behind; the next batch carries fresh state anyway.
	}
}

// Close stops the loop and releases the underlying watcher.
func (s *Service) Close() error {
	var err error
	s.stopOnce.Do(func() {
		close(s.stop)
		err = s.fsw.Close()
	})
	return err
}

// Ignored reports whether path falls under a directory the sidebar never
// shows.
func Ignored(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		for _, dir := range ignoredDirs {
			if part == dir {
				return true
			}
		}
	}
	return false
}
