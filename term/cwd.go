// Copyright © 2026 VibeTerm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: term/cwd.go
// Summary: Polls a shell's working directory via /proc so the sidebar and
//          pane titles follow `cd`.

package term

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// DefaultCwdInterval matches the context.cwd_poll_interval_ms default.
const DefaultCwdInterval = 500 * time.Millisecond

// readProcCwd resolves the working directory of a live process.
func readProcCwd(pid int) (string, error) {
	return os.Readlink(fmt.Sprintf("/proc/%d/cwd", pid))
}

// CwdTracker watches one process and reports directory changes.
type CwdTracker struct {
	pid      int
	interval time.Duration
	read     func(pid int) (string, error)
	onChange func(dir string)

	mu   sync.Mutex
	last string

	stop     chan struct{}
	stopOnce sync.Once
}

// NewCwdTracker builds a tracker for pid. onChange fires from the polling
// goroutine whenever the directory differs from the last observation,
// including the first one.
func NewCwdTracker(pid int, interval time.Duration, onChange func(dir string)) *CwdTracker {
	if interval <= 0 {
		interval = DefaultCwdInterval
	}
	return &CwdTracker{
		pid:      pid,
		interval: interval,
		read:     readProcCwd,
		onChange: onChange,
		stop:     make(chan struct{}),
	}
}

// Start launches the polling loop.
func (t *CwdTracker) Start() {
	go func() {
		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()
		t.poll()
		for {
			select {
			case <-t.stop:
				return
			case <-ticker.C:
				t.poll()
			}
		}
	}()
}

func (t *CwdTracker) poll() {
	dir, err := t.read(t.pid)
	if err != nil {
		// Process likely exited; keep the last known directory.
		return
	}
	t.mu.Lock()
	changed := dir != t.last
	if changed {
		t.last = dir
	}
	t.mu.Unlock()
	if changed && t.onChange != nil {
		t.onChange(dir)
	}
}

// Current returns the last observed directory, empty before the first poll.
func (t *CwdTracker) Current() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.last
}

// Stop ends the polling loop. Safe to call more than once.
func (t *CwdTracker) Stop() {
	t.stopOnce.Do(func() { close(t.stop) })
}
