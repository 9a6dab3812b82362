// Copyright © 2026 VibeTerm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: gitstatus/gitstatus.go
// Summary: Cached git state for the sidebar: branch plus per-file porcelain
//          status, refreshed on an interval rather than per frame.

package gitstatus

import (
	"bufio"
	"bytes"
	"context"
	"os/exec"
	"strings"
	"sync"
	"time"
)

// DefaultInterval matches the context.git_refresh_interval_s default.
const DefaultInterval = 5 * time.Second

// FileState classifies one path from porcelain output.
type FileState int

const (
	StateModified FileState = iota
	StateAdded
	StateDeleted
	StateRenamed
	StateUntracked
	StateConflicted
)

// Status is one refresh's snapshot.
type Status struct {
	Branch string
	Files  map[string]FileState
	Taken  time.Time
}

// Dirty reports whether the tree has any pending change.
func (s Status) Dirty() bool { return len(s.Files) > 0 }

// runner abstracts git invocation so tests can stub the binary.
type runner func(ctx context.Context, dir string, args ...string) ([]byte, error)

func runGit(ctx context.Context, dir string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	return cmd.Output()
}

// Cache polls one repository and serves the latest snapshot without
// blocking the UI loop.
type Cache struct {
	dir      string
	interval time.Duration
	run      runner

	mu     sync.RWMutex
	status Status
	isRepo bool

	stop     chan struct{}
	stopOnce sync.Once
}

// NewCache builds a cache for dir. Start launches polling; before the first
// refresh Latest returns a zero snapshot.
func NewCache(dir string, interval time.Duration) *Cache {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Cache{
		dir:      dir,
		interval: interval,
		run:      runGit,
		stop:     make(chan struct{}),
	}
}

// Start launches the polling loop.
func (c *Cache) Start() {
	go func() {
		c.Refresh(context.Background())
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()
		for {
			select {
			case <-c.stop:
				return
			case <-ticker.C:
				c.Refresh(context.Background())
			}
		}
	}()
}

// Stop ends the polling loop.
func (c *Cache) Stop() {
	c.stopOnce.Do(func() { close(c.stop) })
}

// Latest returns the most recent snapshot and whether dir is a repository.
func (c *Cache) Latest() (Status, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.status, c.isRepo
}

// Refresh runs git immediately and stores the result. Outside a repository
// the snapshot is cleared and false is returned.
func (c *Cache) Refresh(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	branchOut, err := c.run(ctx, c.dir, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		c.mu.Lock()
		c.status = Status{}
		c.isRepo = false
		c.mu.Unlock()
		return false
	}

	status := Status{
		Branch: strings.TrimSpace(string(branchOut)),
		Files:  map[string]FileState{},
		Taken:  time.Now(),
	}
	if out, err := c.run(ctx, c.dir, "status", "--porcelain"); err == nil {
		status.Files = parsePorcelain(out)
	}

	c.mu.Lock()
	c.status = status
	c.isRepo = true
	c.mu.Unlock()
	return true
}

// parsePorcelain maps `git status --porcelain` lines to file states.
func parsePorcelain(out []byte) map[string]FileState {
	files := map[string]FileState{}
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		line := sc.Text()
		if len(line) < 4 {
			continue
		}
		code := line[:2]
		path := line[3:]
		// Renames list "old -> new"; the new path is what the sidebar shows.
		if i := strings.Index(path, " -> "); i >= 0 {
			path = path[i+4:]
		}
		files[path] = classify(code)
	}
	return files
}

func classify(code string) FileState {
	switch {
	case code == "??":
		return StateUntracked
	case strings.ContainsAny(code, "U") || code == "AA" || code == "DD":
		return StateConflicted
	case code[0] == 'R' || code[1] == 'R':
		return StateRenamed
	case code[0] == 'A' || code[1] == 'A':
		return StateAdded
	case code[0] == 'D' || code[1] == 'D':
		return StateDeleted
	default:
		return StateModified
	}
}
