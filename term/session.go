// Copyright © 2026 VibeTerm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: term/session.go
// Summary: A shell session behind a PTY, buffered as displayable lines.
// Usage: Created per pane by the desktop content factory; the read loop
//        runs until Close.

package term

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/creack/pty"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/vibeterm/render"
)

// DefaultScrollback is the line buffer size used when the config carries no
// value.
const DefaultScrollback = 2000

// Session is one interactive shell attached to a pane.
type Session struct {
	shell string
	dir   string

	mu       sync.Mutex
	cmd      *exec.Cmd
	ptmx     *os.File
	title    string
	lines    []string
	partial  string
	max      int
	onUpdate func()

	stop     chan struct{}
	stopOnce sync.Once
}

// Options tune a new session. Zero values fall back to sane defaults.
type Options struct {
	Shell      string // defaults to $SHELL, then /bin/sh
	Cols, Rows int
	Scrollback int
	OnUpdate   func() // called from the read goroutine after new output
}

// NewSession starts a shell in dir.
func NewSession(dir string, opts Options) (*Session, error) {
	shell := opts.Shell
	if shell == "" {
		shell = os.Getenv("SHELL")
	}
	if shell == "" {
		shell = "/bin/sh"
	}
	cols, rows := opts.Cols, opts.Rows
	if cols <= 0 {
		cols = 80
	}
	if rows <= 0 {
		rows = 24
	}
	max := opts.Scrollback
	if max <= 0 {
		max = DefaultScrollback
	}

	cmd := exec.Command(shell)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "TERM=xterm-256color")

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{
		Rows: uint16(rows),
		Cols: uint16(cols),
	})
	if err != nil {
		return nil, fmt.Errorf("start shell %s: %w", shell, err)
	}

	s := &Session{
		shell:    shell,
		dir:      dir,
		cmd:      cmd,
		ptmx:     ptmx,
		title:    filepath.Base(shell),
		max:      max,
		onUpdate: opts.OnUpdate,
		stop:     make(chan struct{}),
	}
	go s.readLoop()
	return s, nil
}

func (s *Session) readLoop() {
	buf := make([]byte, 4096)
	for {
		select {
		case <-s.stop:
			return
		default:
			n, err := s.ptmx.Read(buf)
			if n > 0 {
				s.ingest(buf[:n])
				if s.onUpdate != nil {
					s.onUpdate()
				}
			}
			if err != nil {
				return
			}
		}
	}
}

// ingest folds raw PTY output into the line buffer. Escape sequences are
// stripped rather than interpreted; the buffer is a readable transcript,
// not a cell grid.
func (s *Session) ingest(raw []byte) {
	text := stripEscapes(string(raw))

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range text {
		switch ch {
		case '\n':
			s.appendLineLocked(s.partial)
			s.partial = ""
		case '\r':
			s.partial = ""
		default:
			s.partial += string(ch)
		}
	}
}

func (s *Session) appendLineLocked(line string) {
	s.lines = append(s.lines, line)
	if len(s.lines) > s.max {
		s.lines = s.lines[len(s.lines)-s.max:]
	}
}

// Write forwards input (keystrokes) to the shell.
func (s *Session) Write(p []byte) (int, error) {
	return s.ptmx.Write(p)
}

// Resize informs the PTY of the new pane size.
func (s *Session) Resize(cols, rows int) {
	if cols <= 0 || rows <= 0 {
		return
	}
	if err := pty.Setsize(s.ptmx, &pty.Winsize{
		Rows: uint16(rows),
		Cols: uint16(cols),
	}); err != nil {
		log.Printf("term: resize %dx%d: %v", cols, rows, err)
	}
}

// Pid returns the shell's process id, or 0 before it started.
func (s *Session) Pid() int {
	if s.cmd.Process == nil {
		return 0
	}
	return s.cmd.Process.Pid
}

// Dir returns the directory the session was started in.
func (s *Session) Dir() string { return s.dir }

// Title implements vibe.Content.
func (s *Session) Title() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.title
}

// SetTitle replaces the pane title, e.g. from the cwd tracker.
func (s *Session) SetTitle(title string) {
	s.mu.Lock()
	s.title = title
	s.mu.Unlock()
}

// Close implements vibe.Content: stop the reader, close the PTY, kill the
// shell.
func (s *Session) Close() {
	s.stopOnce.Do(func() {
		close(s.stop)
		if s.ptmx != nil {
			s.ptmx.Close()
		}
		if s.cmd.Process != nil {
			s.cmd.Process.Kill()
			s.cmd.Wait()
		}
	})
}

// ViewLines implements render.Viewable: the most recent lines that fit,
// truncated to width.
func (s *Session) ViewLines(width, height int) []render.Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	visible := make([]string, 0, height)
	all := s.lines
	if s.partial != "" {
		all = append(append([]string{}, s.lines...), s.partial)
	}
	start := len(all) - height
	if start < 0 {
		start = 0
	}
	for _, line := range all[start:] {
		// Truncate by display cells so multibyte output survives intact.
		if runewidth.StringWidth(line) > width {
			line = runewidth.Truncate(line, width, "")
		}
		visible = append(visible, line)
	}
	return render.PlainLines(visible)
}

// stripEscapes removes ANSI CSI and OSC sequences plus stray control bytes,
// leaving printable text, tabs, newlines and carriage returns.
func stripEscapes(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	i := 0
	for i < len(s) {
		c := s[i]
		if c != 0x1b {
			if c >= 0x20 || c == '\n' || c == '\r' || c == '\t' {
				b.WriteByte(c)
			}
			i++
			continue
		}
		i++
		if i >= len(s) {
			break
		}
		switch s[i] {
		case '[': // CSI: parameters then a final byte in 0x40..0x7e
			i++
			for i < len(s) && (s[i] < 0x40 || s[i] > 0x7e) {
				i++
			}
			if i < len(s) {
				i++
			}
		case ']': // OSC: runs to BEL or ESC \
			i++
			for i < len(s) {
				if s[i] == 0x07 {
					i++
					break
				}
				if s[i] == 0x1b && i+1 < len(s) && s[i+1] == '\\' {
					i += 2
					break
				}
				i++
			}
		default: // two-byte escape
			i++
		}
	}
	return b.String()
}
