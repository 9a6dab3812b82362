// Copyright © 2026 VibeTerm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: viewer/viewer.go
// Summary: Read-only file pane with syntax highlighting. Language detection
//          comes from enry, token colors from Chroma.

package viewer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/go-enry/go-enry/v2"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/vibeterm/config"
	"github.com/framegrace/vibeterm/render"
)

const defaultStyleName = "catppuccin-mocha"

// maxHighlightBytes guards against tokenizing huge files; beyond this the
// view falls back to plain text.
const maxHighlightBytes = 1 << 20

// FileView shows one file inside a pane.
type FileView struct {
	path     string
	language string

	mu     sync.Mutex
	lines  []render.Line
	offset int
}

// Open reads and highlights path.
func Open(path string) (*FileView, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	v := &FileView{path: path}
	v.language = detectLanguage(path, data)
	v.lines = highlight(string(data), v.language, styleName())
	return v, nil
}

func styleName() string {
	return config.System().GetString("ui", "highlight_style", defaultStyleName)
}

// detectLanguage picks a lexer name from the filename and contents.
func detectLanguage(path string, data []byte) string {
	if enry.IsBinary(data) {
		return ""
	}
	lang := enry.GetLanguage(filepath.Base(path), data)
	if lang == enry.OtherLanguage {
		return ""
	}
	return lang
}

// Path returns the viewed file's path.
func (v *FileView) Path() string { return v.path }

// Language returns the detected language name, empty when unknown or binary.
func (v *FileView) Language() string { return v.language }

// LineCount returns the number of display lines.
func (v *FileView) LineCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.lines)
}

// Title implements vibe.Content.
func (v *FileView) Title() string {
	return filepath.Base(v.path)
}

// Close implements vibe.Content. Nothing is held open.
func (v *FileView) Close() {}

// Scroll moves the viewport by delta lines, clamped to the file.
func (v *FileView) Scroll(delta, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.offset += delta
	max := len(v.lines) - height
	if max < 0 {
		max = 0
	}
	if v.offset > max {
		v.offset = max
	}
	if v.offset < 0 {
		v.offset = 0
	}
}

// ViewLines implements render.Viewable.
func (v *FileView) ViewLines(width, height int) []render.Line {
	v.mu.Lock()
	defer v.mu.Unlock()

	start := v.offset
	if start > len(v.lines) {
		start = len(v.lines)
	}
	end := start + height
	if end > len(v.lines) {
		end = len(v.lines)
	}

	out := make([]render.Line, 0, end-start)
	for _, line := range v.lines[start:end] {
		out = append(out, clipLine(line, width))
	}
	return out
}

// clipLine cuts a styled line to width display cells, never inside a rune.
func clipLine(line render.Line, width int) render.Line {
	var out render.Line
	used := 0
	for _, seg := range line {
		if used >= width {
			break
		}
		text := seg.Text
		if used+runewidth.StringWidth(text) > width {
			text = runewidth.Truncate(text, width-used, "")
			if text == "" {
				break
			}
		}
		out = append(out, render.Segment{Text: text, Color: seg.Color})
		used += runewidth.StringWidth(text)
	}
	return out
}

// highlight tokenizes source and folds the token stream into per-line
// colored segments. Unknown languages and oversized files come back as
// plain lines.
func highlight(source, language, style string) []render.Line {
	if language == "" || len(source) > maxHighlightBytes {
		return render.PlainLines(strings.Split(strings.TrimRight(source, "\n"), "\n"))
	}

	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(source)
	}
	if lexer == nil {
		return render.PlainLines(strings.Split(strings.TrimRight(source, "\n"), "\n"))
	}
	lexer = chroma.Coalesce(lexer)

	sty := styles.Get(style)
	tokens, err := chroma.Tokenise(lexer, nil, source)
	if err != nil {
		return render.PlainLines(strings.Split(strings.TrimRight(source, "\n"), "\n"))
	}

	baseColour := sty.Get(chroma.Text).Colour

	var lines []render.Line
	var current render.Line
	for _, tok := range tokens {
		if tok.Type == chroma.EOFType {
			break
		}
		color := ""
		if entry := sty.Get(tok.Type); entry.Colour.IsSet() && entry.Colour != baseColour {
			color = entry.Colour.String()
		}
		parts := strings.Split(tok.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				lines = append(lines, current)
				current = nil
			}
			if part != "" {
				current = append(current, render.Segment{Text: part, Color: color})
			}
		}
	}
	if len(current) > 0 {
		lines = append(lines, current)
	}
	return lines
}
