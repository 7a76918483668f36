// Package terminal provides the low-level write and cursor primitives used to
// repaint a fixed region of the terminal in place.
package terminal

import (
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Painter writes text and cursor-movement sequences to an output stream and
// keeps track of where the cursor ends up, relative to the position it had
// when the painter was created.
//
// Painter is not safe for concurrent use. It must be the only writer to its
// stream while a drawing region is active.
type Painter struct {
	w   io.Writer
	err error

	row     int
	col     int
	visible bool
}

// NewPainter returns a painter writing to w with the cursor assumed visible
// at the origin.
func NewPainter(w io.Writer) *Painter {
	return &Painter{w: w, visible: true}
}

// Err returns the first error returned by the underlying writer, if any.
// Once an error is recorded all further writes are dropped.
func (p *Painter) Err() error {
	return p.err
}

// Position returns the tracked cursor row and column.
func (p *Painter) Position() (row, col int) {
	return p.row, p.col
}

// CursorVisible reports whether the cursor was last shown or hidden.
func (p *Painter) CursorVisible() bool {
	return p.visible
}

// Write passes text through unchanged. Newlines move the tracked cursor to
// the start of the next row; everything else advances the column by its
// display width.
func (p *Painter) Write(text string) {
	if text == "" {
		return
	}
	p.emit(text)
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			p.row++
			p.col = 0
		}
		p.col += ansi.StringWidth(line)
	}
}

// Newline writes a single line feed.
func (p *Painter) Newline() {
	p.Write("\n")
}

// CursorUp moves the cursor up n rows. Non-positive n is a no-op.
func (p *Painter) CursorUp(n int) {
	if n <= 0 {
		return
	}
	p.emit(ansi.CursorUp(n))
	p.row -= n
}

// CursorDown moves the cursor down n rows. Non-positive n is a no-op.
func (p *Painter) CursorDown(n int) {
	if n <= 0 {
		return
	}
	p.emit(ansi.CursorDown(n))
	p.row += n
}

// CursorRight moves the cursor right n columns. Non-positive n is a no-op.
func (p *Painter) CursorRight(n int) {
	if n <= 0 {
		return
	}
	p.emit(ansi.CursorForward(n))
	p.col += n
}

// HideCursor hides the terminal cursor.
func (p *Painter) HideCursor() {
	p.emit(ansi.HideCursor)
	p.visible = false
}

// ShowCursor makes the terminal cursor visible again.
func (p *Painter) ShowCursor() {
	p.emit(ansi.ShowCursor)
	p.visible = true
}

func (p *Painter) emit(s string) {
	if p.err != nil {
		return
	}
	if _, err := io.WriteString(p.w, s); err != nil {
		p.err = err
	}
}
