// Package trail holds the fixed-capacity scrolling rows drawn behind the
// figure. Each row is a ring buffer of pre-rendered glyphs.
package trail

import "strings"

// Buffer is a FIFO ring of rendered glyphs. Once full, every push evicts the
// oldest glyph. Storage grows with the pushes, so a large capacity costs
// nothing until it is used.
type Buffer struct {
	cells    []string
	head     int // index of the oldest cell once the ring is full
	capacity int
}

// New returns an empty buffer holding at most capacity glyphs. Negative
// capacities are treated as zero.
func New(capacity int) *Buffer {
	if capacity < 0 {
		capacity = 0
	}
	return &Buffer{capacity: capacity}
}

// Cap returns the fixed capacity.
func (b *Buffer) Cap() int {
	return b.capacity
}

// Len returns the number of glyphs currently held.
func (b *Buffer) Len() int {
	return len(b.cells)
}

// Push appends glyph, evicting the oldest glyph when the buffer is full.
func (b *Buffer) Push(glyph string) {
	if b.capacity == 0 {
		return
	}
	if len(b.cells) < b.capacity {
		b.cells = append(b.cells, glyph)
		return
	}
	b.cells[b.head] = glyph
	b.head = (b.head + 1) % len(b.cells)
}

// Cells returns the held glyphs, oldest first.
func (b *Buffer) Cells() []string {
	out := make([]string, 0, len(b.cells))
	for i := range b.cells {
		out = append(out, b.cells[(b.head+i)%len(b.cells)])
	}
	return out
}

// Render concatenates the held glyphs, oldest first. It does not modify the
// buffer.
func (b *Buffer) Render() string {
	var sb strings.Builder
	for i := range b.cells {
		sb.WriteString(b.cells[(b.head+i)%len(b.cells)])
	}
	return sb.String()
}
