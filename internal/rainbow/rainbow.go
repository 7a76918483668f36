// Package rainbow builds the 256-colour palette used to tint the scrolling
// trails and hands its entries out in a fixed rotating order.
package rainbow

import (
	"math"

	"github.com/muesli/termenv"
)

// PaletteSize is the number of entries in the trail palette (a 6x7 grid).
const PaletteSize = 6 * 7

const (
	// cubeOffset is the index of the first entry of the 216-colour cube.
	cubeOffset = 16
	// cubeMax is the highest value a single cube channel can take.
	cubeMax = 5
)

// Generate returns size colour indices sampled from three phase-shifted sine
// waves and mapped onto the 6x6x6 colour cube. The result is deterministic
// and every value lies in [16, 231].
func Generate(size int) []int {
	if size <= 0 {
		return nil
	}

	phase := math.Pi / 3
	colors := make([]int, 0, size)
	for i := 0; i < size; i++ {
		n := float64(i) / 6
		r := channel(n)
		g := channel(n + 2*phase)
		b := channel(n + 4*phase)
		colors = append(colors, 36*r+6*g+b+cubeOffset)
	}
	return colors
}

func channel(x float64) int {
	v := int(math.Floor(3*math.Sin(x) + 3))
	if v < 0 {
		return 0
	}
	if v > cubeMax {
		return cubeMax
	}
	return v
}

// Palette is a precomputed colour sequence with a cursor that advances by
// one on every draw and wraps around the end of the sequence.
type Palette struct {
	colors []int
	cursor int
}

// NewPalette generates a palette of the given size.
func NewPalette(size int) *Palette {
	return &Palette{colors: Generate(size)}
}

// Colors returns a copy of the palette entries.
func (p *Palette) Colors() []int {
	out := make([]int, len(p.colors))
	copy(out, p.colors)
	return out
}

// Len returns the number of palette entries.
func (p *Palette) Len() int {
	return len(p.colors)
}

// Cursor returns how many colours have been drawn so far.
func (p *Palette) Cursor() int {
	return p.cursor
}

// Next returns the colour under the cursor and advances it. An empty
// palette returns -1 and leaves the cursor alone.
func (p *Palette) Next() int {
	if len(p.colors) == 0 {
		return -1
	}
	c := p.colors[p.cursor%len(p.colors)]
	p.cursor++
	return c
}

// Colorize wraps glyph in a 256-colour foreground sequence using the next
// palette entry. With the Ascii profile the glyph is returned untouched and
// the cursor does not move.
func (p *Palette) Colorize(profile termenv.Profile, glyph string) string {
	if profile == termenv.Ascii {
		return glyph
	}
	c := p.Next()
	if c < 0 {
		return glyph
	}
	return termenv.ANSI256.String(glyph).Foreground(termenv.ANSI256Color(c)).String()
}
