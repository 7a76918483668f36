// Package engine draws the live scoreboard, the rainbow trails and the
// walking figure, repainting the same terminal rows on every event.
package engine

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/muesli/termenv"

	"github.com/Dicklesworthstone/bow/internal/rainbow"
	"github.com/Dicklesworthstone/bow/internal/terminal"
	"github.com/Dicklesworthstone/bow/internal/trail"
)

// ErrFinished is returned when the engine is asked to draw after Finish.
var ErrFinished = errors.New("engine: animation already finished")

// State is the engine's lifecycle state.
type State int

const (
	StateIdle State = iota
	StateAnimating
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAnimating:
		return "animating"
	case StateFinished:
		return "finished"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Trail glyphs for the two animation frames.
const (
	glyphTick = "_"
	glyphTock = "-"
)

// Options configures a new Engine.
type Options struct {
	// Width is the terminal width in columns.
	Width int
	// Color enables 256-colour trails and tinted counters.
	Color bool
	// Geometry overrides the layout; zero fields take defaults.
	Geometry Geometry
	// Logger receives debug output. Defaults to slog.Default().
	Logger *slog.Logger
}

// Engine owns the drawing region. It is single-threaded: callers must
// serialise Start, Repaint and Finish, and nothing else may write to the
// same stream while the engine is animating.
type Engine struct {
	painter  *terminal.Painter
	palette  *rainbow.Palette
	trails   *trail.Set
	geometry Geometry
	profile  termenv.Profile
	logger   *slog.Logger

	state    State
	tick     bool
	repaints int
	face     Face
}

// New creates an idle engine drawing to w.
func New(w io.Writer, opts Options) *Engine {
	g := opts.Geometry.withDefaults()
	profile := termenv.Ascii
	if opts.Color {
		profile = termenv.ANSI256
	}

	e := &Engine{
		painter:  terminal.NewPainter(w),
		palette:  rainbow.NewPalette(rainbow.PaletteSize),
		trails:   trail.NewSet(g.Rows, g.TrailCapacity(opts.Width)),
		geometry: g,
		profile:  profile,
		logger:   opts.Logger,
	}
	e.log().Debug("engine created",
		"width", opts.Width,
		"rows", g.Rows,
		"trail_capacity", e.trails.Cap(),
		"color", opts.Color,
	)
	return e
}

func (e *Engine) log() *slog.Logger {
	if e.logger != nil {
		return e.logger
	}
	return slog.Default()
}

// State returns the current lifecycle state.
func (e *Engine) State() State { return e.state }

// Tick returns the frame flag the next repaint will draw with.
func (e *Engine) Tick() bool { return e.tick }

// Repaints returns how many repaints have been drawn.
func (e *Engine) Repaints() int { return e.repaints }

// TrailLen returns the current length of every trail row.
func (e *Engine) TrailLen() int { return e.trails.Len() }

// TrailCapacity returns the maximum trail length.
func (e *Engine) TrailCapacity() int { return e.trails.Cap() }

// Face returns the expression drawn by the last repaint.
func (e *Engine) Face() Face { return e.face }

// Geometry returns the layout in use.
func (e *Engine) Geometry() Geometry { return e.geometry }

// Painter exposes the underlying painter, mainly for cursor assertions.
func (e *Engine) Painter() *terminal.Painter { return e.painter }

// Start hides the cursor and draws the first frame.
func (e *Engine) Start(c Counters) error {
	if e.state == StateFinished {
		return ErrFinished
	}
	e.painter.HideCursor()
	return e.Repaint(c)
}

// Repaint advances the trails by one glyph and redraws the whole region,
// leaving the cursor at the region's top-left corner.
func (e *Engine) Repaint(c Counters) error {
	if e.state == StateFinished {
		return ErrFinished
	}
	e.state = StateAnimating

	e.advance()
	e.paintScoreboard(c)
	e.paintTrails()
	e.paintFigure(c)
	e.tick = !e.tick
	e.repaints++

	if err := e.painter.Err(); err != nil {
		return fmt.Errorf("repaint %d: %w", e.repaints, err)
	}
	return nil
}

// Finish restores the cursor and moves below the drawing region so later
// output does not overwrite it. The engine accepts no further repaints.
func (e *Engine) Finish() error {
	if e.state == StateFinished {
		return ErrFinished
	}
	e.state = StateFinished
	e.painter.ShowCursor()
	for i := 0; i < e.geometry.Rows; i++ {
		e.painter.Newline()
	}
	e.log().Debug("engine finished", "repaints", e.repaints)

	if err := e.painter.Err(); err != nil {
		return fmt.Errorf("finish: %w", err)
	}
	return nil
}

func (e *Engine) advance() {
	glyph := glyphTock
	if e.tick {
		glyph = glyphTick
	}
	e.trails.PushAll(e.palette.Colorize(e.profile, glyph))
}

func (e *Engine) paintScoreboard(c Counters) {
	counts := []struct {
		n    uint
		tint termenv.Color
	}{
		{c.Passed, termenv.ANSIGreen},
		{c.Failed, termenv.ANSIRed},
		{c.Pending, termenv.ANSIYellow},
	}
	for _, s := range counts {
		e.painter.Write(" ")
		e.painter.Write(e.profile.String(fmt.Sprint(s.n)).Foreground(s.tint).String())
		e.painter.Newline()
	}
	for i := len(counts); i < e.geometry.Rows; i++ {
		e.painter.Newline()
	}
	e.painter.CursorUp(e.geometry.Rows)
}

func (e *Engine) paintTrails() {
	for i := 0; i < e.trails.Rows(); i++ {
		e.painter.CursorRight(e.geometry.MarginWidth)
		e.painter.Write(e.trails.Row(i).Render())
		e.painter.Newline()
	}
	e.painter.CursorUp(e.geometry.Rows)
}

func (e *Engine) paintFigure(c Counters) {
	e.face = FaceFor(c)
	offset := e.geometry.MarginWidth + e.trails.Len()
	lines := figureLines(e.tick, e.face)
	for i := 0; i < e.geometry.Rows; i++ {
		if i < len(lines) {
			e.painter.CursorRight(offset)
			e.painter.Write(lines[i])
		}
		e.painter.Newline()
	}
	e.painter.CursorUp(e.geometry.Rows)
}
