// Package reporter binds a run's lifecycle events to the animation engine
// and prints the epilogue once the run ends.
package reporter

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/Dicklesworthstone/bow/internal/engine"
)

// Animator draws the live region. *engine.Engine implements it.
type Animator interface {
	Start(c engine.Counters) error
	Repaint(c engine.Counters) error
	Finish() error
}

// Epilogue renders the final summary after the drawing region is vacated.
type Epilogue interface {
	Render(w io.Writer, s Summary) error
}

// Options configures a Reporter.
type Options struct {
	// Out receives the epilogue. It should be the stream the animator
	// draws to.
	Out io.Writer
	// Logger defaults to slog.Default().
	Logger *slog.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

// Reporter handles events one at a time, in arrival order. Each event is
// handled completely before the next one is looked at.
type Reporter struct {
	anim     Animator
	epilogue Epilogue
	out      io.Writer
	logger   *slog.Logger
	now      func() time.Time

	started  bool
	done     bool
	begin    time.Time
	last     engine.Counters
	failures []Failure
	summary  Summary
}

// New creates a reporter. A nil animator selects the plain fallback: no
// live drawing, only the epilogue. A nil epilogue prints nothing at the end.
func New(anim Animator, epilogue Epilogue, opts Options) *Reporter {
	r := &Reporter{
		anim:     anim,
		epilogue: epilogue,
		out:      opts.Out,
		logger:   opts.Logger,
		now:      opts.Now,
	}
	if r.out == nil {
		r.out = io.Discard
	}
	if r.now == nil {
		r.now = time.Now
	}
	return r
}

func (r *Reporter) log() *slog.Logger {
	if r.logger != nil {
		return r.logger
	}
	return slog.Default()
}

// Done reports whether the end event has been handled.
func (r *Reporter) Done() bool { return r.done }

// Summary returns the final summary. It is only complete once Done is true.
func (r *Reporter) Summary() Summary { return r.summary }

// Handle processes a single event. Status events arriving before the start
// event start the animation themselves. Events after the end are ignored.
func (r *Reporter) Handle(ev Event) error {
	if r.done {
		r.log().Debug("event after end ignored", "kind", ev.Kind, "test", ev.Test)
		return nil
	}
	r.last = ev.Counters

	switch {
	case ev.Kind == KindStart:
		if r.started {
			r.log().Debug("duplicate start event ignored")
			return nil
		}
		return r.start(ev.Counters)

	case ev.Kind.IsStatus():
		if ev.Kind == KindFail {
			r.failures = append(r.failures, Failure{
				Package: ev.Package,
				Test:    ev.Test,
				Elapsed: ev.Elapsed,
				Output:  ev.Output,
			})
		}
		if !r.started {
			return r.start(ev.Counters)
		}
		return r.repaint(ev.Counters)

	case ev.Kind == KindEnd:
		return r.end(ev.Counters)

	default:
		return fmt.Errorf("reporter: unknown event kind %v", ev.Kind)
	}
}

// Run consumes events until the end event, the channel closing, or ctx
// being cancelled. A closed channel is treated as the end of the run. On
// cancellation the drawing region is still vacated so the cursor is
// restored, but no epilogue is printed.
func (r *Reporter) Run(ctx context.Context, events <-chan Event) error {
	for {
		select {
		case <-ctx.Done():
			if err := r.abort(); err != nil {
				r.log().Warn("failed to restore terminal", "error", err)
			}
			return ctx.Err()

		case ev, ok := <-events:
			if !ok {
				if r.done {
					return nil
				}
				return r.Handle(Event{Kind: KindEnd, Counters: r.last})
			}
			if err := r.Handle(ev); err != nil {
				return err
			}
			if r.done {
				return nil
			}
		}
	}
}

func (r *Reporter) start(c engine.Counters) error {
	r.started = true
	r.begin = r.now()
	r.log().Debug("run started")
	if r.anim == nil {
		return nil
	}
	if err := r.anim.Start(c); err != nil {
		return fmt.Errorf("start animation: %w", err)
	}
	return nil
}

func (r *Reporter) repaint(c engine.Counters) error {
	if r.anim == nil {
		return nil
	}
	if err := r.anim.Repaint(c); err != nil {
		return fmt.Errorf("repaint: %w", err)
	}
	return nil
}

func (r *Reporter) end(c engine.Counters) error {
	r.done = true
	var elapsed time.Duration
	if r.started {
		elapsed = r.now().Sub(r.begin)
	}
	r.summary = Summary{
		Counters: c,
		Duration: elapsed,
		Failures: r.failures,
	}
	r.log().Debug("run ended",
		"passed", c.Passed,
		"failed", c.Failed,
		"pending", c.Pending,
		"duration", elapsed,
	)

	if r.anim != nil {
		if err := r.anim.Finish(); err != nil {
			return fmt.Errorf("finish animation: %w", err)
		}
	}
	if r.epilogue == nil {
		return nil
	}
	if err := r.epilogue.Render(r.out, r.summary); err != nil {
		return fmt.Errorf("render epilogue: %w", err)
	}
	return nil
}

func (r *Reporter) abort() error {
	if r.done {
		return nil
	}
	r.done = true
	if r.anim == nil {
		return nil
	}
	return r.anim.Finish()
}
