// Package gotest turns a `go test -json` stream into reporter events.
package gotest

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/Dicklesworthstone/bow/internal/engine"
	"github.com/Dicklesworthstone/bow/internal/reporter"
)

// maxLineSize bounds a single JSON line; test output can be long.
const maxLineSize = 1024 * 1024

// TestEvent is one line of test2json output.
type TestEvent struct {
	Time    time.Time `json:"Time"`
	Action  string    `json:"Action"`
	Package string    `json:"Package"`
	Test    string    `json:"Test"`
	Elapsed float64   `json:"Elapsed"`
	Output  string    `json:"Output"`
}

// Source keeps the run's counters and translates test2json events.
type Source struct {
	counters engine.Counters
	output   map[string][]string
	failed   map[string]bool // packages with at least one failed test
	parents  map[string]bool // tests with finished subtests; true if one failed
	logger   *slog.Logger
}

// NewSource returns a source with zeroed counters.
func NewSource(logger *slog.Logger) *Source {
	return &Source{
		output:  make(map[string][]string),
		failed:  make(map[string]bool),
		parents: make(map[string]bool),
		logger:  logger,
	}
}

func (s *Source) log() *slog.Logger {
	if s.logger != nil {
		return s.logger
	}
	return slog.Default()
}

// Counters returns the current counters.
func (s *Source) Counters() engine.Counters {
	return s.counters
}

func outputKey(pkg, test string) string {
	return pkg + "\x00" + test
}

// markParents records a finished subtest on every ancestor of test.
func (s *Source) markParents(pkg, test string, failed bool) {
	for i := strings.LastIndex(test, "/"); i > 0; i = strings.LastIndex(test, "/") {
		test = test[:i]
		key := outputKey(pkg, test)
		s.parents[key] = s.parents[key] || failed
	}
}

// Translate applies one test2json event to the counters. It returns a
// status event when the event finished a test, and false otherwise.
//
// Only leaf tests count: a test whose subtests reported is represented by
// them, unless it failed while none of them did. Likewise a package that
// fails without any failed test (a build failure, a panic in TestMain)
// counts as one failure.
func (s *Source) Translate(te TestEvent) (reporter.Event, bool) {
	key := outputKey(te.Package, te.Test)
	childFailed, isParent := s.parents[key]
	if isParent && (te.Action == "pass" || te.Action == "skip" || te.Action == "fail") {
		delete(s.parents, key)
	}

	switch te.Action {
	case "output":
		s.output[key] = append(s.output[key], strings.TrimRight(te.Output, "\n"))
		return reporter.Event{}, false

	case "pass", "skip":
		delete(s.output, key)
		if te.Test == "" || isParent {
			return reporter.Event{}, false
		}
		s.markParents(te.Package, te.Test, false)
		kind := reporter.KindPass
		if te.Action == "pass" {
			s.counters.Passed++
		} else {
			kind = reporter.KindPending
			s.counters.Pending++
		}
		return s.event(kind, te, nil), true

	case "fail":
		out := s.output[key]
		delete(s.output, key)
		if te.Test == "" && s.failed[te.Package] {
			return reporter.Event{}, false
		}
		if isParent && childFailed {
			return reporter.Event{}, false
		}
		s.markParents(te.Package, te.Test, true)
		s.failed[te.Package] = true
		s.counters.Failed++
		return s.event(reporter.KindFail, te, out), true

	default:
		// run, pause, cont, start, bench: nothing to count.
		return reporter.Event{}, false
	}
}

func (s *Source) event(kind reporter.Kind, te TestEvent, out []string) reporter.Event {
	return reporter.Event{
		Kind:     kind,
		Counters: s.counters,
		Package:  te.Package,
		Test:     te.Test,
		Elapsed:  time.Duration(te.Elapsed * float64(time.Second)),
		Output:   out,
	}
}

// Emit reads test2json lines from r and sends the start event, one event
// per finished test, and the end event to out, which it closes on return.
// Lines that are not JSON are logged and skipped.
func (s *Source) Emit(ctx context.Context, r io.Reader, out chan<- reporter.Event) error {
	defer close(out)

	send := func(ev reporter.Event) error {
		select {
		case out <- ev:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if err := send(reporter.Event{Kind: reporter.KindStart, Counters: s.counters}); err != nil {
		return err
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var te TestEvent
		if err := json.Unmarshal(line, &te); err != nil {
			s.log().Debug("skipping non-JSON line", "line", string(line))
			continue
		}
		ev, ok := s.Translate(te)
		if !ok {
			continue
		}
		if err := send(ev); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read test stream: %w", err)
	}

	return send(reporter.Event{Kind: reporter.KindEnd, Counters: s.counters})
}

// Command builds `go test -json` with the given extra arguments.
func Command(ctx context.Context, args ...string) *exec.Cmd {
	return exec.CommandContext(ctx, "go", append([]string{"test", "-json"}, args...)...)
}
