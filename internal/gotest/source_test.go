package gotest

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Dicklesworthstone/bow/internal/engine"
	"github.com/Dicklesworthstone/bow/internal/reporter"
)

const sampleStream = `{"Action":"start","Package":"example.com/app"}
{"Action":"run","Package":"example.com/app","Test":"TestOK"}
{"Action":"output","Package":"example.com/app","Test":"TestOK","Output":"=== RUN   TestOK\n"}
{"Action":"pass","Package":"example.com/app","Test":"TestOK","Elapsed":0.01}
{"Action":"run","Package":"example.com/app","Test":"TestSkipped"}
{"Action":"skip","Package":"example.com/app","Test":"TestSkipped","Elapsed":0}
not json at all
{"Action":"run","Package":"example.com/app","Test":"TestBroken"}
{"Action":"output","Package":"example.com/app","Test":"TestBroken","Output":"    app_test.go:12: want 2, got 3\n"}
{"Action":"fail","Package":"example.com/app","Test":"TestBroken","Elapsed":0.5}
{"Action":"output","Package":"example.com/app","Output":"FAIL\n"}
{"Action":"fail","Package":"example.com/app","Elapsed":0.6}
`

func collect(t *testing.T, input string) []reporter.Event {
	t.Helper()

	src := NewSource(nil)
	out := make(chan reporter.Event, 64)
	if err := src.Emit(context.Background(), strings.NewReader(input), out); err != nil {
		t.Fatalf("Emit() error = %v", err)
	}
	var events []reporter.Event
	for ev := range out {
		events = append(events, ev)
	}
	return events
}

func TestEmit_SampleStream(t *testing.T) {
	t.Parallel()

	events := collect(t, sampleStream)

	wantKinds := []reporter.Kind{
		reporter.KindStart,
		reporter.KindPass,
		reporter.KindPending,
		reporter.KindFail,
		reporter.KindEnd,
	}
	if len(events) != len(wantKinds) {
		t.Fatalf("got %d events, want %d: %+v", len(events), len(wantKinds), events)
	}
	for i, want := range wantKinds {
		if events[i].Kind != want {
			t.Errorf("event %d kind = %v, want %v", i, events[i].Kind, want)
		}
	}

	final := events[len(events)-1].Counters
	if final != (engine.Counters{Passed: 1, Failed: 1, Pending: 1}) {
		t.Errorf("final counters = %+v", final)
	}

	fail := events[3]
	if fail.Test != "TestBroken" || len(fail.Output) != 1 || !strings.Contains(fail.Output[0], "want 2, got 3") {
		t.Errorf("failure event = %+v", fail)
	}
}

func TestEmit_CountersAreSnapshots(t *testing.T) {
	t.Parallel()

	events := collect(t, sampleStream)
	if events[1].Counters != (engine.Counters{Passed: 1}) {
		t.Errorf("pass event counters = %+v", events[1].Counters)
	}
	if events[2].Counters != (engine.Counters{Passed: 1, Pending: 1}) {
		t.Errorf("pending event counters = %+v", events[2].Counters)
	}
}

func TestEmit_EmptyStream(t *testing.T) {
	t.Parallel()

	events := collect(t, "")
	if len(events) != 2 || events[0].Kind != reporter.KindStart || events[1].Kind != reporter.KindEnd {
		t.Errorf("events = %+v, want start and end only", events)
	}
}

func TestTranslate_BuildFailureCountsOnce(t *testing.T) {
	t.Parallel()

	src := NewSource(nil)
	src.Translate(TestEvent{Action: "output", Package: "example.com/broken", Output: "# example.com/broken\n"})
	src.Translate(TestEvent{Action: "output", Package: "example.com/broken", Output: "./x.go:3:1: syntax error\n"})
	ev, ok := src.Translate(TestEvent{Action: "fail", Package: "example.com/broken"})
	if !ok {
		t.Fatal("package failure without failed tests should count")
	}
	if ev.Kind != reporter.KindFail || ev.Test != "" || len(ev.Output) != 2 {
		t.Errorf("build failure event = %+v", ev)
	}
	if src.Counters().Failed != 1 {
		t.Errorf("Failed = %d, want 1", src.Counters().Failed)
	}
}

func TestTranslate_PackageResultsDoNotCount(t *testing.T) {
	t.Parallel()

	src := NewSource(nil)
	for _, te := range []TestEvent{
		{Action: "pass", Package: "a"},
		{Action: "skip", Package: "b"},
		{Action: "run", Package: "a", Test: "TestX"},
		{Action: "pause", Package: "a", Test: "TestX"},
		{Action: "cont", Package: "a", Test: "TestX"},
	} {
		if _, ok := src.Translate(te); ok {
			t.Errorf("Translate(%+v) counted", te)
		}
	}
	if src.Counters() != (engine.Counters{}) {
		t.Errorf("counters = %+v, want zero", src.Counters())
	}
}

func TestTranslate_CountsLeafTestsOnly(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		events []TestEvent
		want   engine.Counters
	}{
		{
			name: "passing subtests",
			events: []TestEvent{
				{Action: "pass", Package: "p", Test: "TestA/one"},
				{Action: "pass", Package: "p", Test: "TestA/two"},
				{Action: "pass", Package: "p", Test: "TestA"},
			},
			want: engine.Counters{Passed: 2},
		},
		{
			name: "nested subtests",
			events: []TestEvent{
				{Action: "pass", Package: "p", Test: "TestA/b/c"},
				{Action: "skip", Package: "p", Test: "TestA/b/d"},
				{Action: "pass", Package: "p", Test: "TestA/b"},
				{Action: "pass", Package: "p", Test: "TestA"},
			},
			want: engine.Counters{Passed: 1, Pending: 1},
		},
		{
			name: "failing subtest",
			events: []TestEvent{
				{Action: "pass", Package: "p", Test: "TestA/one"},
				{Action: "fail", Package: "p", Test: "TestA/two"},
				{Action: "fail", Package: "p", Test: "TestA"},
				{Action: "fail", Package: "p"},
			},
			want: engine.Counters{Passed: 1, Failed: 1},
		},
		{
			name: "parent fails on its own",
			events: []TestEvent{
				{Action: "pass", Package: "p", Test: "TestA/one"},
				{Action: "fail", Package: "p", Test: "TestA"},
			},
			want: engine.Counters{Passed: 1, Failed: 1},
		},
		{
			name: "same name in another package",
			events: []TestEvent{
				{Action: "pass", Package: "p", Test: "TestA/one"},
				{Action: "pass", Package: "q", Test: "TestA"},
			},
			want: engine.Counters{Passed: 2},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			src := NewSource(nil)
			for _, te := range tt.events {
				src.Translate(te)
			}
			if src.Counters() != tt.want {
				t.Errorf("counters = %+v, want %+v", src.Counters(), tt.want)
			}
		})
	}
}

func TestEmit_StopsOnCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := NewSource(nil)
	out := make(chan reporter.Event)
	err := src.Emit(ctx, strings.NewReader(sampleStream), out)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Emit() error = %v, want context.Canceled", err)
	}
	if _, ok := <-out; ok {
		t.Error("out channel not closed")
	}
}

func TestCommand(t *testing.T) {
	t.Parallel()

	cmd := Command(context.Background(), "./...", "-run", "TestFoo")
	got := strings.Join(cmd.Args, " ")
	if got != "go test -json ./... -run TestFoo" {
		t.Errorf("Args = %q", got)
	}
}
