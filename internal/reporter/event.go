package reporter

import (
	"fmt"
	"time"

	"github.com/Dicklesworthstone/bow/internal/engine"
)

// Kind identifies a run lifecycle event.
type Kind int

const (
	KindStart Kind = iota
	KindPass
	KindFail
	KindPending
	KindEnd
)

func (k Kind) String() string {
	switch k {
	case KindStart:
		return "start"
	case KindPass:
		return "pass"
	case KindFail:
		return "fail"
	case KindPending:
		return "pending"
	case KindEnd:
		return "end"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// IsStatus reports whether k is a per-test result.
func (k Kind) IsStatus() bool {
	return k == KindPass || k == KindFail || k == KindPending
}

// Event is one notification from the run. Counters is the snapshot valid
// when the event was emitted.
type Event struct {
	Kind     Kind
	Counters engine.Counters

	Package string
	Test    string
	Elapsed time.Duration
	// Output holds the test's captured output, set for failures.
	Output []string
}

// Failure describes one failed test for the epilogue.
type Failure struct {
	Package string
	Test    string
	Elapsed time.Duration
	Output  []string
}

// Title names the failure, falling back to the package for build failures.
func (f Failure) Title() string {
	switch {
	case f.Test == "":
		return f.Package
	case f.Package == "":
		return f.Test
	default:
		return f.Package + " " + f.Test
	}
}

// Summary is what the epilogue renders once the run has ended.
type Summary struct {
	Counters engine.Counters
	Duration time.Duration
	Failures []Failure
}
