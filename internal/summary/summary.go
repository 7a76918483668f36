// Package summary renders the epilogue printed after a run: totals, the
// run time and the output of every failed test.
package summary

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/termenv"

	"github.com/Dicklesworthstone/bow/internal/reporter"
)

const (
	// bodyIndent is how far failure output is indented under its title.
	bodyIndent = 5
	// minWrapWidth keeps wrapping sane on very narrow terminals.
	minWrapWidth = 20
)

// Renderer prints the epilogue. It implements reporter.Epilogue.
type Renderer struct {
	// Width is the terminal width used to wrap failure output.
	Width int
	// Profile selects colour output; termenv.Ascii prints plain text.
	Profile termenv.Profile
}

// Render writes the summary for s to w.
func (r *Renderer) Render(w io.Writer, s reporter.Summary) error {
	lr := lipgloss.NewRenderer(w)
	lr.SetColorProfile(r.Profile)

	passing := lr.NewStyle().Foreground(lipgloss.Color("2"))
	pending := lr.NewStyle().Foreground(lipgloss.Color("6"))
	failing := lr.NewStyle().Foreground(lipgloss.Color("1"))
	muted := lr.NewStyle().Foreground(lipgloss.Color("8"))
	title := lr.NewStyle().Bold(true)

	var b strings.Builder
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s %s\n",
		passing.Render(fmt.Sprintf("%d passing", s.Counters.Passed)),
		muted.Render("("+formatDuration(s.Duration)+")"),
	)
	if s.Counters.Pending > 0 {
		fmt.Fprintf(&b, "  %s\n", pending.Render(fmt.Sprintf("%d pending", s.Counters.Pending)))
	}
	if s.Counters.Failed > 0 {
		fmt.Fprintf(&b, "  %s\n", failing.Render(fmt.Sprintf("%d failing", s.Counters.Failed)))
	}

	for i, f := range s.Failures {
		b.WriteString("\n")
		fmt.Fprintf(&b, "  %d) %s\n", i+1, title.Render(f.Title()))
		if body := r.failureBody(f.Output); body != "" {
			for _, line := range strings.Split(body, "\n") {
				b.WriteString(failing.Render(line))
				b.WriteString("\n")
			}
		}
	}
	b.WriteString("\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}

// failureBody keeps the meaningful lines of a test's output, wraps them to
// the terminal and indents them under the failure title. The indentation go
// test adds to every line is removed; indentation inside the output, such as
// in diffs and stack traces, is kept.
func (r *Renderer) failureBody(output []string) string {
	var lines []string
	for _, line := range output {
		line = strings.TrimRight(line, " \t\r")
		if line == "" || isStatusLine(strings.TrimSpace(line)) {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return ""
	}

	width := max(r.Width-bodyIndent, minWrapWidth)
	wrapped := wordwrap.String(strings.Join(dedent(lines), "\n"), width)
	return indent.String(wrapped, bodyIndent)
}

// dedent strips the leading whitespace all lines share.
func dedent(lines []string) []string {
	common := -1
	for _, line := range lines {
		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if common < 0 || n < common {
			common = n
		}
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = line[common:]
	}
	return out
}

// isStatusLine reports whether line is one of go test's own progress lines,
// which the summary already conveys.
func isStatusLine(line string) bool {
	for _, prefix := range []string{"=== RUN", "=== PAUSE", "=== CONT", "=== NAME", "--- FAIL", "--- PASS", "--- SKIP"} {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return line == "FAIL" || line == "PASS"
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.Round(10 * time.Millisecond).String()
}
