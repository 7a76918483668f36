// Package termcap detects the facts the reporter needs about its output
// terminal: width, whether it is a TTY, and colour support.
package termcap

import (
	"io"
	"os"
	"strconv"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// DefaultWidth is used when the width cannot be determined.
const DefaultWidth = 80

// Colour modes accepted by --color and the config file.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Env describes the output terminal.
type Env struct {
	Width   int
	TTY     bool
	Color   bool
	Profile termenv.Profile
}

// Detect inspects w. Writers that are not files are treated as non-TTY
// pipes. A positive width overrides detection.
func Detect(w io.Writer, mode string, width int) Env {
	f, ok := w.(*os.File)
	if !ok {
		return resolve(false, termenv.Ascii, mode, width, DefaultWidth)
	}

	fd := f.Fd()
	tty := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	profile := termenv.NewOutput(f).EnvColorProfile()
	return resolve(tty, profile, mode, width, detectWidth(f))
}

func resolve(tty bool, detected termenv.Profile, mode string, width, detectedWidth int) Env {
	if width <= 0 {
		width = detectedWidth
	}
	profile := ProfileFor(mode, detected)
	return Env{
		Width:   width,
		TTY:     tty,
		Color:   profile != termenv.Ascii,
		Profile: profile,
	}
}

// ProfileFor applies a colour mode to the detected profile. "always" forces
// 256 colours even on a pipe; "never" forces plain text.
func ProfileFor(mode string, detected termenv.Profile) termenv.Profile {
	switch mode {
	case ColorAlways:
		if detected == termenv.TrueColor {
			return detected
		}
		return termenv.ANSI256
	case ColorNever:
		return termenv.Ascii
	default:
		return detected
	}
}

// ValidColorMode reports whether mode is a known colour mode.
func ValidColorMode(mode string) bool {
	switch mode {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}

func detectWidth(f *os.File) int {
	if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
		return w
	}
	return WidthFromEnv(os.Getenv)
}

// WidthFromEnv reads $COLUMNS, falling back to DefaultWidth.
func WidthFromEnv(getenv func(string) string) int {
	if n, err := strconv.Atoi(getenv("COLUMNS")); err == nil && n > 0 {
		return n
	}
	return DefaultWidth
}
