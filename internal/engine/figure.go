package engine

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// MinRows is the smallest region height: the figure is four lines tall and
// the scoreboard needs three counters plus a separator.
const MinRows = 4

// figureLine builds one line of the figure for the given frame. The two
// frames differ only in leading padding, which makes the figure bob.
type figureLine func(tick bool, face Face) string

var figure = [MinRows]figureLine{
	func(tick bool, _ Face) string {
		return "   " + pick(tick, "  ", "   ") + "/)_/)"
	},
	func(tick bool, face Face) string {
		return pick(tick, "    ", "     ") + face.Glyph()
	},
	func(bool, Face) string {
		return "  ﾉ) /　　|"
	},
	func(tick bool, _ Face) string {
		return pick(tick, " ", "  ") + "＼(＿＿_)"
	},
}

// figureWidths holds, per line, the widest rendering across both frames.
// Every line is padded to that width so the narrower frame overwrites what
// the wider one left behind.
var figureWidths = func() [MinRows]int {
	var widths [MinRows]int
	for i, line := range figure {
		for _, tick := range []bool{false, true} {
			widths[i] = max(widths[i], runewidth.StringWidth(line(tick, FaceNeutral)))
		}
	}
	return widths
}()

// figureLines renders the figure for one frame.
func figureLines(tick bool, face Face) []string {
	lines := make([]string, 0, len(figure))
	for i, line := range figure {
		s := line(tick, face)
		if pad := figureWidths[i] - runewidth.StringWidth(s); pad > 0 {
			s += strings.Repeat(" ", pad)
		}
		lines = append(lines, s)
	}
	return lines
}

func pick(cond bool, a, b string) string {
	if cond {
		return a
	}
	return b
}
