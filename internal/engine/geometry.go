package engine

// Default drawing geometry.
const (
	DefaultMarginWidth  = 5
	DefaultOverlayWidth = 11
	DefaultRows         = 4
	DefaultWidthRatio   = 0.75
)

// Geometry describes the fixed layout of the drawing region. It is computed
// once; terminal resizes are not followed.
type Geometry struct {
	// MarginWidth is the number of columns reserved for the scoreboard.
	MarginWidth int
	// OverlayWidth is the number of columns reserved for the figure.
	OverlayWidth int
	// Rows is the number of trail rows, and the height of the region.
	Rows int
	// WidthRatio is the share of the terminal width the trails and figure
	// may use together.
	WidthRatio float64
}

// DefaultGeometry returns the standard four-row layout.
func DefaultGeometry() Geometry {
	return Geometry{
		MarginWidth:  DefaultMarginWidth,
		OverlayWidth: DefaultOverlayWidth,
		Rows:         DefaultRows,
		WidthRatio:   DefaultWidthRatio,
	}
}

// withDefaults fills unset fields and raises Rows to the minimum height the
// scoreboard and figure need.
func (g Geometry) withDefaults() Geometry {
	d := DefaultGeometry()
	if g.MarginWidth <= 0 {
		g.MarginWidth = d.MarginWidth
	}
	if g.OverlayWidth <= 0 {
		g.OverlayWidth = d.OverlayWidth
	}
	if g.WidthRatio <= 0 {
		g.WidthRatio = d.WidthRatio
	}
	if g.Rows < MinRows {
		g.Rows = MinRows
	}
	return g
}

// TrailCapacity returns how many glyphs each trail row can hold for a
// terminal of the given width. Degenerate widths yield zero.
func (g Geometry) TrailCapacity(width int) int {
	c := int(float64(width)*g.WidthRatio) - g.OverlayWidth
	if c < 0 {
		return 0
	}
	return c
}
