package engine

// Counters is a read-only snapshot of the run's results at the moment of a
// repaint.
type Counters struct {
	Passed  uint
	Failed  uint
	Pending uint
}

// Total returns the number of finished tests.
func (c Counters) Total() uint {
	return c.Passed + c.Failed + c.Pending
}

// Face is the figure's expression.
type Face int

const (
	FaceNeutral Face = iota
	FaceContent
	FaceCaution
	FaceAlert
)

// FaceFor picks the expression for c. Failures win over pending tests, which
// win over passes.
func FaceFor(c Counters) Face {
	switch {
	case c.Failed > 0:
		return FaceAlert
	case c.Pending > 0:
		return FaceCaution
	case c.Passed > 0:
		return FaceContent
	default:
		return FaceNeutral
	}
}

// Glyph returns the text drawn for the face.
func (f Face) Glyph() string {
	switch f {
	case FaceAlert:
		return "< x .x>"
	case FaceCaution:
		return "< o .o>"
	case FaceContent:
		return "< ^ .^>"
	default:
		return "< - .->"
	}
}

func (f Face) String() string {
	switch f {
	case FaceAlert:
		return "alert"
	case FaceCaution:
		return "caution"
	case FaceContent:
		return "content"
	default:
		return "neutral"
	}
}
