package trail

// Set is a group of equally sized buffers that always advance together, so
// every row holds the same number of glyphs.
type Set struct {
	rows []*Buffer
}

// NewSet creates rows buffers of the given capacity.
func NewSet(rows, capacity int) *Set {
	if rows < 0 {
		rows = 0
	}
	s := &Set{rows: make([]*Buffer, rows)}
	for i := range s.rows {
		s.rows[i] = New(capacity)
	}
	return s
}

// PushAll pushes the same glyph into every row.
func (s *Set) PushAll(glyph string) {
	for _, row := range s.rows {
		row.Push(glyph)
	}
}

// Rows returns the number of rows.
func (s *Set) Rows() int {
	return len(s.rows)
}

// Row returns the i-th row.
func (s *Set) Row(i int) *Buffer {
	return s.rows[i]
}

// Len returns the current length of the rows, read from the first row.
func (s *Set) Len() int {
	if len(s.rows) == 0 {
		return 0
	}
	return s.rows[0].Len()
}

// Cap returns the capacity shared by all rows.
func (s *Set) Cap() int {
	if len(s.rows) == 0 {
		return 0
	}
	return s.rows[0].Cap()
}
