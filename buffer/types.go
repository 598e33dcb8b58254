package buffer

import "fmt"

// Range is a span of rune offsets with Start <= End.
type Range struct {
	Start int
	End   int
}

// Pos points into the document by (row, col) in runes.
// Row and Col are 0-based.
type Pos struct {
	Row int
	Col int
}

// NewRange builds a Range from two offsets in any order.
func NewRange(a, b int) Range {
	if a > b {
		a, b = b, a
	}
	return Range{Start: a, End: b}
}

// Caret returns a collapsed range at off.
func Caret(off int) Range {
	return Range{Start: off, End: off}
}

// Intersects reports whether r and other share at least one offset.
// Touching boundaries count as intersecting.
func (r Range) Intersects(other Range) bool {
	if r.Start > other.End || r.End < other.Start {
		return false
	}
	return true
}

func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

func (r Range) Len() int {
	return r.End - r.Start
}

// Contains reports whether off lies within [Start, End].
func (r Range) Contains(off int) bool {
	return off >= r.Start && off <= r.End
}

func (r Range) String() string {
	return fmt.Sprintf("[%d:%d]", r.Start, r.End)
}

func clampInt(v, min, max int) int {
	if max < min {
		return min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// ClampRange clamps both ends of r into [0, n] and normalizes it.
func ClampRange(r Range, n int) Range {
	return NewRange(clampInt(r.Start, 0, n), clampInt(r.End, 0, n))
}
