package buffer

// Line is a view of one line of a rune buffer.
//
// [Start, End) never contains '\n'. End is the offset of the next newline, or
// the buffer length on the last line. A Line is recomputed from the buffer
// each time it is needed; Replace returns a Line over a new buffer and leaves
// the receiver untouched.
type Line struct {
	text  []rune
	start int
	end   int
}

// LineAt returns the line containing pos.
func LineAt(text []rune, pos int) (Line, error) {
	if err := checkOffset("line", pos, len(text)); err != nil {
		return Line{}, err
	}
	return lineAt(text, pos), nil
}

func lineAt(text []rune, pos int) Line {
	start := pos
	for start > 0 && text[start-1] != '\n' {
		start--
	}
	end := pos
	for end < len(text) && text[end] != '\n' {
		end++
	}
	return Line{text: text, start: start, end: end}
}

func (l Line) Start() int { return l.start }

func (l Line) End() int { return l.end }

func (l Line) Len() int { return l.end - l.start }

// Runes returns the buffer the line belongs to.
func (l Line) Runes() []rune { return l.text }

func (l Line) Text() string {
	return string(l.text[l.start:l.end])
}

// Indentation returns the leading run of spaces and tabs.
func (l Line) Indentation() string {
	i := l.start
	for i < l.end && (l.text[i] == ' ' || l.text[i] == '\t') {
		i++
	}
	return string(l.text[l.start:i])
}

// Replace swaps the line's text for newText and returns the line at the same
// start in the resulting buffer, together with sel adjusted for the change in
// length.
//
// Selection endpoints before the line start are unchanged. Endpoints at or
// after it move by the length delta, clamped to the line start: when the
// delta would carry an endpoint behind the start (an outdent removing text the
// endpoint sat in), it stops at the start instead of landing in the previous
// line or going negative.
func (l Line) Replace(newText string, sel Range) (Line, Range) {
	repl := []rune(newText)
	delta := len(repl) - l.Len()

	out := make([]rune, 0, len(l.text)+delta)
	out = append(out, l.text[:l.start]...)
	out = append(out, repl...)
	out = append(out, l.text[l.end:]...)

	shift := func(off int) int {
		if off < l.start {
			return off
		}
		off += delta
		if off < l.start {
			off = l.start
		}
		return off
	}
	return lineAt(out, l.start), Range{Start: shift(sel.Start), End: shift(sel.End)}
}

// Next returns the line after l, or false if l is the last line.
func (l Line) Next() (Line, bool) {
	if l.end >= len(l.text) {
		return Line{}, false
	}
	return lineAt(l.text, l.end+1), true
}

// IntersectsSelection reports whether [Start, End] touches sel.
func (l Line) IntersectsSelection(sel Range) bool {
	return NewRange(l.start, l.end).Intersects(sel)
}
