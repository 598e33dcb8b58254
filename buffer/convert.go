package buffer

// PosFromOffset converts a rune offset into a (row, col) position. Columns
// count runes. It returns false when off lies outside [0, Len()].
func (b *Buffer) PosFromOffset(off int) (Pos, bool) {
	if off < 0 || off > len(b.text) {
		return Pos{}, false
	}
	var p Pos
	for _, r := range b.text[:off] {
		if r == '\n' {
			p.Row++
			p.Col = 0
			continue
		}
		p.Col++
	}
	return p, true
}

// OffsetFromPos converts a (row, col) position into a rune offset. It
// returns false for a row past the last line or a column past the end of its
// line.
func (b *Buffer) OffsetFromPos(p Pos) (int, bool) {
	if p.Row < 0 || p.Col < 0 {
		return 0, false
	}
	start := 0
	for row := 0; row < p.Row; row++ {
		i := start
		for i < len(b.text) && b.text[i] != '\n' {
			i++
		}
		if i == len(b.text) {
			return 0, false
		}
		start = i + 1
	}
	line := lineAt(b.text, start)
	if p.Col > line.Len() {
		return 0, false
	}
	return start + p.Col, true
}

// LineCount returns the number of lines; an empty document has one.
func (b *Buffer) LineCount() int {
	n := 1
	for _, r := range b.text {
		if r == '\n' {
			n++
		}
	}
	return n
}

// Lines splits the document into its lines without the separators.
func (b *Buffer) Lines() []string {
	out := make([]string, 0, b.LineCount())
	start := 0
	for i, r := range b.text {
		if r == '\n' {
			out = append(out, string(b.text[start:i]))
			start = i + 1
		}
	}
	return append(out, string(b.text[start:]))
}
