package buffer

// InsertText inserts s at the caret, or replaces the active selection.
// It reports whether the text changed.
func (b *Buffer) InsertText(s string) bool {
	r := b.Selection()
	if s == "" && r.IsEmpty() {
		return false
	}
	return b.replaceRange(r, s)
}

// DeleteBackward applies backspace semantics.
func (b *Buffer) DeleteBackward() bool {
	if b.HasSelection() {
		return b.DeleteSelection()
	}
	if b.head == 0 {
		return false
	}
	return b.replaceRange(Range{Start: b.head - 1, End: b.head}, "")
}

// DeleteForward applies delete-key semantics.
func (b *Buffer) DeleteForward() bool {
	if b.HasSelection() {
		return b.DeleteSelection()
	}
	if b.head == len(b.text) {
		return false
	}
	return b.replaceRange(Range{Start: b.head, End: b.head + 1}, "")
}

// DeleteSelection deletes the active selection, if any.
func (b *Buffer) DeleteSelection() bool {
	if !b.HasSelection() {
		return false
	}
	return b.replaceRange(b.Selection(), "")
}

func (b *Buffer) replaceRange(r Range, s string) bool {
	r = ClampRange(r, len(b.text))
	ins := []rune(s)
	if string(b.text[r.Start:r.End]) == s {
		b.Select(r.Start+len(ins), r.Start+len(ins))
		return false
	}

	out := make([]rune, 0, len(b.text)-r.Len()+len(ins))
	out = append(out, b.text[:r.Start]...)
	out = append(out, ins...)
	out = append(out, b.text[r.End:]...)

	b.text = out
	b.anchor = r.Start + len(ins)
	b.head = b.anchor
	b.version++
	return true
}
