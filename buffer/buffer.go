package buffer

// Field is the capability a host text widget exposes to a Session.
//
// Selection must return a normalized Range inside [0, rune length of Text].
type Field interface {
	Text() string
	SetText(text string)
	Selection() Range
	SetSelection(r Range)
}

// Buffer is an in-memory Field: text, caret and selection anchor.
//
// The selection runs from anchor to head; head is the caret. Version
// increments on every effective change to text, caret or selection.
type Buffer struct {
	text    []rune
	anchor  int
	head    int
	version uint64
}

var _ Field = (*Buffer)(nil)

func New(text string) *Buffer {
	return &Buffer{text: []rune(text)}
}

func (b *Buffer) Text() string { return string(b.text) }

// Len returns the document length in runes.
func (b *Buffer) Len() int { return len(b.text) }

func (b *Buffer) Version() uint64 { return b.version }

// SetText replaces the whole document and collapses the selection at 0.
func (b *Buffer) SetText(text string) {
	b.text = []rune(text)
	b.anchor = 0
	b.head = 0
	b.version++
}

// Selection returns the normalized selection.
func (b *Buffer) Selection() Range {
	return NewRange(b.anchor, b.head)
}

// SetSelection selects r with the caret at r.End. Offsets are clamped into
// the document.
func (b *Buffer) SetSelection(r Range) {
	b.Select(r.Start, r.End)
}

// Select sets the selection anchor and caret, keeping their direction.
func (b *Buffer) Select(anchor, head int) {
	anchor = clampInt(anchor, 0, len(b.text))
	head = clampInt(head, 0, len(b.text))
	if anchor == b.anchor && head == b.head {
		return
	}
	b.anchor = anchor
	b.head = head
	b.version++
}

// Head returns the caret offset.
func (b *Buffer) Head() int { return b.head }

func (b *Buffer) Anchor() int { return b.anchor }

func (b *Buffer) HasSelection() bool { return b.anchor != b.head }

// SelectedText returns the text under the selection.
func (b *Buffer) SelectedText() string {
	r := b.Selection()
	return string(b.text[r.Start:r.End])
}

// Cursor returns the caret as a (row, col) position.
func (b *Buffer) Cursor() Pos {
	p, _ := b.PosFromOffset(b.head)
	return p
}
