package buffer

import "unicode"

type MoveUnit int

const (
	MoveRune MoveUnit = iota
	MoveWord
	MoveLine
	MoveDoc
)

type MoveDir int

const (
	DirLeft MoveDir = iota
	DirRight
	DirUp
	DirDown
	DirHome
	DirEnd
)

// Move describes a caret movement. With Extend the selection anchor stays
// put; otherwise the selection collapses onto the new caret.
type Move struct {
	Unit   MoveUnit
	Dir    MoveDir
	Extend bool
}

// Move applies m and reports whether the caret or selection changed.
func (b *Buffer) Move(m Move) bool {
	before := b.version
	head := b.moveHead(b.head, m)
	if m.Extend {
		b.Select(b.anchor, head)
	} else {
		b.Select(head, head)
	}
	return b.version != before
}

func (b *Buffer) moveHead(off int, m Move) int {
	switch m.Unit {
	case MoveRune:
		return b.moveRune(off, m.Dir)
	case MoveWord:
		return b.moveWord(off, m.Dir)
	case MoveLine:
		return b.moveLine(off, m.Dir)
	case MoveDoc:
		return b.moveDoc(off, m.Dir)
	default:
		return off
	}
}

func (b *Buffer) moveRune(off int, dir MoveDir) int {
	switch dir {
	case DirLeft:
		if off > 0 {
			return off - 1
		}
		return off
	case DirRight:
		if off < len(b.text) {
			return off + 1
		}
		return off
	default:
		return b.moveLine(off, dir)
	}
}

// Word boundaries: skip whitespace, then skip non-whitespace. Newlines
// count as whitespace, so words wrap across lines.
func (b *Buffer) moveWord(off int, dir MoveDir) int {
	i := off
	switch dir {
	case DirLeft:
		for i > 0 && unicode.IsSpace(b.text[i-1]) {
			i--
		}
		for i > 0 && !unicode.IsSpace(b.text[i-1]) {
			i--
		}
	case DirRight:
		for i < len(b.text) && unicode.IsSpace(b.text[i]) {
			i++
		}
		for i < len(b.text) && !unicode.IsSpace(b.text[i]) {
			i++
		}
	default:
		return b.moveLine(off, dir)
	}
	return i
}

func (b *Buffer) moveLine(off int, dir MoveDir) int {
	line := lineAt(b.text, off)
	col := off - line.start

	switch dir {
	case DirHome:
		return line.start
	case DirEnd:
		return line.end
	case DirUp:
		if line.start == 0 {
			return off
		}
		prev := lineAt(b.text, line.start-1)
		return prev.start + minInt(col, prev.Len())
	case DirDown:
		next, ok := line.Next()
		if !ok {
			return off
		}
		return next.start + minInt(col, next.Len())
	default:
		return off
	}
}

func (b *Buffer) moveDoc(off int, dir MoveDir) int {
	switch dir {
	case DirHome, DirUp:
		return 0
	case DirEnd, DirDown:
		return len(b.text)
	default:
		return off
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
