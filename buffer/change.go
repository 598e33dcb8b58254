package buffer

import "github.com/aymanbagabas/go-udiff"

// ChangeKind names the session operation that produced a Change.
type ChangeKind uint8

const (
	ChangeLoad ChangeKind = iota
	ChangeIndent
	ChangeOutdent
	ChangeNewline
	ChangeObserve
	ChangeUndo
	ChangeRedo
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeLoad:
		return "load"
	case ChangeIndent:
		return "indent"
	case ChangeOutdent:
		return "outdent"
	case ChangeNewline:
		return "newline"
	case ChangeObserve:
		return "observe"
	case ChangeUndo:
		return "undo"
	case ChangeRedo:
		return "redo"
	default:
		return "unknown"
	}
}

// Change is emitted by a Session after every operation that touched the
// field or the history.
type Change struct {
	Kind   ChangeKind
	Before State
	After  State
	// Pushed reports whether After was added to the history.
	Pushed bool
}

func (c Change) TextChanged() bool {
	return c.Before.Content != c.After.Content
}

// Diff renders the content change as a unified diff. It is empty when the
// content is unchanged.
func (c Change) Diff() string {
	if !c.TextChanged() {
		return ""
	}
	return udiff.Unified("before", "after", c.Before.Content, c.After.Content)
}
