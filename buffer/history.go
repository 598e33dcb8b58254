package buffer

// DefaultHistoryLimit bounds a History created with limit 0.
const DefaultHistoryLimit = 1000

// State is an immutable snapshot of the document and its selection.
type State struct {
	Content        string
	SelectionStart int
	SelectionEnd   int
}

func NewState(content string, sel Range) State {
	return State{Content: content, SelectionStart: sel.Start, SelectionEnd: sel.End}
}

func (s State) Selection() Range {
	return NewRange(s.SelectionStart, s.SelectionEnd)
}

// History is a linear undo/redo stack of States.
//
// The cursor is a valid index whenever the stack is non-empty and -1 when it
// is empty. Adding a State drops everything after the cursor.
type History struct {
	states []State
	cursor int
	limit  int
}

// NewHistory returns an empty history keeping at most limit States.
// limit 0 selects DefaultHistoryLimit; a negative limit keeps everything.
func NewHistory(limit int) *History {
	if limit == 0 {
		limit = DefaultHistoryLimit
	}
	return &History{cursor: -1, limit: limit}
}

// Add discards the redo branch, appends s and moves the cursor onto it.
func (h *History) Add(s State) {
	if len(h.states) > 0 {
		h.states = h.states[:h.cursor+1]
	}
	h.states = append(h.states, s)
	if h.limit > 0 && len(h.states) > h.limit {
		h.states = h.states[len(h.states)-h.limit:]
	}
	h.cursor = len(h.states) - 1
}

// Back steps the cursor towards the oldest State and returns the State under
// it. At the oldest State it returns that State again. It returns false only
// when the history is empty.
func (h *History) Back() (State, bool) {
	if len(h.states) == 0 {
		return State{}, false
	}
	if h.cursor > 0 {
		h.cursor--
	}
	return h.states[h.cursor], true
}

// Forward is the mirror of Back: idempotent at the newest State.
func (h *History) Forward() (State, bool) {
	if len(h.states) == 0 {
		return State{}, false
	}
	if h.cursor < len(h.states)-1 {
		h.cursor++
	}
	return h.states[h.cursor], true
}

func (h *History) HasPast() bool {
	return len(h.states) > 0 && h.cursor > 0
}

func (h *History) HasFuture() bool {
	return len(h.states) > 0 && h.cursor < len(h.states)-1
}

// Current returns the State under the cursor.
func (h *History) Current() (State, bool) {
	if len(h.states) == 0 {
		return State{}, false
	}
	return h.states[h.cursor], true
}

func (h *History) Len() int { return len(h.states) }

// Cursor returns the cursor index, or -1 for an empty history.
func (h *History) Cursor() int {
	if len(h.states) == 0 {
		return -1
	}
	return h.cursor
}

func (h *History) Reset() {
	h.states = nil
	h.cursor = -1
}
