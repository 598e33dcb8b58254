package editor

import "github.com/iw2rmb/plume/buffer"

// ChangeEvent describes the editor state after an Update that changed the
// buffer.
type ChangeEvent struct {
	Version   uint64
	Cursor    buffer.Pos
	Selection buffer.Range
	Text      string

	// TextChanged is false for caret or selection moves.
	TextChanged bool

	// Changes lists the session operations applied during the Update, oldest
	// first. Plain caret moves produce none.
	Changes []buffer.Change
}

func buildChangeEvent(b *buffer.Buffer, prevText string, changes []buffer.Change) ChangeEvent {
	text := b.Text()
	return ChangeEvent{
		Version:     b.Version(),
		Cursor:      b.Cursor(),
		Selection:   b.Selection(),
		Text:        text,
		TextChanged: text != prevText,
		Changes:     changes,
	}
}

// changeRecorder collects session changes between two syncs. It is shared by
// pointer so that copies of a Model see the same record.
type changeRecorder struct {
	changes []buffer.Change
}

func (r *changeRecorder) record(c buffer.Change) {
	r.changes = append(r.changes, c)
}

func (r *changeRecorder) take() []buffer.Change {
	out := r.changes
	r.changes = nil
	return out
}
