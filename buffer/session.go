package buffer

import (
	"fmt"
	"unicode/utf8"

	"github.com/rs/zerolog"
)

// Session binds one Field to one History.
//
// It is not safe for concurrent use; the host's event loop owns it.
type Session struct {
	field    Field
	hist     *History
	log      zerolog.Logger
	onChange func(Change)

	// observed is false until the first Observe after Load.
	observed bool
}

type SessionOption func(*Session)

// WithHistoryLimit bounds the number of retained States (see NewHistory).
func WithHistoryLimit(limit int) SessionOption {
	return func(s *Session) { s.hist = NewHistory(limit) }
}

func WithLogger(l zerolog.Logger) SessionOption {
	return func(s *Session) { s.log = l }
}

// WithOnChange registers a callback invoked synchronously after each
// operation that produced a Change.
func WithOnChange(fn func(Change)) SessionOption {
	return func(s *Session) { s.onChange = fn }
}

func NewSession(f Field, opts ...SessionOption) *Session {
	s := &Session{
		field: f,
		hist:  NewHistory(0),
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Session) Field() Field { return s.field }

func (s *Session) History() *History { return s.hist }

func (s *Session) CanUndo() bool { return s.hist.HasPast() }

func (s *Session) CanRedo() bool { return s.hist.HasFuture() }

// Load replaces the field content with text, resets the history and saves
// the new baseline. The next Observe is treated as part of the baseline.
func (s *Session) Load(text string) error {
	if s.field == nil {
		return &InvariantError{Op: "load", Detail: "nil field"}
	}
	before, _ := s.capture("load")

	s.field.SetText(text)
	s.field.SetSelection(Caret(0))
	s.hist.Reset()
	s.observed = false

	after, err := s.capture("load")
	if err != nil {
		return err
	}
	s.hist.Add(after)
	s.log.Debug().Int("len", utf8.RuneCountInString(text)).Msg("session loaded")
	s.emit(Change{Kind: ChangeLoad, Before: before, After: after, Pushed: true})
	return nil
}

// SaveState pushes the field's current State.
func (s *Session) SaveState() error {
	st, err := s.capture("save state")
	if err != nil {
		return err
	}
	s.hist.Add(st)
	return nil
}

func (s *Session) Indent() error {
	return s.edit(ChangeIndent, Indent)
}

func (s *Session) Outdent() error {
	return s.edit(ChangeOutdent, Outdent)
}

func (s *Session) Newline() error {
	return s.edit(ChangeNewline, Newline)
}

func (s *Session) edit(kind ChangeKind, fn func(string, Range) (Result, error)) error {
	op := kind.String()
	before, err := s.capture(op)
	if err != nil {
		return err
	}
	res, err := fn(before.Content, before.Selection())
	if err != nil {
		return err
	}

	s.field.SetText(res.Text)
	s.field.SetSelection(res.Selection)
	after := NewState(res.Text, res.Selection)
	s.hist.Add(after)
	s.observed = true

	s.log.Debug().
		Str("op", op).
		Stringer("before", before.Selection()).
		Stringer("after", res.Selection).
		Msg("edit applied")
	s.emit(Change{Kind: kind, Before: before, After: after, Pushed: true})
	return nil
}

// Observe records a native edit made directly on the field. The first call
// after Load does not push: the baseline is already in the history. Every
// later call pushes exactly one State. It reports whether a State was pushed.
func (s *Session) Observe() (bool, error) {
	st, err := s.capture("observe")
	if err != nil {
		return false, err
	}
	prev, _ := s.hist.Current()
	if !s.observed {
		s.observed = true
		s.log.Debug().Msg("first observed change kept as baseline")
		s.emit(Change{Kind: ChangeObserve, Before: prev, After: st})
		return false, nil
	}
	s.hist.Add(st)
	s.emit(Change{Kind: ChangeObserve, Before: prev, After: st, Pushed: true})
	return true, nil
}

// Undo restores the previous State. It returns false when the history is
// empty. At the oldest State it restores that State again.
func (s *Session) Undo() (bool, error) {
	return s.restore(ChangeUndo, s.hist.Back)
}

// Redo restores the next State, mirroring Undo.
func (s *Session) Redo() (bool, error) {
	return s.restore(ChangeRedo, s.hist.Forward)
}

func (s *Session) restore(kind ChangeKind, step func() (State, bool)) (bool, error) {
	op := kind.String()
	before, err := s.capture(op)
	if err != nil {
		return false, err
	}
	st, ok := step()
	if !ok {
		return false, nil
	}
	n := utf8.RuneCountInString(st.Content)
	if err := checkRange(op, st.Selection(), n); err != nil {
		return false, err
	}

	s.field.SetText(st.Content)
	s.field.SetSelection(st.Selection())
	s.log.Debug().Str("op", op).Int("cursor", s.hist.Cursor()).Msg("history restored")
	s.emit(Change{Kind: kind, Before: before, After: st})
	return true, nil
}

// capture reads the field into a State, rejecting selections the field
// could not hold.
func (s *Session) capture(op string) (State, error) {
	if s.field == nil {
		return State{}, &InvariantError{Op: op, Detail: "nil field"}
	}
	text := s.field.Text()
	sel := s.field.Selection()
	if sel.Start > sel.End {
		return State{}, &InvariantError{Op: op, Detail: fmt.Sprintf("selection %s is not normalized", sel)}
	}
	if err := checkRange(op, sel, utf8.RuneCountInString(text)); err != nil {
		return State{}, err
	}
	return NewState(text, sel), nil
}

func (s *Session) emit(c Change) {
	if s.onChange != nil {
		s.onChange(c)
	}
}
