package buffer

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// rawField stores whatever it is given, so tests can feed the session
// selections a real widget would never report.
type rawField struct {
	text string
	sel  Range
}

func (f *rawField) Text() string { return f.text }
func (f *rawField) SetText(text string) { f.text = text }
func (f *rawField) Selection() Range { return f.sel }
func (f *rawField) SetSelection(r Range) { f.sel = r }

func loadedSession(t *testing.T, text string, opts ...SessionOption) (*Session, *Buffer) {
	t.Helper()
	b := New("")
	s := NewSession(b, opts...)
	if err := s.Load(text); err != nil {
		t.Fatalf("load: %v", err)
	}
	return s, b
}

func TestSession_LoadSavesBaseline(t *testing.T) {
	s, b := loadedSession(t, "ab\ncd")
	if got := b.Text(); got != "ab\ncd" {
		t.Fatalf("text=%q", got)
	}
	if got := b.Selection(); got != Caret(0) {
		t.Fatalf("selection=%v, want caret 0", got)
	}
	if got := s.History().Len(); got != 1 {
		t.Fatalf("history len=%d, want 1", got)
	}
	if s.CanUndo() || s.CanRedo() {
		t.Fatalf("expected nothing to undo or redo after load")
	}
}

func TestSession_IndentWritesBackAndPushes(t *testing.T) {
	s, b := loadedSession(t, "ab\ncd")
	b.SetSelection(NewRange(0, 5))

	if err := s.Indent(); err != nil {
		t.Fatalf("indent: %v", err)
	}
	if got, want := b.Text(), "  ab\n  cd"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := b.Selection(), NewRange(2, 9); got != want {
		t.Fatalf("selection=%v, want %v", got, want)
	}
	if got := s.History().Len(); got != 2 {
		t.Fatalf("history len=%d, want 2", got)
	}

	if err := s.Outdent(); err != nil {
		t.Fatalf("outdent: %v", err)
	}
	if got, want := b.Text(), "ab\ncd"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got := s.History().Len(); got != 3 {
		t.Fatalf("history len=%d, want 3", got)
	}
}

func TestSession_Newline(t *testing.T) {
	s, b := loadedSession(t, "  ab")
	b.Select(4, 4)
	if err := s.Newline(); err != nil {
		t.Fatalf("newline: %v", err)
	}
	if got, want := b.Text(), "  ab\n  "; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got := b.Selection(); got != Caret(7) {
		t.Fatalf("selection=%v, want caret 7", got)
	}
}

func TestSession_ObserveSkipsFirstChangeAfterLoad(t *testing.T) {
	s, b := loadedSession(t, "")

	b.InsertText("a")
	pushed, err := s.Observe()
	if err != nil {
		t.Fatalf("observe: %v", err)
	}
	if pushed {
		t.Fatalf("expected first observed change not to push")
	}
	if got := s.History().Len(); got != 1 {
		t.Fatalf("history len=%d, want 1", got)
	}

	b.InsertText("b")
	pushed, _ = s.Observe()
	if !pushed {
		t.Fatalf("expected second observed change to push")
	}
	if got := s.History().Len(); got != 2 {
		t.Fatalf("history len=%d, want 2", got)
	}

	if err := s.Load("fresh"); err != nil {
		t.Fatalf("load: %v", err)
	}
	b.InsertText("x")
	if pushed, _ := s.Observe(); pushed {
		t.Fatalf("expected reload to re-arm the first-change policy")
	}
}

func TestSession_EditCountsAsObservedChange(t *testing.T) {
	s, b := loadedSession(t, "a")
	if err := s.Indent(); err != nil {
		t.Fatalf("indent: %v", err)
	}
	b.InsertText("z")
	if pushed, _ := s.Observe(); !pushed {
		t.Fatalf("expected observe after an edit to push")
	}
}

func TestSession_UndoRedo(t *testing.T) {
	s, b := loadedSession(t, "ab")
	b.Select(1, 1)
	if err := s.Indent(); err != nil {
		t.Fatalf("indent: %v", err)
	}
	if err := s.Indent(); err != nil {
		t.Fatalf("indent: %v", err)
	}
	if got, want := b.Text(), "    ab"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}

	ok, err := s.Undo()
	if err != nil || !ok {
		t.Fatalf("undo=%v,%v", ok, err)
	}
	if got, want := b.Text(), "  ab"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got := b.Selection(); got != Caret(3) {
		t.Fatalf("selection=%v, want caret 3", got)
	}

	s.Undo()
	if got, want := b.Text(), "ab"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got := b.Selection(); got != Caret(0) {
		t.Fatalf("selection=%v, want the load baseline caret", got)
	}
	if s.CanUndo() {
		t.Fatalf("expected CanUndo=false at the baseline")
	}
	if ok, _ := s.Undo(); !ok {
		t.Fatalf("expected undo at the baseline to restore it again")
	}

	s.Redo()
	s.Redo()
	if got, want := b.Text(), "    ab"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if s.CanRedo() {
		t.Fatalf("expected CanRedo=false at the newest state")
	}
}

func TestSession_EditAfterUndoDropsRedo(t *testing.T) {
	s, b := loadedSession(t, "a")
	s.Indent()
	s.Indent()
	s.Undo()
	s.Undo()
	if err := s.Newline(); err != nil {
		t.Fatalf("newline: %v", err)
	}
	if s.CanRedo() {
		t.Fatalf("expected redo branch discarded")
	}
	if got := s.History().Len(); got != 2 {
		t.Fatalf("history len=%d, want 2", got)
	}
	if got, want := b.Text(), "\na"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
}

func TestSession_UndoOnEmptyHistory(t *testing.T) {
	s := NewSession(New("abc"))
	ok, err := s.Undo()
	if err != nil || ok {
		t.Fatalf("undo=%v,%v, want false,nil", ok, err)
	}
	if ok, _ := s.Redo(); ok {
		t.Fatalf("expected redo=false on empty history")
	}
}

func TestSession_OutOfRangeSelection(t *testing.T) {
	f := &rawField{text: "ab", sel: Range{Start: 1, End: 5}}
	s := NewSession(f)

	err := s.Indent()
	if !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("err=%v, want ErrOutOfRange", err)
	}
	if f.text != "ab" {
		t.Fatalf("field mutated on error: %q", f.text)
	}
	if got := s.History().Len(); got != 0 {
		t.Fatalf("history len=%d, want 0", got)
	}
}

func TestSession_InvariantViolations(t *testing.T) {
	f := &rawField{text: "abc", sel: Range{Start: 2, End: 1}}
	s := NewSession(f)

	for name, op := range map[string]func() error{
		"indent":  s.Indent,
		"outdent": s.Outdent,
		"newline": s.Newline,
		"save":    s.SaveState,
	} {
		err := op()
		if !errors.Is(err, ErrInvariant) {
			t.Fatalf("%s err=%v, want ErrInvariant", name, err)
		}
		if errors.Is(err, ErrOutOfRange) {
			t.Fatalf("%s err=%v also matches ErrOutOfRange", name, err)
		}
	}

	if _, err := NewSession(nil).Observe(); !errors.Is(err, ErrInvariant) {
		t.Fatalf("nil field err=%v, want ErrInvariant", err)
	}
}

func TestSession_OnChange(t *testing.T) {
	var changes []Change
	s, b := loadedSession(t, "x", WithOnChange(func(c Change) { changes = append(changes, c) }))

	b.Select(1, 1)
	s.Newline()
	s.Undo()

	var kinds []string
	for _, c := range changes {
		kinds = append(kinds, c.Kind.String())
	}
	if got, want := strings.Join(kinds, ","), "load,newline,undo"; got != want {
		t.Fatalf("kinds=%s, want %s", got, want)
	}
	if !changes[1].Pushed || changes[2].Pushed {
		t.Fatalf("unexpected pushed flags: %+v", changes)
	}
	if got, want := changes[1].After.Content, "x\n"; got != want {
		t.Fatalf("after=%q, want %q", got, want)
	}
}

func TestSession_LogsEditsAtDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	s, _ := loadedSession(t, "a", WithLogger(logger))

	if err := s.Indent(); err != nil {
		t.Fatalf("indent: %v", err)
	}
	if out := buf.String(); !strings.Contains(out, `"op":"indent"`) {
		t.Fatalf("expected indent in log output, got %s", out)
	}
}

func TestSession_HistoryLimit(t *testing.T) {
	s, _ := loadedSession(t, "a", WithHistoryLimit(2))
	s.Indent()
	s.Indent()
	s.Indent()
	if got := s.History().Len(); got != 2 {
		t.Fatalf("history len=%d, want 2", got)
	}
}
