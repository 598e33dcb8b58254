package buffer

import "testing"

func st(content string) State {
	return NewState(content, Caret(len([]rune(content))))
}

func TestHistory_Empty(t *testing.T) {
	h := NewHistory(0)
	if _, ok := h.Back(); ok {
		t.Fatalf("expected Back=false on empty history")
	}
	if _, ok := h.Forward(); ok {
		t.Fatalf("expected Forward=false on empty history")
	}
	if h.HasPast() || h.HasFuture() {
		t.Fatalf("expected no past or future on empty history")
	}
	if got := h.Cursor(); got != -1 {
		t.Fatalf("cursor=%d, want -1", got)
	}
	if _, ok := h.Current(); ok {
		t.Fatalf("expected Current=false on empty history")
	}
}

func TestHistory_FirstAdd(t *testing.T) {
	h := NewHistory(0)
	h.Add(st("a"))
	if got := h.Cursor(); got != 0 {
		t.Fatalf("cursor=%d, want 0", got)
	}
	if cur, _ := h.Current(); cur != st("a") {
		t.Fatalf("current=%+v, want %+v", cur, st("a"))
	}
}

func TestHistory_BackIsIdempotentOnSingleEntry(t *testing.T) {
	h := NewHistory(0)
	h.Add(st("s0"))

	for i := 0; i < 3; i++ {
		got, ok := h.Back()
		if !ok {
			t.Fatalf("Back #%d returned false", i)
		}
		if got != st("s0") {
			t.Fatalf("Back #%d=%+v, want s0", i, got)
		}
	}
	if h.HasPast() {
		t.Fatalf("expected HasPast=false")
	}
	if h.HasFuture() {
		t.Fatalf("expected HasFuture=false")
	}
}

func TestHistory_ForwardIsIdempotentAtEnd(t *testing.T) {
	h := NewHistory(0)
	h.Add(st("s0"))
	h.Add(st("s1"))

	for i := 0; i < 2; i++ {
		got, ok := h.Forward()
		if !ok || got != st("s1") {
			t.Fatalf("Forward #%d=%+v,%v, want s1", i, got, ok)
		}
	}
	if got := h.Cursor(); got != 1 {
		t.Fatalf("cursor=%d, want 1", got)
	}
}

func TestHistory_AddTruncatesRedoBranch(t *testing.T) {
	h := NewHistory(0)
	h.Add(st("s0"))
	h.Add(st("s1"))
	h.Add(st("s2"))
	if got := h.Cursor(); got != 2 {
		t.Fatalf("cursor=%d, want 2", got)
	}

	h.Back()
	got, _ := h.Back()
	if got != st("s0") {
		t.Fatalf("Back=%+v, want s0", got)
	}
	if !h.HasFuture() {
		t.Fatalf("expected HasFuture=true")
	}

	h.Add(st("s3"))
	if got := h.Len(); got != 2 {
		t.Fatalf("len=%d, want 2", got)
	}
	if got := h.Cursor(); got != 1 {
		t.Fatalf("cursor=%d, want 1", got)
	}
	if h.HasFuture() {
		t.Fatalf("expected redo branch discarded")
	}
	if prev, _ := h.Back(); prev != st("s0") {
		t.Fatalf("Back=%+v, want s0", prev)
	}
	if next, _ := h.Forward(); next != st("s3") {
		t.Fatalf("Forward=%+v, want s3", next)
	}
}

func TestHistory_HasPastHasFuture(t *testing.T) {
	h := NewHistory(0)
	h.Add(st("a"))
	h.Add(st("b"))
	h.Add(st("c"))

	if !h.HasPast() || h.HasFuture() {
		t.Fatalf("at end: past=%v future=%v", h.HasPast(), h.HasFuture())
	}
	h.Back()
	if !h.HasPast() || !h.HasFuture() {
		t.Fatalf("in middle: past=%v future=%v", h.HasPast(), h.HasFuture())
	}
	h.Back()
	if h.HasPast() || !h.HasFuture() {
		t.Fatalf("at start: past=%v future=%v", h.HasPast(), h.HasFuture())
	}
}

func TestHistory_Limit(t *testing.T) {
	h := NewHistory(3)
	for _, s := range []string{"a", "b", "c", "d", "e"} {
		h.Add(st(s))
	}
	if got := h.Len(); got != 3 {
		t.Fatalf("len=%d, want 3", got)
	}
	if got := h.Cursor(); got != 2 {
		t.Fatalf("cursor=%d, want 2", got)
	}
	h.Back()
	oldest, _ := h.Back()
	if oldest != st("c") {
		t.Fatalf("oldest=%+v, want c", oldest)
	}
}

func TestHistory_DefaultAndUnboundedLimit(t *testing.T) {
	h := NewHistory(0)
	for i := 0; i < DefaultHistoryLimit+5; i++ {
		h.Add(NewState("", Caret(0)))
	}
	if got := h.Len(); got != DefaultHistoryLimit {
		t.Fatalf("len=%d, want %d", got, DefaultHistoryLimit)
	}

	u := NewHistory(-1)
	for i := 0; i < DefaultHistoryLimit+5; i++ {
		u.Add(NewState("", Caret(0)))
	}
	if got := u.Len(); got != DefaultHistoryLimit+5 {
		t.Fatalf("len=%d, want %d", got, DefaultHistoryLimit+5)
	}
}

func TestHistory_Reset(t *testing.T) {
	h := NewHistory(0)
	h.Add(st("a"))
	h.Reset()
	if h.Len() != 0 || h.Cursor() != -1 {
		t.Fatalf("after reset: len=%d cursor=%d", h.Len(), h.Cursor())
	}
}

func TestState_SelectionNormalizes(t *testing.T) {
	s := State{Content: "abc", SelectionStart: 3, SelectionEnd: 1}
	if got, want := s.Selection(), NewRange(1, 3); got != want {
		t.Fatalf("selection=%v, want %v", got, want)
	}
}
