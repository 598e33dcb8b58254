package editor

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/plume/buffer"
)

func TestOnChange_FiresOnMutationsAndSkipsNoOps(t *testing.T) {
	var events []ChangeEvent
	m := New(Config{
		Text: "ab",
		OnChange: func(ev ChangeEvent) {
			events = append(events, ev)
		},
	})
	if len(events) != 0 {
		t.Fatalf("events after New: got %d, want 0", len(events))
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if len(events) != 1 {
		t.Fatalf("events after move: got %d, want %d", len(events), 1)
	}
	if events[0].TextChanged {
		t.Fatalf("expected move not to change text")
	}
	if got := events[0].Cursor; got != (buffer.Pos{Row: 0, Col: 1}) {
		t.Fatalf("event cursor after move: got %v, want %v", got, buffer.Pos{Row: 0, Col: 1})
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight}) // to EOL
	if len(events) != 2 {
		t.Fatalf("events after move to EOL: got %d, want %d", len(events), 2)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight}) // no-op at EOL
	if len(events) != 2 {
		t.Fatalf("events after no-op: got %d, want %d", len(events), 2)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("X")})
	if len(events) != 3 {
		t.Fatalf("events after insert: got %d, want %d", len(events), 3)
	}
	if got := events[2].Text; got != "abX" {
		t.Fatalf("event text after insert: got %q, want %q", got, "abX")
	}
	if !events[2].TextChanged {
		t.Fatalf("expected insert to change text")
	}
}

func TestOnChange_CarriesSessionChanges(t *testing.T) {
	var events []ChangeEvent
	m := New(Config{
		Text:     "ab",
		OnChange: func(ev ChangeEvent) { events = append(events, ev) },
	})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if len(events) != 1 {
		t.Fatalf("events after tab: got %d, want 1", len(events))
	}
	chs := events[0].Changes
	if len(chs) != 1 || chs[0].Kind != buffer.ChangeIndent || !chs[0].Pushed {
		t.Fatalf("changes after tab: got %+v", chs)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if got := len(events[1].Changes); got != 0 {
		t.Fatalf("changes after move: got %d, want 0", got)
	}
}
