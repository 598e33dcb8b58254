package editor

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/iw2rmb/plume/buffer"
)

func (m Model) updateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}

	// Paste events should always insert literal text and never trigger shortcuts.
	if msg.Type == tea.KeyRunes && msg.Paste && len(msg.Runes) > 0 {
		s := normalizeNewlines(string(msg.Runes))
		m.edit("paste", func() bool { return m.buf.InsertText(s) })
		return m, nil
	}

	km := m.cfg.KeyMap
	switch {
	case key.Matches(msg, km.Indent):
		m.apply("indent", m.sess.Indent)
	case key.Matches(msg, km.Outdent):
		m.apply("outdent", m.sess.Outdent)
	case key.Matches(msg, km.Enter):
		m.apply("newline", m.sess.Newline)

	case key.Matches(msg, km.Undo):
		m.step("undo", m.sess.Undo)
	case key.Matches(msg, km.Redo):
		m.step("redo", m.sess.Redo)

	case key.Matches(msg, km.Left):
		m.buf.Move(buffer.Move{Unit: buffer.MoveRune, Dir: buffer.DirLeft})
	case key.Matches(msg, km.Right):
		m.buf.Move(buffer.Move{Unit: buffer.MoveRune, Dir: buffer.DirRight})
	case key.Matches(msg, km.Up):
		m.buf.Move(buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirUp})
	case key.Matches(msg, km.Down):
		m.buf.Move(buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirDown})

	case key.Matches(msg, km.ShiftLeft):
		m.buf.Move(buffer.Move{Unit: buffer.MoveRune, Dir: buffer.DirLeft, Extend: true})
	case key.Matches(msg, km.ShiftRight):
		m.buf.Move(buffer.Move{Unit: buffer.MoveRune, Dir: buffer.DirRight, Extend: true})
	case key.Matches(msg, km.ShiftUp):
		m.buf.Move(buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirUp, Extend: true})
	case key.Matches(msg, km.ShiftDown):
		m.buf.Move(buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirDown, Extend: true})

	case key.Matches(msg, km.WordLeft):
		m.buf.Move(buffer.Move{Unit: buffer.MoveWord, Dir: buffer.DirLeft})
	case key.Matches(msg, km.WordRight):
		m.buf.Move(buffer.Move{Unit: buffer.MoveWord, Dir: buffer.DirRight})

	case key.Matches(msg, km.Home):
		m.buf.Move(buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirHome})
	case key.Matches(msg, km.End):
		m.buf.Move(buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirEnd})
	case key.Matches(msg, km.ShiftHome):
		m.buf.Move(buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirHome, Extend: true})
	case key.Matches(msg, km.ShiftEnd):
		m.buf.Move(buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirEnd, Extend: true})
	case key.Matches(msg, km.DocStart):
		m.buf.Move(buffer.Move{Unit: buffer.MoveDoc, Dir: buffer.DirHome})
	case key.Matches(msg, km.DocEnd):
		m.buf.Move(buffer.Move{Unit: buffer.MoveDoc, Dir: buffer.DirEnd})

	case key.Matches(msg, km.Backspace):
		m.edit("delete backward", m.buf.DeleteBackward)
	case key.Matches(msg, km.Delete):
		m.edit("delete forward", m.buf.DeleteForward)

	case key.Matches(msg, km.Copy):
		m.copySelection()
	case key.Matches(msg, km.Cut):
		m.copySelection()
		m.edit("cut", m.buf.DeleteSelection)
	case key.Matches(msg, km.Paste):
		m.pasteClipboard()

	default:
		if msg.Type == tea.KeyRunes && len(msg.Runes) > 0 && !msg.Alt {
			s := string(msg.Runes)
			m.edit("insert", func() bool { return m.buf.InsertText(s) })
		} else if msg.Type == tea.KeySpace {
			m.edit("insert", func() bool { return m.buf.InsertText(" ") })
		}
	}

	return m, nil
}

// edit runs a native buffer mutation and lets the session observe it.
func (m *Model) edit(op string, fn func() bool) {
	if m.cfg.ReadOnly {
		return
	}
	if !fn() {
		return
	}
	if _, err := m.sess.Observe(); err != nil {
		m.fail(op, err)
	}
}

// apply runs a session edit that records its own history entry.
func (m *Model) apply(op string, fn func() error) {
	if m.cfg.ReadOnly {
		return
	}
	if err := fn(); err != nil {
		m.fail(op, err)
	}
}

func (m *Model) step(op string, fn func() (bool, error)) {
	if m.cfg.ReadOnly {
		return
	}
	if _, err := fn(); err != nil {
		m.fail(op, err)
	}
}

func (m *Model) copySelection() {
	if m.cfg.Clipboard == nil {
		return
	}
	s := m.buf.SelectedText()
	if s == "" {
		return
	}
	if err := m.cfg.Clipboard.WriteText(s); err != nil {
		log.Warn().Err(err).Msg("clipboard write failed")
	}
}

func (m *Model) pasteClipboard() {
	if m.cfg.Clipboard == nil {
		return
	}
	s, err := m.cfg.Clipboard.ReadText()
	if err != nil {
		log.Warn().Err(err).Msg("clipboard read failed")
		return
	}
	if s == "" {
		return
	}
	s = normalizeNewlines(s)
	m.edit("paste", func() bool { return m.buf.InsertText(s) })
}

// normalizeNewlines converts newlines from external sources.
func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
