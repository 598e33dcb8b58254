package editor

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/plume/buffer"
	graphemeutil "github.com/iw2rmb/plume/internal/grapheme"
)

func (m Model) updateMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	if isWheel(msg) {
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	if !m.focused {
		return m, nil
	}

	// Only handle selection/cursor changes for left button interactions.
	switch msg.Action { //nolint:exhaustive
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !m.mouseInBounds(msg.X, msg.Y) {
			return m, nil
		}
		off := m.screenToOffset(msg.X, msg.Y)
		if msg.Shift {
			m.mouseAnchor = m.buf.Anchor()
		} else {
			m.mouseAnchor = off
		}
		m.buf.Select(m.mouseAnchor, off)
		m.mouseDragging = true

	case tea.MouseActionMotion:
		if !m.mouseDragging {
			return m, nil
		}
		x, y := m.clampMouseToBounds(msg.X, msg.Y)
		m.buf.Select(m.mouseAnchor, m.screenToOffset(x, y))

	case tea.MouseActionRelease:
		m.mouseDragging = false
	}

	return m, nil
}

func isWheel(msg tea.MouseMsg) bool {
	return msg.Action == tea.MouseActionPress &&
		(msg.Button == tea.MouseButtonWheelUp ||
			msg.Button == tea.MouseButtonWheelDown ||
			msg.Button == tea.MouseButtonWheelLeft ||
			msg.Button == tea.MouseButtonWheelRight)
}

// screenToOffset maps viewport-local cell coordinates to a rune offset.
// Gutter clicks map to the line start; clicks past EOL map to EOL.
func (m Model) screenToOffset(x, y int) int {
	lines := m.buf.Lines()
	row := clampInt(m.viewport.YOffset+y, 0, len(lines)-1)

	x -= m.gutterWidth()
	if x >= 0 {
		x += m.xOffset
	}
	col, cell := 0, 0
	for _, c := range graphemeutil.Clusters(lines[row]) {
		w := graphemeCellWidth(c.Text, cell, m.cfg.TabWidth)
		if x < cell+w {
			break
		}
		col += c.Runes
		cell += w
	}

	off, ok := m.buf.OffsetFromPos(buffer.Pos{Row: row, Col: col})
	if !ok {
		return m.buf.Head()
	}
	return off
}

func (m Model) mouseInBounds(x, y int) bool {
	if m.viewport.Width <= 0 || m.viewport.Height <= 0 {
		return false
	}
	return x >= 0 && x < m.viewport.Width && y >= 0 && y < m.viewport.Height
}

func (m Model) clampMouseToBounds(x, y int) (int, int) {
	if m.viewport.Width > 0 {
		x = clampInt(x, 0, m.viewport.Width-1)
	}
	if m.viewport.Height > 0 {
		y = clampInt(y, 0, m.viewport.Height-1)
	}
	return x, y
}
