package app

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/plume/internal/grapheme"
)

type styles struct {
	bar   lipgloss.Style
	title lipgloss.Style
	pos   lipgloss.Style
	save  lipgloss.Style
	err   lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return styles{
		bar:   r.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("252")),
		title: r.NewStyle().Bold(true).Padding(0, 1),
		pos:   r.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("245")),
		save:  r.NewStyle().Padding(0, 1),
		err:   r.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("203")),
	}
}

const untitled = "untitled"

// saveLabel describes the persistence state of the document.
func (m Model) saveLabel() string {
	switch {
	case m.saveErr != nil:
		return "Save failed: " + m.saveErr.Error()
	case m.saving:
		return "Saving…"
	case m.Dirty():
		return "Save"
	case !m.lastSaved.IsZero():
		return "Last saved: " + m.lastSaved.Local().Format(time.Kitchen)
	default:
		return "Save"
	}
}

// positionLabel reports the caret as 1-based line and grapheme column.
func (m Model) positionLabel() string {
	cur := m.editor.Cursor()
	col := 0
	if lines := m.editor.Buffer().Lines(); cur.Row < len(lines) {
		line := []rune(lines[cur.Row])
		if cur.Col <= len(line) {
			col = grapheme.Count(string(line[:cur.Col]))
		}
	}
	return fmt.Sprintf("Ln %d, Col %d", cur.Row+1, col+1)
}

func (m Model) statusView() string {
	title := m.doc.Title
	if title == "" {
		title = untitled
	}
	left := m.styles.title.Render(title)

	var right string
	if m.saveErr != nil {
		right = m.styles.err.Render(m.saveLabel())
	} else {
		right = m.styles.save.Render(m.saveLabel())
	}
	if err := m.editor.Err(); err != nil {
		right = m.styles.err.Render(err.Error()) + right
	}
	pos := m.styles.pos.Render(m.positionLabel())

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(pos) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	line := lipgloss.JoinHorizontal(lipgloss.Top, left, pos, fmt.Sprintf("%*s", gap, ""), right)
	if m.width > 0 {
		return m.styles.bar.MaxWidth(m.width).Width(m.width).Render(line)
	}
	return m.styles.bar.Render(line)
}
