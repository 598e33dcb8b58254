package editor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/iw2rmb/plume/buffer"
	graphemeutil "github.com/iw2rmb/plume/internal/grapheme"
)

func (m *Model) renderContent() string {
	lines := m.buf.Lines()
	cursor := m.buf.Cursor()

	sel := m.buf.Selection()
	selStart, _ := m.buf.PosFromOffset(sel.Start)
	selEnd, _ := m.buf.PosFromOffset(sel.End)
	hasSel := !sel.IsEmpty()

	digitCount := 0
	if m.cfg.ShowLineNums {
		digitCount = gutterDigits(len(lines))
	}

	textWidth := m.textWidth()

	out := make([]string, 0, len(lines))
	for row, line := range lines {
		var sb strings.Builder

		if m.cfg.ShowLineNums {
			numStyle := m.cfg.Style.LineNum
			if m.focused && row == cursor.Row {
				numStyle = m.cfg.Style.LineNumActive
			}
			sb.WriteString(numStyle.Render(fmt.Sprintf("%*d", digitCount, row+1)))
			sb.WriteString(m.cfg.Style.Gutter.Render(" "))
		}

		startCol, endCol, lineSel := selectionColsForRow(selStart, selEnd, hasSel, row)
		text := renderLine(m.cfg.Style, line, m.cfg.TabWidth, m.focused && row == cursor.Row, cursor.Col, lineSel, startCol, endCol)
		if textWidth > 0 {
			text = ansi.Cut(text, m.xOffset, m.xOffset+textWidth)
		}
		sb.WriteString(text)

		rendered := sb.String()
		if w := m.viewport.Width; w > 0 {
			rendered = ansi.Truncate(rendered, w, "")
		}
		out = append(out, rendered)
	}

	return strings.Join(out, "\n")
}

// renderLine styles one logical line. Columns are rune columns; a grapheme
// cluster is drawn as the cursor when the cursor column falls inside it.
func renderLine(st Style, line string, tabWidth int, hasCursor bool, cursorCol int, hasSel bool, selStart, selEnd int) string {
	var sb strings.Builder
	col, cell := 0, 0
	for _, c := range graphemeutil.Clusters(line) {
		w := graphemeCellWidth(c.Text, cell, tabWidth)
		text := c.Text
		if text == "\t" {
			text = strings.Repeat(" ", w)
		}

		switch {
		case hasCursor && cursorCol >= col && cursorCol < col+c.Runes:
			sb.WriteString(st.Cursor.Render(text))
		case hasSel && col < selEnd && col+c.Runes > selStart:
			sb.WriteString(st.Selection.Render(text))
		default:
			sb.WriteString(st.Text.Render(text))
		}

		col += c.Runes
		cell += w
	}

	// Cursor at EOL is rendered as a 1-cell placeholder space.
	if hasCursor && cursorCol >= col {
		sb.WriteString(st.Cursor.Render(" "))
	}
	return sb.String()
}

// selectionColsForRow returns the selected rune columns of row. endCol may
// exceed the line length when the selection continues onto the next line.
func selectionColsForRow(start, end buffer.Pos, ok bool, row int) (startCol, endCol int, hasSel bool) {
	if !ok || row < start.Row || row > end.Row {
		return 0, 0, false
	}
	startCol = 0
	if row == start.Row {
		startCol = start.Col
	}
	endCol = int(^uint(0) >> 1)
	if row == end.Row {
		endCol = end.Col
	}
	return startCol, endCol, startCol < endCol
}

func gutterDigits(lineCount int) int {
	if lineCount < 1 {
		lineCount = 1
	}
	return len(fmt.Sprintf("%d", lineCount))
}

func (m Model) gutterWidth() int {
	if !m.cfg.ShowLineNums {
		return 0
	}
	return gutterDigits(m.buf.LineCount()) + 1
}

// textWidth is the number of cells available for text right of the gutter,
// or 0 before the first size is known.
func (m Model) textWidth() int {
	if m.viewport.Width <= 0 {
		return 0
	}
	if w := m.viewport.Width - m.gutterWidth(); w > 0 {
		return w
	}
	return 1
}

// cellsBefore returns the display width of line up to rune column col.
func cellsBefore(line string, col, tabWidth int) int {
	c, cell := 0, 0
	for _, cl := range graphemeutil.Clusters(line) {
		if c >= col {
			break
		}
		cell += graphemeCellWidth(cl.Text, cell, tabWidth)
		c += cl.Runes
	}
	return cell
}

func graphemeCellWidth(text string, visualCol, tabWidth int) int {
	if text == "\t" {
		return tabAdvance(visualCol, tabWidth)
	}

	w := runewidth.StringWidth(text)
	if w <= 0 {
		w = uniseg.StringWidth(text)
	}
	if w < 0 {
		w = 0
	}
	return w
}

func tabAdvance(visualCol, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = defaultTabWidth
	}
	return tabWidth - visualCol%tabWidth
}

func clampInt(v, min, max int) int {
	if max < min {
		return min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
