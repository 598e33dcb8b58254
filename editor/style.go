package editor

import "github.com/charmbracelet/lipgloss"

// Style controls how the editor renders text, selection and the gutter.
type Style struct {
	Gutter        lipgloss.Style
	LineNum       lipgloss.Style
	LineNumActive lipgloss.Style

	Text      lipgloss.Style
	Selection lipgloss.Style
	Cursor    lipgloss.Style
}

func DefaultStyle() Style {
	return StyleFor(lipgloss.DefaultRenderer())
}

// StyleFor builds the default palette on r, so that output follows r's color
// profile and background.
func StyleFor(r *lipgloss.Renderer) Style {
	muted := r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "245", Dark: "240"})
	return Style{
		Gutter:        muted,
		LineNum:       muted,
		LineNumActive: r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "235", Dark: "250"}).Bold(true),
		Text:          r.NewStyle(),
		Selection:     r.NewStyle().Background(lipgloss.AdaptiveColor{Light: "254", Dark: "237"}),
		Cursor:        r.NewStyle().Reverse(true),
	}
}
