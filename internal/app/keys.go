package app

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/iw2rmb/plume/editor"
)

type keyMap struct {
	Save key.Binding
	Quit key.Binding
	Help key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Save: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Quit: key.NewBinding(key.WithKeys("ctrl+q"), key.WithHelp("ctrl+q", "quit")),
		Help: key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "more keys")),
	}
}

// helpKeys merges application and editor bindings for the help view.
type helpKeys struct {
	app    keyMap
	editor editor.KeyMap
}

func (h helpKeys) ShortHelp() []key.Binding {
	return append([]key.Binding{h.app.Save, h.app.Quit}, append(h.editor.ShortHelp(), h.app.Help)...)
}

func (h helpKeys) FullHelp() [][]key.Binding {
	return append([][]key.Binding{{h.app.Save, h.app.Quit, h.app.Help}}, h.editor.FullHelp()...)
}
