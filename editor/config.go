package editor

// Config configures the editor Model.
type Config struct {
	// Initial text, loaded as the history baseline.
	Text string

	// Rendering options.
	ShowLineNums bool
	TabWidth     int
	Style        Style

	KeyMap KeyMap

	// Forwarded to buffer.WithHistoryLimit.
	HistoryLimit int

	ReadOnly  bool
	Clipboard Clipboard

	// OnChange is called synchronously from Update after any change to the
	// text, caret or selection.
	OnChange func(ChangeEvent)
}

const defaultTabWidth = 4

// DefaultConfig returns a Config with line numbers, default styles and key
// bindings.
func DefaultConfig() Config {
	return Config{
		ShowLineNums: true,
		TabWidth:     defaultTabWidth,
		Style:        DefaultStyle(),
		KeyMap:       DefaultKeyMap(),
	}
}
