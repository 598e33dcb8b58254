package main

import (
	"github.com/atotto/clipboard"

	"github.com/iw2rmb/plume/editor"
)

// systemClipboard adapts the OS clipboard to editor.Clipboard.
type systemClipboard struct{}

var _ editor.Clipboard = systemClipboard{}

func (systemClipboard) ReadText() (string, error) { return clipboard.ReadAll() }

func (systemClipboard) WriteText(s string) error { return clipboard.WriteAll(s) }

// newClipboard returns the OS clipboard, or a process-local one when no
// clipboard utility is available.
func newClipboard() editor.Clipboard {
	return pickClipboard(clipboard.Unsupported)
}

func pickClipboard(unsupported bool) editor.Clipboard {
	if unsupported {
		return &editor.MemoryClipboard{}
	}
	return systemClipboard{}
}
