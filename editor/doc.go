// Package editor provides a Bubble Tea text editor component backed by the
// buffer package.
//
// Tab, Shift+Tab and Enter are routed to the buffer Session as indent,
// outdent and newline edits. Every other key edits the buffer directly and is
// then observed by the Session, so undo and redo see one history entry per
// key press.
package editor
