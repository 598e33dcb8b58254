// Package buffer implements the plain-text editing core for plume.
//
// Offsets are 0-based rune offsets into the document text. Ranges are
// normalized so that Start <= End. Lines are computed on demand from a text
// and an anchor offset and are never stored.
//
// A Session binds one Field (the host's text widget) to one History of
// full-buffer snapshots and applies indent, outdent and newline edits to it.
package buffer
