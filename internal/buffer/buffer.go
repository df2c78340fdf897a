// Package buffer defines the editing-surface capability the editor core
// mutates. The real surface lives in the host UI (a rich-text widget); the
// core only ever talks to this interface, so it never touches a rendering
// layer directly. An in-memory implementation ([Memory]) backs tests and the
// reference host.
package buffer

import "errors"

// ErrInvalidRange is returned by ReplaceRange for offsets outside the buffer
// or with start past end. The buffer is left untouched.
var ErrInvalidRange = errors.New("buffer: invalid range")

// Buffer is the mutable text surface. Offsets are rune offsets.
//
// The core mutates the buffer from a single control flow, so implementations
// need no locking, but every mutation must be atomic with respect to cursor
// placement: the cursor is never observable between the delete and insert
// halves of a replacement.
type Buffer interface {
	// Text returns the full buffer content.
	Text() string

	// Cursor returns the current cursor position as a rune offset.
	Cursor() int

	// SetCursor moves the cursor, clamping to the buffer bounds.
	SetCursor(pos int)

	// InsertText inserts s at the cursor and places the cursor after it.
	InsertText(s string)

	// ReplaceRange atomically replaces the runes in [start, end) with s and
	// places the cursor after s. Structural content outside the range is
	// untouched. Returns ErrInvalidRange (and changes nothing) for a bad
	// range.
	ReplaceRange(start, end int, s string) error

	// InsertLineBreak inserts a line break at the cursor.
	InsertLineBreak()

	// InsertParagraphBreak inserts a paragraph break at the cursor.
	InsertParagraphBreak()

	// DeleteLastSentence removes the trailing sentence: everything after the
	// previous sentence terminator, or the whole content when there is none.
	DeleteLastSentence()

	// Undo reverts the most recent mutation. Reports whether anything was
	// undone.
	Undo() bool

	// Redo re-applies the most recently undone mutation. Reports whether
	// anything was redone.
	Redo() bool
}
