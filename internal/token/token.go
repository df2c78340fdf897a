// Package token resolves the trailing token eligible for transliteration
// from a live buffer and cursor.
//
// A token is a maximal run of script-eligible characters — Latin letters
// plus the Devanagari and Bengali blocks, so an already-transliterated token
// can still be re-selected for boundary purposes. Whether a resolved
// candidate may actually be committed is the caller's call: only a
// terminating keystroke (whitespace or sentence punctuation) marks a token
// as complete, never the mere presence of trailing letters at the cursor.
package token

import (
	"errors"
	"unicode"

	"github.com/likhoapp/likho/internal/buffer"
)

// ErrTokenMoved is returned by Commit when the expected token is no longer
// at the cursor — the buffer changed between resolution and commit. The
// buffer is left untouched.
var ErrTokenMoved = errors.New("token: token no longer at cursor")

// IsTerminating reports whether r completes the token before it: whitespace
// or one of . , ! ?
func IsTerminating(r rune) bool {
	return unicode.IsSpace(r) || r == '.' || r == ',' || r == '!' || r == '?'
}

// isTokenRune reports whether r belongs to a token: ASCII letters or the
// Devanagari (U+0900–U+097F) / Bengali (U+0980–U+09FF) blocks.
func isTokenRune(r rune) bool {
	switch {
	case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z':
		return true
	case r >= 0x0900 && r <= 0x097F:
		return true
	case r >= 0x0980 && r <= 0x09FF:
		return true
	}
	return false
}

// Candidate is a resolved trailing token with its rune offsets in the buffer.
type Candidate struct {
	Text  string
	Start int
	End   int
}

// Tracker resolves and replaces trailing tokens against a [buffer.Buffer].
type Tracker struct {
	buf buffer.Buffer
}

// NewTracker returns a Tracker bound to buf.
func NewTracker(buf buffer.Buffer) *Tracker {
	return &Tracker{buf: buf}
}

// Resolve scans backward from the cursor over token runes and returns the
// candidate token ending at the cursor. ok is false when the character
// before the cursor is not a token rune (or the buffer is empty there).
//
// Resolve always reads the live buffer; it never works from a cached
// snapshot.
func (t *Tracker) Resolve() (c Candidate, ok bool) {
	text := []rune(t.buf.Text())
	end := t.buf.Cursor()
	if end > len(text) {
		end = len(text)
	}

	start := end
	for start > 0 && isTokenRune(text[start-1]) {
		start--
	}
	if start == end {
		return Candidate{}, false
	}
	return Candidate{
		Text:  string(text[start:end]),
		Start: start,
		End:   end,
	}, true
}

// Commit replaces tok with replacement in one atomic excise-and-insert.
// Offsets are re-derived from the live buffer at call time: Commit re-runs
// the trailing-token scan and refuses with [ErrTokenMoved] when the token at
// the cursor is not tok anymore, leaving the buffer exactly as it was.
func (t *Tracker) Commit(tok, replacement string) error {
	c, ok := t.Resolve()
	if !ok || c.Text != tok {
		return ErrTokenMoved
	}
	if err := t.buf.ReplaceRange(c.Start, c.End, replacement); err != nil {
		return err
	}
	return nil
}
