package translit

import (
	"strings"
	"unicode"
)

// specialChar is a character the remote engine is known to drop or misplace:
// anything outside letters, whitespace, and the target-script blocks.
// Offset and wordIndex are recorded against the source token so the
// character can be put back after transliteration.
type specialChar struct {
	ch rune

	// offset is the rune offset of ch in the source token.
	offset int

	// wordIndex is the number of whitespace-delimited words (whole or
	// partial) occurring before ch in the source token.
	wordIndex int
}

// isScriptRune reports whether r survives the engine round-trip untouched:
// ASCII letters, whitespace, or a rune in the Devanagari (U+0900–U+097F) or
// Bengali (U+0980–U+09FF) blocks.
func isScriptRune(r rune) bool {
	switch {
	case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z':
		return true
	case unicode.IsSpace(r):
		return true
	case r >= 0x0900 && r <= 0x097F: // Devanagari
		return true
	case r >= 0x0980 && r <= 0x09FF: // Bengali
		return true
	}
	return false
}

// extractSpecials pulls every special character out of token, returning the
// stripped token and the extracted characters in source order.
func extractSpecials(token string) (stripped string, specials []specialChar) {
	runes := []rune(token)
	var b strings.Builder
	for i, r := range runes {
		if isScriptRune(r) {
			b.WriteRune(r)
			continue
		}
		specials = append(specials, specialChar{
			ch:        r,
			offset:    i,
			wordIndex: len(strings.Fields(string(runes[:i]))),
		})
	}
	return b.String(), specials
}

// reinsertSpecials puts extracted characters back into the transliterated
// text. Characters are processed in reverse offset order. Each character
// whose recorded word index falls within the current word count is appended
// to that word; the word list is recomputed after every reinsertion since the
// word count may shift. An index at or past the word count appends to the end
// of the whole string.
//
// This is an index-based heuristic, not an alignment: when transliteration
// changes the word count relative to the source, a character can land on the
// wrong word. That behavior is intentional and covered by tests — do not
// tighten it without revisiting every caller that depends on the current
// output.
func reinsertSpecials(text string, specials []specialChar) string {
	for i := len(specials) - 1; i >= 0; i-- {
		sc := specials[i]
		words := strings.Fields(text)
		if sc.wordIndex < len(words) {
			words[sc.wordIndex] += string(sc.ch)
			text = strings.Join(words, " ")
		} else {
			text += string(sc.ch)
		}
	}
	return text
}
