// Package normalize applies capitalization and spacing cleanup to plain
// dictated text before it is inserted into the buffer. All functions are pure
// and idempotent on already-clean input.
package normalize

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	whitespaceRun     = regexp.MustCompile(`\s+`)
	spaceBeforePunct  = regexp.MustCompile(`\s+([,.!?;:])`)
	noSpaceAfterPunct = regexp.MustCompile(`([,.!?;:])(\w)`)
)

// sentenceEnders are the characters after which a new sentence starts.
const sentenceEnders = ".!?"

// AutoCapitalize adjusts text for insertion after preceding, the buffer
// content currently before the cursor.
//
//   - Empty or whitespace-only preceding: the buffer is (effectively) empty,
//     so the first character of text is capitalized.
//   - Preceding ends a sentence (last non-whitespace character is one of
//     . ! ?): a single space is prepended and the first character capitalized.
//   - Preceding ends mid-word (no trailing space): a single space is
//     prepended without changing capitalization.
//   - Otherwise text is returned unchanged.
func AutoCapitalize(text, preceding string) string {
	if text == "" {
		return text
	}
	trimmed := strings.TrimSpace(preceding)
	if trimmed == "" {
		return capitalizeFirst(text)
	}

	last := trimmed[len(trimmed)-1]
	if strings.ContainsRune(sentenceEnders, rune(last)) {
		return " " + capitalizeFirst(text)
	}
	if !endsInSpace(preceding) {
		return " " + text
	}
	return text
}

// CleanSpacing normalizes whitespace around words and punctuation. Three
// rules run in fixed order:
//
//  1. Runs of whitespace collapse to a single space.
//  2. Whitespace immediately before , . ! ? ; : is removed.
//  3. A single space is inserted after one of those marks when a word
//     character follows directly.
//
// Running CleanSpacing on its own output is a no-op.
func CleanSpacing(text string) string {
	text = whitespaceRun.ReplaceAllString(text, " ")
	text = spaceBeforePunct.ReplaceAllString(text, "$1")
	text = noSpaceAfterPunct.ReplaceAllString(text, "$1 $2")
	return text
}

// capitalizeFirst upper-cases the first rune of s.
func capitalizeFirst(s string) string {
	runes := []rune(s)
	for i, r := range runes {
		if unicode.IsSpace(r) {
			continue
		}
		runes[i] = unicode.ToUpper(r)
		break
	}
	return string(runes)
}

// endsInSpace reports whether s ends with a whitespace character.
func endsInSpace(s string) bool {
	if s == "" {
		return false
	}
	runes := []rune(s)
	return unicode.IsSpace(runes[len(runes)-1])
}
