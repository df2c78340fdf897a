// Package classify turns one finalized utterance into a typed editor action.
//
// Matching rules differ per category on purpose. Punctuation triggers require
// exact equality with the whole utterance so that dictated prose containing a
// punctuation word ("I said comma, not colon") is never misfired as a
// command. Navigation and editing triggers also match as substrings, because
// those phrases are typically spoken standalone but are tolerated mid-
// utterance ("please new line now"). Categories are checked in fixed
// precedence order: punctuation, then navigation, then editing. An utterance
// that matches nothing is plain text — that is the normal outcome for
// dictated prose, not an error.
package classify

import (
	"strings"

	"github.com/likhoapp/likho/internal/lexicon"
)

// Kind discriminates the meaning of an [Action].
type Kind string

const (
	KindPlainText   Kind = "plain-text"
	KindPunctuation Kind = "punctuation"
	KindNavigation  Kind = "navigation"
	KindEditing     Kind = "editing"
)

// Action is the classification result for one utterance. Exactly one of
// Literal and Directive is meaningful: Literal for KindPlainText and
// KindPunctuation, Directive for KindNavigation and KindEditing.
type Action struct {
	Kind Kind

	// Literal is the text to insert into the buffer.
	Literal string

	// Directive is the symbolic operation to dispatch to the buffer.
	Directive lexicon.Directive

	// MatchedTrigger is the lexicon key that produced this action, for
	// diagnostics. Empty for plain text.
	MatchedTrigger string
}

// Classifier matches utterances against a [lexicon.Lexicon].
type Classifier struct {
	lex *lexicon.Lexicon
}

// New returns a Classifier backed by lex.
func New(lex *lexicon.Lexicon) *Classifier {
	return &Classifier{lex: lex}
}

// Classify resolves utterance to an [Action]. It always succeeds: when no
// trigger matches, the result is a plain-text action carrying the utterance
// with its original casing.
func (c *Classifier) Classify(utterance string) Action {
	normalized := strings.ToLower(strings.TrimSpace(utterance))
	if normalized == "" {
		return Action{Kind: KindPlainText}
	}

	// Punctuation: exact match only.
	for pair := c.lex.Lookup(lexicon.CategoryPunctuation).Oldest(); pair != nil; pair = pair.Next() {
		if normalized == pair.Key {
			return Action{
				Kind:           KindPunctuation,
				Literal:        pair.Value.Literal,
				MatchedTrigger: pair.Key,
			}
		}
	}

	// Navigation: equality or substring containment.
	for pair := c.lex.Lookup(lexicon.CategoryNavigation).Oldest(); pair != nil; pair = pair.Next() {
		if strings.Contains(normalized, pair.Key) {
			return Action{
				Kind:           KindNavigation,
				Directive:      pair.Value.Directive,
				MatchedTrigger: pair.Key,
			}
		}
	}

	// Editing: same loose rule, checked after navigation.
	for pair := c.lex.Lookup(lexicon.CategoryEditing).Oldest(); pair != nil; pair = pair.Next() {
		if strings.Contains(normalized, pair.Key) {
			return Action{
				Kind:           KindEditing,
				Directive:      pair.Value.Directive,
				MatchedTrigger: pair.Key,
			}
		}
	}

	return Action{Kind: KindPlainText, Literal: utterance}
}
