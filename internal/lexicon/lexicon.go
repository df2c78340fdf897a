// Package lexicon holds the runtime-mutable mapping of spoken trigger phrases
// to editor actions. Triggers are grouped into a closed set of categories;
// within a category the insertion order of entries is preserved, because the
// classifier reports the first trigger that matches when several overlap.
//
// The lexicon is shared-read: the classifier iterates it on every utterance
// and entries may be added or removed between utterances. No concurrent
// mutation guarantees are made — the editor core is single-threaded.
package lexicon

import (
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Category identifies a group of trigger phrases. The set is closed so that a
// typo in a category name fails validation instead of silently creating a new
// group.
type Category string

const (
	CategoryPunctuation Category = "punctuation"
	CategoryNavigation  Category = "navigation"
	CategoryEditing     Category = "editing"

	// CategoryFormatting is reserved for future styling commands (bold,
	// italic, headings). It ships empty and is never consulted by the
	// classifier.
	CategoryFormatting Category = "formatting"
)

// IsValid reports whether c is a recognised category.
func (c Category) IsValid() bool {
	switch c {
	case CategoryPunctuation, CategoryNavigation, CategoryEditing, CategoryFormatting:
		return true
	}
	return false
}

// Categories lists all valid categories in classification precedence order.
var Categories = []Category{
	CategoryPunctuation,
	CategoryNavigation,
	CategoryEditing,
	CategoryFormatting,
}

// Directive is a symbolic editor operation carried by navigation and editing
// entries. Punctuation entries carry a literal instead.
type Directive string

const (
	DirectiveNone           Directive = ""
	DirectiveNewLine        Directive = "new-line"
	DirectiveNewParagraph   Directive = "new-paragraph"
	DirectiveDeleteSentence Directive = "delete-sentence"
	DirectiveUndo           Directive = "undo"
	DirectiveRedo           Directive = "redo"
)

// IsValid reports whether d is a recognised directive.
func (d Directive) IsValid() bool {
	switch d {
	case DirectiveNewLine, DirectiveNewParagraph, DirectiveDeleteSentence,
		DirectiveUndo, DirectiveRedo:
		return true
	}
	return false
}

// Payload is the value mapped to a trigger. Exactly one field is meaningful
// depending on the category: Literal for punctuation, Directive for
// navigation and editing. The lexicon stores payloads as-is without shape
// validation; that is the caller's responsibility.
type Payload struct {
	// Literal is the text inserted verbatim when this trigger fires.
	Literal string

	// Directive is the symbolic operation dispatched when this trigger fires.
	Directive Directive
}

// Lexicon is the trigger phrase registry. Use [New] to obtain one populated
// with the built-in command set.
type Lexicon struct {
	categories map[Category]*orderedmap.OrderedMap[string, Payload]
}

// New returns a Lexicon pre-populated with the built-in punctuation,
// navigation, and editing commands. The formatting category exists but is
// empty.
func New() *Lexicon {
	l := &Lexicon{
		categories: make(map[Category]*orderedmap.OrderedMap[string, Payload], len(Categories)),
	}
	for _, c := range Categories {
		l.categories[c] = orderedmap.New[string, Payload]()
	}
	l.populateDefaults()
	return l
}

// Lookup returns the ordered trigger→payload mapping for category, or nil for
// an unknown category. The returned map is the live lexicon state, not a
// copy; callers iterate it but mutate only through [Lexicon.Add] and
// [Lexicon.Remove].
func (l *Lexicon) Lookup(category Category) *orderedmap.OrderedMap[string, Payload] {
	return l.categories[category]
}

// Add inserts or overwrites the entry for trigger in category. The trigger is
// lower-cased and whitespace-trimmed so lookups are case-insensitive.
// Unknown categories are ignored.
func (l *Lexicon) Add(category Category, trigger string, payload Payload) {
	m, ok := l.categories[category]
	if !ok {
		return
	}
	m.Set(normalizeTrigger(trigger), payload)
}

// Remove deletes the entry for trigger in category. Removing an absent
// trigger or an unknown category is a no-op.
func (l *Lexicon) Remove(category Category, trigger string) {
	m, ok := l.categories[category]
	if !ok {
		return
	}
	m.Delete(normalizeTrigger(trigger))
}

// Triggers returns the triggers of category in insertion order. Intended for
// diagnostics and suggestion ranking; returns nil for an unknown category.
func (l *Lexicon) Triggers(category Category) []string {
	m, ok := l.categories[category]
	if !ok {
		return nil
	}
	out := make([]string, 0, m.Len())
	for pair := m.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}

// normalizeTrigger applies the canonical trigger key form.
func normalizeTrigger(trigger string) string {
	return strings.ToLower(strings.TrimSpace(trigger))
}

// populateDefaults installs the built-in command set.
func (l *Lexicon) populateDefaults() {
	punct := []struct {
		trigger string
		literal string
	}{
		{"comma", ","},
		{"period", "."},
		{"full stop", "."},
		{"question mark", "?"},
		{"exclamation mark", "!"},
		{"exclamation point", "!"},
		{"colon", ":"},
		{"semicolon", ";"},
		{"dash", "-"},
		{"hyphen", "-"},
		{"quote", `"`},
		{"apostrophe", "'"},
		{"open parenthesis", "("},
		{"close parenthesis", ")"},
		{"open bracket", "["},
		{"close bracket", "]"},
	}
	for _, p := range punct {
		l.Add(CategoryPunctuation, p.trigger, Payload{Literal: p.literal})
	}

	nav := []struct {
		trigger   string
		directive Directive
	}{
		{"new line", DirectiveNewLine},
		{"enter", DirectiveNewLine},
		{"new paragraph", DirectiveNewParagraph},
		{"paragraph", DirectiveNewParagraph},
	}
	for _, n := range nav {
		l.Add(CategoryNavigation, n.trigger, Payload{Directive: n.directive})
	}

	edit := []struct {
		trigger   string
		directive Directive
	}{
		{"delete that", DirectiveDeleteSentence},
		{"delete sentence", DirectiveDeleteSentence},
		{"undo", DirectiveUndo},
		{"redo", DirectiveRedo},
	}
	for _, e := range edit {
		l.Add(CategoryEditing, e.trigger, Payload{Directive: e.directive})
	}
}
