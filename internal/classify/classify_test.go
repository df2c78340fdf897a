package classify_test

import (
	"testing"

	"github.com/likhoapp/likho/internal/classify"
	"github.com/likhoapp/likho/internal/lexicon"
)

func newClassifier() *classify.Classifier {
	return classify.New(lexicon.New())
}

func TestClassify_PunctuationExact(t *testing.T) {
	t.Parallel()

	c := newClassifier()
	lex := lexicon.New()

	// Every punctuation trigger must classify to its exact literal.
	for pair := lex.Lookup(lexicon.CategoryPunctuation).Oldest(); pair != nil; pair = pair.Next() {
		got := c.Classify(pair.Key)
		if got.Kind != classify.KindPunctuation {
			t.Errorf("Classify(%q).Kind=%v, want punctuation", pair.Key, got.Kind)
		}
		if got.Literal != pair.Value.Literal {
			t.Errorf("Classify(%q).Literal=%q, want %q", pair.Key, got.Literal, pair.Value.Literal)
		}
		if got.MatchedTrigger != pair.Key {
			t.Errorf("Classify(%q).MatchedTrigger=%q, want %q", pair.Key, got.MatchedTrigger, pair.Key)
		}
	}
}

func TestClassify_PunctuationRequiresWholeUtterance(t *testing.T) {
	t.Parallel()

	c := newClassifier()
	lex := lexicon.New()

	// A punctuation word embedded in prose must not fire as a command.
	for pair := lex.Lookup(lexicon.CategoryPunctuation).Oldest(); pair != nil; pair = pair.Next() {
		utterance := "I said " + pair.Key
		got := c.Classify(utterance)
		if got.Kind == classify.KindPunctuation {
			t.Errorf("Classify(%q) fired punctuation %q; exact match required", utterance, got.MatchedTrigger)
		}
	}

	got := c.Classify("I said comma")
	if got.Kind != classify.KindPlainText || got.Literal != "I said comma" {
		t.Errorf("Classify(%q)=%+v, want plain text with original casing", "I said comma", got)
	}
}

func TestClassify_NavigationAndEditingSubstring(t *testing.T) {
	t.Parallel()

	c := newClassifier()
	lex := lexicon.New()

	for _, category := range []lexicon.Category{lexicon.CategoryNavigation, lexicon.CategoryEditing} {
		for pair := lex.Lookup(category).Oldest(); pair != nil; pair = pair.Next() {
			utterance := "please " + pair.Key + " now"
			got := c.Classify(utterance)
			if got.Directive != pair.Value.Directive {
				t.Errorf("Classify(%q).Directive=%v, want %v", utterance, got.Directive, pair.Value.Directive)
			}
		}
	}
}

func TestClassify_Precedence(t *testing.T) {
	t.Parallel()

	c := newClassifier()

	// "undo" spoken alone is editing, not plain text.
	if got := c.Classify("Undo"); got.Kind != classify.KindEditing || got.Directive != lexicon.DirectiveUndo {
		t.Errorf("Classify(Undo)=%+v, want editing/undo", got)
	}

	// Navigation is checked before editing: an utterance containing both a
	// navigation and an editing trigger resolves to navigation.
	got := c.Classify("new line and undo")
	if got.Kind != classify.KindNavigation || got.Directive != lexicon.DirectiveNewLine {
		t.Errorf("Classify(%q)=%+v, want navigation/new-line", "new line and undo", got)
	}
}

func TestClassify_Empty(t *testing.T) {
	t.Parallel()

	c := newClassifier()
	for _, utterance := range []string{"", "   ", "\t\n"} {
		got := c.Classify(utterance)
		if got.Kind != classify.KindPlainText || got.Literal != "" {
			t.Errorf("Classify(%q)=%+v, want empty plain text", utterance, got)
		}
	}
}

func TestClassify_CaseInsensitiveTriggers(t *testing.T) {
	t.Parallel()

	c := newClassifier()
	if got := c.Classify("  FULL STOP "); got.Kind != classify.KindPunctuation || got.Literal != "." {
		t.Errorf("Classify(FULL STOP)=%+v, want punctuation .", got)
	}
}

// Substring matching is deliberately not word-boundary anchored; "enter"
// matches inside "reentered". This mirrors the looseness callers rely on and
// is flagged as a product decision, not tightened here.
func TestClassify_SubstringIsNotWordAnchored(t *testing.T) {
	t.Parallel()

	c := newClassifier()
	got := c.Classify("she reentered the room")
	if got.Kind != classify.KindNavigation || got.Directive != lexicon.DirectiveNewLine {
		t.Errorf("Classify(%q)=%+v, want navigation/new-line (plain substring rule)", "she reentered the room", got)
	}
}

func TestSuggest_NearMiss(t *testing.T) {
	t.Parallel()

	c := newClassifier()

	s, ok := c.Suggest("new lime")
	if !ok {
		t.Fatal("Suggest(new lime) returned no suggestion")
	}
	if s.Trigger != "new line" || s.Category != lexicon.CategoryNavigation {
		t.Errorf("Suggest(new lime)=%+v, want trigger new line (navigation)", s)
	}
}

func TestSuggest_SkipsProse(t *testing.T) {
	t.Parallel()

	c := newClassifier()
	if s, ok := c.Suggest("the quick brown fox jumps over the lazy dog"); ok {
		t.Errorf("Suggest offered %+v for long prose, want none", s)
	}
	if s, ok := c.Suggest("zyzzyva"); ok {
		t.Errorf("Suggest offered %+v for unrelated word, want none", s)
	}
}
