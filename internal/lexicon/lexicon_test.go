package lexicon_test

import (
	"slices"
	"testing"

	"github.com/likhoapp/likho/internal/lexicon"
)

func TestDefaults_Present(t *testing.T) {
	t.Parallel()

	l := lexicon.New()

	punct := l.Lookup(lexicon.CategoryPunctuation)
	for trigger, want := range map[string]string{
		"comma":             ",",
		"period":            ".",
		"full stop":         ".",
		"question mark":     "?",
		"exclamation mark":  "!",
		"exclamation point": "!",
		"colon":             ":",
		"semicolon":         ";",
		"dash":              "-",
		"hyphen":            "-",
		"quote":             `"`,
		"apostrophe":        "'",
		"open parenthesis":  "(",
		"close parenthesis": ")",
		"open bracket":      "[",
		"close bracket":     "]",
	} {
		p, ok := punct.Get(trigger)
		if !ok {
			t.Errorf("punctuation trigger %q missing", trigger)
			continue
		}
		if p.Literal != want {
			t.Errorf("punctuation %q: literal=%q, want %q", trigger, p.Literal, want)
		}
	}

	nav := l.Lookup(lexicon.CategoryNavigation)
	if p, ok := nav.Get("enter"); !ok || p.Directive != lexicon.DirectiveNewLine {
		t.Errorf("navigation %q: got %+v ok=%v, want new-line", "enter", p, ok)
	}
	if p, ok := nav.Get("paragraph"); !ok || p.Directive != lexicon.DirectiveNewParagraph {
		t.Errorf("navigation %q: got %+v ok=%v, want new-paragraph", "paragraph", p, ok)
	}

	edit := l.Lookup(lexicon.CategoryEditing)
	for trigger, want := range map[string]lexicon.Directive{
		"delete that":     lexicon.DirectiveDeleteSentence,
		"delete sentence": lexicon.DirectiveDeleteSentence,
		"undo":            lexicon.DirectiveUndo,
		"redo":            lexicon.DirectiveRedo,
	} {
		p, ok := edit.Get(trigger)
		if !ok || p.Directive != want {
			t.Errorf("editing %q: got %+v ok=%v, want %v", trigger, p, ok, want)
		}
	}

	if got := l.Lookup(lexicon.CategoryFormatting).Len(); got != 0 {
		t.Errorf("formatting category has %d entries, want 0 (reserved)", got)
	}
}

func TestAdd_LowerCasesAndOverwrites(t *testing.T) {
	t.Parallel()

	l := lexicon.New()
	l.Add(lexicon.CategoryPunctuation, "  Ellipsis ", lexicon.Payload{Literal: "…"})

	p, ok := l.Lookup(lexicon.CategoryPunctuation).Get("ellipsis")
	if !ok || p.Literal != "…" {
		t.Fatalf("trigger not normalised on add: got %+v ok=%v", p, ok)
	}

	// Overwrite keeps a single entry.
	before := l.Lookup(lexicon.CategoryPunctuation).Len()
	l.Add(lexicon.CategoryPunctuation, "ELLIPSIS", lexicon.Payload{Literal: "..."})
	if got := l.Lookup(lexicon.CategoryPunctuation).Len(); got != before {
		t.Errorf("overwrite changed entry count: %d -> %d", before, got)
	}
	p, _ = l.Lookup(lexicon.CategoryPunctuation).Get("ellipsis")
	if p.Literal != "..." {
		t.Errorf("overwrite not applied: literal=%q", p.Literal)
	}
}

func TestRemove_AbsentIsNoop(t *testing.T) {
	t.Parallel()

	l := lexicon.New()
	before := l.Lookup(lexicon.CategoryEditing).Len()
	l.Remove(lexicon.CategoryEditing, "no such trigger")
	if got := l.Lookup(lexicon.CategoryEditing).Len(); got != before {
		t.Errorf("removing absent trigger changed count: %d -> %d", before, got)
	}

	l.Remove(lexicon.CategoryEditing, "undo")
	if _, ok := l.Lookup(lexicon.CategoryEditing).Get("undo"); ok {
		t.Error("trigger still present after Remove")
	}
}

func TestTriggers_InsertionOrder(t *testing.T) {
	t.Parallel()

	l := lexicon.New()
	l.Add(lexicon.CategoryFormatting, "bold", lexicon.Payload{})
	l.Add(lexicon.CategoryFormatting, "italic", lexicon.Payload{})
	l.Add(lexicon.CategoryFormatting, "heading", lexicon.Payload{})

	got := l.Triggers(lexicon.CategoryFormatting)
	want := []string{"bold", "italic", "heading"}
	if !slices.Equal(got, want) {
		t.Errorf("Triggers=%v, want %v", got, want)
	}
}

func TestCategory_IsValid(t *testing.T) {
	t.Parallel()

	for _, c := range lexicon.Categories {
		if !c.IsValid() {
			t.Errorf("category %q reported invalid", c)
		}
	}
	if lexicon.Category("punctuatoin").IsValid() {
		t.Error("misspelled category reported valid")
	}
}
