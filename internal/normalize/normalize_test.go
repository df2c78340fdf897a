package normalize_test

import (
	"testing"

	"github.com/likhoapp/likho/internal/normalize"
)

func TestAutoCapitalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		text      string
		preceding string
		want      string
	}{
		{"empty buffer capitalizes", "world", "", "World"},
		{"whitespace-only buffer capitalizes", "world", "  \n", "World"},
		{"sentence end restarts", "world", "Hello.", " World"},
		{"question mark restarts", "so", "Really?", " So"},
		{"exclamation restarts", "great", "Wow!", " Great"},
		{"mid-word joins without capitalizing", "world", "Hello", " world"},
		{"trailing space leaves text alone", "world", "Hello ", "world"},
		{"sentence end with trailing space still restarts", "world", "Hello. ", " World"},
		{"comma does not restart", "and", "first,", " and"},
		{"empty text unchanged", "", "Hello.", ""},
		{"unicode capitalized", "über", "", "Über"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := normalize.AutoCapitalize(tt.text, tt.preceding); got != tt.want {
				t.Errorf("AutoCapitalize(%q, %q)=%q, want %q", tt.text, tt.preceding, got, tt.want)
			}
		})
	}
}

func TestCleanSpacing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"hello   world", "hello world"},
		{"hello ,world", "hello, world"},
		{"hello , world", "hello, world"},
		{"wait .Then go", "wait. Then go"},
		{"one\t\ntwo", "one two"},
		{"a ; b : c", "a; b: c"},
		{"already clean, text.", "already clean, text."},
		{"", ""},
		{"no punctuation here", "no punctuation here"},
	}
	for _, tt := range tests {
		got := normalize.CleanSpacing(tt.in)
		if got != tt.want {
			t.Errorf("CleanSpacing(%q)=%q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCleanSpacing_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"hello   world , again .done",
		"a,b,c!d?e",
		"  leading and trailing  ",
		"x ; y : z",
		"already clean, text. Done!",
		"mixed\ttabs\nand newlines ,ok",
	}
	for _, in := range inputs {
		once := normalize.CleanSpacing(in)
		twice := normalize.CleanSpacing(once)
		if once != twice {
			t.Errorf("CleanSpacing not idempotent for %q: first=%q second=%q", in, once, twice)
		}
	}
}
