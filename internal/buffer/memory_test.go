package buffer_test

import (
	"errors"
	"testing"

	"github.com/likhoapp/likho/internal/buffer"
)

func TestMemory_InsertAndCursor(t *testing.T) {
	t.Parallel()

	m := buffer.NewMemory()
	m.InsertText("hello")
	m.InsertText(" world")
	if got := m.Text(); got != "hello world" {
		t.Errorf("Text=%q, want %q", got, "hello world")
	}
	if got := m.Cursor(); got != 11 {
		t.Errorf("Cursor=%d, want 11", got)
	}

	m.SetCursor(5)
	m.InsertText(",")
	if got := m.Text(); got != "hello, world" {
		t.Errorf("Text=%q, want %q", got, "hello, world")
	}
	if got := m.Cursor(); got != 6 {
		t.Errorf("Cursor=%d, want 6 (after inserted text)", got)
	}
}

func TestMemory_SetCursorClamps(t *testing.T) {
	t.Parallel()

	m := buffer.NewMemory()
	m.InsertText("abc")
	m.SetCursor(-5)
	if got := m.Cursor(); got != 0 {
		t.Errorf("Cursor=%d, want 0", got)
	}
	m.SetCursor(100)
	if got := m.Cursor(); got != 3 {
		t.Errorf("Cursor=%d, want 3", got)
	}
}

func TestMemory_ReplaceRange(t *testing.T) {
	t.Parallel()

	m := buffer.NewMemory()
	m.InsertText("I said namaste")

	if err := m.ReplaceRange(7, 14, "नमस्ते"); err != nil {
		t.Fatalf("ReplaceRange returned error: %v", err)
	}
	if got := m.Text(); got != "I said नमस्ते" {
		t.Errorf("Text=%q, want %q", got, "I said नमस्ते")
	}
	// Cursor sits after the replacement (7 + 6 runes).
	if got := m.Cursor(); got != 13 {
		t.Errorf("Cursor=%d, want 13", got)
	}
}

func TestMemory_ReplaceRange_Invalid(t *testing.T) {
	t.Parallel()

	m := buffer.NewMemory()
	m.InsertText("short")
	before := m.Text()

	for _, r := range [][2]int{{-1, 2}, {0, 99}, {4, 2}} {
		err := m.ReplaceRange(r[0], r[1], "x")
		if !errors.Is(err, buffer.ErrInvalidRange) {
			t.Errorf("ReplaceRange(%d,%d) err=%v, want ErrInvalidRange", r[0], r[1], err)
		}
	}
	if got := m.Text(); got != before {
		t.Errorf("buffer changed by failed replace: %q -> %q", before, got)
	}
}

func TestMemory_Breaks(t *testing.T) {
	t.Parallel()

	m := buffer.NewMemory()
	m.InsertText("one")
	m.InsertLineBreak()
	m.InsertText("two")
	m.InsertParagraphBreak()
	m.InsertText("three")
	if got := m.Text(); got != "one\ntwo\n\nthree" {
		t.Errorf("Text=%q, want %q", got, "one\ntwo\n\nthree")
	}
}

func TestMemory_DeleteLastSentence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"First. Second.", "First."},
		{"First. Second", "First."},
		{"Only sentence", ""},
		{"Ends mid word. And then some more", "Ends mid word."},
		{"", ""},
	}
	for _, tt := range tests {
		m := buffer.NewMemory()
		m.InsertText(tt.in)
		m.DeleteLastSentence()
		if got := m.Text(); got != tt.want {
			t.Errorf("DeleteLastSentence(%q)=%q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMemory_UndoRedo(t *testing.T) {
	t.Parallel()

	m := buffer.NewMemory()
	m.InsertText("alpha")
	m.InsertText(" beta")

	if !m.Undo() {
		t.Fatal("Undo returned false with history available")
	}
	if got := m.Text(); got != "alpha" {
		t.Errorf("after undo Text=%q, want %q", got, "alpha")
	}

	if !m.Redo() {
		t.Fatal("Redo returned false after undo")
	}
	if got := m.Text(); got != "alpha beta" {
		t.Errorf("after redo Text=%q, want %q", got, "alpha beta")
	}

	// A fresh mutation invalidates redo.
	m.Undo()
	m.InsertText("!")
	if m.Redo() {
		t.Error("Redo succeeded after intervening mutation")
	}
	if got := m.Text(); got != "alpha!" {
		t.Errorf("Text=%q, want %q", got, "alpha!")
	}
}

func TestMemory_UndoRestoresReplacedToken(t *testing.T) {
	t.Parallel()

	m := buffer.NewMemory()
	m.InsertText("ghar")
	if err := m.ReplaceRange(0, 4, "घर"); err != nil {
		t.Fatalf("ReplaceRange: %v", err)
	}
	// One undo step reverts the whole replacement, not just the insert half.
	m.Undo()
	if got := m.Text(); got != "ghar" {
		t.Errorf("after undo Text=%q, want %q", got, "ghar")
	}
}
