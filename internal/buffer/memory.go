package buffer

// Compile-time assertion that Memory satisfies the Buffer interface.
var _ Buffer = (*Memory)(nil)

// snapshot is one undo/redo history entry.
type snapshot struct {
	text   string
	cursor int
}

// Memory is a plain-text in-memory [Buffer] with undo/redo history.
// The zero value is an empty, ready-to-use buffer.
type Memory struct {
	text   []rune
	cursor int

	undoStack []snapshot
	redoStack []snapshot
}

// NewMemory returns an empty Memory buffer.
func NewMemory() *Memory {
	return &Memory{}
}

// Text implements [Buffer.Text].
func (m *Memory) Text() string { return string(m.text) }

// Cursor implements [Buffer.Cursor].
func (m *Memory) Cursor() int { return m.cursor }

// SetCursor implements [Buffer.SetCursor].
func (m *Memory) SetCursor(pos int) {
	m.cursor = clamp(pos, 0, len(m.text))
}

// InsertText implements [Buffer.InsertText].
func (m *Memory) InsertText(s string) {
	if s == "" {
		return
	}
	m.checkpoint()
	ins := []rune(s)
	m.text = append(m.text[:m.cursor], append(ins, m.text[m.cursor:]...)...)
	m.cursor += len(ins)
}

// ReplaceRange implements [Buffer.ReplaceRange]. The excise and insert are a
// single history entry, so an undo restores the replaced token in one step.
func (m *Memory) ReplaceRange(start, end int, s string) error {
	if start < 0 || end > len(m.text) || start > end {
		return ErrInvalidRange
	}
	m.checkpoint()
	ins := []rune(s)
	tail := append(ins, m.text[end:]...)
	m.text = append(m.text[:start], tail...)
	m.cursor = start + len(ins)
	return nil
}

// InsertLineBreak implements [Buffer.InsertLineBreak].
func (m *Memory) InsertLineBreak() { m.InsertText("\n") }

// InsertParagraphBreak implements [Buffer.InsertParagraphBreak].
func (m *Memory) InsertParagraphBreak() { m.InsertText("\n\n") }

// DeleteLastSentence implements [Buffer.DeleteLastSentence]. The trailing
// sentence runs from just after the previous terminator (. ! ?) to the end of
// the buffer; without a previous terminator the whole content is removed.
func (m *Memory) DeleteLastSentence() {
	if len(m.text) == 0 {
		return
	}
	m.checkpoint()

	// Skip terminators and whitespace at the very end so "a. b." deletes
	// " b." and not just the final period.
	i := len(m.text) - 1
	for i >= 0 && (isSentenceEnd(m.text[i]) || isSpace(m.text[i])) {
		i--
	}
	// Find the previous terminator before the trailing sentence.
	for i >= 0 && !isSentenceEnd(m.text[i]) {
		i--
	}
	m.text = m.text[:i+1]
	m.cursor = len(m.text)
}

// Undo implements [Buffer.Undo].
func (m *Memory) Undo() bool {
	if len(m.undoStack) == 0 {
		return false
	}
	m.redoStack = append(m.redoStack, snapshot{text: string(m.text), cursor: m.cursor})
	top := m.undoStack[len(m.undoStack)-1]
	m.undoStack = m.undoStack[:len(m.undoStack)-1]
	m.text = []rune(top.text)
	m.cursor = top.cursor
	return true
}

// Redo implements [Buffer.Redo].
func (m *Memory) Redo() bool {
	if len(m.redoStack) == 0 {
		return false
	}
	m.undoStack = append(m.undoStack, snapshot{text: string(m.text), cursor: m.cursor})
	top := m.redoStack[len(m.redoStack)-1]
	m.redoStack = m.redoStack[:len(m.redoStack)-1]
	m.text = []rune(top.text)
	m.cursor = top.cursor
	return true
}

// checkpoint records the current state for undo and invalidates redo.
func (m *Memory) checkpoint() {
	m.undoStack = append(m.undoStack, snapshot{text: string(m.text), cursor: m.cursor})
	m.redoStack = m.redoStack[:0]
}

func isSentenceEnd(r rune) bool { return r == '.' || r == '!' || r == '?' }

func isSpace(r rune) bool { return r == ' ' || r == '\t' || r == '\n' || r == '\r' }

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
