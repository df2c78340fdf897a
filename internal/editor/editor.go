// Package editor hosts the mode coordinator: the single control flow that
// owns the buffer and routes speech results and keystrokes through the
// classification, normalization, and transliteration pipeline.
//
// The coordinator runs in exactly one of two modes. In dictate mode it
// consumes recognition results and turns them into buffer mutations. In type
// mode it watches keystrokes and transliterates the trailing token when a
// terminating character arrives. Mode and language switches invalidate any
// lookup still in flight; a stale result is discarded without touching the
// buffer.
package editor

import (
	"sync"
	"time"

	"github.com/bep/debounce"

	"github.com/likhoapp/likho/internal/buffer"
	"github.com/likhoapp/likho/internal/classify"
	"github.com/likhoapp/likho/internal/lexicon"
	"github.com/likhoapp/likho/internal/observe"
	"github.com/likhoapp/likho/internal/token"
	"github.com/likhoapp/likho/pkg/speech"
	"github.com/likhoapp/likho/pkg/translit"
	"golang.org/x/sync/singleflight"
)

// ErrUnsupported is returned by StartDictation when the speech source cannot
// recognize speech at all. The typing path remains available. It aliases
// [speech.ErrUnsupported] so either package's name matches in errors.Is.
var ErrUnsupported = speech.ErrUnsupported

// Mode is the coordinator's input mode.
type Mode string

const (
	// ModeDictate consumes speech results; keystrokes are ignored.
	ModeDictate Mode = "dictate"

	// ModeType consumes keystrokes; speech results are ignored.
	ModeType Mode = "type"
)

// Status describes what the coordinator is currently doing, for UI display.
type Status string

const (
	StatusReady      Status = "ready"
	StatusListening  Status = "listening"
	StatusDetecting  Status = "detecting"
	StatusProcessing Status = "processing"
	StatusError      Status = "error"
)

// Level grades a [Notification].
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarn    Level = "warn"
	LevelError   Level = "error"
)

// Notification is a user-facing message emitted by the coordinator, such as a
// recognition failure or a "did you mean" hint.
type Notification struct {
	Level   Level
	Message string
}

const (
	defaultLanguage     = "en-US"
	defaultHintDebounce = 300 * time.Millisecond
)

// Config holds the dependencies for a [Coordinator].
type Config struct {
	// Buffer is the text surface the coordinator mutates. Required.
	Buffer buffer.Buffer

	// Source delivers recognition events. Required.
	Source speech.Source

	// Translit performs token transliteration. Required.
	Translit *translit.Client

	// Lexicon maps trigger phrases to actions. Defaults to the built-in set.
	Lexicon *lexicon.Lexicon

	// Metrics receives instrumentation. Defaults to [observe.DefaultMetrics].
	Metrics *observe.Metrics

	// Language is the initial BCP-47 language code. Defaults to "en-US".
	Language string

	// HintDebounce is the quiet period before the advisory pending-token hint
	// fires. Defaults to 300ms.
	HintDebounce time.Duration
}

// typingSession scopes one stretch of type-mode input. A new session starts
// on every switch into type mode; stale lookups are fenced by generation, the
// session id exists for log correlation.
type typingSession struct {
	id        string
	language  string
	startedAt time.Time
}

// Coordinator is the editor core. One coordinator owns one buffer.
//
// All exported methods are safe for concurrent use, but buffer mutations only
// ever happen under the coordinator's lock, so the buffer itself needs none.
// Subscriber callbacks run on the coordinator's goroutine and must not call
// back into it.
type Coordinator struct {
	buf      buffer.Buffer
	source   speech.Source
	translit *translit.Client
	lex      *lexicon.Lexicon
	class    *classify.Classifier
	metrics  *observe.Metrics

	mu         sync.Mutex
	mode       Mode
	status     Status
	language   string
	listening  bool
	resumeMode bool // dictation was live when we switched to type mode
	session    *typingSession

	// generation fences in-flight lookups: bumped on every mode or language
	// switch, checked before a lookup result may touch the buffer.
	generation uint64

	// group collapses duplicate terminator lookups for the same token into
	// one engine call.
	group   singleflight.Group
	tracker *token.Tracker

	pending   string
	debounced func(func())

	subMu       sync.Mutex
	nextSubID   int
	statusSubs  map[int]func(Status)
	notifySubs  map[int]func(Notification)
	pendingSubs map[int]func(string)
	bufferSubs  map[int]func(text string, cursor int)
}

// New returns a Coordinator in dictate mode with status ready.
func New(cfg Config) *Coordinator {
	lex := cfg.Lexicon
	if lex == nil {
		lex = lexicon.New()
	}
	metrics := cfg.Metrics
	if metrics == nil {
		metrics = observe.DefaultMetrics()
	}
	language := cfg.Language
	if language == "" {
		language = defaultLanguage
	}
	hintDebounce := cfg.HintDebounce
	if hintDebounce <= 0 {
		hintDebounce = defaultHintDebounce
	}

	return &Coordinator{
		buf:         cfg.Buffer,
		source:      cfg.Source,
		translit:    cfg.Translit,
		lex:         lex,
		class:       classify.New(lex),
		metrics:     metrics,
		mode:        ModeDictate,
		status:      StatusReady,
		language:    language,
		tracker:     token.NewTracker(cfg.Buffer),
		debounced:   debounce.New(hintDebounce),
		statusSubs:  make(map[int]func(Status)),
		notifySubs:  make(map[int]func(Notification)),
		pendingSubs: make(map[int]func(string)),
		bufferSubs:  make(map[int]func(string, int)),
	}
}

// Mode returns the current input mode.
func (c *Coordinator) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// Status returns the current status.
func (c *Coordinator) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Language returns the current language code.
func (c *Coordinator) Language() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.language
}

// AddCommand installs or overwrites a trigger phrase at runtime. It takes
// effect on the next utterance.
func (c *Coordinator) AddCommand(category lexicon.Category, trigger string, payload lexicon.Payload) {
	c.lex.Add(category, trigger, payload)
}

// RemoveCommand deletes a trigger phrase at runtime.
func (c *Coordinator) RemoveCommand(category lexicon.Category, trigger string) {
	c.lex.Remove(category, trigger)
}

// OnStatus registers fn for status changes and returns an unsubscribe func.
func (c *Coordinator) OnStatus(fn func(Status)) func() {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	id := c.nextSubID
	c.nextSubID++
	c.statusSubs[id] = fn
	return func() {
		c.subMu.Lock()
		defer c.subMu.Unlock()
		delete(c.statusSubs, id)
	}
}

// OnNotify registers fn for notifications and returns an unsubscribe func.
func (c *Coordinator) OnNotify(fn func(Notification)) func() {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	id := c.nextSubID
	c.nextSubID++
	c.notifySubs[id] = fn
	return func() {
		c.subMu.Lock()
		defer c.subMu.Unlock()
		delete(c.notifySubs, id)
	}
}

// OnPendingToken registers fn for advisory pending-token hints. The hint is
// debounced and drives UI highlighting only; an empty string clears it.
func (c *Coordinator) OnPendingToken(fn func(string)) func() {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	id := c.nextSubID
	c.nextSubID++
	c.pendingSubs[id] = fn
	return func() {
		c.subMu.Lock()
		defer c.subMu.Unlock()
		delete(c.pendingSubs, id)
	}
}

// OnBufferChange registers fn for buffer snapshots after each mutation the
// coordinator performs. fn receives the full text and the cursor offset, so
// it never needs to read the buffer itself.
func (c *Coordinator) OnBufferChange(fn func(text string, cursor int)) func() {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	id := c.nextSubID
	c.nextSubID++
	c.bufferSubs[id] = fn
	return func() {
		c.subMu.Lock()
		defer c.subMu.Unlock()
		delete(c.bufferSubs, id)
	}
}

// InsertText inserts host-originated text (an unhandled keystroke or a paste)
// at the cursor, serialized with the coordinator's own mutations.
func (c *Coordinator) InsertText(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.buf.InsertText(s)
	c.notifyBuffer()
}

// notifyBuffer fans out a buffer snapshot. Callers hold c.mu.
func (c *Coordinator) notifyBuffer() {
	text := c.buf.Text()
	cursor := c.buf.Cursor()

	c.subMu.Lock()
	subs := make([]func(string, int), 0, len(c.bufferSubs))
	for _, fn := range c.bufferSubs {
		subs = append(subs, fn)
	}
	c.subMu.Unlock()
	for _, fn := range subs {
		fn(text, cursor)
	}
}

// setStatus updates the status and fans it out. Callers hold c.mu.
func (c *Coordinator) setStatus(s Status) {
	if c.status == s {
		return
	}
	c.status = s

	c.subMu.Lock()
	subs := make([]func(Status), 0, len(c.statusSubs))
	for _, fn := range c.statusSubs {
		subs = append(subs, fn)
	}
	c.subMu.Unlock()
	for _, fn := range subs {
		fn(s)
	}
}

// notify fans a notification out to subscribers.
func (c *Coordinator) notify(level Level, message string) {
	c.subMu.Lock()
	subs := make([]func(Notification), 0, len(c.notifySubs))
	for _, fn := range c.notifySubs {
		subs = append(subs, fn)
	}
	c.subMu.Unlock()
	n := Notification{Level: level, Message: message}
	for _, fn := range subs {
		fn(n)
	}
}

// setPending records the advisory pending token and schedules the debounced
// hint. Callers hold c.mu.
func (c *Coordinator) setPending(tok string) {
	c.pending = tok
	c.debounced(c.firePending)
}

// firePending delivers the current pending token to hint subscribers.
func (c *Coordinator) firePending() {
	c.mu.Lock()
	tok := c.pending
	c.mu.Unlock()

	c.subMu.Lock()
	subs := make([]func(string), 0, len(c.pendingSubs))
	for _, fn := range c.pendingSubs {
		subs = append(subs, fn)
	}
	c.subMu.Unlock()
	for _, fn := range subs {
		fn(tok)
	}
}

// precedingText returns the buffer content before the cursor. Callers hold
// c.mu.
func (c *Coordinator) precedingText() string {
	runes := []rune(c.buf.Text())
	cur := c.buf.Cursor()
	if cur > len(runes) {
		cur = len(runes)
	}
	return string(runes[:cur])
}
