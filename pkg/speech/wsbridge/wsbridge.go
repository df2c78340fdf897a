// Package wsbridge implements [speech.Source] over a websocket connection to
// a browser host.
//
// The browser owns the actual recognition engine and the rendering surface;
// this bridge is the wire between them and the editor core. The browser
// pushes JSON events (recognition results, recognition errors, keystrokes,
// capability announcements) and the core pushes control messages (start/stop
// dictation, language changes) and state updates back.
package wsbridge

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/coder/websocket"

	"github.com/likhoapp/likho/pkg/speech"
)

// event is the JSON envelope exchanged with the browser host.
type event struct {
	Type string `json:"type"`

	// Inbound: speech results.
	FinalText   string `json:"finalText,omitempty"`
	InterimText string `json:"interimText,omitempty"`
	IsFinal     bool   `json:"isFinal,omitempty"`

	// Inbound: recognition errors.
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`

	// Inbound: keystrokes.
	Key string `json:"key,omitempty"`

	// Inbound: capability announcement.
	SpeechSupported *bool `json:"speechSupported,omitempty"`

	// Inbound: UI control.
	Mode string `json:"mode,omitempty"`

	// Control, both directions.
	Language string `json:"language,omitempty"`
}

// Control is a UI command from the browser host, forwarded to whoever drives
// the editor core. Op is the event type verbatim: "set_mode", "set_language",
// "start_dictation", or "stop_dictation".
type Control struct {
	Op       string
	Mode     string
	Language string
}

// Bridge adapts one browser websocket connection into a [speech.Source] plus
// a keystroke stream. Create one per connection with [New], call [Bridge.Run]
// to pump events, and [Bridge.Close] when the connection is done.
type Bridge struct {
	conn *websocket.Conn

	results    chan speech.Result
	errs       chan error
	keystrokes chan rune
	controls   chan Control

	supported atomic.Bool

	done chan struct{}
	once sync.Once

	writeMu sync.Mutex
}

// Ensure Bridge satisfies the Source interface at compile time.
var _ speech.Source = (*Bridge)(nil)

// New wraps an accepted websocket connection. Recognition is assumed
// supported until the browser announces otherwise with a capability event.
func New(conn *websocket.Conn) *Bridge {
	b := &Bridge{
		conn:       conn,
		results:    make(chan speech.Result, 64),
		errs:       make(chan error, 4),
		keystrokes: make(chan rune, 64),
		controls:   make(chan Control, 16),
		done:       make(chan struct{}),
	}
	b.supported.Store(true)
	return b
}

// Run reads events from the connection until it closes or ctx is cancelled,
// dispatching them to the Results, Errors, and Keystrokes channels. It
// returns when the connection ends; the channels are closed on return.
func (b *Bridge) Run(ctx context.Context) error {
	defer close(b.results)
	defer close(b.errs)
	defer close(b.keystrokes)
	defer close(b.controls)

	for {
		_, msg, err := b.conn.Read(ctx)
		if err != nil {
			select {
			case <-b.done:
				return nil
			default:
			}
			return fmt.Errorf("wsbridge: read: %w", err)
		}

		var ev event
		if err := json.Unmarshal(msg, &ev); err != nil {
			// A malformed frame is the host's bug, not a reason to drop the
			// whole session.
			continue
		}
		b.dispatch(ev)
	}
}

// dispatch routes one inbound event to the right channel.
func (b *Bridge) dispatch(ev event) {
	switch ev.Type {
	case "speech":
		r := speech.Result{
			FinalText:   ev.FinalText,
			InterimText: ev.InterimText,
			IsFinal:     ev.IsFinal,
		}
		select {
		case b.results <- r:
		case <-b.done:
		}

	case "speech_error":
		err := &speech.RecognitionError{
			Code:    speech.ErrorCode(ev.Code),
			Message: ev.Message,
		}
		select {
		case b.errs <- err:
		case <-b.done:
		}

	case "key":
		// A key event carries exactly one typed character. Named keys a host
		// forwards verbatim ("Enter", "Backspace") are not characters and are
		// dropped rather than misread as their first letter.
		runes := []rune(ev.Key)
		if len(runes) != 1 {
			return
		}
		select {
		case b.keystrokes <- runes[0]:
		case <-b.done:
		}

	case "capability":
		if ev.SpeechSupported != nil {
			b.supported.Store(*ev.SpeechSupported)
		}

	case "set_mode", "set_language", "start_dictation", "stop_dictation":
		ctl := Control{Op: ev.Type, Mode: ev.Mode, Language: ev.Language}
		select {
		case b.controls <- ctl:
		case <-b.done:
		}
	}
}

// Start implements [speech.Source] by asking the browser to start its
// recognition engine.
func (b *Bridge) Start(ctx context.Context) error {
	if !b.supported.Load() {
		return fmt.Errorf("wsbridge: browser reports recognition unavailable: %w", speech.ErrUnsupported)
	}
	return b.send(ctx, event{Type: "start_dictation"})
}

// Stop implements [speech.Source].
func (b *Bridge) Stop() error {
	return b.send(context.Background(), event{Type: "stop_dictation"})
}

// SetLanguage implements [speech.Source].
func (b *Bridge) SetLanguage(code string) error {
	return b.send(context.Background(), event{Type: "set_language", Language: code})
}

// IsSupported implements [speech.Source].
func (b *Bridge) IsSupported() bool { return b.supported.Load() }

// Results implements [speech.Source].
func (b *Bridge) Results() <-chan speech.Result { return b.results }

// Errors implements [speech.Source].
func (b *Bridge) Errors() <-chan error { return b.errs }

// Keystrokes returns the stream of typed characters pushed by the browser.
func (b *Bridge) Keystrokes() <-chan rune { return b.keystrokes }

// Controls returns the stream of UI commands pushed by the browser.
func (b *Bridge) Controls() <-chan Control { return b.controls }

// Publish sends an arbitrary JSON message to the browser host. Used by the
// host wiring for status updates, notifications, and buffer snapshots.
func (b *Bridge) Publish(ctx context.Context, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("wsbridge: marshal: %w", err)
	}
	b.writeMu.Lock()
	defer b.writeMu.Unlock()
	return b.conn.Write(ctx, websocket.MessageText, data)
}

// send marshals and writes a control event.
func (b *Bridge) send(ctx context.Context, ev event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("wsbridge: marshal: %w", err)
	}
	b.writeMu.Lock()
	defer b.writeMu.Unlock()
	return b.conn.Write(ctx, websocket.MessageText, data)
}

// Close ends the bridge and closes the underlying connection.
func (b *Bridge) Close() error {
	b.once.Do(func() {
		close(b.done)
		b.conn.Close(websocket.StatusNormalClosure, "session closed")
	})
	return nil
}
