// Package speech defines the Source interface for streaming speech
// recognition backends.
//
// A Source wraps whatever actually captures and recognizes audio — in the
// shipped host that is a browser recognition engine bridged over a websocket
// — and exposes a uniform event stream. Results are delivered on a channel so
// the consumer keeps single-reader, ordered-delivery semantics; the editor
// core treats final results as the sole trigger for classification and uses
// interim results only for status display.
package speech

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnsupported reports that a source cannot recognize speech at all.
// Start returns it (possibly wrapped) when recognition is unavailable.
var ErrUnsupported = errors.New("speech: recognition not supported")

// Result is one recognition event.
type Result struct {
	// FinalText is the committed transcript text. Only meaningful when
	// IsFinal is true.
	FinalText string

	// InterimText is the current in-progress guess. Only meaningful when
	// IsFinal is false.
	InterimText string

	// IsFinal reports whether the recognizer has committed to this result.
	IsFinal bool
}

// ErrorCode classifies recognition failures, mirroring the codes recognition
// engines report.
type ErrorCode string

const (
	ErrNoSpeech     ErrorCode = "no-speech"
	ErrAudioCapture ErrorCode = "audio-capture"
	ErrNotAllowed   ErrorCode = "not-allowed"
	ErrNetwork      ErrorCode = "network"
)

// RecognitionError is a failure reported by the recognition engine. The
// recognition session ends when one is emitted; it is not retried
// automatically.
type RecognitionError struct {
	Code    ErrorCode
	Message string
}

func (e *RecognitionError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("speech: recognition error %q", e.Code)
	}
	return fmt.Sprintf("speech: recognition error %q: %s", e.Code, e.Message)
}

// Source is a streaming speech recognition backend.
//
// Implementations deliver events in order on single channels; the editor core
// is the only consumer. Results and Errors are closed when the source shuts
// down for good.
type Source interface {
	// Start begins (or resumes) recognition. Returns an error when the
	// source cannot start, including when recognition is unsupported.
	Start(ctx context.Context) error

	// Stop suspends recognition. Already-captured results may still be
	// delivered. Stopping a stopped source is a no-op.
	Stop() error

	// SetLanguage switches the recognition language (BCP-47 code). Takes
	// effect on a best-effort basis for in-flight audio.
	SetLanguage(code string) error

	// IsSupported reports whether this source can recognize speech at all.
	// When false, Start always fails and the dictation path is unavailable;
	// the typing path is unaffected.
	IsSupported() bool

	// Results returns the ordered recognition event stream.
	Results() <-chan Result

	// Errors returns the stream of recognition failures. Each value is a
	// *RecognitionError; after one is delivered the recognition session has
	// ended and must be restarted explicitly.
	Errors() <-chan error
}
