// Package mock provides a scripted [speech.Source] for tests.
package mock

import (
	"context"
	"fmt"
	"sync"

	"github.com/likhoapp/likho/pkg/speech"
)

// Source is a controllable test double for [speech.Source].
// Use [New] to construct one; emit events with [Source.Emit] and
// [Source.EmitError].
type Source struct {
	// Unsupported makes IsSupported report false and Start fail.
	Unsupported bool

	mu       sync.Mutex
	started  bool
	language string
	starts   int
	stops    int

	results chan speech.Result
	errs    chan error
}

// Ensure Source satisfies the interface at compile time.
var _ speech.Source = (*Source)(nil)

// New returns a ready Source with buffered event channels.
func New() *Source {
	return &Source{
		results: make(chan speech.Result, 16),
		errs:    make(chan error, 4),
	}
}

// Start implements [speech.Source].
func (s *Source) Start(ctx context.Context) error {
	if s.Unsupported {
		return fmt.Errorf("mock: %w", speech.ErrUnsupported)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started = true
	s.starts++
	return nil
}

// Stop implements [speech.Source].
func (s *Source) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started = false
	s.stops++
	return nil
}

// SetLanguage implements [speech.Source].
func (s *Source) SetLanguage(code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.language = code
	return nil
}

// IsSupported implements [speech.Source].
func (s *Source) IsSupported() bool { return !s.Unsupported }

// Results implements [speech.Source].
func (s *Source) Results() <-chan speech.Result { return s.results }

// Errors implements [speech.Source].
func (s *Source) Errors() <-chan error { return s.errs }

// Emit queues a recognition result.
func (s *Source) Emit(r speech.Result) { s.results <- r }

// EmitFinal queues a final result with the given text.
func (s *Source) EmitFinal(text string) {
	s.Emit(speech.Result{FinalText: text, IsFinal: true})
}

// EmitError queues a recognition error.
func (s *Source) EmitError(err error) { s.errs <- err }

// Started reports whether the source is currently started.
func (s *Source) Started() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}

// Starts returns how many times Start succeeded.
func (s *Source) Starts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.starts
}

// Stops returns how many times Stop was called.
func (s *Source) Stops() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stops
}

// Language returns the last language set with SetLanguage.
func (s *Source) Language() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.language
}

// Close closes the event channels, ending any consumer loop.
func (s *Source) Close() {
	close(s.results)
	close(s.errs)
}
