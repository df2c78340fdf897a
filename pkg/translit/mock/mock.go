// Package mock provides a scripted [translit.Engine] for tests.
package mock

import (
	"context"
	"sync"
	"time"

	"github.com/likhoapp/likho/pkg/translit"
)

// Call records the arguments of one Lookup invocation.
type Call struct {
	Text      string
	LocaleTag string
}

// Engine is a configurable test double for [translit.Engine].
// The zero value returns an empty segment list for every lookup.
type Engine struct {
	// Segments is returned by every Lookup when SegmentsFor is nil.
	Segments []translit.Segment

	// SegmentsFor, when non-nil, selects the response per source text and
	// takes precedence over Segments.
	SegmentsFor map[string][]translit.Segment

	// Err, when non-nil, is returned by every Lookup.
	Err error

	// Delay makes Lookup block before responding, or until ctx is done,
	// whichever comes first. Used to exercise timeout and stale-result paths.
	Delay time.Duration

	mu    sync.Mutex
	calls []Call
}

// Lookup implements [translit.Engine].
func (e *Engine) Lookup(ctx context.Context, text, localeTag string) ([]translit.Segment, error) {
	e.mu.Lock()
	e.calls = append(e.calls, Call{Text: text, LocaleTag: localeTag})
	e.mu.Unlock()

	if e.Delay > 0 {
		select {
		case <-time.After(e.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if e.Err != nil {
		return nil, e.Err
	}
	if e.SegmentsFor != nil {
		return e.SegmentsFor[text], nil
	}
	return e.Segments, nil
}

// Calls returns a copy of all recorded Lookup invocations.
func (e *Engine) Calls() []Call {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Call, len(e.calls))
	copy(out, e.calls)
	return out
}
