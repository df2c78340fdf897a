package translit

import (
	"errors"
	"log/slog"
	"sync"
	"time"
)

// errEmptyLookup marks an engine response that carried no segments. It
// counts as a failure for breaker accounting and yields a pass-through.
var errEmptyLookup = errors.New("translit: engine returned an empty lookup")

// engineBreaker keeps a flapping or unreachable engine from stalling every
// keystroke. After maxFailures consecutive lookup failures it suppresses
// lookups for a cooldown period; the first lookup after the cooldown is a
// probe that either closes the breaker again or restarts the cooldown.
type engineBreaker struct {
	maxFailures int
	cooldown    time.Duration

	mu          sync.Mutex
	failures    int
	suppressed  bool
	lastFailure time.Time
}

func newEngineBreaker(maxFailures int, cooldown time.Duration) *engineBreaker {
	return &engineBreaker{maxFailures: maxFailures, cooldown: cooldown}
}

// allow reports whether a lookup may be attempted right now.
func (b *engineBreaker) allow() bool {
	if b == nil {
		return true
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.suppressed {
		return true
	}
	if time.Since(b.lastFailure) >= b.cooldown {
		// Probe: let one call through; record decides what happens next.
		return true
	}
	return false
}

// record updates failure accounting with the outcome of a lookup.
func (b *engineBreaker) record(err error) {
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if err == nil {
		if b.suppressed {
			slog.Info("translit: engine recovered, resuming lookups")
		}
		b.failures = 0
		b.suppressed = false
		return
	}

	b.failures++
	b.lastFailure = time.Now()
	if !b.suppressed && b.failures >= b.maxFailures {
		b.suppressed = true
		slog.Warn("translit: engine suppressed after consecutive failures",
			"failures", b.failures,
			"cooldown", b.cooldown,
		)
	}
}
