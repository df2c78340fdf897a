package translit

import (
	"context"
	"log/slog"
	"strings"
	"time"
)

const (
	defaultTimeout      = 3 * time.Second
	defaultBreakerFails = 4
	defaultBreakerRest  = 20 * time.Second
)

// Option is a functional option for configuring a [Client].
type Option func(*Client)

// WithTimeout bounds every engine lookup. A lookup that exceeds d is treated
// identically to a transport failure. Default: 3s.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithBreaker tunes the failure suppression window: after maxFailures
// consecutive lookup failures the engine is rested for cooldown, during
// which every call passes through immediately. Defaults: 4 failures, 20s.
func WithBreaker(maxFailures int, cooldown time.Duration) Option {
	return func(c *Client) {
		c.breaker = newEngineBreaker(maxFailures, cooldown)
	}
}

// Client performs word-boundary-aware transliteration against an [Engine].
// All methods are safe for concurrent use.
type Client struct {
	engine  Engine
	timeout time.Duration
	breaker *engineBreaker
}

// NewClient returns a Client backed by engine.
func NewClient(engine Engine, opts ...Option) *Client {
	c := &Client{
		engine:  engine,
		timeout: defaultTimeout,
		breaker: newEngineBreaker(defaultBreakerFails, defaultBreakerRest),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Transliterate converts token for the given language code.
//
// Empty tokens and non-transliterating languages pass through immediately
// with Succeeded=true. Otherwise the token's special characters (anything
// outside letters, whitespace, and the target-script blocks) are extracted,
// the remaining text is sent to the engine, all returned segments are joined
// in order, and the extracted characters are reinserted by recorded word
// index.
//
// Any engine failure — transport error, timeout, malformed or empty
// response — yields (token, false). Callers must treat that identically to a
// plain pass-through; only the log severity differs.
func (c *Client) Transliterate(ctx context.Context, token, language string) Result {
	script := ScriptForLanguage(language)
	if token == "" || script == ScriptNone {
		return Result{DisplayText: token, Succeeded: true}
	}

	stripped, specials := extractSpecials(token)
	if strings.TrimSpace(stripped) == "" {
		// Nothing transliterable remains; the token is all specials.
		return Result{DisplayText: token, Succeeded: true}
	}

	if !c.breaker.allow() {
		slog.Debug("translit: lookup suppressed", "token", token)
		return Result{DisplayText: token, Succeeded: false}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	segments, err := c.engine.Lookup(ctx, stripped, script.LocaleTag())
	if err == nil && len(segments) == 0 {
		err = errEmptyLookup
	}
	c.breaker.record(err)
	if err != nil {
		slog.Warn("translit: lookup failed, passing token through",
			"token", token,
			"script", string(script),
			"elapsed", time.Since(start),
			"error", err,
		)
		return Result{DisplayText: token, Succeeded: false}
	}

	joined := joinSegments(segments)
	if joined == "" {
		slog.Warn("translit: engine returned no candidates, passing token through",
			"token", token,
			"script", string(script),
		)
		return Result{DisplayText: token, Succeeded: false}
	}

	return Result{
		DisplayText: reinsertSpecials(joined, specials),
		Succeeded:   true,
	}
}

// joinSegments joins the best candidate of every segment in order. Segments
// without candidates fall back to their source span so no part of the phrase
// is dropped.
func joinSegments(segments []Segment) string {
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		switch {
		case len(seg.Candidates) > 0:
			parts = append(parts, seg.Candidates[0])
		case seg.Span != "":
			parts = append(parts, seg.Span)
		}
	}
	return strings.Join(parts, " ")
}
