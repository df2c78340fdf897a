// Package inputtools implements [translit.Engine] against the Google Input
// Tools HTTP transliteration endpoint.
//
// The endpoint takes a romanized phrase and an IME locale tag (e.g.
// "hi-t-i0-und") and answers with a JSON array of the form
//
//	["SUCCESS", [[span, [candidate, ...], ...], ...]]
//
// where each inner element is one aligned segment of the request phrase.
package inputtools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/likhoapp/likho/pkg/translit"
)

const (
	defaultEndpoint      = "https://inputtools.google.com/request"
	defaultNumCandidates = 5
)

// Option is a functional option for configuring the Engine.
type Option func(*Engine)

// WithBaseURL overrides the endpoint URL. Useful for tests and self-hosted
// proxies.
func WithBaseURL(baseURL string) Option {
	return func(e *Engine) {
		e.baseURL = baseURL
	}
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(e *Engine) {
		e.httpClient = client
	}
}

// WithNumCandidates sets how many candidate spellings are requested per
// segment. Default: 5.
func WithNumCandidates(n int) Option {
	return func(e *Engine) {
		e.numCandidates = n
	}
}

// Engine calls the Google Input Tools transliteration endpoint.
// It implements [translit.Engine] and is safe for concurrent use.
type Engine struct {
	baseURL       string
	httpClient    *http.Client
	numCandidates int
}

// Ensure Engine satisfies the Engine interface at compile time.
var _ translit.Engine = (*Engine)(nil)

// New returns an Engine with the supplied options applied.
func New(opts ...Option) *Engine {
	e := &Engine{
		baseURL:       defaultEndpoint,
		httpClient:    &http.Client{Timeout: 10 * time.Second},
		numCandidates: defaultNumCandidates,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Lookup implements [translit.Engine].
func (e *Engine) Lookup(ctx context.Context, text, localeTag string) ([]translit.Segment, error) {
	reqURL, err := e.buildURL(text, localeTag)
	if err != nil {
		return nil, fmt.Errorf("inputtools: build URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("inputtools: build request: %w", err)
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("inputtools: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("inputtools: unexpected status %d", resp.StatusCode)
	}

	var raw []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("inputtools: decode response: %w", err)
	}
	return parseResponse(raw)
}

// buildURL constructs the request URL for the given text and locale tag.
func (e *Engine) buildURL(text, localeTag string) (string, error) {
	u, err := url.Parse(e.baseURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("text", text)
	q.Set("itc", localeTag)
	q.Set("num", strconv.Itoa(e.numCandidates))
	q.Set("cp", "0")
	q.Set("cs", "1")
	q.Set("ie", "utf-8")
	q.Set("oe", "utf-8")
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// parseResponse extracts the segment list from the decoded top-level array.
func parseResponse(raw []json.RawMessage) ([]translit.Segment, error) {
	if len(raw) < 2 {
		return nil, errors.New("inputtools: response array too short")
	}

	var status string
	if err := json.Unmarshal(raw[0], &status); err != nil {
		return nil, fmt.Errorf("inputtools: decode status: %w", err)
	}
	if status != "SUCCESS" {
		return nil, fmt.Errorf("inputtools: engine status %q", status)
	}

	var rawSegments []json.RawMessage
	if err := json.Unmarshal(raw[1], &rawSegments); err != nil {
		return nil, fmt.Errorf("inputtools: decode segment list: %w", err)
	}

	segments := make([]translit.Segment, 0, len(rawSegments))
	for i, rs := range rawSegments {
		var fields []json.RawMessage
		if err := json.Unmarshal(rs, &fields); err != nil {
			return nil, fmt.Errorf("inputtools: decode segment %d: %w", i, err)
		}
		if len(fields) < 2 {
			return nil, fmt.Errorf("inputtools: segment %d has %d fields, want at least 2", i, len(fields))
		}

		var seg translit.Segment
		if err := json.Unmarshal(fields[0], &seg.Span); err != nil {
			return nil, fmt.Errorf("inputtools: decode segment %d span: %w", i, err)
		}
		if err := json.Unmarshal(fields[1], &seg.Candidates); err != nil {
			return nil, fmt.Errorf("inputtools: decode segment %d candidates: %w", i, err)
		}
		segments = append(segments, seg)
	}
	return segments, nil
}
