package inputtools_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/likhoapp/likho/pkg/translit/inputtools"
)

func TestLookup_ParsesSegments(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("itc"); got != "hi-t-i0-und" {
			t.Errorf("itc=%q, want hi-t-i0-und", got)
		}
		if got := r.URL.Query().Get("text"); got != "namaste bhai" {
			t.Errorf("text=%q, want namaste bhai", got)
		}
		w.Write([]byte(`["SUCCESS",[["namaste",["नमस्ते","नमसते"],[],{"candidate_type":[0,0]}],["bhai",["भाई"],[],{}]]]`))
	}))
	defer srv.Close()

	e := inputtools.New(inputtools.WithBaseURL(srv.URL))
	segments, err := e.Lookup(context.Background(), "namaste bhai", "hi-t-i0-und")
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}

	if len(segments) != 2 {
		t.Fatalf("got %d segments, want 2", len(segments))
	}
	if segments[0].Span != "namaste" || segments[0].Candidates[0] != "नमस्ते" {
		t.Errorf("segment 0=%+v", segments[0])
	}
	if segments[1].Span != "bhai" || segments[1].Candidates[0] != "भाई" {
		t.Errorf("segment 1=%+v", segments[1])
	}
}

func TestLookup_EngineFailureStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`["FAILED_TO_PARSE_REQUEST_BODY"]`))
	}))
	defer srv.Close()

	e := inputtools.New(inputtools.WithBaseURL(srv.URL))
	if _, err := e.Lookup(context.Background(), "ghar", "hi-t-i0-und"); err == nil {
		t.Fatal("Lookup succeeded on non-SUCCESS status, want error")
	}
}

func TestLookup_MalformedResponse(t *testing.T) {
	t.Parallel()

	for _, body := range []string{
		`not json`,
		`{}`,
		`["SUCCESS"]`,
		`["SUCCESS", "not a segment list"]`,
		`["SUCCESS", [["span-only"]]]`,
	} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(body))
		}))
		e := inputtools.New(inputtools.WithBaseURL(srv.URL))
		if _, err := e.Lookup(context.Background(), "ghar", "hi-t-i0-und"); err == nil {
			t.Errorf("Lookup succeeded on malformed body %q, want error", body)
		}
		srv.Close()
	}
}

func TestLookup_HTTPError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	e := inputtools.New(inputtools.WithBaseURL(srv.URL))
	if _, err := e.Lookup(context.Background(), "ghar", "hi-t-i0-und"); err == nil {
		t.Fatal("Lookup succeeded on HTTP 503, want error")
	}
}
