// Package translit converts romanized tokens into Indic scripts through a
// remote phonetic lookup engine.
//
// The central abstraction is [Engine]: a network backend that, given a
// romanized phrase and an engine-specific locale tag, returns the phrase as
// an ordered list of aligned segments, each with ranked candidate spellings.
// [Client] wraps an Engine with the behavior the editor core needs: language
// gating, special-character protection, bounded waits, and pass-through
// degradation.
//
// Transliteration failure is never an error for callers. When the engine is
// unreachable, times out, or returns nothing usable, the client returns the
// source token unchanged with Succeeded=false — degrading to literal English
// is an acceptable fallback, so failures are logged and swallowed here.
package translit

import "context"

// Script is a target writing system. Any language code outside the
// transliterating set maps to ScriptNone and passes through unchanged.
type Script string

const (
	ScriptNone       Script = ""
	ScriptDevanagari Script = "hi"
	ScriptBengali    Script = "bn"
)

// ScriptForLanguage maps a language code to its target script.
// Unknown codes map to ScriptNone.
func ScriptForLanguage(code string) Script {
	switch code {
	case "hi":
		return ScriptDevanagari
	case "bn":
		return ScriptBengali
	}
	return ScriptNone
}

// LocaleTag returns the engine-specific transliteration locale tag for s,
// or "" for ScriptNone.
func (s Script) LocaleTag() string {
	switch s {
	case ScriptDevanagari:
		return "hi-t-i0-und"
	case ScriptBengali:
		return "bn-t-i0-und"
	}
	return ""
}

// Segment is one aligned span of an engine response: the matched source span
// and its candidate spellings in rank order. Engines may split a phrase into
// several segments; callers must consume all of them in order, since dropping
// a segment corrupts the joined result.
type Segment struct {
	// Span is the source text this segment covers.
	Span string

	// Candidates are the ranked target-script spellings for Span.
	// The first candidate is the best one.
	Candidates []string
}

// Engine is the remote phonetic lookup backend.
//
// Implementations must respect ctx cancellation; the [Client] applies a
// bounded timeout on every call.
type Engine interface {
	// Lookup transliterates text for the given locale tag and returns the
	// aligned segments in source order. An empty segment list with a nil
	// error is treated by callers the same as a lookup failure.
	Lookup(ctx context.Context, text, localeTag string) ([]Segment, error)
}

// Result is the outcome of one transliteration.
//
// Pass-through and pass-through-due-to-error are deliberately identical in
// DisplayText: callers treat them the same, only logging differs.
type Result struct {
	// DisplayText is the text to show. On failure it equals the source token.
	DisplayText string

	// Succeeded reports whether the engine produced DisplayText. False for
	// transport failures, timeouts, and empty lookups.
	Succeeded bool
}
