package repair

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"

	"github.com/petal-labs/calla/core"
)

// Status classifies a repair outcome.
type Status int

const (
	// StatusParsed means the arguments parsed directly.
	StatusParsed Status = iota
	// StatusRecovered means a repair step produced the parameters; the
	// outcome's Note says which one.
	StatusRecovered
	// StatusFailed means every permitted step failed.
	StatusFailed
)

// String returns the status name for logs.
func (s Status) String() string {
	switch s {
	case StatusParsed:
		return "parsed"
	case StatusRecovered:
		return "recovered"
	default:
		return "failed"
	}
}

// Options control which repair steps beyond the direct parse and the
// double-escape repair are permitted for a call. They come from the session's
// capability descriptor and the tool's schema hint, never from provider
// identity strings.
type Options struct {
	AllowTextFallback bool
	LenientJSON       bool
	Hint              core.SchemaHint
}

// Outcome is the result of one repair attempt.
type Outcome struct {
	Status Status

	// Params is the recovered parameter mapping. Non-nil exactly when Status
	// is not StatusFailed. Scalars and arrays wrap as {"value": v}.
	Params map[string]any

	// Note records which repair step produced the parameters, for
	// StatusRecovered outcomes.
	Note string

	// Reason is a human-readable diagnostic for StatusFailed outcomes. It is
	// fed back to the model, so it names what was wrong rather than a generic
	// failure.
	Reason string
}

// Repair turns raw accumulated argument text into a parameter mapping,
// attempting each permitted repair step in order. The raw text is never
// discarded without a reason attached to the outcome.
func Repair(raw string, opts Options) Outcome {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		// Tools may legitimately take no arguments.
		return Outcome{Status: StatusParsed, Params: map[string]any{}}
	}

	var direct any
	directErr := json.Unmarshal([]byte(trimmed), &direct)
	if directErr == nil {
		if s, ok := direct.(string); ok && looksStructured(s) {
			// The document's top-level value is a string that is itself JSON:
			// the provider serialized the arguments twice. Unescape once by
			// taking the decoded string and parse again.
			var inner any
			if err := json.Unmarshal([]byte(strings.TrimSpace(s)), &inner); err == nil {
				return Outcome{
					Status: StatusRecovered,
					Params: asParams(inner),
					Note:   "double-escaped arguments",
				}
			}
		}
		return Outcome{Status: StatusParsed, Params: asParams(direct)}
	}

	if opts.LenientJSON {
		if fixed, err := jsonrepair.JSONRepair(trimmed); err == nil {
			var v any
			if err := json.Unmarshal([]byte(fixed), &v); err == nil {
				return Outcome{
					Status: StatusRecovered,
					Params: asParams(v),
					Note:   "repaired malformed JSON",
				}
			}
		}
	}

	if opts.AllowTextFallback && opts.Hint.Kind == core.SchemaList {
		if params, ok := ExtractList(raw, opts.Hint); ok {
			return Outcome{
				Status: StatusRecovered,
				Params: params,
				Note:   "recovered from list-style text",
			}
		}
	}

	return Outcome{
		Status: StatusFailed,
		Reason: fmt.Sprintf("arguments are not valid JSON (%v) and no permitted repair recovered them", directErr),
	}
}

// asParams normalizes a parsed value into a parameter mapping. Downstream
// consumers never branch on "is this a string or an object": anything that is
// not a JSON object wraps as {"value": v}.
func asParams(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		if m == nil {
			return map[string]any{}
		}
		return m
	}
	return map[string]any{"value": v}
}

// looksStructured reports whether a decoded string plausibly contains a JSON
// document of its own. Plain string arguments ("hello") must not be mistaken
// for double-escaping.
func looksStructured(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, "{") || strings.HasPrefix(s, "[")
}
