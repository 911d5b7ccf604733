package pipeline

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/petal-labs/calla/core"
	"github.com/petal-labs/calla/repair"
)

// identifier is the shape of a well-formed tool name. Whether the name
// resolves against the registered tool set is a downstream concern.
var identifier = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// HintSource resolves a tool's schema hint by normalized name. The tools
// package provides a concurrent-safe implementation.
type HintSource interface {
	Hint(name string) (core.SchemaHint, bool)
}

// Processor validates one candidate and normalizes it into a ProcessedCall.
type Processor struct {
	caps  core.Capabilities
	hints HintSource
}

// NewProcessor creates a processor for a session with the given capabilities.
// hints may be nil, in which case every tool is treated as structured.
func NewProcessor(caps core.Capabilities, hints HintSource) *Processor {
	return &Processor{caps: caps, hints: hints}
}

// Process validates the candidate's name, repairs its arguments, and returns
// the terminal form of the call. It never returns an error: failures are data
// on the ProcessedCall so one malformed call cannot abort its siblings.
func (p *Processor) Process(cand core.Candidate) core.ProcessedCall {
	call := core.ProcessedCall{
		Index:        cand.Index,
		ID:           cand.ID,
		Name:         strings.TrimSpace(cand.Name),
		OriginalArgs: cand.RawArgs,
		Parameters:   map[string]any{},
	}
	if call.ID == "" {
		call.ID = "call_" + uuid.NewString()
	}

	if !identifier.MatchString(call.Name) {
		call.Errors = append(call.Errors, fmt.Sprintf(
			"%v: %q is not an identifier (letters, digits, underscore)",
			core.ErrInvalidToolName, cand.Name))
		return call
	}

	// Fixed, provider-independent normalization rule.
	call.NormalizedName = strings.ToLower(call.Name)

	opts := repair.Options{
		AllowTextFallback: p.caps.AllowTextFallback,
		LenientJSON:       p.caps.LenientJSON,
	}
	if p.hints != nil {
		if hint, ok := p.hints.Hint(call.NormalizedName); ok {
			opts.Hint = hint
		}
	}

	outcome := repair.Repair(cand.RawArgs, opts)
	if outcome.Status == repair.StatusFailed {
		call.Errors = append(call.Errors, fmt.Sprintf(
			"%v for %s: %s", core.ErrMalformedArguments, call.Name, outcome.Reason))
		return call
	}

	call.Valid = true
	call.Parameters = outcome.Params
	call.Note = outcome.Note
	return call
}
