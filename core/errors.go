package core

import "errors"

// Sentinel errors for classification. Rejection reasons placed on
// ProcessedCall.Errors are derived from these but carry call-specific detail,
// since the consumer (the model) uses the text to self-correct.
var (
	// ErrNegativeIndex is returned when a fragment arrives with a negative
	// call index.
	ErrNegativeIndex = errors.New("fragment index must be non-negative")

	// ErrInvalidToolName marks a call whose name is empty or not an
	// identifier. Whether a well-formed name resolves to a registered tool is
	// a downstream concern.
	ErrInvalidToolName = errors.New("invalid tool name")

	// ErrMalformedArguments marks a call whose arguments survived neither the
	// direct parse, the double-escape repair, nor any permitted fallback.
	ErrMalformedArguments = errors.New("malformed tool arguments")

	// ErrIncompleteStream marks calls drained from a turn that ended without
	// a completion signal.
	ErrIncompleteStream = errors.New("incomplete stream")
)
