package core

// Fragment is one streaming tool-call delta as decoded by the provider layer.
// A fragment carries at most a call id, a name fragment, and a chunk of
// argument text; any field may be empty. Fragments are immutable once created.
type Fragment struct {
	// Index identifies which call within the turn this delta belongs to.
	// Must be non-negative.
	Index int `json:"index"`

	// ID is the provider-assigned call id (e.g. "call_abc"), when present.
	ID string `json:"id,omitempty"`

	// Name is a tool-name fragment. Depending on the provider convention this
	// is either the full name repeated on every delta or a piece of it.
	Name string `json:"name,omitempty"`

	// ArgsChunk is a piece of the argument text. Chunk boundaries are an
	// artifact of the transport, not of the arguments' structure.
	ArgsChunk string `json:"args,omitempty"`

	// Seq is the arrival ordinal, assigned by the collector. Zero until the
	// fragment has been accepted.
	Seq int `json:"-"`
}

// Empty reports whether the fragment carries no payload at all. Providers
// legitimately send such keep-alive deltas; they are dropped without error.
func (f Fragment) Empty() bool {
	return f.ID == "" && f.Name == "" && f.ArgsChunk == ""
}

// Candidate is the assembled-but-unvalidated form of one tool call: every
// fragment seen for one index within a turn, with the argument text
// reconstructed in arrival order.
type Candidate struct {
	Index int
	ID    string
	Name  string

	// RawArgs is the concatenation of every fragment's ArgsChunk in arrival
	// order, with no separators inserted.
	RawArgs string

	// Fragments holds the original deltas in arrival order.
	Fragments []Fragment
}

// ProcessedCall is the terminal form of one tool call for the turn: either
// accepted (Valid, Parameters populated) or rejected (Errors populated).
// Immutable once produced.
type ProcessedCall struct {
	Index          int            `json:"index"`
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	NormalizedName string         `json:"normalized_name"`

	// Parameters is always a mapping, never nil. When argument repair yields
	// a scalar or an array, it is wrapped as {"value": v} so downstream
	// consumers have exactly one shape to handle.
	Parameters map[string]any `json:"parameters"`

	// OriginalArgs preserves the raw accumulated argument text for feedback
	// and debugging; it is never handed to execution.
	OriginalArgs string `json:"original_args,omitempty"`

	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`

	// Note records how the parameters were obtained when the direct parse did
	// not succeed (e.g. "double-escaped arguments").
	Note string `json:"note,omitempty"`
}

// Stats summarizes one processed turn.
type Stats struct {
	Total   int `json:"total"`
	Valid   int `json:"valid"`
	Invalid int `json:"invalid"`
}

// Result is the outcome of draining one streaming turn. It is created fresh
// by every Process call and is not retained by the pipeline.
type Result struct {
	Accepted []ProcessedCall `json:"accepted"`
	Rejected []ProcessedCall `json:"rejected"`
	Stats    Stats           `json:"stats"`
}

// NamePolicy selects how tool-name fragments accumulate across deltas.
type NamePolicy int

const (
	// NameConcat concatenates every non-empty name fragment in arrival order,
	// mirroring argument-chunk accumulation. This is the default: providers
	// have been observed splitting a name like "write_file" across deltas
	// ("write", then "_file"), and last-wins silently discards the first half.
	NameConcat NamePolicy = iota

	// NameLastWins keeps only the last non-empty name fragment. Use for
	// providers proven to resend the complete name on every delta.
	NameLastWins
)

// String returns the policy name for logs and config round-tripping.
func (p NamePolicy) String() string {
	switch p {
	case NameLastWins:
		return "last-wins"
	default:
		return "concat"
	}
}

// Capabilities describes how a session's provider emits tool calls. It is
// resolved once at session setup (see the profiles package) and consumed
// generically by the repair chain — the assembly path never branches on a
// provider identity string.
type Capabilities struct {
	// AllowTextFallback permits natural-language list extraction when a call's
	// arguments are not JSON at all. Only applies to tools whose schema hint
	// is SchemaList.
	AllowTextFallback bool `json:"allow_text_fallback"`

	// LenientJSON permits a repair pass over malformed JSON (truncated
	// objects, single quotes, trailing commas) before giving up.
	LenientJSON bool `json:"lenient_json"`

	// NamePolicy selects name-fragment accumulation. Zero value is NameConcat.
	NamePolicy NamePolicy `json:"name_policy"`
}

// SchemaKind classifies a tool's argument schema for repair purposes.
type SchemaKind int

const (
	// SchemaStructured marks tools expecting scalar or deeply structured
	// arguments. Text fallback never runs for these.
	SchemaStructured SchemaKind = iota

	// SchemaList marks tools whose arguments are a list of informal items
	// (e.g. a task-list tool). Only these are eligible for text fallback.
	SchemaList
)

// SchemaHint tells the repair chain what shape a tool's arguments take.
// The zero value means structured, no fallback.
type SchemaHint struct {
	Kind SchemaKind

	// ListField is the parameter key the recovered list is placed under.
	// Empty means "items".
	ListField string

	// ItemField is the key each recovered item's text is placed under.
	// Empty means "text".
	ItemField string
}

// DefaultListHint returns the hint used by list-style tools that do not
// customize field names.
func DefaultListHint() SchemaHint {
	return SchemaHint{Kind: SchemaList, ListField: "items", ItemField: "text"}
}
