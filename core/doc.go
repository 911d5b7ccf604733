// Package core defines the shared data model for streaming tool-call assembly.
//
// A model does not emit a tool call atomically. During response streaming it
// emits a sequence of small deltas — a call index, sometimes a name fragment,
// sometimes a chunk of argument text — interleaved with ordinary text tokens.
// The core package defines the shapes those deltas are assembled into:
//
//   - [Fragment]: one delta, as decoded by the provider streaming layer
//   - [Candidate]: the in-progress accumulation of fragments for one call index
//   - [ProcessedCall]: a validated, normalized call ready for execution or
//     conversational feedback
//   - [Result]: the accepted/rejected partition for one completed turn
//
// # Capabilities
//
// Providers differ in how (and whether) they emit structured arguments. Those
// differences are described by a [Capabilities] value resolved once at session
// setup — never by string-matching a provider's display name inside the
// assembly path:
//
//	caps := core.Capabilities{AllowTextFallback: true}
//	p := pipeline.New(caps)
//
// # Failures are data
//
// A malformed call never aborts its siblings. Validation failures are recorded
// on the ProcessedCall ([ProcessedCall.Errors]) and partitioned into
// [Result.Rejected]; the reason strings are written to be fed back to the
// model so it can correct itself on the next turn.
package core
