// Package pipeline assembles and validates streamed tool calls for one model
// turn.
//
// The provider's streaming decode loop calls [Pipeline.AddFragment] for every
// delta as it arrives. When the model signals the turn is complete, the loop
// calls [Pipeline.Process], which drains the collector, validates every
// candidate independently, and partitions the calls into accepted and
// rejected. The loop resets the pipeline before the next turn; [Pipeline.Reset]
// is also the defined cancellation path when a stream aborts mid-turn.
//
//	p := pipeline.New(caps)
//	for delta := range stream {
//		if err := p.AddFragment(delta.Fragment()); err != nil {
//			// negative index: a decoder bug, not a model mistake
//		}
//		if delta.TurnComplete {
//			result := p.Process()
//			execute(result.Accepted)
//			feedback(result.Rejected)
//		}
//	}
//
// Per call index, across one turn, the state machine is
// Collecting → Assembling → Validating → Accepted | Rejected. Both outcome
// states are terminal: there is no internal retry, and a rejected call's
// reason string is surfaced so the model can retry in a subsequent turn.
//
// A Pipeline is invoked synchronously from a single decode loop and holds no
// shared mutable state: instantiate one per concurrent session.
package pipeline
