package core

import "time"

// TelemetryHook receives notifications about assembly lifecycle events.
// Implementations can use this for logging, metrics, or debugging.
//
// # Security Considerations
//
// Event types are designed to NEVER include call content:
//   - Tool argument text is NEVER included (it may contain user data)
//   - Only operational metadata is exposed (indexes, sizes, counts, timing)
//
// This keeps telemetry safe to log to disk or ship to monitoring systems.
// If extending this interface, maintain that property.
type TelemetryHook interface {
	// OnFragment is called after a fragment is accepted by the collector.
	OnFragment(e FragmentEvent)

	// OnTurn is called after a turn is drained by Process or Interrupt.
	OnTurn(e TurnEvent)
}

// FragmentEvent describes one accepted fragment. Sizes stand in for content.
type FragmentEvent struct {
	Index    int       // call index the fragment belongs to
	Seq      int       // arrival ordinal within the turn
	NameLen  int       // length of the name fragment, 0 if absent
	ArgsLen  int       // length of the argument chunk, 0 if absent
	Received time.Time // when the collector accepted the fragment
}

// TurnEvent describes one drained turn.
type TurnEvent struct {
	Accepted    int           // calls that validated
	Rejected    int           // calls that did not
	Interrupted bool          // true when drained by Interrupt
	Elapsed     time.Duration // time spent assembling and validating
}

// NopTelemetry is a TelemetryHook that does nothing. Useful as a default.
type NopTelemetry struct{}

// OnFragment implements TelemetryHook.
func (NopTelemetry) OnFragment(FragmentEvent) {}

// OnTurn implements TelemetryHook.
func (NopTelemetry) OnTurn(TurnEvent) {}
