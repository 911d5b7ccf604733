package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/petal-labs/calla/core"
)

// Option customizes a Pipeline.
type Option func(*Pipeline)

// WithTelemetry installs a telemetry hook. Events carry operational metadata
// only, never argument content.
func WithTelemetry(hook core.TelemetryHook) Option {
	return func(p *Pipeline) {
		if hook != nil {
			p.hook = hook
		}
	}
}

// WithHints installs a schema-hint source consulted by the call processor.
func WithHints(hints HintSource) Option {
	return func(p *Pipeline) {
		p.hints = hints
	}
}

// Pipeline orchestrates fragment collection and call processing across one
// streaming turn. It is invoked synchronously from a single decode loop and
// owns its collector state exclusively; instantiate one per session.
type Pipeline struct {
	collector *Collector
	processor *Processor
	hints     HintSource
	hook      core.TelemetryHook
}

// New creates a pipeline for a session with the given capability descriptor.
// The descriptor is resolved once at session setup (see the profiles package);
// the pipeline itself never inspects provider identity.
func New(caps core.Capabilities, opts ...Option) *Pipeline {
	p := &Pipeline{hook: core.NopTelemetry{}}
	for _, opt := range opts {
		opt(p)
	}
	p.collector = NewCollector(caps.NamePolicy)
	p.processor = NewProcessor(caps, p.hints)
	return p
}

// AddFragment forwards one delta to the collector.
func (p *Pipeline) AddFragment(f core.Fragment) error {
	if err := p.collector.AddFragment(f); err != nil {
		return err
	}
	if !f.Empty() {
		p.hook.OnFragment(core.FragmentEvent{
			Index:    f.Index,
			Seq:      p.collector.lastSeq(),
			NameLen:  len(f.Name),
			ArgsLen:  len(f.ArgsChunk),
			Received: time.Now(),
		})
	}
	return nil
}

// Process drains the collector for a completed turn, runs each candidate
// independently through the processor, and partitions the calls into accepted
// and rejected. The collector is reset before returning, so calling Process
// again without adding fragments yields an empty result.
func (p *Pipeline) Process() *core.Result {
	return p.drain(false)
}

// Interrupt drains the collector for a turn that ended without a completion
// signal. Every pending candidate is rejected with an "incomplete stream"
// reason so the caller can still surface per-call feedback. Use Reset instead
// to discard the turn silently.
func (p *Pipeline) Interrupt() *core.Result {
	return p.drain(true)
}

// Reset discards in-progress state without producing a result. It is the
// defined cancellation path when a stream aborts mid-turn and is guaranteed
// side-effect-free: execution is strictly downstream of Process returning.
func (p *Pipeline) Reset() {
	p.collector.Reset()
}

func (p *Pipeline) drain(interrupted bool) *core.Result {
	start := time.Now()

	candidates := p.collector.CompleteCalls()
	p.collector.Reset()

	result := &core.Result{}
	for _, cand := range candidates {
		var call core.ProcessedCall
		if interrupted {
			call = rejectIncomplete(cand)
		} else {
			call = p.processor.Process(cand)
		}
		if call.Valid {
			result.Accepted = append(result.Accepted, call)
		} else {
			result.Rejected = append(result.Rejected, call)
		}
	}

	result.Stats = core.Stats{
		Total:   len(candidates),
		Valid:   len(result.Accepted),
		Invalid: len(result.Rejected),
	}

	p.hook.OnTurn(core.TurnEvent{
		Accepted:    result.Stats.Valid,
		Rejected:    result.Stats.Invalid,
		Interrupted: interrupted,
		Elapsed:     time.Since(start),
	})
	return result
}

// rejectIncomplete produces the terminal form of a call whose turn ended
// without a completion signal. Arguments are not repaired: a truncated stream
// has no trustworthy payload.
func rejectIncomplete(cand core.Candidate) core.ProcessedCall {
	name := strings.TrimSpace(cand.Name)
	call := core.ProcessedCall{
		Index:        cand.Index,
		ID:           cand.ID,
		Name:         name,
		OriginalArgs: cand.RawArgs,
		Parameters:   map[string]any{},
	}
	if call.ID == "" {
		call.ID = "call_" + uuid.NewString()
	}
	if identifier.MatchString(name) {
		call.NormalizedName = strings.ToLower(name)
	}
	call.Errors = append(call.Errors, fmt.Sprintf(
		"%v: turn ended without completion signal", core.ErrIncompleteStream))
	return call
}
