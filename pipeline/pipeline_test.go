package pipeline

import (
	"reflect"
	"strings"
	"testing"

	"github.com/petal-labs/calla/core"
)

func TestPipelineEndToEnd(t *testing.T) {
	p := New(core.Capabilities{})

	frags := []core.Fragment{
		{Index: 0, Name: "todo_write"},
		{Index: 0, ArgsChunk: `{"items":[`},
		{Index: 0, ArgsChunk: `"a","b"]}`},
	}
	for _, f := range frags {
		if err := p.AddFragment(f); err != nil {
			t.Fatalf("AddFragment() error = %v", err)
		}
	}

	result := p.Process()
	if len(result.Accepted) != 1 || len(result.Rejected) != 0 {
		t.Fatalf("accepted/rejected = %d/%d, want 1/0", len(result.Accepted), len(result.Rejected))
	}

	call := result.Accepted[0]
	if call.Name != "todo_write" {
		t.Errorf("Name = %q, want %q", call.Name, "todo_write")
	}
	want := map[string]any{"items": []any{"a", "b"}}
	if !reflect.DeepEqual(call.Parameters, want) {
		t.Errorf("Parameters = %v, want %v", call.Parameters, want)
	}
	if result.Stats != (core.Stats{Total: 1, Valid: 1, Invalid: 0}) {
		t.Errorf("Stats = %+v", result.Stats)
	}
}

func TestPipelineSiblingIndependence(t *testing.T) {
	// One malformed call among several must never abort the others.
	p := New(core.Capabilities{})
	p.AddFragment(core.Fragment{Index: 0, Name: "read_file", ArgsChunk: `{"path":"a.go"}`})
	p.AddFragment(core.Fragment{Index: 1, Name: "write_file", ArgsChunk: `{"path": oops`})
	p.AddFragment(core.Fragment{Index: 2, Name: "list_dir", ArgsChunk: `{"path":"."}`})

	result := p.Process()
	if len(result.Accepted) != 2 {
		t.Fatalf("len(Accepted) = %d, want 2", len(result.Accepted))
	}
	if result.Accepted[0].Index != 0 || result.Accepted[1].Index != 2 {
		t.Errorf("accepted indexes = %d, %d, want 0, 2",
			result.Accepted[0].Index, result.Accepted[1].Index)
	}
	if len(result.Rejected) != 1 || result.Rejected[0].Index != 1 {
		t.Fatalf("Rejected = %+v, want exactly call #1", result.Rejected)
	}
	if result.Stats != (core.Stats{Total: 3, Valid: 2, Invalid: 1}) {
		t.Errorf("Stats = %+v", result.Stats)
	}
}

func TestPipelineIdempotentDrain(t *testing.T) {
	p := New(core.Capabilities{})
	p.AddFragment(core.Fragment{Index: 0, Name: "f", ArgsChunk: "{}"})

	first := p.Process()
	if first.Stats.Total != 1 {
		t.Fatalf("first drain Total = %d, want 1", first.Stats.Total)
	}

	second := p.Process()
	if second.Stats.Total != 0 || len(second.Accepted) != 0 || len(second.Rejected) != 0 {
		t.Errorf("second drain = %+v, want empty result", second)
	}
}

func TestPipelineInterrupt(t *testing.T) {
	p := New(core.Capabilities{})
	p.AddFragment(core.Fragment{Index: 0, Name: "write_file", ArgsChunk: `{"path":"a.go"`})

	result := p.Interrupt()
	if len(result.Accepted) != 0 || len(result.Rejected) != 1 {
		t.Fatalf("accepted/rejected = %d/%d, want 0/1", len(result.Accepted), len(result.Rejected))
	}
	call := result.Rejected[0]
	if len(call.Errors) == 0 || !strings.Contains(call.Errors[0], "incomplete stream") {
		t.Errorf("Errors = %v, want incomplete-stream reason", call.Errors)
	}
	if call.Parameters == nil {
		t.Error("Parameters = nil, want empty map")
	}

	// The turn is drained: a later Process sees nothing.
	if again := p.Process(); again.Stats.Total != 0 {
		t.Errorf("Total after Interrupt = %d, want 0", again.Stats.Total)
	}
}

func TestPipelineReset(t *testing.T) {
	p := New(core.Capabilities{})
	p.Reset() // safe with no turn in progress

	p.AddFragment(core.Fragment{Index: 0, Name: "f", ArgsChunk: "{}"})
	p.Reset()
	result := p.Process()
	if result.Stats.Total != 0 {
		t.Errorf("Total after Reset = %d, want 0", result.Stats.Total)
	}
}

func TestPipelineInstancesAreIndependent(t *testing.T) {
	// One pipeline per concurrent session; no shared mutable state.
	a := New(core.Capabilities{})
	b := New(core.Capabilities{})

	a.AddFragment(core.Fragment{Index: 0, Name: "from_a", ArgsChunk: "{}"})
	b.AddFragment(core.Fragment{Index: 0, Name: "from_b", ArgsChunk: "{}"})

	ra := a.Process()
	rb := b.Process()
	if ra.Accepted[0].Name != "from_a" || rb.Accepted[0].Name != "from_b" {
		t.Errorf("cross-session leak: %q / %q", ra.Accepted[0].Name, rb.Accepted[0].Name)
	}
}

type recordingHook struct {
	fragments []core.FragmentEvent
	turns     []core.TurnEvent
}

func (h *recordingHook) OnFragment(e core.FragmentEvent) { h.fragments = append(h.fragments, e) }
func (h *recordingHook) OnTurn(e core.TurnEvent)         { h.turns = append(h.turns, e) }

func TestPipelineTelemetry(t *testing.T) {
	hook := &recordingHook{}
	p := New(core.Capabilities{}, WithTelemetry(hook))

	p.AddFragment(core.Fragment{Index: 0, Name: "f", ArgsChunk: `{"a":1}`})
	p.AddFragment(core.Fragment{Index: 0}) // keep-alive: no event
	p.Process()

	if len(hook.fragments) != 1 {
		t.Fatalf("fragment events = %d, want 1", len(hook.fragments))
	}
	if hook.fragments[0].ArgsLen != len(`{"a":1}`) {
		t.Errorf("ArgsLen = %d, want %d", hook.fragments[0].ArgsLen, len(`{"a":1}`))
	}
	if len(hook.turns) != 1 || hook.turns[0].Accepted != 1 || hook.turns[0].Interrupted {
		t.Errorf("turn events = %+v, want one non-interrupted accept", hook.turns)
	}
}

func TestPipelineDoubleEscapedProvider(t *testing.T) {
	// Providers that serialize arguments twice still validate.
	p := New(core.Capabilities{})
	p.AddFragment(core.Fragment{Index: 0, Name: "search", ArgsChunk: `"{\"query\":`})
	p.AddFragment(core.Fragment{Index: 0, ArgsChunk: `\"go\"}"`})

	result := p.Process()
	if len(result.Accepted) != 1 {
		t.Fatalf("Rejected = %+v, want acceptance", result.Rejected)
	}
	if result.Accepted[0].Parameters["query"] != "go" {
		t.Errorf("Parameters = %v, want query=go", result.Accepted[0].Parameters)
	}
	if result.Accepted[0].Note == "" {
		t.Error("Note is empty, want double-escape recovery note")
	}
}
