package pipeline

import (
	"fmt"
	"sort"
	"strings"

	"github.com/petal-labs/calla/core"
)

// Collector accumulates per-call-index fragments for the duration of one
// streaming turn. Exactly one candidate exists per distinct index; it is
// created on the first fragment seen for that index and consumed when the
// turn is drained.
//
// Collector is not safe for concurrent use. Each session owns its own.
type Collector struct {
	policy core.NamePolicy
	calls  map[int][]core.Fragment
	seq    int
}

// NewCollector creates an empty collector using the given name policy.
func NewCollector(policy core.NamePolicy) *Collector {
	return &Collector{
		policy: policy,
		calls:  make(map[int][]core.Fragment),
	}
}

// AddFragment appends one delta in constant time. A fragment carrying no
// payload is a keep-alive and is dropped without error. A negative index is
// rejected with core.ErrNegativeIndex.
func (c *Collector) AddFragment(f core.Fragment) error {
	if f.Index < 0 {
		return fmt.Errorf("%w: got %d", core.ErrNegativeIndex, f.Index)
	}
	if f.Empty() {
		return nil
	}

	c.seq++
	f.Seq = c.seq
	c.calls[f.Index] = append(c.calls[f.Index], f)
	return nil
}

// Len returns the number of candidates accumulated so far.
func (c *Collector) Len() int {
	return len(c.calls)
}

// lastSeq returns the most recently assigned arrival ordinal.
func (c *Collector) lastSeq() int {
	return c.seq
}

// CompleteCalls assembles and returns every candidate accumulated so far,
// sorted by index. The collector state is left untouched; callers that are
// done with the turn must Reset.
func (c *Collector) CompleteCalls() []core.Candidate {
	if len(c.calls) == 0 {
		return nil
	}

	indexes := make([]int, 0, len(c.calls))
	for idx := range c.calls {
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)

	candidates := make([]core.Candidate, 0, len(indexes))
	for _, idx := range indexes {
		candidates = append(candidates, c.assemble(idx, c.calls[idx]))
	}
	return candidates
}

// assemble reconstructs one candidate from its fragments in arrival order.
// Chunk boundaries are an artifact of the transport: however the argument
// text was split, the concatenation equals the original.
func (c *Collector) assemble(index int, frags []core.Fragment) core.Candidate {
	ordered := make([]core.Fragment, len(frags))
	copy(ordered, frags)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Seq < ordered[j].Seq
	})

	var args strings.Builder
	var name strings.Builder
	var lastName, id string
	for _, f := range ordered {
		if f.ArgsChunk != "" {
			args.WriteString(f.ArgsChunk)
		}
		if f.Name != "" {
			name.WriteString(f.Name)
			lastName = f.Name
		}
		if f.ID != "" {
			id = f.ID
		}
	}

	cand := core.Candidate{
		Index:     index,
		ID:        id,
		RawArgs:   args.String(),
		Fragments: ordered,
	}
	if c.policy == core.NameLastWins {
		cand.Name = lastName
	} else {
		cand.Name = name.String()
	}
	return cand
}

// Reset clears all candidate state. Safe to call when no turn is in progress.
func (c *Collector) Reset() {
	c.calls = make(map[int][]core.Fragment)
	c.seq = 0
}
