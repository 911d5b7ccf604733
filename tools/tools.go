// Package tools maps tool names to argument-schema hints and decodes accepted
// call parameters into typed structs.
package tools

import (
	"errors"
	"strings"
	"sync"

	"github.com/petal-labs/calla/core"
)

// ErrDuplicateHint is returned when registering a hint for a name that
// already has one.
var ErrDuplicateHint = errors.New("hint already registered")

// HintRegistry maps normalized tool names to schema hints. It satisfies the
// pipeline's HintSource and is safe for concurrent use.
type HintRegistry struct {
	mu    sync.RWMutex
	hints map[string]core.SchemaHint
}

// NewHintRegistry creates an empty hint registry.
func NewHintRegistry() *HintRegistry {
	return &HintRegistry{
		hints: make(map[string]core.SchemaHint),
	}
}

// Register adds a hint for the given tool name. Names are matched after
// trimming and lower-casing, the same normalization the call processor
// applies. Returns ErrDuplicateHint if the name already has a hint.
func (r *HintRegistry) Register(name string, hint core.SchemaHint) error {
	key := normalize(name)
	if key == "" {
		return errors.New("tool name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.hints[key]; exists {
		return ErrDuplicateHint
	}
	r.hints[key] = hint
	return nil
}

// Hint retrieves the hint for a tool name.
func (r *HintRegistry) Hint(name string) (core.SchemaHint, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	hint, ok := r.hints[normalize(name)]
	return hint, ok
}

// Names returns the registered tool names, unordered.
func (r *HintRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.hints))
	for name := range r.hints {
		names = append(names, name)
	}
	return names
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
