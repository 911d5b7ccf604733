// Package profiles resolves named capability profiles for tool-call assembly.
//
// A profile is resolved once at session setup, from provider registration or
// configuration, and handed to the pipeline as a plain capability descriptor.
// This replaces two patterns this package exists to avoid: process-wide
// "detection complete" flags shared between sessions, and ever-growing
// provider-name conditionals (`if provider == "..."`) inside the parsing path.
package profiles

import (
	"fmt"
	"sort"
	"sync"

	"github.com/petal-labs/calla/core"
)

// Profile bundles the capability descriptor and per-tool schema hints for one
// class of provider.
type Profile struct {
	// Capabilities is consumed by the pipeline's repair chain.
	Capabilities core.Capabilities

	// Hints maps normalized tool names to schema hints. Tools absent from the
	// map are treated as structured.
	Hints map[string]core.SchemaHint
}

// Hint implements the pipeline's HintSource.
func (p Profile) Hint(name string) (core.SchemaHint, bool) {
	hint, ok := p.Hints[name]
	return hint, ok
}

// registry holds registered profiles.
var (
	registryMu sync.RWMutex
	registry   = make(map[string]Profile)
)

// Register adds a profile to the registry. If a profile with the same name is
// already registered, it is overwritten.
func Register(name string, p Profile) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = p
}

// Get retrieves a profile by name.
func Get(name string) (Profile, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	p, ok := registry[name]
	return p, ok
}

// Resolve retrieves a profile by name, or an error naming the available
// profiles when it is not registered.
func Resolve(name string) (Profile, error) {
	p, ok := Get(name)
	if !ok {
		return Profile{}, fmt.Errorf("unknown profile: %s (available: %v)", name, List())
	}
	return p, nil
}

// List returns the names of all registered profiles in sorted order.
func List() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Built-in profiles. They are named for the wire behavior they describe, not
// for any particular provider brand.
func init() {
	// Well-formed JSON split across chunks, full name resent on every delta.
	Register("strict", Profile{
		Capabilities: core.Capabilities{NamePolicy: core.NameLastWins},
	})

	// Name fragments accumulate like argument chunks and mechanically damaged
	// JSON gets a repair pass.
	Register("lenient", Profile{
		Capabilities: core.Capabilities{
			LenientJSON: true,
			NamePolicy:  core.NameConcat,
		},
	})

	// Everything lenient allows, plus prose recovery for list-style tools.
	Register("prose-lists", Profile{
		Capabilities: core.Capabilities{
			AllowTextFallback: true,
			LenientJSON:       true,
			NamePolicy:        core.NameConcat,
		},
		Hints: map[string]core.SchemaHint{
			"todo_write": core.DefaultListHint(),
		},
	})
}
