package profiles

import (
	"strings"
	"sync"
	"testing"

	"github.com/petal-labs/calla/core"
)

func TestBuiltinProfiles(t *testing.T) {
	for _, name := range []string{"strict", "lenient", "prose-lists"} {
		if _, ok := Get(name); !ok {
			t.Errorf("Get(%q) ok = false, want registered", name)
		}
	}

	strict, _ := Get("strict")
	if strict.Capabilities.AllowTextFallback || strict.Capabilities.LenientJSON {
		t.Errorf("strict capabilities = %+v, want all off", strict.Capabilities)
	}

	prose, _ := Get("prose-lists")
	if !prose.Capabilities.AllowTextFallback {
		t.Error("prose-lists AllowTextFallback = false, want true")
	}
	if hint, ok := prose.Hint("todo_write"); !ok || hint.Kind != core.SchemaList {
		t.Errorf("prose-lists Hint(todo_write) = %+v, %v", hint, ok)
	}
}

func TestResolveUnknown(t *testing.T) {
	_, err := Resolve("no-such-profile")
	if err == nil {
		t.Fatal("Resolve() error = nil, want error")
	}
	if !strings.Contains(err.Error(), "available:") {
		t.Errorf("error = %v, want available profiles listed", err)
	}
}

func TestRegisterOverwrites(t *testing.T) {
	Register("test-overwrite", Profile{})
	Register("test-overwrite", Profile{
		Capabilities: core.Capabilities{LenientJSON: true},
	})

	p, ok := Get("test-overwrite")
	if !ok || !p.Capabilities.LenientJSON {
		t.Errorf("Get() = %+v, %v, want overwritten profile", p, ok)
	}
}

func TestListSorted(t *testing.T) {
	names := List()
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("List() = %v, want sorted", names)
		}
	}
}

func TestRegistryConcurrentAccess(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			Register("concurrent", Profile{})
		}()
		go func() {
			defer wg.Done()
			Get("concurrent")
			List()
		}()
	}
	wg.Wait()
}
