package core

import "testing"

func TestFragmentEmpty(t *testing.T) {
	tests := []struct {
		name string
		frag Fragment
		want bool
	}{
		{"keep-alive", Fragment{Index: 0}, true},
		{"name only", Fragment{Index: 0, Name: "todo_write"}, false},
		{"args only", Fragment{Index: 0, ArgsChunk: "{"}, false},
		{"id only", Fragment{Index: 0, ID: "call_1"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.frag.Empty(); got != tt.want {
				t.Errorf("Empty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNamePolicyString(t *testing.T) {
	if got := NameConcat.String(); got != "concat" {
		t.Errorf("NameConcat.String() = %q, want %q", got, "concat")
	}
	if got := NameLastWins.String(); got != "last-wins" {
		t.Errorf("NameLastWins.String() = %q, want %q", got, "last-wins")
	}
}

func TestDefaultListHint(t *testing.T) {
	hint := DefaultListHint()
	if hint.Kind != SchemaList {
		t.Errorf("Kind = %v, want SchemaList", hint.Kind)
	}
	if hint.ListField != "items" || hint.ItemField != "text" {
		t.Errorf("fields = %q/%q, want items/text", hint.ListField, hint.ItemField)
	}
}
