package strategy

import (
	"testing"

	"ced/internal/edit"
)

func defaultSelector() *Selector {
	return NewSelector(NewSemantic(nil), NewTextPatch(), NewLineRange())
}

func TestSelector_Select(t *testing.T) {
	sel := defaultSelector()

	tests := []struct {
		name string
		kind edit.EditKind
		ext  string
		want string
	}{
		{"semantic on js", edit.KindSemantic, "js", "semantic"},
		{"semantic on tsx", edit.KindSemantic, "tsx", "semantic"},
		{"textPatch on html", edit.KindTextPatch, "html", "text-patch"},
		{"lineRange on js", edit.KindLineRange, "js", "line-range"},
		{"semantic on html falls through to text-patch", edit.KindSemantic, "html", "text-patch"},
		{"semantic on unknown ext falls to line-range", edit.KindSemantic, "py", "line-range"},
		{"textPatch on js falls to semantic first", edit.KindTextPatch, "js", "semantic"},
		{"textPatch on unknown ext falls to line-range", edit.KindTextPatch, "bin", "line-range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := sel.Select(tt.kind, tt.ext)
			if err != nil {
				t.Fatalf("Select() error = %v", err)
			}
			if got.Name() != tt.want {
				t.Errorf("Select(%q, %q) = %s, want %s", tt.kind, tt.ext, got.Name(), tt.want)
			}
		})
	}
}

func TestSelector_UnknownKind(t *testing.T) {
	sel := defaultSelector()
	_, err := sel.Select(edit.EditKind("mystery"), "js")
	if !edit.IsCode(err, edit.UnknownEditKind) {
		t.Errorf("error code = %v, want %v", edit.CodeOf(err), edit.UnknownEditKind)
	}
}

// The strategy order is per-instance configuration, not a hidden
// singleton: a custom order changes selection.
func TestSelector_CustomOrder(t *testing.T) {
	sel := NewSelector(NewLineRange())

	got, err := sel.Select(edit.KindSemantic, "js")
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if got.Name() != "line-range" {
		t.Errorf("Select() = %s, want line-range when it is the only strategy", got.Name())
	}
}
