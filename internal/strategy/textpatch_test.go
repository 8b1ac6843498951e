package strategy

import (
	"strings"
	"testing"

	"ced/internal/edit"
)

func TestTextPatch_AppliesInOrder(t *testing.T) {
	s := NewTextPatch()
	content := `<div class="container"><p>hello</p></div>`

	patches := []edit.Patch{
		{Find: `<div class="container">`, Replace: `<div class="wrapper">`},
		{Find: `hello`, Replace: `world`},
	}

	got, err := s.ApplyPatches(content, patches)
	if err != nil {
		t.Fatalf("ApplyPatches() error = %v", err)
	}
	if !strings.Contains(got, "wrapper") {
		t.Error("output missing replacement \"wrapper\"")
	}
	if strings.Contains(got, "container") {
		t.Error("output still contains \"container\"")
	}
	if !strings.Contains(got, "world") {
		t.Error("output missing replacement \"world\"")
	}
}

func TestTextPatch_FirstOccurrenceOnly(t *testing.T) {
	s := NewTextPatch()
	content := "item\nitem\nitem"

	got, err := s.ApplyPatches(content, []edit.Patch{{Find: "item", Replace: "entry"}})
	if err != nil {
		t.Fatalf("ApplyPatches() error = %v", err)
	}
	if got != "entry\nitem\nitem" {
		t.Errorf("ApplyPatches() = %q, want only the first occurrence replaced", got)
	}
}

// A later patch observes earlier patches' output: a find string fully
// replaced must not match again unless reintroduced.
func TestTextPatch_SequentialObservation(t *testing.T) {
	s := NewTextPatch()

	got, err := s.ApplyPatches("alpha", []edit.Patch{
		{Find: "alpha", Replace: "beta"},
		{Find: "beta", Replace: "gamma"},
	})
	if err != nil {
		t.Fatalf("ApplyPatches() error = %v", err)
	}
	if got != "gamma" {
		t.Errorf("ApplyPatches() = %q, want %q", got, "gamma")
	}

	// The first find no longer exists once replaced.
	_, err = s.ApplyPatches("alpha", []edit.Patch{
		{Find: "alpha", Replace: "beta"},
		{Find: "alpha", Replace: "gamma"},
	})
	if !edit.IsCode(err, edit.TargetNotFound) {
		t.Errorf("error code = %v, want %v", edit.CodeOf(err), edit.TargetNotFound)
	}
}

func TestTextPatch_MissingFindFailsAtomically(t *testing.T) {
	s := NewTextPatch()
	content := "one two three"

	_, err := s.ApplyPatches(content, []edit.Patch{
		{Find: "one", Replace: "1"},
		{Find: "absent", Replace: "x"},
	})
	if err == nil {
		t.Fatal("ApplyPatches() expected error for absent find")
	}
	if !edit.IsCode(err, edit.TargetNotFound) {
		t.Errorf("error code = %v, want %v", edit.CodeOf(err), edit.TargetNotFound)
	}
	// The caller keeps the original; no partially-patched content escapes
	// because the strategy returns "" with the error.
}

func TestTextPatch_EmptyFindRejected(t *testing.T) {
	s := NewTextPatch()

	_, err := s.ApplyPatches("content", []edit.Patch{{Find: "", Replace: "x"}})
	if !edit.IsCode(err, edit.EmptyFind) {
		t.Errorf("error code = %v, want %v", edit.CodeOf(err), edit.EmptyFind)
	}
}

func TestTextPatch_CanHandle(t *testing.T) {
	s := NewTextPatch()
	for _, ext := range []string{"html", "css", "scss", "less", "xml", "json", "yaml", "yml", "md", "txt"} {
		if !s.CanHandle(ext) {
			t.Errorf("CanHandle(%q) = false, want true", ext)
		}
	}
	for _, ext := range []string{"js", "ts", "go", ""} {
		if s.CanHandle(ext) {
			t.Errorf("CanHandle(%q) = true, want false", ext)
		}
	}
}
