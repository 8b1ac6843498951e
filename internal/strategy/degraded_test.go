package strategy

import (
	"strings"
	"testing"

	"ced/internal/edit"
)

// brokenTail makes any source unparseable without disturbing its blocks.
const brokenTail = "\nconst dangling = ;\n"

func applyDegradedEdit(t *testing.T, content string, trs ...edit.Transformation) (string, error) {
	t.Helper()
	s := NewSemantic(nil)
	return s.Apply(content, edit.FileEdit{
		TargetFile:      "broken.js",
		Kind:            edit.KindSemantic,
		Transformations: trs,
	})
}

func TestDegraded_LiteralReplace(t *testing.T) {
	src := "let speed = 5;" + brokenTail
	got, err := applyDegradedEdit(t, src,
		edit.Transformation{Action: edit.ActionReplace, Target: "speed = 5", Value: "speed = 9"})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if !strings.Contains(got, "speed = 9") {
		t.Errorf("output = %q, want literal replacement applied", got)
	}
}

func TestDegraded_FunctionBlockReplace(t *testing.T) {
	src := `function move() {
  x += 1;
}` + brokenTail

	// The target is not literally present, so the balanced-brace block
	// matcher takes over.
	got, err := applyDegradedEdit(t, src, edit.Transformation{
		Action: edit.ActionModify,
		Target: "function move(dx)",
		Code:   "function move(dx) {\n  x += dx;\n}",
	})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if !strings.Contains(got, "x += dx;") {
		t.Errorf("output = %q, want function block replaced", got)
	}
	if strings.Contains(got, "x += 1;") {
		t.Errorf("output = %q, old body still present", got)
	}
}

// One correct function followed by duplicated unparseable trailing copies:
// after a delete targeting the duplicate block, exactly one marker remains
// and brace counts balance.
func TestDegraded_StripDuplicateBlocks(t *testing.T) {
	src := `function update() {
  score += 1;
}
function update() {
  score += 1;
}
function update() {
  score += 1;
`

	got, err := applyDegradedEdit(t, src,
		edit.Transformation{Action: edit.ActionDelete, Target: "function update"})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	if n := strings.Count(got, "score += 1;"); n != 1 {
		t.Errorf("marker count = %d, want exactly 1\noutput:\n%s", n, got)
	}
	if open, closed := strings.Count(got, "{"), strings.Count(got, "}"); open != closed {
		t.Errorf("braces unbalanced: %d open, %d close\noutput:\n%s", open, closed, got)
	}
}

func TestDegraded_DeleteLines(t *testing.T) {
	src := "keep();\ndropMe();\nkeep();" + brokenTail
	got, err := applyDegradedEdit(t, src,
		edit.Transformation{Action: edit.ActionDelete, Target: "dropMe"})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if strings.Contains(got, "dropMe") {
		t.Errorf("output = %q, target lines not dropped", got)
	}
}

func TestDegraded_InsertAroundAnchor(t *testing.T) {
	src := "first();\nsecond();" + brokenTail
	got, err := applyDegradedEdit(t, src,
		edit.Transformation{Action: edit.ActionInsertAfter, Target: "first()", Code: "between();"})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if !strings.HasPrefix(got, "first();\nbetween();\nsecond();") {
		t.Errorf("output = %q, want code after anchor line", got)
	}
}

func TestDegraded_InsertInBodyUnsupported(t *testing.T) {
	src := "function f() {}" + brokenTail
	_, err := applyDegradedEdit(t, src,
		edit.Transformation{Action: edit.ActionInsertInBody, Target: "function f", Code: "x();"})
	if !edit.IsCode(err, edit.UnsupportedInDegradedMode) {
		t.Errorf("error code = %v, want %v", edit.CodeOf(err), edit.UnsupportedInDegradedMode)
	}
}

func TestDegraded_TargetNotFound(t *testing.T) {
	src := "let a = 1;" + brokenTail
	_, err := applyDegradedEdit(t, src,
		edit.Transformation{Action: edit.ActionReplace, Target: "nothing here", Value: "x"})
	if !edit.IsCode(err, edit.TargetNotFound) {
		t.Errorf("error code = %v, want %v", edit.CodeOf(err), edit.TargetNotFound)
	}
}

func TestFunctionNameFromTarget(t *testing.T) {
	tests := []struct {
		target string
		want   string
	}{
		{"function update", "update"},
		{"function update() {", "update"},
		{"update(", "update"},
		{"update(dt)", "update"},
		{"update", "update"},
		{"not a function target!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			if got := functionNameFromTarget(tt.target); got != tt.want {
				t.Errorf("functionNameFromTarget(%q) = %q, want %q", tt.target, got, tt.want)
			}
		})
	}
}
