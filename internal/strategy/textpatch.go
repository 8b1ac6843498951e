package strategy

import (
	"strings"

	"ced/internal/edit"
)

// textPatchExtensions is the set of file types the text-patch strategy is
// the most specific match for.
var textPatchExtensions = map[string]bool{
	"html": true, "css": true, "scss": true, "less": true, "xml": true,
	"json": true, "yaml": true, "yml": true, "md": true, "txt": true,
}

// TextPatch applies ordered literal find/replace patches. Each patch
// replaces only the first occurrence of its find string in the current
// content, so unrelated repeats are never touched.
type TextPatch struct{}

// NewTextPatch creates the text-patch strategy.
func NewTextPatch() *TextPatch {
	return &TextPatch{}
}

// Name implements Strategy.
func (s *TextPatch) Name() string { return "text-patch" }

// CanHandle implements Strategy.
func (s *TextPatch) CanHandle(ext string) bool {
	return textPatchExtensions[ext]
}

// Apply implements Strategy. Patches apply strictly in order against the
// content produced by the previous patch. Any missing find string fails the
// whole FileEdit; no partially-patched content is ever returned.
func (s *TextPatch) Apply(content string, fe edit.FileEdit) (string, error) {
	return s.ApplyPatches(content, fe.Patches)
}

// ApplyPatches applies the patches to content.
func (s *TextPatch) ApplyPatches(content string, patches []edit.Patch) (string, error) {
	current := content
	for i, p := range patches {
		if p.Find == "" {
			return "", edit.Errorf(edit.EmptyFind, "patch %d has an empty find string", i+1)
		}
		idx := strings.Index(current, p.Find)
		if idx < 0 {
			return "", edit.Errorf(edit.TargetNotFound,
				"patch %d: find string %q not present", i+1, truncate(p.Find, 80)).WithTarget(p.Find)
		}
		current = current[:idx] + p.Replace + current[idx+len(p.Find):]
	}
	return current, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
