// Package strategy implements the interchangeable edit strategies: semantic
// (tree-sitter backed), text-patch, and line-range, plus the selector that
// picks the most specific capable strategy for a file edit.
package strategy

import "ced/internal/edit"

// Strategy turns one file edit plus current content into new content.
// Implementations are stateless per call; a failed application returns the
// original content untouched to the caller via the error path.
type Strategy interface {
	// Name is the stable strategy identifier used in logs and summaries.
	Name() string

	// CanHandle reports whether the strategy understands files with the
	// given extension (lowercase, no dot).
	CanHandle(ext string) bool

	// Apply produces the complete replacement content for the file, or an
	// error that aborts the whole FileEdit.
	Apply(content string, fe edit.FileEdit) (string, error)
}
