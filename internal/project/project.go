// Package project models the in-memory project snapshot the engine operates
// on: a mapping from file name to content plus a declared file type.
package project

import (
	"path/filepath"
	"strings"
)

// FileType classifies a file for validation dispatch.
type FileType string

const (
	// TypeScript marks parseable script sources (js/ts family).
	TypeScript FileType = "script"
	// TypeMarkup marks tag-structured documents (html/xml).
	TypeMarkup FileType = "markup"
	// TypeStyle marks brace-structured stylesheets (css family).
	TypeStyle FileType = "style"
	// TypeData marks structured data and prose; no syntax checks apply.
	TypeData FileType = "data"
	// TypeOther marks everything else; no syntax checks apply.
	TypeOther FileType = "other"
)

// File is one snapshot entry.
type File struct {
	Content string   `json:"content"`
	Type    FileType `json:"declaredType"`
}

// Snapshot maps file names to their current content and declared type.
type Snapshot map[string]File

// Clone returns an independent copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	out := make(Snapshot, len(s))
	for name, f := range s {
		out[name] = f
	}
	return out
}

// Names returns the file names in the snapshot, unordered.
func (s Snapshot) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	return names
}

// DetectType classifies a file by extension. PROJECT.toml declarations can
// override the result (see ApplyDeclarations).
func DetectType(name string) FileType {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	switch ext {
	case "js", "jsx", "ts", "tsx", "mjs", "cjs":
		return TypeScript
	case "html", "htm", "xml", "svg":
		return TypeMarkup
	case "css", "scss", "less":
		return TypeStyle
	case "json", "yaml", "yml", "toml", "md", "txt":
		return TypeData
	default:
		return TypeOther
	}
}

// NewFile builds a snapshot entry with the detected type.
func NewFile(name, content string) File {
	return File{Content: content, Type: DetectType(name)}
}
