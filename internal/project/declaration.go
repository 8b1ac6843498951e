package project

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// DeclarationFile is the default filename for project type declarations.
const DeclarationFile = "PROJECT.toml"

// FileDeclaration overrides the detected type for one file.
type FileDeclaration struct {
	// Path is the snapshot-relative file name.
	Path string `toml:"path"`

	// Type is the declared file type: script, markup, style, data or other.
	Type string `toml:"type"`
}

// DeclarationsFile is the root structure of PROJECT.toml.
type DeclarationsFile struct {
	// Version is the schema version.
	Version int `toml:"version"`

	// Files are the per-file type overrides.
	Files []FileDeclaration `toml:"file"`
}

// ParseDeclarationsFile parses a PROJECT.toml file from the given path.
func ParseDeclarationsFile(filePath string) (*DeclarationsFile, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filePath, err)
	}

	var decls DeclarationsFile
	if err := toml.Unmarshal(data, &decls); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filePath, err)
	}

	for i, f := range decls.Files {
		if f.Path == "" {
			return nil, fmt.Errorf("%s: file entry %d is missing a path", filePath, i+1)
		}
		switch FileType(f.Type) {
		case TypeScript, TypeMarkup, TypeStyle, TypeData, TypeOther:
		default:
			return nil, fmt.Errorf("%s: file %q declares unknown type %q", filePath, f.Path, f.Type)
		}
	}
	return &decls, nil
}

// ApplyDeclarations overrides snapshot entry types with declared ones.
// Declarations for files absent from the snapshot are ignored.
func ApplyDeclarations(snap Snapshot, decls *DeclarationsFile) {
	if decls == nil {
		return
	}
	for _, d := range decls.Files {
		if f, ok := snap[d.Path]; ok {
			f.Type = FileType(d.Type)
			snap[d.Path] = f
		}
	}
}
