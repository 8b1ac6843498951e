package project

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// maxFileSize caps how large a file the loader will pull into a snapshot.
const maxFileSize = 4 << 20

// LoadDir reads a directory tree into a snapshot, skipping hidden entries,
// dependency directories, and binary files. A PROJECT.toml at the root, if
// present, overrides detected file types.
//
// The loader is a CLI collaborator; the engine itself never touches the
// filesystem.
func LoadDir(dir string) (Snapshot, error) {
	snap := Snapshot{}

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path != dir && (strings.HasPrefix(name, ".") || name == "node_modules" || name == "vendor") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") || name == DeclarationFile {
			return nil
		}

		info, err := d.Info()
		if err != nil || info.Size() > maxFileSize {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		if !utf8.Valid(data) {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		snap[rel] = NewFile(rel, string(data))
		return nil
	})
	if err != nil {
		return nil, err
	}

	declPath := filepath.Join(dir, DeclarationFile)
	if _, err := os.Stat(declPath); err == nil {
		decls, err := ParseDeclarationsFile(declPath)
		if err != nil {
			return nil, err
		}
		ApplyDeclarations(snap, decls)
	}

	return snap, nil
}

// WriteFiles writes the named snapshot entries back under dir, creating
// parent directories as needed.
func WriteFiles(dir string, snap Snapshot, names []string) error {
	for _, name := range names {
		f, ok := snap[name]
		if !ok {
			continue
		}
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(f.Content), 0o644); err != nil {
			return err
		}
	}
	return nil
}
