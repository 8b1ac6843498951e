package main

import (
	"os"
	"path/filepath"
	"testing"

	"ced/internal/edit"
)

func writeBatchFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDecodeBatch_JSON(t *testing.T) {
	path := writeBatchFile(t, "edits.json", `{
  "edits": [
    {
      "targetFile": "game.js",
      "editKind": "semantic",
      "transformations": [
        {"action": "modify", "target": "config.speed", "value": "10"}
      ]
    },
    {
      "targetFile": "index.html",
      "editKind": "textPatch",
      "patches": [{"find": "old", "replace": "new"}],
      "fallbackLines": [{"kind": "replace", "startLine": 1, "endLine": 1, "content": "x"}]
    }
  ]
}`)

	batch, err := decodeBatch(path)
	if err != nil {
		t.Fatalf("decodeBatch() error = %v", err)
	}
	if len(batch.Edits) != 2 {
		t.Fatalf("len(Edits) = %d, want 2", len(batch.Edits))
	}
	if batch.Edits[0].Kind != edit.KindSemantic || batch.Edits[0].Transformations[0].Target != "config.speed" {
		t.Errorf("Edits[0] = %+v", batch.Edits[0])
	}
	if len(batch.Edits[1].FallbackLines) != 1 {
		t.Errorf("Edits[1].FallbackLines = %+v", batch.Edits[1].FallbackLines)
	}
}

func TestDecodeBatch_YAML(t *testing.T) {
	path := writeBatchFile(t, "edits.yaml", `edits:
  - targetFile: notes.txt
    editKind: lineRange
    lineOperations:
      - kind: insert
        afterLine: 0
        content: header
`)

	batch, err := decodeBatch(path)
	if err != nil {
		t.Fatalf("decodeBatch() error = %v", err)
	}
	if len(batch.Edits) != 1 {
		t.Fatalf("len(Edits) = %d, want 1", len(batch.Edits))
	}
	op := batch.Edits[0].LineOps[0]
	if op.Kind != edit.LineInsert || op.AfterLine != 0 || op.Content != "header" {
		t.Errorf("LineOps[0] = %+v", op)
	}
}

func TestDecodeBatch_ShapeErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing targetFile", `{"edits": [{"editKind": "textPatch", "patches": [{"find": "a", "replace": "b"}]}]}`},
		{"unknown kind", `{"edits": [{"targetFile": "a.js", "editKind": "mystery"}]}`},
		{"semantic without transformations", `{"edits": [{"targetFile": "a.js", "editKind": "semantic"}]}`},
		{"textPatch without patches", `{"edits": [{"targetFile": "a.html", "editKind": "textPatch"}]}`},
		{"lineRange without operations", `{"edits": [{"targetFile": "a.txt", "editKind": "lineRange"}]}`},
		{"not json", `{broken`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeBatchFile(t, "edits.json", tt.content)
			if _, err := decodeBatch(path); err == nil {
				t.Error("decodeBatch() error = nil, want error")
			}
		})
	}
}
