package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"ced/internal/edit"
)

// decodeBatch reads an edit batch from a JSON or YAML file and
// shape-validates it before it reaches the engine.
func decodeBatch(path string) (edit.Batch, error) {
	var batch edit.Batch

	data, err := os.ReadFile(path)
	if err != nil {
		return batch, fmt.Errorf("failed to read batch file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &batch)
	default:
		err = json.Unmarshal(data, &batch)
	}
	if err != nil {
		return batch, fmt.Errorf("failed to decode batch file: %w", err)
	}

	if err := checkBatchShape(batch); err != nil {
		return batch, err
	}
	return batch, nil
}

// checkBatchShape rejects edits whose payload does not match their kind tag
// before application starts.
func checkBatchShape(batch edit.Batch) error {
	for i, fe := range batch.Edits {
		if fe.TargetFile == "" {
			return fmt.Errorf("edit %d is missing targetFile", i+1)
		}
		switch fe.Kind {
		case edit.KindSemantic:
			if len(fe.Transformations) == 0 {
				return fmt.Errorf("edit %d (%s): semantic edit has no transformations", i+1, fe.TargetFile)
			}
		case edit.KindTextPatch:
			if len(fe.Patches) == 0 {
				return fmt.Errorf("edit %d (%s): textPatch edit has no patches", i+1, fe.TargetFile)
			}
		case edit.KindLineRange:
			if len(fe.LineOps) == 0 {
				return fmt.Errorf("edit %d (%s): lineRange edit has no line operations", i+1, fe.TargetFile)
			}
		default:
			return fmt.Errorf("edit %d (%s): unknown editKind %q", i+1, fe.TargetFile, fe.Kind)
		}
	}
	return nil
}
