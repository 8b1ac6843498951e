package engine

import (
	"fmt"
	"sort"
	"strings"

	"ced/internal/edit"
)

// FileSummary counts the operations applied to one file in a batch.
type FileSummary struct {
	Operations int `json:"operations"`
	Fallbacks  int `json:"fallbacks"`
}

// Summary is the human-readable per-batch accounting: file to operation
// counts, used for logging and the history ledger.
type Summary map[string]FileSummary

func (s Summary) record(fe edit.FileEdit, usedFallback bool) {
	fs := s[fe.TargetFile]
	if usedFallback {
		fs.Operations += len(fe.FallbackLines)
		fs.Fallbacks++
	} else {
		fs.Operations += opCount(fe)
	}
	s[fe.TargetFile] = fs
}

func opCount(fe edit.FileEdit) int {
	switch fe.Kind {
	case edit.KindSemantic:
		return len(fe.Transformations)
	case edit.KindTextPatch:
		return len(fe.Patches)
	case edit.KindLineRange:
		return len(fe.LineOps)
	default:
		return 0
	}
}

// String renders the summary one file per line, sorted by file name.
func (s Summary) String() string {
	if len(s) == 0 {
		return "no changes"
	}

	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for i, name := range names {
		if i > 0 {
			b.WriteByte('\n')
		}
		fs := s[name]
		fmt.Fprintf(&b, "%s: %d operation(s)", name, fs.Operations)
		if fs.Fallbacks > 0 {
			fmt.Fprintf(&b, " (%d via line-range fallback)", fs.Fallbacks)
		}
	}
	return b.String()
}
