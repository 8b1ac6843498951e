package strategy

import (
	"sort"
	"strings"

	"ced/internal/edit"
)

// LineRange applies explicit 1-based line operations to raw text. It is the
// universal fallback: it handles every extension.
type LineRange struct{}

// NewLineRange creates the line-range strategy.
func NewLineRange() *LineRange {
	return &LineRange{}
}

// Name implements Strategy.
func (s *LineRange) Name() string { return "line-range" }

// CanHandle implements Strategy. Line operations work on any text.
func (s *LineRange) CanHandle(ext string) bool { return true }

// Apply implements Strategy.
func (s *LineRange) Apply(content string, fe edit.FileEdit) (string, error) {
	return s.ApplyOps(content, fe.LineOps)
}

// ApplyOps applies the operations in descending start/afterLine order so
// each splice targets indices unaffected by the splices still pending.
//
// The sort is stable, so operations with equal anchor lines keep their
// array order and are applied first-to-last: among equal keys the last
// array entry's splice lands last and its content wins.
//
// Line numbers reference pre-edit state; re-applying the same batch to
// already-mutated content is deliberately not idempotent.
func (s *LineRange) ApplyOps(content string, ops []edit.LineOperation) (string, error) {
	lines := strings.Split(content, "\n")

	ordered := make([]edit.LineOperation, len(ops))
	copy(ordered, ops)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].SortKey() > ordered[j].SortKey()
	})

	var err error
	for _, op := range ordered {
		lines, err = applyLineOp(lines, op)
		if err != nil {
			return "", err
		}
	}

	return strings.Join(lines, "\n"), nil
}

func applyLineOp(lines []string, op edit.LineOperation) ([]string, error) {
	switch op.Kind {
	case edit.LineReplace:
		if err := checkRange(op, len(lines)); err != nil {
			return nil, err
		}
		return splice(lines, op.StartLine-1, op.EndLine, strings.Split(op.Content, "\n")), nil

	case edit.LineInsert:
		if op.AfterLine < 0 || op.AfterLine > len(lines) {
			return nil, edit.Errorf(edit.InvalidRange,
				"insert afterLine %d out of bounds (file has %d lines)", op.AfterLine, len(lines))
		}
		return splice(lines, op.AfterLine, op.AfterLine, strings.Split(op.Content, "\n")), nil

	case edit.LineDelete:
		if err := checkRange(op, len(lines)); err != nil {
			return nil, err
		}
		return splice(lines, op.StartLine-1, op.EndLine, nil), nil

	default:
		return nil, edit.Errorf(edit.InvalidRange, "unknown line operation kind %q", op.Kind)
	}
}

// checkRange enforces 1 <= startLine <= endLine <= lineCount. Violations
// are reported, never clamped, so the caller can decide on fallback.
func checkRange(op edit.LineOperation, lineCount int) error {
	if op.StartLine < 1 || op.EndLine < op.StartLine || op.EndLine > lineCount {
		return edit.Errorf(edit.InvalidRange,
			"%s lines %d-%d out of bounds (file has %d lines)", op.Kind, op.StartLine, op.EndLine, lineCount)
	}
	return nil
}

// splice replaces lines[from:to] with repl and returns a fresh slice.
func splice(lines []string, from, to int, repl []string) []string {
	out := make([]string, 0, len(lines)-(to-from)+len(repl))
	out = append(out, lines[:from]...)
	out = append(out, repl...)
	out = append(out, lines[to:]...)
	return out
}
