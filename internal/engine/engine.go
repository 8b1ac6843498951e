// Package engine sequences strategy selection, application, per-file
// fallback, and result aggregation for a batch of file edits. The engine is
// synchronous and stateless per call: it operates purely on its input
// snapshot and returns new strings without touching external storage.
package engine

import (
	"fmt"

	"ced/internal/edit"
	"ced/internal/logging"
	"ced/internal/project"
	"ced/internal/strategy"
	"ced/internal/validate"
)

// FileError records one failed file edit; failures are per-file, never
// batch-fatal.
type FileError struct {
	File string `json:"file"`
	Err  error  `json:"-"`
}

// Error implements the error interface.
func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.File, e.Err)
}

// Message returns the underlying error text for serialization.
func (e FileError) Message() string {
	return e.Err.Error()
}

// Result aggregates one batch application. Files is a complete snapshot:
// unaffected entries pass through unchanged.
type Result struct {
	Files   project.Snapshot
	Applied []string
	Errors  []FileError
	Summary Summary
}

// Engine applies edit batches and validates snapshots. It holds only
// immutable strategy configuration, so concurrent invocations need no
// locking.
type Engine struct {
	selector  *strategy.Selector
	fallback  *strategy.LineRange
	validator *validate.Validator
	logger    *logging.Logger
}

// New creates an engine with the default strategy order: semantic,
// text-patch, line-range. logger may be nil.
func New(logger *logging.Logger) *Engine {
	sel := strategy.NewSelector(
		strategy.NewSemantic(logger),
		strategy.NewTextPatch(),
		strategy.NewLineRange(),
	)
	return NewWithSelector(sel, logger)
}

// NewWithOrder creates an engine with a configured strategy priority order.
// Valid names are semantic, text-patch and line-range; unknown names are
// skipped, and an empty or fully-unknown order falls back to the default.
func NewWithOrder(order []string, logger *logging.Logger) *Engine {
	byName := map[string]strategy.Strategy{
		"semantic":   strategy.NewSemantic(logger),
		"text-patch": strategy.NewTextPatch(),
		"line-range": strategy.NewLineRange(),
	}

	var chosen []strategy.Strategy
	for _, name := range order {
		if st, ok := byName[name]; ok {
			chosen = append(chosen, st)
			delete(byName, name)
		}
	}
	if len(chosen) == 0 {
		return New(logger)
	}
	return NewWithSelector(strategy.NewSelector(chosen...), logger)
}

// NewWithSelector creates an engine over a custom selector; tests use this
// to substitute a different strategy order.
func NewWithSelector(sel *strategy.Selector, logger *logging.Logger) *Engine {
	return &Engine{
		selector:  sel,
		fallback:  strategy.NewLineRange(),
		validator: validate.New(),
		logger:    logger,
	}
}

// Apply applies the batch to the snapshot and returns the updated snapshot,
// the applied file names, and per-file errors. Edits apply sequentially: a
// later edit on the same file observes the prior edit's output.
func (e *Engine) Apply(snap project.Snapshot, batch edit.Batch) Result {
	files := snap.Clone()
	summary := Summary{}
	applied := make([]string, 0, len(batch.Edits))
	appliedSet := map[string]bool{}
	var errs []FileError

	for _, fe := range batch.Edits {
		current, ok := files[fe.TargetFile]
		if !ok {
			errs = append(errs, FileError{
				File: fe.TargetFile,
				Err:  edit.Errorf(edit.TargetNotFound, "file %q not present in snapshot", fe.TargetFile).WithFile(fe.TargetFile),
			})
			continue
		}

		out, usedFallback, err := e.applyOne(current.Content, fe)
		if err != nil {
			e.logger.Warn("file edit failed", map[string]any{
				"file":  fe.TargetFile,
				"error": err.Error(),
			})
			errs = append(errs, FileError{File: fe.TargetFile, Err: err})
			continue
		}

		files[fe.TargetFile] = project.File{Content: out, Type: current.Type}
		summary.record(fe, usedFallback)
		if !appliedSet[fe.TargetFile] {
			appliedSet[fe.TargetFile] = true
			applied = append(applied, fe.TargetFile)
		}
	}

	if len(batch.Edits) > 0 {
		e.logger.Info("batch applied", map[string]any{
			"edits":   len(batch.Edits),
			"applied": len(applied),
			"errors":  len(errs),
		})
	}

	return Result{Files: files, Applied: applied, Errors: errs, Summary: summary}
}

// applyOne runs the selected strategy; on failure it retries via the
// line-range strategy only when fallback line data was supplied.
func (e *Engine) applyOne(content string, fe edit.FileEdit) (string, bool, error) {
	st, err := e.selector.Select(fe.Kind, strategy.ExtOf(fe.TargetFile))
	if err != nil {
		return "", false, err
	}

	out, err := st.Apply(content, fe)
	if err == nil {
		return out, false, nil
	}

	if len(fe.FallbackLines) > 0 && st.Name() != e.fallback.Name() {
		retried, retryErr := e.fallback.ApplyOps(content, fe.FallbackLines)
		if retryErr == nil {
			e.logger.Info("applied via line-range fallback", map[string]any{
				"file":     fe.TargetFile,
				"strategy": st.Name(),
			})
			return retried, true, nil
		}
	}
	return "", false, err
}

// Validate computes a fresh validation report for the snapshot.
func (e *Engine) Validate(snap project.Snapshot) validate.Report {
	return e.validator.Validate(snap)
}
