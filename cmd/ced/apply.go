package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ced/internal/engine"
	"ced/internal/history"
	"ced/internal/project"
)

var (
	applyBatchFile  string
	applyDir        string
	applyDryRun     bool
	applyNoValidate bool
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply an edit batch to a project directory",
	Long: `Apply a batch of structured edits to the files in a project
directory, validate the result, and print a per-file summary.

The batch file is JSON or YAML. Changed files are written back unless
--dry-run is given. Each run is recorded in .ced/history.db.

Examples:
  ced apply --batch edits.json
  ced apply --batch edits.yaml --dir ./site --dry-run`,
	RunE: runApply,
}

func init() {
	applyCmd.Flags().StringVar(&applyBatchFile, "batch", "", "Path to the batch file (JSON or YAML)")
	applyCmd.Flags().StringVar(&applyDir, "dir", ".", "Project directory")
	applyCmd.Flags().BoolVar(&applyDryRun, "dry-run", false, "Apply in memory only; write nothing")
	applyCmd.Flags().BoolVar(&applyNoValidate, "no-validate", false, "Skip post-apply validation")
	_ = applyCmd.MarkFlagRequired("batch")
	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(applyDir)
	logger := newLogger(cfg)

	batch, err := decodeBatch(applyBatchFile)
	if err != nil {
		return err
	}

	snap, err := project.LoadDir(applyDir)
	if err != nil {
		return fmt.Errorf("failed to load project: %w", err)
	}

	eng := engine.NewWithOrder(cfg.Engine.StrategyOrder, logger)
	result := eng.Apply(snap, batch)

	fmt.Println(result.Summary.String())
	for _, fe := range result.Errors {
		fmt.Fprintf(os.Stderr, "error: %s\n", fe.Error())
	}

	if !applyNoValidate {
		report := eng.Validate(result.Files)
		if !report.Valid {
			for _, ve := range report.Errors {
				fmt.Fprintf(os.Stderr, "%s:%d:%d: %s (%s)\n",
					ve.File, ve.Line, ve.Column, ve.Message, ve.Category)
			}
		}
	}

	if !applyDryRun {
		if err := project.WriteFiles(applyDir, result.Files, result.Applied); err != nil {
			return fmt.Errorf("failed to write files: %w", err)
		}
	}

	if cfg.History.Enabled && !applyDryRun {
		store, err := history.OpenStore(applyDir, logger)
		if err != nil {
			logger.Warn("history disabled", map[string]any{"error": err.Error()})
		} else {
			defer store.Close()
			run := history.NewRun(applyDir, len(batch.Edits), len(result.Applied), len(result.Errors), result.Summary.String())
			if err := store.Record(run); err != nil {
				logger.Warn("failed to record run", map[string]any{"error": err.Error()})
			}
		}
	}

	if len(result.Errors) > 0 {
		return fmt.Errorf("%d of %d edits failed", len(result.Errors), len(batch.Edits))
	}
	return nil
}
