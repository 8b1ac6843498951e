package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ced/internal/engine"
	"ced/internal/project"
)

var validateDir string

var validateCmd = &cobra.Command{
	Use:   "validate [files...]",
	Short: "Validate project files for syntax correctness",
	Long: `Validate the files in a project directory and print positional
syntax errors. With file arguments, only those files are checked.

Examples:
  ced validate
  ced validate --dir ./site index.html app.js`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateDir, "dir", ".", "Project directory")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(validateDir)
	logger := newLogger(cfg)

	snap, err := project.LoadDir(validateDir)
	if err != nil {
		return fmt.Errorf("failed to load project: %w", err)
	}

	if len(args) > 0 {
		filtered := project.Snapshot{}
		for _, name := range args {
			f, ok := snap[name]
			if !ok {
				return fmt.Errorf("file %q not found in %s", name, validateDir)
			}
			filtered[name] = f
		}
		snap = filtered
	}

	report := engine.New(logger).Validate(snap)
	if report.Valid {
		fmt.Printf("ok: %d file(s) checked\n", len(snap))
		return nil
	}

	for _, ve := range report.Errors {
		fmt.Printf("%s:%d:%d: %s (%s)\n", ve.File, ve.Line, ve.Column, ve.Message, ve.Category)
	}
	return fmt.Errorf("%d validation error(s)", len(report.Errors))
}
