package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"ced/internal/history"
)

var (
	historyDir   string
	historyLimit int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recently applied edit batches",
	Long: `List recent batch applications recorded in .ced/history.db.

Examples:
  ced history
  ced history --limit 10`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&historyDir, "dir", ".", "Project directory")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum runs to list")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(historyDir)
	logger := newLogger(cfg)

	store, err := history.OpenStore(historyDir, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.Recent(historyLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no recorded runs")
		return nil
	}

	for _, run := range runs {
		fmt.Printf("%s  %s  edits=%d applied=%d errors=%d\n",
			run.StartedAt.Format(time.RFC3339), run.ID[:8], run.Edits, run.Applied, run.Errors)
	}
	return nil
}
