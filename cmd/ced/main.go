package main

import (
	"os"

	"ced/internal/logging"
)

func main() {
	logger := logging.New(logging.Config{
		Format: logging.HumanFormat,
		Level:  logging.InfoLevel,
	})

	if err := rootCmd.Execute(); err != nil {
		logger.Error("command execution failed", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
}
