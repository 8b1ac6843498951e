package main

import (
	"os"

	"github.com/spf13/cobra"

	"ced/internal/config"
	"ced/internal/logging"
	"ced/internal/version"
)

var (
	// logLevelFlag is the CLI --log-level flag value
	logLevelFlag string
	// logFormatFlag is the CLI --log-format flag value
	logFormatFlag string
)

var rootCmd = &cobra.Command{
	Use:   "ced",
	Short: "ced - structured code-edit engine",
	Long: `ced applies structured edit instructions (semantic transformations,
text patches, or line-numbered operations) to project source files and
validates the result for syntax correctness.`,
	Version: version.Info(),
}

func init() {
	rootCmd.SetVersionTemplate("ced version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "",
		"Log level: debug, info, warn, or error (default: from config)")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "",
		"Log format: human or json (default: from config)")
}

// newLogger builds the logger from CLI flags, CED_ env vars, and config.
// Precedence: CLI flag > environment > config file > defaults.
func newLogger(cfg *config.Config) *logging.Logger {
	level := cfg.Logging.Level
	if env := os.Getenv("CED_LOG_LEVEL"); env != "" {
		level = env
	}
	if logLevelFlag != "" {
		level = logLevelFlag
	}

	format := cfg.Logging.Format
	if env := os.Getenv("CED_LOG_FORMAT"); env != "" {
		format = env
	}
	if logFormatFlag != "" {
		format = logFormatFlag
	}

	return logging.New(logging.Config{
		Level:  logging.Level(level),
		Format: logging.Format(format),
	})
}

func loadConfig(dir string) *config.Config {
	cfg, err := config.Load(dir)
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}
