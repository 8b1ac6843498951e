// Package config loads ced configuration: defaults, an optional
// .ced/config.json, and CED_-prefixed environment overrides. The engine
// itself takes plain values; viper stays in this layer.
package config

import (
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the complete ced configuration.
type Config struct {
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
	History HistoryConfig `json:"history" mapstructure:"history"`
	Engine  EngineConfig  `json:"engine" mapstructure:"engine"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `json:"level" mapstructure:"level"`
	Format string `json:"format" mapstructure:"format"`
}

// HistoryConfig controls the applied-batch ledger.
type HistoryConfig struct {
	Enabled bool `json:"enabled" mapstructure:"enabled"`
	Limit   int  `json:"limit" mapstructure:"limit"`
}

// EngineConfig holds engine tuning.
type EngineConfig struct {
	// StrategyOrder overrides the strategy priority order. Valid names:
	// semantic, text-patch, line-range. Empty means the default order.
	StrategyOrder []string `json:"strategyOrder" mapstructure:"strategyOrder"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info", Format: "human"},
		History: HistoryConfig{Enabled: true, Limit: 50},
	}
}

// Load reads configuration for the project at dir. A missing config file is
// not an error; defaults and environment apply.
func Load(dir string) (*Config, error) {
	v := viper.New()

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "human")
	v.SetDefault("history.enabled", true)
	v.SetDefault("history.limit", 50)
	v.SetDefault("engine.strategyOrder", []string{})

	v.SetEnvPrefix("CED")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(dir, ".ced"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
