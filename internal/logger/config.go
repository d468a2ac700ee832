package logger

import (
	"os"
	"strings"
)

// Config holds logger configuration
type Config struct {
	Level      Level
	LevelSet   bool   // Level came from QUACK_LOG_LEVEL rather than the default
	Format     string // "console" or "json"
	Caller     bool   // Include caller information
	Stacktrace string // Level at which to include stack traces
}

// ConfigFromEnv creates a logger configuration from environment variables
func ConfigFromEnv() *Config {
	cfg := &Config{
		Level:      InfoLevel,
		Format:     "console",
		Stacktrace: "",
	}

	if levelStr := os.Getenv("QUACK_LOG_LEVEL"); levelStr != "" {
		cfg.Level = LevelFromString(levelStr)
		cfg.LevelSet = true
	}

	if format := os.Getenv("QUACK_LOG_FORMAT"); format != "" {
		cfg.Format = strings.ToLower(format)
	}

	cfg.Caller = os.Getenv("QUACK_LOG_CALLER") == "true"

	if stacktrace := os.Getenv("QUACK_LOG_STACKTRACE"); stacktrace != "" {
		cfg.Stacktrace = strings.ToLower(stacktrace)
	}

	return cfg
}

// IsDevelopment returns true if the logger is configured for development mode
func (c *Config) IsDevelopment() bool {
	return c.Format != "json"
}
