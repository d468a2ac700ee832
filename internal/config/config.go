// Package config provides configuration management for the quack CLI.
// It loads configuration from environment variables with sensible defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Verbosity represents the output verbosity level
type Verbosity string

const (
	// VerbosityNormal shows only scenario results
	VerbosityNormal Verbosity = "normal"
	// VerbosityVerbose includes every step outcome
	VerbosityVerbose Verbosity = "verbose"
	// VerbosityDebug also logs every capability invocation
	VerbosityDebug Verbosity = "debug"
)

// OutputFormat selects how reports are written
type OutputFormat string

const (
	// OutputText writes a colored, human-readable report
	OutputText OutputFormat = "text"
	// OutputJSON writes the report as JSON
	OutputJSON OutputFormat = "json"
)

// Config holds all configuration for the quack CLI
type Config struct {
	// ScenarioDir is where relative scenario paths are resolved
	ScenarioDir string

	// Verbosity controls output level
	Verbosity Verbosity

	// FailFast stops a run at the first failing scenario
	FailFast bool

	// Output selects the report format
	Output OutputFormat

	// Color enables ANSI colors in text reports
	Color bool
}

// New creates a new Config instance from environment variables
func New() (*Config, error) {
	cfg := &Config{}

	// Load ScenarioDir - defaults to current directory
	dir, exists := os.LookupEnv("QUACK_SCENARIO_DIR")
	if !exists {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		cfg.ScenarioDir = cwd
	} else {
		if dir == "" {
			return nil, fmt.Errorf("QUACK_SCENARIO_DIR cannot be empty")
		}
		if !filepath.IsAbs(dir) {
			return nil, fmt.Errorf("QUACK_SCENARIO_DIR must be an absolute path, got: %s", dir)
		}
		cfg.ScenarioDir = dir
	}

	// Load Verbosity - defaults to normal
	verbosity := os.Getenv("QUACK_VERBOSITY")
	if verbosity == "" {
		cfg.Verbosity = VerbosityNormal
	} else {
		switch Verbosity(verbosity) {
		case VerbosityNormal, VerbosityVerbose, VerbosityDebug:
			cfg.Verbosity = Verbosity(verbosity)
		default:
			return nil, fmt.Errorf("QUACK_VERBOSITY must be one of: normal, verbose, debug; got: %s", verbosity)
		}
	}

	// Load FailFast - defaults to false
	failFast, err := parseBoolEnv("QUACK_FAIL_FAST", false)
	if err != nil {
		return nil, err
	}
	cfg.FailFast = failFast

	// Load Output - defaults to text
	output := os.Getenv("QUACK_OUTPUT_FORMAT")
	if output == "" {
		cfg.Output = OutputText
	} else {
		switch OutputFormat(output) {
		case OutputText, OutputJSON:
			cfg.Output = OutputFormat(output)
		default:
			return nil, fmt.Errorf("QUACK_OUTPUT_FORMAT must be one of: text, json; got: %s", output)
		}
	}

	// Load Color - defaults to true
	color, err := parseBoolEnv("QUACK_COLOR", true)
	if err != nil {
		return nil, err
	}
	cfg.Color = color

	return cfg, nil
}

// IsVerbose returns true if verbosity is verbose or debug
func (c *Config) IsVerbose() bool {
	return c.Verbosity == VerbosityVerbose || c.Verbosity == VerbosityDebug
}

// IsDebug returns true if verbosity is debug
func (c *Config) IsDebug() bool {
	return c.Verbosity == VerbosityDebug
}

// ResolvePath makes a scenario path absolute relative to ScenarioDir
func (c *Config) ResolvePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.ScenarioDir, path)
}

// parseBoolEnv parses a boolean environment variable with a default value
func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	switch value {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("%s must be true or false, got: %s", key, value)
	}
}
