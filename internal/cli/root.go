package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Backland-Labs/quack/internal/config"
	"github.com/Backland-Labs/quack/internal/logger"
)

// Context key types to avoid collisions
type contextKey string

const configKey contextKey = "config"

const version = "0.1.0"

// Execute runs the CLI. SIGINT and SIGTERM cancel the run between steps.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCommand().ExecuteContext(ctx)
}

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	return newRootCommand(NewRealDependencies())
}

func newRootCommand(deps *Dependencies) *cobra.Command {
	var showVersion bool
	var jsonOutput bool
	var failFast bool

	cmd := &cobra.Command{
		Use:   "quack",
		Short: "quack - instrumented test doubles for capability probing",
		Long: `quack - instrumented test doubles for capability probing

quack builds small objects that expose one capability each (stringify,
numeric coercion, indexing, keyed access) and record every access, so a
consumer can be checked for how often and in what order it uses them.

Examples:
  quack list                            # Show every double and its capabilities
  quack probe hash get acc              # One call on a fresh double
  quack run scenarios/mapping.yaml      # Run scripted scenarios
  quack selftest --json                 # Run the built-in scenarios`,
		Args: cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				return nil
			}
			cfg, err := deps.ConfigLoader.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if jsonOutput {
				cfg.Output = config.OutputJSON
			}
			if failFast {
				cfg.FailFast = true
			}
			logger.InitializeFromConfig(cfg)

			cmd.SilenceUsage = true
			cmd.SetContext(context.WithValue(cmd.Context(), configKey, cfg))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "quack version "+version)
				return err
			}
			return cmd.Help()
		},
	}

	cmd.Flags().BoolVarP(&showVersion, "version", "v", false, "Show version information")
	cmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Write results as JSON")
	cmd.PersistentFlags().BoolVar(&failFast, "fail-fast", false, "Stop at the first failing scenario")

	cmd.AddCommand(
		newRunCommand(deps),
		newSelftestCommand(deps),
		newListCommand(),
		newProbeCommand(),
	)

	return cmd
}

// configFrom returns the configuration stored by the root command
func configFrom(cmd *cobra.Command) *config.Config {
	if cfg, ok := cmd.Context().Value(configKey).(*config.Config); ok {
		return cfg
	}
	return &config.Config{Verbosity: config.VerbosityNormal, Output: config.OutputText}
}
