package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/Backland-Labs/quack/internal/config"
	"github.com/Backland-Labs/quack/internal/logger"
	"github.com/Backland-Labs/quack/internal/output"
	"github.com/Backland-Labs/quack/internal/scenario"
)

// batch is a group of scenarios reported together, usually one file
type batch struct {
	label     string
	scenarios []scenario.Scenario
}

// newRunCommand creates the run command that executes scenario files
func newRunCommand(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "run <file>...",
		Short: "Run scenario files",
		Long: `Run scenario files against fresh doubles.

Files are YAML (.yaml, .yml) or TOML (.toml). Relative paths are resolved
against QUACK_SCENARIO_DIR, which defaults to the current directory.

Examples:
  quack run mapping.yaml
  quack run numeric.toml sequence.yaml --fail-fast`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFrom(cmd)

			// Every file is loaded before anything runs
			batches := make([]batch, 0, len(args))
			for _, arg := range args {
				scenarios, err := deps.ScenarioLoader.Load(cfg.ResolvePath(arg))
				if err != nil {
					return err
				}
				batches = append(batches, batch{label: filepath.Base(arg), scenarios: scenarios})
			}
			return runBatches(cmd, deps, cfg, batches)
		},
	}
}

// newSelftestCommand creates the command running the built-in scenarios
func newSelftestCommand(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "selftest",
		Short: "Run the built-in scenarios",
		Long: `Run the built-in scenarios, which pin down the observable behavior of
every double.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatches(cmd, deps, configFrom(cmd), []batch{{label: "selftest", scenarios: scenario.Builtin()}})
		},
	}
}

func runBatches(cmd *cobra.Command, deps *Dependencies, cfg *config.Config, batches []batch) error {
	ctx := cmd.Context()
	runner := deps.RunnerFactory.NewRunner(cfg.FailFast)

	total := &scenario.Report{}
	reports := make([]*scenario.Report, 0, len(batches))
	var errs error

	for i, b := range batches {
		report, err := runner.Run(ctx, b.scenarios)
		if report == nil {
			report = &scenario.Report{}
		}
		reports = append(reports, report)
		total.Merge(report)
		errs = multierr.Append(errs, err)

		if ctx.Err() != nil || (cfg.FailFast && !report.OK()) {
			for _, rest := range batches[i+1:] {
				total.Skipped += len(rest.scenarios)
			}
			break
		}
	}
	if errs != nil {
		logger.WithField("failures", len(multierr.Errors(errs))).Debugf("run finished with errors: %v", errs)
	}

	if err := writeReports(cmd, cfg, batches, reports, total); err != nil {
		return err
	}

	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(errs, ctxErr) {
		return ctxErr
	}
	if !total.OK() {
		return fmt.Errorf("%d of %d scenarios failed, %d skipped", total.Failed, total.Passed+total.Failed+total.Skipped, total.Skipped)
	}
	return nil
}

func writeReports(cmd *cobra.Command, cfg *config.Config, batches []batch, reports []*scenario.Report, total *scenario.Report) error {
	if cfg.Output == config.OutputJSON {
		return total.WriteJSON(cmd.OutOrStdout())
	}

	printer := output.NewPrinterForWriters(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg.Color)
	if len(batches) == 1 {
		reports[0].WriteText(printer, cfg.IsVerbose())
		return nil
	}

	for i, report := range reports {
		pw := NewPrefixWriter(printer.Out(), batches[i].label, printer.UseColor(), i)
		report.WriteText(output.NewPrinterWithWriters(pw, printer.Err(), printer.UseColor()), cfg.IsVerbose())
	}
	if skipped := len(batches) - len(reports); skipped > 0 {
		printer.Warning("%d file(s) not run", skipped)
	}
	printer.Println()
	total.WriteSummary(printer)
	return nil
}
