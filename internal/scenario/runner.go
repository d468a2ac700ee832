package scenario

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/Backland-Labs/quack/internal/capability"
	"github.com/Backland-Labs/quack/internal/doubles/registry"
	"github.com/Backland-Labs/quack/internal/logger"
	"github.com/Backland-Labs/quack/internal/probe"
)

// Factory builds a fresh double by name.
type Factory func(name string) (any, error)

// Runner runs scenarios one after another. It holds no per-run state and
// starts no goroutines.
type Runner struct {
	failFast bool
	log      *logger.ZapLogger
	factory  Factory
	newID    func() string
}

// Option configures a Runner
type Option func(*Runner)

// WithFailFast stops a run after the first failing scenario
func WithFailFast(failFast bool) Option {
	return func(r *Runner) {
		r.failFast = failFast
	}
}

// WithLogger sets the logger used for scenario progress
func WithLogger(log *logger.ZapLogger) Option {
	return func(r *Runner) {
		if log != nil {
			r.log = log
		}
	}
}

// WithFactory replaces the registry as the source of doubles
func WithFactory(f Factory) Option {
	return func(r *Runner) {
		if f != nil {
			r.factory = f
		}
	}
}

// NewRunner creates a runner building doubles from the registry. It logs
// through the global logger when that has a zap backend.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		log:     logger.GetLogger().Zap(),
		factory: registry.New,
		newID:   uuid.NewString,
	}
	if r.log == nil {
		r.log = logger.NewNopZapLogger()
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes scenarios in order. The report covers every scenario that was
// started; the error combines every failure. A cancelled context stops the
// run between steps and is returned along with the failures so far.
func (r *Runner) Run(ctx context.Context, scenarios []Scenario) (*Report, error) {
	report := &Report{Results: make([]Result, 0, len(scenarios))}
	var errs error

	for i := range scenarios {
		if err := ctx.Err(); err != nil {
			report.Skipped = len(scenarios) - i
			return report, multierr.Append(errs, err)
		}

		result, err := r.runScenario(ctx, &scenarios[i])
		report.add(result)
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			report.Skipped = len(scenarios) - i - 1
			return report, multierr.Append(errs, err)
		}
		errs = multierr.Append(errs, err)

		if err != nil && r.failFast {
			report.Skipped = len(scenarios) - i - 1
			r.log.Warnf("stopping after failed scenario %q, %d skipped", result.Name, report.Skipped)
			break
		}
	}
	return report, errs
}

func (r *Runner) runScenario(ctx context.Context, sc *Scenario) (Result, error) {
	result := Result{
		RunID:  r.newID(),
		Name:   sc.Name,
		Double: sc.Double,
		Source: sc.Source,
		Steps:  make([]StepResult, 0, len(sc.Steps)),
	}
	log := r.log.WithScenario(result.RunID, sc.Name, sc.Double)
	timer := log.Timed("scenario")
	start := time.Now()

	err := r.runSteps(ctx, sc, &result, log)

	result.Duration = time.Since(start)
	result.Passed = err == nil
	if err != nil {
		result.Error = err.Error()
		log.WithError(err).Info("scenario failed")
	} else {
		log.Infof("scenario passed (%d steps)", len(result.Steps))
	}
	timer.Done()
	return result, err
}

func (r *Runner) runSteps(ctx context.Context, sc *Scenario, result *Result, log *logger.ZapLogger) error {
	obj, err := r.factory(sc.Double)
	if err != nil {
		return fmt.Errorf("scenario %q: %w", sc.Name, err)
	}

	var errs error
	for i, step := range sc.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		sr := evaluate(obj, i+1, step)
		result.Steps = append(result.Steps, sr)
		if !sr.Passed {
			log.WithField("step", sr.Index).Debugf("step failed: %s", sr.Reason)
			errs = multierr.Append(errs, fmt.Errorf("scenario %q step %d (%s): %s", sc.Name, sr.Index, sr.Op, sr.Reason))
		}
	}
	return errs
}

// evaluate invokes a step and compares the outcome. The result is rendered
// before comparing, so a value that fails to stringify counts as the step's
// error.
func evaluate(obj any, index int, step Step) StepResult {
	args := make([]any, len(step.Args))
	for i, a := range step.Args {
		args[i] = normalizeArg(a)
	}

	sr := StepResult{Index: index, Op: step.Op, Args: step.Args}

	v, err := probe.Invoke(obj, step.Op, args...)
	if err == nil {
		sr.Got, err = probe.Render(v)
	}
	if err != nil {
		sr.Got = ""
		sr.Error = err.Error()
		if kind := capability.KindOf(err); kind != capability.KindUnknown {
			sr.ErrorKind = kind.String()
		}
	}

	switch {
	case step.WantError != "" && err == nil:
		sr.Reason = fmt.Sprintf("got %q, want %s error", sr.Got, step.WantError)
	case step.WantError != "" && sr.ErrorKind != step.WantError:
		sr.Reason = fmt.Sprintf("got error %q, want %s error", sr.Error, step.WantError)
	case step.WantError == "" && err != nil:
		sr.Reason = fmt.Sprintf("unexpected error: %s", sr.Error)
	case step.Want != nil && sr.Got != *step.Want:
		sr.Reason = fmt.Sprintf("got %q, want %q", sr.Got, *step.Want)
	default:
		sr.Passed = true
	}
	return sr
}
