package cli

import (
	"context"

	"github.com/Backland-Labs/quack/internal/config"
	"github.com/Backland-Labs/quack/internal/scenario"
)

// ConfigLoader interface for dependency injection in tests
type ConfigLoader interface {
	Load() (*config.Config, error)
}

// ScenarioLoader interface for dependency injection in tests
type ScenarioLoader interface {
	Load(path string) ([]scenario.Scenario, error)
}

// ScenarioRunner interface for dependency injection in tests
type ScenarioRunner interface {
	Run(ctx context.Context, scenarios []scenario.Scenario) (*scenario.Report, error)
}

// RunnerFactory builds a runner for one invocation
type RunnerFactory interface {
	NewRunner(failFast bool) ScenarioRunner
}

// Real implementations for production use

// RealConfigLoader implements ConfigLoader using the real config package
type RealConfigLoader struct{}

func (r *RealConfigLoader) Load() (*config.Config, error) {
	return config.New()
}

// RealScenarioLoader reads scenario files from disk
type RealScenarioLoader struct{}

func (r *RealScenarioLoader) Load(path string) ([]scenario.Scenario, error) {
	return scenario.Load(path)
}

// RealRunnerFactory builds scenario runners over the double registry
type RealRunnerFactory struct{}

func (r *RealRunnerFactory) NewRunner(failFast bool) ScenarioRunner {
	return scenario.NewRunner(scenario.WithFailFast(failFast))
}

// NewRealDependencies creates production dependencies
func NewRealDependencies() *Dependencies {
	return &Dependencies{
		ConfigLoader:   &RealConfigLoader{},
		ScenarioLoader: &RealScenarioLoader{},
		RunnerFactory:  &RealRunnerFactory{},
	}
}

// Dependencies struct for injection
type Dependencies struct {
	ConfigLoader   ConfigLoader
	ScenarioLoader ScenarioLoader
	RunnerFactory  RunnerFactory
}
