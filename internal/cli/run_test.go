package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Backland-Labs/quack/internal/config"
	"github.com/Backland-Labs/quack/internal/scenario"
)

// Mock interfaces for testing

type MockConfigLoader struct {
	mock.Mock
}

func (m *MockConfigLoader) Load() (*config.Config, error) {
	args := m.Called()
	cfg, _ := args.Get(0).(*config.Config)
	return cfg, args.Error(1)
}

type MockScenarioLoader struct {
	mock.Mock
}

func (m *MockScenarioLoader) Load(path string) ([]scenario.Scenario, error) {
	args := m.Called(path)
	scenarios, _ := args.Get(0).([]scenario.Scenario)
	return scenarios, args.Error(1)
}

type MockRunnerFactory struct {
	mock.Mock
}

func (m *MockRunnerFactory) NewRunner(failFast bool) ScenarioRunner {
	args := m.Called(failFast)
	return args.Get(0).(ScenarioRunner)
}

type MockScenarioRunner struct {
	mock.Mock
}

func (m *MockScenarioRunner) Run(ctx context.Context, scenarios []scenario.Scenario) (*scenario.Report, error) {
	args := m.Called(ctx, scenarios)
	report, _ := args.Get(0).(*scenario.Report)
	return report, args.Error(1)
}

type staticConfigLoader struct {
	cfg config.Config
}

func (s *staticConfigLoader) Load() (*config.Config, error) {
	cfg := s.cfg
	return &cfg, nil
}

func testConfig(dir string) config.Config {
	return config.Config{
		ScenarioDir: dir,
		Verbosity:   config.VerbosityNormal,
		Output:      config.OutputText,
	}
}

// testDependencies uses the real loader and runner over a temp scenario dir
func testDependencies(t *testing.T) *Dependencies {
	t.Helper()
	return &Dependencies{
		ConfigLoader:   &staticConfigLoader{cfg: testConfig(t.TempDir())},
		ScenarioLoader: &RealScenarioLoader{},
		RunnerFactory:  &RealRunnerFactory{},
	}
}

func execute(t *testing.T, deps *Dependencies, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand(deps)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func writeScenario(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

const passingYAML = `
scenarios:
  - name: counts
    double: str
    steps:
      - op: str
        want: "1"
`

const failingYAML = `
scenarios:
  - name: wrong count
    double: str
    steps:
      - op: str
        want: "2"
`

func TestSelftest(t *testing.T) {
	out, err := execute(t, testDependencies(t), "selftest")

	require.NoError(t, err)
	assert.Contains(t, out, "✓ mapping logs its own accesses [hash]")
	assert.Contains(t, out, "passed, 0 failed")
}

func TestSelftestJSON(t *testing.T) {
	out, err := execute(t, testDependencies(t), "selftest", "--json")
	require.NoError(t, err)

	var report scenario.Report
	require.NoError(t, jsoniter.ConfigFastest.Unmarshal([]byte(out), &report))
	assert.Equal(t, len(scenario.Builtin()), report.Passed)
	assert.Zero(t, report.Failed)
}

func TestRunFiles(t *testing.T) {
	deps := testDependencies(t)
	dir := deps.ConfigLoader.(*staticConfigLoader).cfg.ScenarioDir
	writeScenario(t, dir, "good.yaml", passingYAML)
	writeScenario(t, dir, "bad.yaml", failingYAML)

	t.Run("single file", func(t *testing.T) {
		out, err := execute(t, deps, "run", "good.yaml")
		require.NoError(t, err)
		assert.Contains(t, out, "✓ counts [str] 1 steps")
		assert.NotContains(t, out, "[good.yaml]")
	})

	t.Run("several files are prefixed", func(t *testing.T) {
		out, err := execute(t, deps, "run", "good.yaml", "bad.yaml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "1 of 2 scenarios failed")
		assert.Contains(t, out, "[good.yaml] ✓ counts [str] 1 steps")
		assert.Contains(t, out, "[bad.yaml] ✗ wrong count [str]")
		assert.Contains(t, out, `[bad.yaml]   1. str() FAILED: got "1", want "2"`)
		assert.Contains(t, out, "✗ 1 passed, 1 failed")
	})

	t.Run("fail fast skips remaining files", func(t *testing.T) {
		out, err := execute(t, deps, "run", "bad.yaml", "good.yaml", "--fail-fast")
		require.Error(t, err)
		assert.Contains(t, out, "1 file(s) not run")
		assert.Contains(t, out, "0 passed, 1 failed, 1 skipped")
		assert.NotContains(t, out, "[good.yaml]")
	})

	t.Run("absolute path", func(t *testing.T) {
		_, err := execute(t, deps, "run", filepath.Join(dir, "good.yaml"))
		assert.NoError(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := execute(t, deps, "run", "absent.yaml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read scenario file")
	})
}

func TestRunWithMocks(t *testing.T) {
	scenarios := []scenario.Scenario{{Name: "x", Double: "str"}}

	tests := []struct {
		name       string
		args       []string
		setupMocks func(*MockConfigLoader, *MockScenarioLoader, *MockRunnerFactory, *MockScenarioRunner)
		wantErr    string
	}{
		{
			name: "fail fast flag reaches the runner",
			args: []string{"run", "a.yaml", "--fail-fast"},
			setupMocks: func(c *MockConfigLoader, l *MockScenarioLoader, f *MockRunnerFactory, r *MockScenarioRunner) {
				cfg := testConfig("/scenarios")
				c.On("Load").Return(&cfg, nil)
				l.On("Load", "/scenarios/a.yaml").Return(scenarios, nil)
				f.On("NewRunner", true).Return(r)
				r.On("Run", mock.Anything, scenarios).Return(&scenario.Report{Passed: 1}, nil)
			},
		},
		{
			name: "fail fast from configuration",
			args: []string{"run", "a.yaml"},
			setupMocks: func(c *MockConfigLoader, l *MockScenarioLoader, f *MockRunnerFactory, r *MockScenarioRunner) {
				cfg := testConfig("/scenarios")
				cfg.FailFast = true
				c.On("Load").Return(&cfg, nil)
				l.On("Load", "/scenarios/a.yaml").Return(scenarios, nil)
				f.On("NewRunner", true).Return(r)
				r.On("Run", mock.Anything, scenarios).Return(&scenario.Report{Passed: 1}, nil)
			},
		},
		{
			name: "loader error stops before running",
			args: []string{"run", "a.yaml", "b.yaml"},
			setupMocks: func(c *MockConfigLoader, l *MockScenarioLoader, f *MockRunnerFactory, r *MockScenarioRunner) {
				cfg := testConfig("/scenarios")
				c.On("Load").Return(&cfg, nil)
				l.On("Load", "/scenarios/a.yaml").Return(scenarios, nil)
				l.On("Load", "/scenarios/b.yaml").Return(nil, errors.New("invalid yaml"))
			},
			wantErr: "invalid yaml",
		},
		{
			name: "configuration error",
			args: []string{"selftest"},
			setupMocks: func(c *MockConfigLoader, l *MockScenarioLoader, f *MockRunnerFactory, r *MockScenarioRunner) {
				c.On("Load").Return(nil, errors.New("QUACK_VERBOSITY must be one of"))
			},
			wantErr: "failed to load configuration",
		},
		{
			name: "runner stops early",
			args: []string{"selftest"},
			setupMocks: func(c *MockConfigLoader, l *MockScenarioLoader, f *MockRunnerFactory, r *MockScenarioRunner) {
				cfg := testConfig("/scenarios")
				c.On("Load").Return(&cfg, nil)
				f.On("NewRunner", false).Return(r)
				r.On("Run", mock.Anything, mock.Anything).Return(&scenario.Report{Skipped: 3}, errors.New("runner stopped"))
			},
			wantErr: "0 of 3 scenarios failed, 3 skipped",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := new(MockConfigLoader)
			l := new(MockScenarioLoader)
			f := new(MockRunnerFactory)
			r := new(MockScenarioRunner)
			tt.setupMocks(c, l, f, r)

			_, err := execute(t, &Dependencies{ConfigLoader: c, ScenarioLoader: l, RunnerFactory: f}, tt.args...)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			c.AssertExpectations(t)
			l.AssertExpectations(t)
			f.AssertExpectations(t)
			r.AssertExpectations(t)
		})
	}
}
