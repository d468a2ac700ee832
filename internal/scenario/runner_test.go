package scenario

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Backland-Labs/quack/internal/capability"
	"github.com/Backland-Labs/quack/internal/doubles"
	"github.com/Backland-Labs/quack/internal/logger"
)

// MockFactory is a mock implementation of Factory
type MockFactory struct {
	mock.Mock
}

func (m *MockFactory) New(name string) (any, error) {
	args := m.Called(name)
	return args.Get(0), args.Error(1)
}

func sequentialIDs() func() string {
	ids := []string{"run-1", "run-2", "run-3", "run-4"}
	next := 0
	return func() string {
		id := ids[next]
		next++
		return id
	}
}

func newTestRunner(opts ...Option) *Runner {
	r := NewRunner(append([]Option{WithLogger(logger.NewNopZapLogger())}, opts...)...)
	r.newID = sequentialIDs()
	return r
}

func failing(name string) Scenario {
	return Scenario{
		Name:   name,
		Double: "str",
		Steps:  []Step{want("str", "1"), want("str", "7")},
	}
}

func TestRunBuiltinScenariosPass(t *testing.T) {
	scenarios := Builtin()
	report, err := NewRunner(WithLogger(logger.NewNopZapLogger())).Run(context.Background(), scenarios)

	require.NoError(t, err)
	assert.True(t, report.OK())
	assert.Equal(t, len(scenarios), report.Passed)
	for _, res := range report.Results {
		assert.True(t, res.Passed, "%s: %s", res.Name, res.Error)
		assert.NotEmpty(t, res.RunID)
	}
}

func TestRunUsesFreshDoublePerScenario(t *testing.T) {
	sc := Scenario{Name: "first", Double: "str", Steps: []Step{want("str", "1")}}
	report, err := newTestRunner().Run(context.Background(), []Scenario{sc, sc})

	require.NoError(t, err)
	require.Len(t, report.Results, 2)
	assert.Equal(t, "run-1", report.Results[0].RunID)
	assert.Equal(t, "run-2", report.Results[1].RunID)
	assert.Equal(t, "1", report.Results[1].Steps[0].Got)
}

func TestRunRecordsEveryStep(t *testing.T) {
	report, err := newTestRunner().Run(context.Background(), []Scenario{{
		Name:   "mixed",
		Double: "cint",
		Steps: []Step{
			want("int", "5"),
			fails("call", capability.KindOutOfRange, 0),
			want("call", "", 0),
			want("int", "16"),
		},
	}})

	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 2)
	assert.Contains(t, err.Error(), `scenario "mixed" step 1 (int): got "4", want "5"`)

	res := report.Results[0]
	assert.False(t, res.Passed)
	require.Len(t, res.Steps, 4)

	assert.False(t, res.Steps[0].Passed)
	assert.Equal(t, "4", res.Steps[0].Got)

	assert.True(t, res.Steps[1].Passed)
	assert.Equal(t, "out-of-range", res.Steps[1].ErrorKind)

	assert.False(t, res.Steps[2].Passed)
	assert.Contains(t, res.Steps[2].Reason, "unexpected error")

	assert.True(t, res.Steps[3].Passed)
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name       string
		obj        any
		step       Step
		wantPassed bool
		wantGot    string
		wantKind   string
	}{
		{
			name:       "matching value",
			obj:        doubles.NewStringable(),
			step:       want("str", "1"),
			wantPassed: true,
			wantGot:    "1",
		},
		{
			name:       "no expectation accepts any value",
			obj:        doubles.NewInteger(),
			step:       Step{Op: "int"},
			wantPassed: true,
			wantGot:    "4",
		},
		{
			name:     "error expected but value returned",
			obj:      doubles.NewStringable(),
			step:     fails("str", capability.KindInternal),
			wantGot:  "1",
			wantKind: "",
		},
		{
			name:     "wrong error kind",
			obj:      doubles.NewMapping(),
			step:     fails("delete", capability.KindInternal, "zz"),
			wantKind: "missing-key",
		},
		{
			name:       "string list argument",
			obj:        doubles.NewCallableSequence(),
			step:       Step{Op: "call", Args: []any{[]any{"p", "q"}}},
			wantPassed: true,
		},
		{
			name:     "unnormalized mixed list",
			obj:      doubles.NewCallableSequence(),
			step:     Step{Op: "call", Args: []any{[]any{"p", 1}}},
			wantKind: "invalid-value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sr := evaluate(tt.obj, 1, tt.step)
			assert.Equal(t, tt.wantPassed, sr.Passed, sr.Reason)
			assert.Equal(t, tt.wantGot, sr.Got)
			assert.Equal(t, tt.wantKind, sr.ErrorKind)
			if !tt.wantPassed {
				assert.NotEmpty(t, sr.Reason)
			}
		})
	}
}

func TestRunFailFast(t *testing.T) {
	scenarios := []Scenario{
		failing("broken"),
		{Name: "never run", Double: "str", Steps: []Step{want("str", "1")}},
		{Name: "never run either", Double: "str", Steps: []Step{want("str", "1")}},
	}

	report, err := newTestRunner(WithFailFast(true)).Run(context.Background(), scenarios)

	require.Error(t, err)
	assert.Len(t, report.Results, 1)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 2, report.Skipped)
	assert.False(t, report.OK())
}

func TestRunAggregatesScenarioFailures(t *testing.T) {
	report, err := newTestRunner().Run(context.Background(), []Scenario{failing("a"), failing("b")})

	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 2)
	assert.Equal(t, 2, report.Failed)
	assert.Zero(t, report.Skipped)
}

func TestRunFactory(t *testing.T) {
	factory := new(MockFactory)
	factory.On("New", "custom").Return(doubles.NewFloating(), nil).Once()
	factory.On("New", "missing").Return(nil, capability.Errorf(capability.KindMissingKey, "", "unknown double")).Once()

	scenarios := []Scenario{
		{Name: "custom", Double: "custom", Steps: []Step{want("float", "2")}},
		{Name: "missing", Double: "missing", Steps: []Step{want("str", "1")}},
	}
	report, err := newTestRunner(WithFactory(factory.New)).Run(context.Background(), scenarios)

	require.Error(t, err)
	assert.True(t, errors.Is(err, capability.ErrMissingKey))
	assert.True(t, report.Results[0].Passed)
	assert.False(t, report.Results[1].Passed)
	assert.Empty(t, report.Results[1].Steps)
	assert.Contains(t, report.Results[1].Error, "unknown double")
	factory.AssertExpectations(t)
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := newTestRunner().Run(ctx, []Scenario{failing("a"), failing("b")})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, report.Results)
	assert.Equal(t, 2, report.Skipped)
}

func TestRunCancelledBetweenSteps(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	factory := new(MockFactory)
	factory.On("New", "str").Return(&cancellingStringer{cancel: cancel}, nil)

	sc := Scenario{Name: "cancel", Double: "str", Steps: []Step{want("str", "x"), want("str", "x")}}
	report, err := newTestRunner(WithFactory(factory.New)).Run(ctx, []Scenario{sc, sc})

	assert.ErrorIs(t, err, context.Canceled)
	require.Len(t, report.Results, 1)
	assert.Len(t, report.Results[0].Steps, 1)
	assert.Equal(t, 1, report.Skipped)
}

type cancellingStringer struct {
	cancel context.CancelFunc
}

func (c *cancellingStringer) String() (string, error) {
	c.cancel()
	return "x", nil
}

func TestRunLogsScenarioContext(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := newTestRunner(WithLogger(logger.FromZap(zap.New(core))))

	_, err := r.Run(context.Background(), []Scenario{{Name: "ok", Double: "str", Steps: []Step{want("str", "1")}}})
	require.NoError(t, err)

	passed := logs.FilterMessageSnippet("scenario passed").All()
	require.Len(t, passed, 1)
	fields := passed[0].ContextMap()
	assert.Equal(t, "run-1", fields["run_id"])
	assert.Equal(t, "ok", fields["scenario"])
	assert.Equal(t, "str", fields["double"])
}

func TestRunWholeFloatArgumentFromFile(t *testing.T) {
	scenarios, err := Parse([]byte(`
scenarios:
  - name: wind back
    double: cstr
    steps:
      - op: str
        want: "1"
      - op: call
        args: [1.0]
      - op: str
        want: "1"
`), FormatYAML)
	require.NoError(t, err)

	report, err := newTestRunner().Run(context.Background(), scenarios)
	require.NoError(t, err)
	assert.True(t, report.OK())
}
