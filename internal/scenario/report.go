package scenario

import (
	"fmt"
	"io"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/Backland-Labs/quack/internal/output"
)

// StepResult is the outcome of one step.
type StepResult struct {
	Index     int    `json:"index"`
	Op        string `json:"op"`
	Args      []any  `json:"args,omitempty"`
	Got       string `json:"got,omitempty"`
	ErrorKind string `json:"error_kind,omitempty"`
	Error     string `json:"error,omitempty"`
	Passed    bool   `json:"passed"`
	Reason    string `json:"reason,omitempty"`
}

// Result is the outcome of one scenario.
type Result struct {
	RunID    string        `json:"run_id"`
	Name     string        `json:"name"`
	Double   string        `json:"double"`
	Source   string        `json:"source,omitempty"`
	Passed   bool          `json:"passed"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration_ns"`
	Steps    []StepResult  `json:"steps"`
}

// Report collects the results of a run.
type Report struct {
	Passed  int      `json:"passed"`
	Failed  int      `json:"failed"`
	Skipped int      `json:"skipped"`
	Results []Result `json:"results"`
}

func (r *Report) add(result Result) {
	if result.Passed {
		r.Passed++
	} else {
		r.Failed++
	}
	r.Results = append(r.Results, result)
}

// Merge adds the results and counts of other to r.
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	r.Passed += other.Passed
	r.Failed += other.Failed
	r.Skipped += other.Skipped
	r.Results = append(r.Results, other.Results...)
}

// OK reports whether every scenario ran and passed.
func (r *Report) OK() bool {
	return r.Failed == 0 && r.Skipped == 0
}

// WriteJSON writes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	data, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// WriteText prints the report. Steps of passing scenarios are only listed
// when verbose is set.
func (r *Report) WriteText(p *output.Printer, verbose bool) {
	for _, res := range r.Results {
		if res.Passed {
			p.Success("%s [%s] %d steps", res.Name, res.Double, len(res.Steps))
		} else {
			p.Failure("%s [%s]", res.Name, res.Double)
		}
		if res.Passed && !verbose {
			continue
		}
		for _, step := range res.Steps {
			call := fmt.Sprintf("%d. %s(%s)", step.Index, step.Op, formatArgs(step.Args))
			switch {
			case !step.Passed:
				p.Detail("%s FAILED: %s", call, step.Reason)
			case step.ErrorKind != "":
				p.Detail("%s -> %s error", call, step.ErrorKind)
			default:
				p.Detail("%s -> %q", call, step.Got)
			}
		}
		if !res.Passed && len(res.Steps) == 0 && res.Error != "" {
			p.Detail("%s", res.Error)
		}
	}

	p.Println()
	r.WriteSummary(p)
}

// WriteSummary prints the pass, fail and skip counts on one line.
func (r *Report) WriteSummary(p *output.Printer) {
	summary := fmt.Sprintf("%d passed, %d failed", r.Passed, r.Failed)
	if r.Skipped > 0 {
		summary += fmt.Sprintf(", %d skipped", r.Skipped)
	}
	if r.OK() {
		p.Success("%s", summary)
	} else {
		p.Failure("%s", summary)
	}
}

func formatArgs(args []any) string {
	parts := make([]string, len(args))
	for i, a := range args {
		if s, ok := a.(string); ok {
			parts[i] = fmt.Sprintf("%q", s)
			continue
		}
		parts[i] = fmt.Sprint(a)
	}
	return strings.Join(parts, ", ")
}
