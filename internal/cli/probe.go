package cli

import (
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/Backland-Labs/quack/internal/capability"
	"github.com/Backland-Labs/quack/internal/config"
	"github.com/Backland-Labs/quack/internal/doubles/registry"
	"github.com/Backland-Labs/quack/internal/probe"
)

// probeResult is the outcome of a single invocation
type probeResult struct {
	Double    string `json:"double"`
	Op        string `json:"op"`
	Args      []any  `json:"args,omitempty"`
	Result    string `json:"result"`
	ErrorKind string `json:"error_kind,omitempty"`
	Error     string `json:"error,omitempty"`
}

// parseProbeArg reads "[a,b]" as a string list and anything else as a
// string. The doubles parse numbers out of strings themselves.
func parseProbeArg(arg string) any {
	if !strings.HasPrefix(arg, "[") || !strings.HasSuffix(arg, "]") {
		return arg
	}
	inner := strings.TrimSpace(arg[1 : len(arg)-1])
	if inner == "" {
		return []string{}
	}
	parts := strings.Split(inner, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// newProbeCommand creates the command invoking one capability on a fresh double
func newProbeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "probe <double> <op> [args...]",
		Short: "Invoke one capability on a fresh double",
		Long: `Invoke one capability on a fresh double and print the rendered result.

Operations: str, int, float, call, len, index, keys, get, set, delete,
contains, iter. An argument written as [a,b] is passed as a string list.

Examples:
  quack probe str str
  quack probe cint call 2
  quack probe carray call [x,y]
  quack probe ehash get a`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, op := args[0], args[1]
			obj, err := registry.New(name)
			if err != nil {
				return err
			}

			callArgs := make([]any, 0, len(args)-2)
			for _, a := range args[2:] {
				callArgs = append(callArgs, parseProbeArg(a))
			}

			res := probeResult{Double: name, Op: op, Args: callArgs}
			v, err := probe.Invoke(obj, op, callArgs...)
			if err == nil {
				res.Result, err = probe.Render(v)
			}
			if err != nil {
				res.Result = ""
				res.Error = err.Error()
				res.ErrorKind = capability.KindOf(err).String()
			}

			if configFrom(cmd).Output == config.OutputJSON {
				data, encErr := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(res, "", "  ")
				if encErr != nil {
					return fmt.Errorf("failed to encode result: %w", encErr)
				}
				if _, encErr = fmt.Fprintln(cmd.OutOrStdout(), string(data)); encErr != nil {
					return encErr
				}
			} else if err == nil {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), res.Result); err != nil {
					return err
				}
			}

			if err != nil {
				return fmt.Errorf("%s error: %w", res.ErrorKind, err)
			}
			return nil
		},
	}
}
