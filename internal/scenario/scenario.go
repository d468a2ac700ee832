// Package scenario loads and runs scripted sequences of capability calls
// against fresh doubles.
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/Backland-Labs/quack/internal/capability"
)

// Format identifies the encoding of a scenario file
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Scenario is a linear script run against one fresh double.
type Scenario struct {
	Name   string `yaml:"name" toml:"name" json:"name"`
	Double string `yaml:"double" toml:"double" json:"double"`
	Steps  []Step `yaml:"steps" toml:"steps" json:"steps"`

	// Source is the file the scenario was loaded from, if any.
	Source string `yaml:"-" toml:"-" json:"source,omitempty"`
}

// Step invokes one capability. Want is compared against the rendered
// result; a nil Want accepts any result. WantError names the error kind the
// step must fail with.
type Step struct {
	Op        string  `yaml:"op" toml:"op" json:"op"`
	Args      []any   `yaml:"args,omitempty" toml:"args,omitempty" json:"args,omitempty"`
	Want      *string `yaml:"want,omitempty" toml:"want,omitempty" json:"want,omitempty"`
	WantError string  `yaml:"want_error,omitempty" toml:"want_error,omitempty" json:"want_error,omitempty"`
}

type file struct {
	Scenarios []Scenario `yaml:"scenarios" toml:"scenarios"`
}

// FormatFromPath picks a format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported scenario file extension %q", filepath.Ext(path))
	}
}

// Load reads and validates every scenario in path.
func Load(path string) ([]Scenario, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	scenarios, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	for i := range scenarios {
		scenarios[i].Source = path
	}
	return scenarios, nil
}

// Parse decodes and validates scenarios. Unknown fields are rejected.
func Parse(data []byte, format Format) ([]Scenario, error) {
	var f file
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("invalid yaml: %w", err)
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), &f)
		if err != nil {
			return nil, fmt.Errorf("invalid toml: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("invalid toml: unknown field %q", undecoded[0].String())
		}
	default:
		return nil, fmt.Errorf("unknown scenario format %q", format)
	}

	if len(f.Scenarios) == 0 {
		return nil, errors.New("no scenarios defined")
	}
	for i := range f.Scenarios {
		if err := f.Scenarios[i].Validate(); err != nil {
			return nil, fmt.Errorf("scenario %d: %w", i+1, err)
		}
	}
	return f.Scenarios, nil
}

// Validate checks that a scenario can be run. Arity is left to the run so a
// step can expect an invalid-call-signature error.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return errors.New("name is required")
	}
	if s.Double == "" {
		return fmt.Errorf("%s: double is required", s.Name)
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("%s: at least one step is required", s.Name)
	}
	for i, step := range s.Steps {
		if step.Op == "" {
			return fmt.Errorf("%s: step %d: op is required", s.Name, i+1)
		}
		if step.WantError != "" {
			if _, err := capability.ParseKind(step.WantError); err != nil {
				return fmt.Errorf("%s: step %d: %w", s.Name, i+1, err)
			}
			if step.Want != nil {
				return fmt.Errorf("%s: step %d: want and want_error are exclusive", s.Name, i+1)
			}
		}
	}
	return nil
}

// normalizeArg turns decoded lists of strings into []string, which is what
// sequence writes accept.
func normalizeArg(arg any) any {
	list, ok := arg.([]any)
	if !ok {
		return arg
	}
	out := make([]string, 0, len(list))
	for _, e := range list {
		s, ok := e.(string)
		if !ok {
			return arg
		}
		out = append(out, s)
	}
	return out
}
