package docs_test

import (
	"os"
	"strings"
	"testing"

	"github.com/Backland-Labs/quack/internal/capability"
	"github.com/Backland-Labs/quack/internal/cli"
	"github.com/Backland-Labs/quack/internal/doubles/registry"
)

func readREADME(t *testing.T) string {
	t.Helper()
	content, err := os.ReadFile("../../README.md")
	if err != nil {
		t.Fatal("Failed to read README.md:", err)
	}
	return string(content)
}

// TestREADMEDocumentsDoubles verifies that every registered double is listed
func TestREADMEDocumentsDoubles(t *testing.T) {
	doc := readREADME(t)

	for _, name := range registry.Names() {
		if !strings.Contains(doc, "| `"+name+"` |") {
			t.Errorf("README.md missing double: %s", name)
		}
	}
}

// TestREADMEDocumentsCommands verifies that every CLI command and flag is documented
func TestREADMEDocumentsCommands(t *testing.T) {
	doc := readREADME(t)
	root := cli.NewRootCommand()

	t.Run("Commands", func(t *testing.T) {
		for _, sub := range root.Commands() {
			if sub.Hidden || sub.Name() == "help" || sub.Name() == "completion" {
				continue
			}
			if !strings.Contains(doc, "quack "+sub.Name()) {
				t.Errorf("README.md missing command: %s", sub.Name())
			}
		}
	})

	t.Run("Flags", func(t *testing.T) {
		for _, flag := range []string{"--json", "--fail-fast", "--version"} {
			if !strings.Contains(doc, flag) {
				t.Errorf("README.md missing flag: %s", flag)
			}
		}
	})

	t.Run("Operations", func(t *testing.T) {
		for op := range capability.Arity {
			if !strings.Contains(doc, "`"+op+"`") {
				t.Errorf("README.md missing operation: %s", op)
			}
		}
	})
}

// TestREADMEDocumentsErrorKinds verifies that every error kind is named
func TestREADMEDocumentsErrorKinds(t *testing.T) {
	doc := readREADME(t)

	kinds := []capability.Kind{
		capability.KindUnsupported,
		capability.KindInvalidValue,
		capability.KindMissingKey,
		capability.KindOutOfRange,
		capability.KindInvalidSignature,
		capability.KindInternal,
	}
	for _, kind := range kinds {
		if !strings.Contains(doc, "`"+kind.String()+"`") {
			t.Errorf("README.md missing error kind: %s", kind)
		}
	}
}

// TestREADMEDocumentsConfiguration verifies that every environment variable is listed
func TestREADMEDocumentsConfiguration(t *testing.T) {
	doc := readREADME(t)

	vars := []string{
		"QUACK_SCENARIO_DIR",
		"QUACK_VERBOSITY",
		"QUACK_FAIL_FAST",
		"QUACK_OUTPUT_FORMAT",
		"QUACK_COLOR",
		"QUACK_LOG_LEVEL",
		"QUACK_LOG_FORMAT",
		"QUACK_LOG_CALLER",
		"QUACK_LOG_STACKTRACE",
	}
	for _, v := range vars {
		if !strings.Contains(doc, "`"+v+"`") {
			t.Errorf("README.md missing environment variable: %s", v)
		}
	}
}
