// Package output provides colored terminal output for quack reports.
//
// Colors are used only when stdout is a terminal, NO_COLOR is unset and the
// caller allows them. Tests construct printers over their own writers.
//
// Example usage:
//
//	printer := output.NewPrinter(cfg.Color)
//	printer.Success("%s: %d steps passed", name, n)
//	printer.Failure("step %d: got %q, want %q", i, got, want)
package output
