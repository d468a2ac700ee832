package output

import (
	"fmt"
	"io"
	"os"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
	colorBold   = "\033[1m"
)

// Printer handles colored output
type Printer struct {
	out      io.Writer
	err      io.Writer
	useColor bool
}

// NewPrinter creates a new printer with color support when stdout is a
// terminal and colors are not disabled
func NewPrinter(allowColor bool) *Printer {
	return NewPrinterForWriters(os.Stdout, os.Stderr, allowColor)
}

// NewPrinterForWriters creates a printer over out and err. Color is used
// only when out is a terminal.
func NewPrinterForWriters(out, err io.Writer, allowColor bool) *Printer {
	f, ok := out.(*os.File)
	return &Printer{
		out:      out,
		err:      err,
		useColor: allowColor && ok && isTerminal(f),
	}
}

// NewPrinterWithWriters creates a printer with custom writers (for testing)
func NewPrinterWithWriters(out, err io.Writer, useColor bool) *Printer {
	return &Printer{
		out:      out,
		err:      err,
		useColor: useColor,
	}
}

// Out returns the writer for regular output
func (p *Printer) Out() io.Writer {
	return p.out
}

// Err returns the writer for errors and warnings
func (p *Printer) Err() io.Writer {
	return p.err
}

// UseColor reports whether the printer emits ANSI colors
func (p *Printer) UseColor() bool {
	return p.useColor
}

func (p *Printer) line(w io.Writer, color, symbol, format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	if symbol != "" {
		message = symbol + " " + message
	}
	if p.useColor {
		_, _ = fmt.Fprintf(w, "%s%s%s\n", color, message, colorReset)
		return
	}
	_, _ = fmt.Fprintln(w, message)
}

// Success prints a success message in green
func (p *Printer) Success(format string, args ...interface{}) {
	p.line(p.out, colorBold+colorGreen, "✓", format, args...)
}

// Error prints an error message in red
func (p *Printer) Error(format string, args ...interface{}) {
	p.line(p.err, colorBold+colorRed, "✗", format, args...)
}

// Failure prints a failed check in red on regular output
func (p *Printer) Failure(format string, args ...interface{}) {
	p.line(p.out, colorBold+colorRed, "✗", format, args...)
}

// Warning prints a warning message in yellow
func (p *Printer) Warning(format string, args ...interface{}) {
	p.line(p.err, colorBold+colorYellow, "⚠", format, args...)
}

// Info prints an info message in cyan
func (p *Printer) Info(format string, args ...interface{}) {
	p.line(p.out, colorBold+colorCyan, "→", format, args...)
}

// Step prints a step message in blue
func (p *Printer) Step(format string, args ...interface{}) {
	p.line(p.out, colorBold+colorBlue, "▶", format, args...)
}

// Detail prints an indented detail message in gray
func (p *Printer) Detail(format string, args ...interface{}) {
	p.line(p.out, colorGray, "", "  "+format, args...)
}

// Print prints a plain message without color
func (p *Printer) Print(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(p.out, format, args...)
}

// Println prints a plain message with newline
func (p *Printer) Println(args ...interface{}) {
	_, _ = fmt.Fprintln(p.out, args...)
}

// isTerminal checks if f is a terminal
func isTerminal(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	fileInfo, err := f.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
