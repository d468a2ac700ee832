package cli

import (
	"bytes"
	"io"
)

// PrefixWriter wraps an io.Writer and prefixes each line with a scenario
// file label
type PrefixWriter struct {
	writer      io.Writer
	prefix      []byte
	atLineStart bool
}

// ANSI color codes cycled by file index
var prefixColors = []string{
	"\033[32m", // Green
	"\033[34m", // Blue
	"\033[36m", // Cyan
	"\033[35m", // Magenta
	"\033[33m", // Yellow
}

// NewPrefixWriter creates a new prefix writer
func NewPrefixWriter(w io.Writer, label string, useColor bool, colorIndex int) *PrefixWriter {
	prefix := "[" + label + "]"
	if useColor {
		prefix = prefixColors[colorIndex%len(prefixColors)] + prefix + "\033[0m"
	}
	return &PrefixWriter{
		writer:      w,
		prefix:      []byte(prefix + " "),
		atLineStart: true,
	}
}

// Write implements io.Writer. A partial line keeps the next write on the
// same line.
func (pw *PrefixWriter) Write(p []byte) (int, error) {
	var out bytes.Buffer
	rest := p
	for len(rest) > 0 {
		if pw.atLineStart {
			out.Write(pw.prefix)
			pw.atLineStart = false
		}
		i := bytes.IndexByte(rest, '\n')
		if i < 0 {
			out.Write(rest)
			break
		}
		out.Write(rest[:i+1])
		rest = rest[i+1:]
		pw.atLineStart = true
	}
	if _, err := pw.writer.Write(out.Bytes()); err != nil {
		return 0, err
	}
	return len(p), nil
}
