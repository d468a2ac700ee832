// Package accesslog records an ordered, run-length-encoded history of
// operation tags.
package accesslog

import (
	"strconv"
	"strings"
)

// Entry is one run of identical consecutive tags.
type Entry struct {
	Tag   string
	Count int
}

// Log is append-only. The zero value is an empty log.
type Log struct {
	entries []Entry
}

// Append records tag, collapsing it into the last entry when the tags match.
func (l *Log) Append(tag string) {
	if n := len(l.entries); n > 0 && l.entries[n-1].Tag == tag {
		l.entries[n-1].Count++
		return
	}
	l.entries = append(l.entries, Entry{Tag: tag, Count: 1})
}

// Entries returns a copy of the recorded entries.
func (l *Log) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of entries, not the number of appends.
func (l *Log) Len() int {
	return len(l.entries)
}

// String renders the current entries.
func (l *Log) String() string {
	return Render(l.entries)
}

// Render joins entries with ";". An entry with a count above one renders as
// tag*count.
func Render(entries []Entry) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Count > 1 {
			parts = append(parts, e.Tag+"*"+strconv.Itoa(e.Count))
			continue
		}
		parts = append(parts, e.Tag)
	}
	return strings.Join(parts, ";")
}
