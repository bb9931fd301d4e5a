// Package report implements the dashboard pipeline: an ordered set of
// section producers that query the note index, normalise the rows, and
// render them into navigable text surfaces.
package report

import (
	"sync"
	"time"
)

// Diagnostic records one non-fatal query failure, attributed to the section
// that issued the query.
type Diagnostic struct {
	Time    time.Time `json:"time"`
	Section string    `json:"section,omitempty"`
	Message string    `json:"message"`
}

// Log is the process-wide diagnostic log. Entries accumulate across refresh
// cycles; the unseen flag tracks whether the current cycle recorded anything
// and is cleared by BeginCycle.
type Log struct {
	mu      sync.Mutex
	entries []Diagnostic
	cycle   int // index of the first entry of the current cycle
	unseen  bool
}

// NewLog creates an empty diagnostic log.
func NewLog() *Log {
	return &Log{}
}

// BeginCycle marks the start of a refresh: the unseen flag is cleared and
// subsequent entries belong to the new cycle.
func (l *Log) BeginCycle() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cycle = len(l.entries)
	l.unseen = false
}

// Append records a diagnostic for the given section and raises the unseen flag.
func (l *Log) Append(section, message string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, Diagnostic{
		Time:    time.Now(),
		Section: section,
		Message: message,
	})
	l.unseen = true
}

// Unseen reports whether the current cycle recorded any diagnostic.
func (l *Log) Unseen() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.unseen
}

// CycleEntries returns a copy of the diagnostics recorded since BeginCycle.
func (l *Log) CycleEntries() []Diagnostic {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Diagnostic, len(l.entries)-l.cycle)
	copy(out, l.entries[l.cycle:])
	return out
}

// Entries returns a copy of every diagnostic recorded since process start.
func (l *Log) Entries() []Diagnostic {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Diagnostic, len(l.entries))
	copy(out, l.entries)
	return out
}
