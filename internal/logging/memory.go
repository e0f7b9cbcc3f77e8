package logging

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultMaxEntries caps the in-memory log buffer.
const DefaultMaxEntries = 1000

// Entry is one captured event report.
type Entry struct {
	ID        string
	Timestamp time.Time
	Component string
	Level     Level
	Module    string
	Message   string
	Data      map[string]any
}

// MemoryReporter keeps the most recent event reports in a capped buffer,
// newest first.
type MemoryReporter struct {
	mu      sync.Mutex
	max     int
	entries []Entry
}

// NewMemoryReporter creates a reporter holding at most max entries.
// A non-positive max uses DefaultMaxEntries.
func NewMemoryReporter(max int) *MemoryReporter {
	if max <= 0 {
		max = DefaultMaxEntries
	}
	return &MemoryReporter{max: max}
}

// Report captures the event at the head of the buffer, evicting the
// oldest entry when full.
func (r *MemoryReporter) Report(component string, level Level, module, message string, data map[string]any) {
	entry := Entry{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Component: component,
		Level:     level,
		Module:    module,
		Message:   message,
		Data:      data,
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append([]Entry{entry}, r.entries...)
	if len(r.entries) > r.max {
		r.entries = r.entries[:r.max]
	}
}

// Entries returns the captured reports, optionally filtered by level
// and/or module. Empty filter values match everything.
func (r *MemoryReporter) Entries(level Level, module string) []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		if level != "" && e.Level != level {
			continue
		}
		if module != "" && e.Module != module {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Clear discards all captured reports.
func (r *MemoryReporter) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
}
