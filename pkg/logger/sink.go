package logger

import (
	"context"
	"sort"
	"sync"
)

// MemorySink keeps the most recent aggregated entries in a bounded ring.
type MemorySink struct {
	mu      sync.RWMutex
	entries []AggregatedLogEntry
	next    int
	full    bool
}

// NewMemorySink creates a sink holding at most capacity entries.
func NewMemorySink(capacity int) *MemorySink {
	if capacity <= 0 {
		capacity = 500
	}
	return &MemorySink{entries: make([]AggregatedLogEntry, capacity)}
}

func (s *MemorySink) Write(_ context.Context, entries []AggregatedLogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range entries {
		s.entries[s.next] = e
		s.next = (s.next + 1) % len(s.entries)
		if s.next == 0 {
			s.full = true
		}
	}
	return nil
}

// Recent returns up to limit entries, most recently seen first.
func (s *MemorySink) Recent(limit int) []AggregatedLogEntry {
	s.mu.RLock()
	var out []AggregatedLogEntry
	if s.full {
		out = make([]AggregatedLogEntry, len(s.entries))
		copy(out, s.entries)
	} else {
		out = make([]AggregatedLogEntry, s.next)
		copy(out, s.entries[:s.next])
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].LastSeen.After(out[j].LastSeen) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
