package core

import (
	"context"
	"sync"
)

// HistoryStore persists a record of completed imports.
type HistoryStore interface {
	Record(ctx context.Context, entry HistoryEntry) error
	Recent(ctx context.Context, limit int) ([]HistoryEntry, error)
	Get(ctx context.Context, id string) (HistoryEntry, error)
}

// MemoryHistory is a bounded in-process HistoryStore. Once full, the oldest
// entry is dropped for each new one.
type MemoryHistory struct {
	mu      sync.RWMutex
	entries []HistoryEntry // oldest first
	max     int
}

// NewMemoryHistory keeps at most max entries (100 if max is not positive).
func NewMemoryHistory(max int) *MemoryHistory {
	if max <= 0 {
		max = 100
	}
	return &MemoryHistory{max: max}
}

// Record implements HistoryStore.
func (h *MemoryHistory) Record(_ context.Context, entry HistoryEntry) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = append(h.entries, entry)
	if over := len(h.entries) - h.max; over > 0 {
		h.entries = append(h.entries[:0:0], h.entries[over:]...)
	}
	return nil
}

// Recent implements HistoryStore. Entries are returned newest first.
func (h *MemoryHistory) Recent(_ context.Context, limit int) ([]HistoryEntry, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if limit <= 0 || limit > len(h.entries) {
		limit = len(h.entries)
	}
	out := make([]HistoryEntry, 0, limit)
	for i := len(h.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, h.entries[i])
	}
	return out, nil
}

// Get implements HistoryStore.
func (h *MemoryHistory) Get(_ context.Context, id string) (HistoryEntry, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, e := range h.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return HistoryEntry{}, ErrHistoryNotFound
}
