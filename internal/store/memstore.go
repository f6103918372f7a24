package store

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemStore is an in-memory implementation of Storer.
type MemStore struct {
	mu      sync.RWMutex
	entries []*HistoryEntry
	byID    map[string]*HistoryEntry
}

// NewMemStore creates a new in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{byID: make(map[string]*HistoryEntry)}
}

// Close is a no-op for MemStore.
func (s *MemStore) Close() error {
	return nil
}

func (s *MemStore) AppendHistory(entry *HistoryEntry) error {
	prepareEntry(entry)

	s.mu.Lock()
	defer s.mu.Unlock()

	// Deep copy to avoid mutation issues
	c := cloneEntry(entry)
	s.entries = append(s.entries, c)
	s.byID[c.ID] = c
	return nil
}

func (s *MemStore) GetHistory(id string) (*HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if e, ok := s.byID[id]; ok {
		return cloneEntry(e), nil
	}
	return nil, nil
}

func (s *MemStore) ListHistory(limit int) ([]*HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.entries)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]*HistoryEntry, 0, n)
	for i := len(s.entries) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, cloneEntry(s.entries[i]))
	}
	return out, nil
}

func (s *MemStore) CountHistory() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries), nil
}

func (s *MemStore) ClearHistory() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	s.byID = make(map[string]*HistoryEntry)
	return nil
}

// prepareEntry fills the generated fields of a new entry.
func prepareEntry(entry *HistoryEntry) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt == 0 {
		entry.CreatedAt = time.Now().UnixMilli()
	}
	if entry.Movies == nil {
		entry.Movies = []MovieRef{}
	}
}

func cloneEntry(e *HistoryEntry) *HistoryEntry {
	c := *e
	c.Movies = append([]MovieRef{}, e.Movies...)
	return &c
}
