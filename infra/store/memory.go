package store

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore keeps runs in process memory.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]Run
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string]Run{}}
}

// Save inserts or replaces r.
func (s *MemoryStore) Save(_ context.Context, r Run) error {
	s.mu.Lock()
	s.data[r.ID] = r
	s.mu.Unlock()
	return nil
}

// Get returns the run with the given id.
func (s *MemoryStore) Get(_ context.Context, id string) (Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.data[id]
	if !ok {
		return Run{}, ErrNotFound
	}
	return r, nil
}

// List returns summaries newest first, ties by id.
func (s *MemoryStore) List(_ context.Context, limit int) ([]Summary, error) {
	s.mu.RLock()
	res := make([]Summary, 0, len(s.data))
	for _, r := range s.data {
		res = append(res, r.Summary())
	}
	s.mu.RUnlock()
	sort.Slice(res, func(i, j int) bool {
		if !res[i].CreatedAt.Equal(res[j].CreatedAt) {
			return res[i].CreatedAt.After(res[j].CreatedAt)
		}
		return res[i].ID < res[j].ID
	})
	if limit > 0 && len(res) > limit {
		res = res[:limit]
	}
	return res, nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }
