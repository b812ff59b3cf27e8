package storage

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is an in-process Storer for tests and one-shot CLI runs that
// have no database configured.
type MemoryStore struct {
	mu       sync.Mutex
	capacity int
	captures []Capture // oldest first
}

// NewMemoryStore creates a MemoryStore with the given history capacity.
func NewMemoryStore(capacity int) *MemoryStore {
	if capacity <= 0 {
		capacity = DefaultHistoryCapacity
	}
	return &MemoryStore{capacity: capacity}
}

func (s *MemoryStore) SaveCapture(_ context.Context, c *Capture) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := *c
	if saved.ID == "" {
		saved.ID = uuid.NewString()
		c.ID = saved.ID
	}
	s.captures = append(s.captures, saved)
	if excess := len(s.captures) - s.capacity; excess > 0 {
		s.captures = append(s.captures[:0:0], s.captures[excess:]...)
	}
	return nil
}

func (s *MemoryStore) LastCapture(_ context.Context) (*Capture, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.captures) == 0 {
		return nil, ErrNotFound
	}
	last := s.captures[len(s.captures)-1]
	return &last, nil
}

func (s *MemoryStore) ListCaptures(_ context.Context, limit int) ([]Capture, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 || limit > len(s.captures) {
		limit = len(s.captures)
	}
	out := make([]Capture, 0, limit)
	for i := len(s.captures) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.captures[i])
	}
	return out, nil
}

func (s *MemoryStore) Close() error { return nil }
