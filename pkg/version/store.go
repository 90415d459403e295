package version

import (
	"context"
	"sync"
)

// Store persists a single version record.
type Store interface {
	// Load returns the stored record or ErrNoRecord.
	Load(ctx context.Context) (Record, error)

	// Save overwrites the stored record.
	Save(ctx context.Context, rec Record) error
}

// MemoryStore keeps the record in process memory.
type MemoryStore struct {
	mu  sync.RWMutex
	rec *Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns the stored record.
func (s *MemoryStore) Load(context.Context) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.rec == nil {
		return Record{}, ErrNoRecord
	}
	return *s.rec, nil
}

// Save replaces the stored record.
func (s *MemoryStore) Save(_ context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rec = &rec
	return nil
}

var _ Store = (*MemoryStore)(nil)
