package jobs

import (
	"context"
	"sync"
	"time"
)

// Store holds job records. Implementations must support concurrent
// insert/read/delete across jobs; each record has a single writer (its own
// pipeline run) and any number of readers.
type Store interface {
	Create(ctx context.Context, record *Record) error
	Get(ctx context.Context, id string) (*Record, error)
	Update(ctx context.Context, record *Record) error
	List(ctx context.Context) ([]*Record, error)
	Delete(ctx context.Context, id string) error
}

// MemoryStore is the default in-process store.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]*Record)}
}

func (s *MemoryStore) Create(_ context.Context, record *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.ID] = clone(record)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[id]
	if !ok {
		return nil, ErrJobNotFound
	}
	return clone(record), nil
}

func (s *MemoryStore) Update(_ context.Context, record *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[record.ID]; !ok {
		return ErrJobNotFound
	}
	s.records[record.ID] = clone(record)
	return nil
}

func (s *MemoryStore) List(_ context.Context) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]*Record, 0, len(s.records))
	for _, record := range s.records {
		records = append(records, clone(record))
	}
	return records, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, id)
	return nil
}

// Sweep deletes records older than the cutoff, regardless of state, and
// returns how many were removed.
func Sweep(ctx context.Context, store Store, olderThan time.Duration) (int, error) {
	records, err := store.List(ctx)
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().Add(-olderThan)
	removed := 0
	for _, record := range records {
		if record.CreatedAt.Before(cutoff) {
			if err := store.Delete(ctx, record.ID); err != nil {
				return removed, err
			}
			removed++
		}
	}
	return removed, nil
}

func clone(record *Record) *Record {
	c := *record
	if record.Result != nil {
		result := *record.Result
		c.Result = &result
	}
	return &c
}
