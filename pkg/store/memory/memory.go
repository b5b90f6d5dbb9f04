package memory

import (
	"context"
	"sync"

	"github.com/de-tools/cost-atlas/pkg/store"
)

// Record is the contract a stored entity satisfies: a stable identity and a
// deep copy that shares no memory with the receiver.
type Record[K comparable, T any] interface {
	Key() K
	Clone() T
}

// Store is an in-memory repository keeping records in insertion order. Every
// record crossing the boundary is deep-copied, so callers never alias stored
// memory, and Update serializes read-modify-write cycles per key.
type Store[K comparable, T Record[K, T]] struct {
	mu      sync.RWMutex
	records []T
	index   map[K]int
}

func NewStore[K comparable, T Record[K, T]]() *Store[K, T] {
	return &Store[K, T]{
		index: make(map[K]int),
	}
}

// Get returns a copy of the record stored under key, or store.ErrNotFound.
func (s *Store[K, T]) Get(ctx context.Context, key K) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.index[key]
	if !ok {
		var zero T
		return zero, store.ErrNotFound
	}
	return s.records[idx].Clone(), nil
}

// Upsert stores a copy of the record. An existing record with the same key is
// replaced in place, keeping its position; a new record appends at the end.
func (s *Store[K, T]) Upsert(ctx context.Context, record T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := record.Clone()
	if idx, ok := s.index[record.Key()]; ok {
		s.records[idx] = stored
		return
	}
	s.index[record.Key()] = len(s.records)
	s.records = append(s.records, stored)
}

// Delete removes the record stored under key, or reports store.ErrNotFound.
func (s *Store[K, T]) Delete(ctx context.Context, key K) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.index[key]
	if !ok {
		return store.ErrNotFound
	}
	s.records = append(s.records[:idx], s.records[idx+1:]...)
	delete(s.index, key)
	for k, i := range s.index {
		if i > idx {
			s.index[k] = i - 1
		}
	}
	return nil
}

// List returns copies of all records in insertion order.
func (s *Store[K, T]) List(ctx context.Context) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	listed := make([]T, 0, len(s.records))
	for _, record := range s.records {
		listed = append(listed, record.Clone())
	}
	return listed
}

// Find returns a copy of the first record, in insertion order, the predicate
// accepts. The predicate runs under the store lock and must not retain or
// mutate its argument.
func (s *Store[K, T]) Find(ctx context.Context, match func(T) bool) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, record := range s.records {
		if match(record) {
			return record.Clone(), true
		}
	}
	var zero T
	return zero, false
}

// Update applies a mutation to the record stored under key as one atomic
// step: the record is copied, apply runs on the copy, and the copy replaces
// the original only when apply succeeds. On failure the stored record is
// untouched and the error is returned as-is. The result is itself a copy.
func (s *Store[K, T]) Update(ctx context.Context, key K, apply func(T) error) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	idx, ok := s.index[key]
	if !ok {
		return zero, store.ErrNotFound
	}

	updated := s.records[idx].Clone()
	if err := apply(updated); err != nil {
		return zero, err
	}
	s.records[idx] = updated
	return updated.Clone(), nil
}

// Len reports the number of stored records.
func (s *Store[K, T]) Len(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
