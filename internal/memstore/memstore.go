// Package memstore is the ordered in-memory record store behind the memory repositories.
package memstore

import (
	"slices"
	"sync"
)

// Record is anything with an integer id the store can assign.
type Record[T any] interface {
	GetId() int
	WithId(id int) T
}

// Store keeps records in insertion order. New records get the highest existing id
// plus one, so ids of deleted tail records can come back. Reads return copies.
type Store[T Record[T]] struct {
	mu      sync.RWMutex
	records []T
}

func New[T Record[T]]() *Store[T] {
	return &Store[T]{records: make([]T, 0)}
}

func (s *Store[T]) All() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.records)
}

func (s *Store[T]) Get(id int) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.records[i], true
	}
	var zero T
	return zero, false
}

// Insert assigns the next id to record, appends it and returns the id.
func (s *Store[T]) Insert(record T) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	maxId := 0
	for _, r := range s.records {
		maxId = max(maxId, r.GetId())
	}
	id := maxId + 1
	s.records = append(s.records, record.WithId(id))
	return id
}

// Replace swaps the stored record with the same id. It reports false when the id is absent.
func (s *Store[T]) Replace(record T) bool {
	return s.Modify(record.GetId(), func(stored *T) { *stored = record })
}

// Modify applies fn to the stored record in place.
func (s *Store[T]) Modify(id int, fn func(*T)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	fn(&s.records[i])
	return true
}

func (s *Store[T]) Remove(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.records = slices.Delete(s.records, i, i+1)
	return true
}

func (s *Store[T]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make([]T, 0)
}

func (s *Store[T]) indexOf(id int) int {
	return slices.IndexFunc(s.records, func(r T) bool { return r.GetId() == id })
}
