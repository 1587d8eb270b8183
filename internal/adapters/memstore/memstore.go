// Package memstore provides in-memory session storage for tests and for the
// "memory" backend, where sessions deliberately last only one process.
package memstore

import (
	"context"
	"sync"

	"github.com/mocksmith/adminctl/internal/ports"
)

// Store keeps session keys in a mutex-guarded map.
type Store struct {
	mu     sync.Mutex
	values map[string]string
}

var _ ports.Storage = (*Store)(nil)

// New creates an empty Store.
func New() *Store {
	return &Store{values: map[string]string{}}
}

func (s *Store) Read(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.values[key]
	if !ok {
		return "", ports.ErrNotFound
	}
	return value, nil
}

func (s *Store) Write(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

// Len reports the number of stored keys. Test helper.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.values)
}
