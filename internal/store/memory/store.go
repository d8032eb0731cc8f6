package memory

import (
	"context"
	"sync"
)

// Store keeps visitor values in process memory. It is used when Redis is
// not configured; everything is lost on restart.
type Store struct {
	mu     sync.RWMutex
	values map[string]map[string]string // visitorID -> name -> value
}

// NewStore creates an empty memory store
func NewStore() *Store {
	return &Store{
		values: make(map[string]map[string]string),
	}
}

// Get returns the value stored under name for a visitor.
func (s *Store) Get(_ context.Context, visitorID, name string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[visitorID][name]
	return v, ok, nil
}

// Set overwrites the value stored under name for a visitor.
func (s *Store) Set(_ context.Context, visitorID, name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.values[visitorID]
	if !ok {
		m = make(map[string]string, 3)
		s.values[visitorID] = m
	}
	m[name] = value
	return nil
}

// Delete removes every value of a visitor.
func (s *Store) Delete(_ context.Context, visitorID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, visitorID)
	return nil
}

// Ping always succeeds
func (s *Store) Ping(context.Context) error { return nil }

// Backend names the storage for /infra.
func (s *Store) Backend() string { return "memory" }

// Visitors returns the number of visitors with at least one value.
func (s *Store) Visitors() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.values)
}
