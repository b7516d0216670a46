// Package kvstore implements the durable key-value store and the client-scoped
// repositories built on top of it.
package kvstore

import (
	"context"
	"sync"

	"storefront/internal/domain/repository"
)

type memoryStore struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewMemoryStore keeps entries in process memory. Nothing survives a restart.
func NewMemoryStore() repository.KVStore {
	return &memoryStore{entries: make(map[string]string)}
}

func (s *memoryStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.entries[key]
	if !ok {
		return "", repository.ErrKeyNotFound
	}

	return value, nil
}

func (s *memoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = value

	return nil
}

func (s *memoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)

	return nil
}

func (s *memoryStore) Close() error {
	return nil
}
