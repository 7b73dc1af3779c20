package storage

import (
	"fmt"
	"sync"
)

// MemoryStore keeps values for the lifetime of the process. It backs tests
// and the degraded mode entered when durable storage is unavailable.
type MemoryStore struct {
	values map[string]string
	mu     sync.Mutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: map[string]string{}}
}

func (s *MemoryStore) Get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.values[key]
	if !ok {
		return "", fmt.Errorf("failed getting key=%s with error=%w", key, ErrKeyNotFound)
	}
	return value, nil
}

func (s *MemoryStore) Set(key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return nil
}

func (s *MemoryStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)
	return nil
}
