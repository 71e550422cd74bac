package cache

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Store.
type MemoryStore struct {
	name string

	mu   sync.Mutex
	data map[string][]byte
	puts int
}

func NewMemoryStore(name string) *MemoryStore {
	return &MemoryStore{name: name, data: make(map[string][]byte)}
}

func (s *MemoryStore) Location(key string) string {
	return "memory://" + s.name + "/" + key
}

func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

func (s *MemoryStore) Put(ctx context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = append([]byte(nil), data...)
	s.puts++
	return nil
}

// Delete removes key, mirroring an operator deleting a cache file.
func (s *MemoryStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
}

// Puts returns how many writes the store has received.
func (s *MemoryStore) Puts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.puts
}
