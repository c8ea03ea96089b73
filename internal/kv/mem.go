package kv

import (
	"maps"
	"sync"
)

// MemStore is a process-local Store. Its contents are lost on exit.
type MemStore struct {
	mu sync.Mutex
	m  map[string]string
}

var _ Store = (*MemStore)(nil)

// NewMemStore creates a MemStore seeded with the given pairs.
func NewMemStore(seed map[string]string) *MemStore {
	m := make(map[string]string, len(seed))
	maps.Copy(m, seed)
	return &MemStore{m: m}
}

func (s *MemStore) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.m[key]
	return v, ok, nil
}

func (s *MemStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
	return nil
}

func (s *MemStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
	return nil
}

func (s *MemStore) GetAll() (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.m), nil
}

func (s *MemStore) Rename(oldKey, newKey, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, oldKey)
	s.m[newKey] = value
	return nil
}

func (s *MemStore) Contains(key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.m[key]
	return ok, nil
}
