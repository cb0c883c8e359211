package cache

import (
	"strings"
	"sync"

	"docnote/internal/bag"
)

// MemoryStore keeps maps in memory for the lifetime of the store.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*bag.Map
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]*bag.Map)}
}

// Key implements Store.
func (s *MemoryStore) Key(raw string) string {
	return ContentKey(raw)
}

// Get implements Store.
func (s *MemoryStore) Get(key string) (*bag.Map, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.entries[key]
	if !ok {
		return nil, false, nil
	}

	return m.Clone(), true, nil
}

// Set implements Store.
func (s *MemoryStore) Set(key string, m *bag.Map) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[key]; !ok {
		s.entries[key] = m.Clone()
	}

	return nil
}

// Clear implements Store.
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for k := range s.entries {
		if strings.HasPrefix(k, KeyPrefix) {
			delete(s.entries, k)
		}
	}

	return nil
}

// Len returns the number of stored keys.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.entries)
}
