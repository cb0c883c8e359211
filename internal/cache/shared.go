package cache

import (
	"fmt"
	"strings"
	"sync"

	"docnote/internal/bag"
)

// Segment is a keyed area shared by several owners. docnote stores maps
// under KeyPrefix; other owners may keep any value under their own keys.
type Segment struct {
	mu      sync.Mutex
	entries map[string]any
}

// NewSegment creates an empty segment.
func NewSegment() *Segment {
	return &Segment{entries: make(map[string]any)}
}

// DefaultSegment is the process-wide segment used by SharedStores created
// without one.
var DefaultSegment = NewSegment()

// Load returns the value under key.
func (s *Segment) Load(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.entries[key]

	return v, ok
}

// Store puts v under key, replacing any previous value.
func (s *Segment) Store(key string, v any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = v
}

// Len returns the number of keys of every owner.
func (s *Segment) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.entries)
}

// storeOnce puts v under key unless the key is present.
func (s *Segment) storeOnce(key string, v any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[key]; !ok {
		s.entries[key] = v
	}
}

func (s *Segment) deletePrefix(prefix string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for k := range s.entries {
		if strings.HasPrefix(k, prefix) {
			delete(s.entries, k)
		}
	}
}

// SharedStore keeps maps in a Segment, so every SharedStore over the same
// segment sees the same entries.
type SharedStore struct {
	seg *Segment
}

// NewSharedStore creates a store over seg, or over DefaultSegment when seg
// is nil.
func NewSharedStore(seg *Segment) *SharedStore {
	if seg == nil {
		seg = DefaultSegment
	}

	return &SharedStore{seg: seg}
}

// Key implements Store.
func (s *SharedStore) Key(raw string) string {
	return ContentKey(raw)
}

// Get implements Store.
func (s *SharedStore) Get(key string) (*bag.Map, bool, error) {
	v, ok := s.seg.Load(key)
	if !ok {
		return nil, false, nil
	}

	m, ok := v.(*bag.Map)
	if !ok {
		return nil, false, fmt.Errorf("segment key %s holds %T, not an annotation map", key, v)
	}

	return m.Clone(), true, nil
}

// Set implements Store.
func (s *SharedStore) Set(key string, m *bag.Map) error {
	s.seg.storeOnce(key, m.Clone())
	return nil
}

// Clear implements Store. Keys of other owners are kept.
func (s *SharedStore) Clear() error {
	s.seg.deletePrefix(KeyPrefix)
	return nil
}
