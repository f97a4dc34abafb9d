package store

import (
	"context"
	"slices"
	"sync"
	"time"
)

// MemoryStore is a thread-safe in-memory cache store. It backs tests
// and single-process local runs; semantics mirror the Redis store,
// including the atomic conditional stamp.
type MemoryStore struct {
	mu         sync.RWMutex
	timestamps map[string]time.Time
	lists      map[string][]string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		timestamps: make(map[string]time.Time),
		lists:      make(map[string][]string),
	}
}

// GetTimestamp returns the stored timestamp, or the zero time when
// absent.
func (s *MemoryStore) GetTimestamp(_ context.Context, key string) (time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.timestamps[key], nil
}

// SetTimestamp overwrites the stored timestamp.
func (s *MemoryStore) SetTimestamp(_ context.Context, key string, ts time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timestamps[key] = ts
	return nil
}

// ClaimRefresh stamps now under key iff the stored timestamp is at
// least threshold old or absent. Check and stamp happen under one lock.
func (s *MemoryStore) ClaimRefresh(_ context.Context, key string, now time.Time, threshold time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if last, ok := s.timestamps[key]; ok && now.Sub(last) < threshold {
		return false, nil
	}
	s.timestamps[key] = now
	return true, nil
}

// PeekFront returns the head of a list.
func (s *MemoryStore) PeekFront(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := s.lists[key]
	if len(list) == 0 {
		return "", false, nil
	}
	return list[0], true, nil
}

// Length returns the number of elements in a list.
func (s *MemoryStore) Length(_ context.Context, key string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.lists[key])), nil
}

// Range returns list elements from start to stop inclusive, head first.
// Negative indexes count from the tail, matching Redis LRANGE.
func (s *MemoryStore) Range(_ context.Context, key string, start, stop int64) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := s.lists[key]
	n := int64(len(list))

	if start < 0 {
		start += n
	}
	if stop < 0 {
		stop += n
	}
	if start < 0 {
		start = 0
	}
	if stop >= n {
		stop = n - 1
	}
	if n == 0 || start > stop || start >= n {
		return nil, nil
	}

	return slices.Clone(list[start : stop+1]), nil
}

// PushFront pushes elements ahead of prior content, preserving their
// relative order.
func (s *MemoryStore) PushFront(_ context.Context, key string, elements ...string) error {
	if len(elements) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lists[key] = append(slices.Clone(elements), s.lists[key]...)
	return nil
}

// Verify MemoryStore implements CacheStore
var _ CacheStore = (*MemoryStore)(nil)
