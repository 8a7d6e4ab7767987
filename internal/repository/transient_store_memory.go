package repository

import (
	"context"
	"sync"
	"time"
)

type memEntry struct {
	value     []byte
	expiresAt time.Time
	hasTTL    bool
}

func (e memEntry) expiredAt(now time.Time) bool {
	return e.hasTTL && !now.Before(e.expiresAt)
}

type memoryTransientStore struct {
	mu      sync.RWMutex
	entries map[string]memEntry
	now     func() time.Time
}

// NewMemoryTransientStore returns a process-local store. Entries expire lazily on read.
func NewMemoryTransientStore() TransientStore {
	return NewMemoryTransientStoreWithClock(time.Now)
}

// NewMemoryTransientStoreWithClock is NewMemoryTransientStore with an injectable clock.
func NewMemoryTransientStoreWithClock(now func() time.Time) TransientStore {
	return &memoryTransientStore{
		entries: make(map[string]memEntry),
		now:     now,
	}
}

func (s *memoryTransientStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := memEntry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		entry.hasTTL = true
		entry.expiresAt = s.now().Add(ttl)
	}
	s.entries[key] = entry
	return nil
}

func (s *memoryTransientStore) Get(_ context.Context, key string) ([]byte, error) {
	entry, ok := s.lookup(key)
	if !ok {
		return nil, nil
	}
	return entry.value, nil
}

func (s *memoryTransientStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

func (s *memoryTransientStore) Exists(_ context.Context, key string) (bool, error) {
	_, ok := s.lookup(key)
	return ok, nil
}

func (s *memoryTransientStore) TTL(_ context.Context, key string) (time.Duration, error) {
	entry, ok := s.lookup(key)
	if !ok {
		return 0, nil
	}
	if !entry.hasTTL {
		return 0, ErrNoExpiry
	}
	return entry.expiresAt.Sub(s.now()), nil
}

// lookup returns the live entry for key, evicting it if it has expired.
func (s *memoryTransientStore) lookup(key string) (memEntry, bool) {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return memEntry{}, false
	}

	if entry.expiredAt(s.now()) {
		s.mu.Lock()
		// Re-check under the write lock; a concurrent Set may have refreshed it.
		if cur, still := s.entries[key]; still && cur.expiredAt(s.now()) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return memEntry{}, false
	}
	return entry, true
}
