package inmemory

import (
	"strings"
	"sync"
	"time"
)

// defaultMaxEntries bounds a store before expired entries are swept.
const defaultMaxEntries = 4096

// TTLStore is a mutex-guarded map whose entries expire. Values pass through
// clone on the way in and out when clone is set.
type TTLStore[V any] struct {
	mu         sync.RWMutex
	items      map[string]ttlEntry[V]
	clone      func(V) V
	now        func() time.Time
	maxEntries int
}

type ttlEntry[V any] struct {
	value     V
	expiresAt time.Time
}

func NewTTLStore[V any](clone func(V) V) *TTLStore[V] {
	return NewTTLStoreWithClock(clone, time.Now)
}

// NewTTLStoreWithClock reads expiry times from now.
func NewTTLStoreWithClock[V any](clone func(V) V, now func() time.Time) *TTLStore[V] {
	return &TTLStore[V]{
		items:      make(map[string]ttlEntry[V]),
		clone:      clone,
		now:        now,
		maxEntries: defaultMaxEntries,
	}
}

func (s *TTLStore[V]) Get(key string) (V, bool) {
	var zero V
	now := s.now()

	s.mu.RLock()
	entry, ok := s.items[key]
	s.mu.RUnlock()
	if !ok {
		return zero, false
	}

	if !entry.expiresAt.After(now) {
		s.mu.Lock()
		if current, ok := s.items[key]; ok && !current.expiresAt.After(now) {
			delete(s.items, key)
		}
		s.mu.Unlock()
		return zero, false
	}
	return s.copy(entry.value), true
}

// Set stores value for ttl. A non-positive ttl removes the key.
func (s *TTLStore[V]) Set(key string, value V, ttl time.Duration) {
	if ttl <= 0 {
		s.Delete(key)
		return
	}

	now := s.now()
	s.mu.Lock()
	if len(s.items) >= s.maxEntries {
		s.sweepLocked(now)
	}
	s.items[key] = ttlEntry[V]{value: s.copy(value), expiresAt: now.Add(ttl)}
	s.mu.Unlock()
}

func (s *TTLStore[V]) Delete(key string) {
	s.mu.Lock()
	delete(s.items, key)
	s.mu.Unlock()
}

// DeletePrefix removes every key starting with prefix.
func (s *TTLStore[V]) DeletePrefix(prefix string) {
	s.mu.Lock()
	for key := range s.items {
		if strings.HasPrefix(key, prefix) {
			delete(s.items, key)
		}
	}
	s.mu.Unlock()
}

func (s *TTLStore[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// sweepLocked drops expired entries. If the store is still full it is reset.
func (s *TTLStore[V]) sweepLocked(now time.Time) {
	for key, entry := range s.items {
		if !entry.expiresAt.After(now) {
			delete(s.items, key)
		}
	}
	if len(s.items) >= s.maxEntries {
		s.items = make(map[string]ttlEntry[V])
	}
}

func (s *TTLStore[V]) copy(value V) V {
	if s.clone == nil {
		return value
	}
	return s.clone(value)
}
