package inmemory

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fixedStore(now *time.Time) *TTLStore[string] {
	store := NewTTLStore[string](nil)
	store.now = func() time.Time { return *now }
	return store
}

func TestTTLStoreExpiry(t *testing.T) {
	now := time.Date(2025, 12, 1, 12, 0, 0, 0, time.UTC)
	store := fixedStore(&now)

	store.Set("k", "v", time.Minute)
	got, ok := store.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", got)

	now = now.Add(time.Minute)
	_, ok = store.Get("k")
	assert.False(t, ok)
	assert.Zero(t, store.Len())
}

func TestTTLStoreNonPositiveTTLDeletes(t *testing.T) {
	now := time.Now()
	store := fixedStore(&now)

	store.Set("k", "v", time.Minute)
	store.Set("k", "w", 0)
	_, ok := store.Get("k")
	assert.False(t, ok)
}

func TestTTLStoreDeletePrefix(t *testing.T) {
	store := NewTTLStore[string](nil)
	store.Set("u1|2026-02|UTC|5", "a", time.Minute)
	store.Set("u1|2026-03|UTC|5", "b", time.Minute)
	store.Set("u10|2026-02|UTC|5", "c", time.Minute)

	store.DeletePrefix("u1|")

	_, ok := store.Get("u1|2026-02|UTC|5")
	assert.False(t, ok)
	got, ok := store.Get("u10|2026-02|UTC|5")
	assert.True(t, ok)
	assert.Equal(t, "c", got)
	assert.Equal(t, 1, store.Len())
}

func TestTTLStoreWithClock(t *testing.T) {
	now := time.Date(2025, 12, 1, 12, 0, 0, 0, time.UTC)
	store := NewTTLStoreWithClock[string](nil, func() time.Time { return now })

	store.Set("k", "v", time.Minute)
	now = now.Add(59 * time.Second)
	_, ok := store.Get("k")
	assert.True(t, ok)

	now = now.Add(time.Second)
	_, ok = store.Get("k")
	assert.False(t, ok)
}

func TestTTLStoreSweepsWhenFull(t *testing.T) {
	now := time.Date(2025, 12, 1, 12, 0, 0, 0, time.UTC)
	store := fixedStore(&now)
	store.maxEntries = 3

	store.Set("old-1", "x", time.Second)
	store.Set("old-2", "x", time.Second)
	store.Set("live", "x", time.Hour)

	now = now.Add(2 * time.Second)
	store.Set("new", "y", time.Hour)
	assert.Equal(t, 2, store.Len())

	for i := 0; i < 3; i++ {
		store.Set("fill-"+strconv.Itoa(i), "z", time.Hour)
	}
	assert.LessOrEqual(t, store.Len(), 3)
}
