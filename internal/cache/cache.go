// Package cache provides a concurrency-safe TTL cache with lazy expiry and
// insertion-order eviction under count and byte-size budgets.
package cache

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

type entry[T any] struct {
	value      T
	insertedAt time.Time
	size       int
}

// Cache is a key-value store whose entries are valid for a fixed window after
// insertion. A stale entry is treated as absent on read but is not removed
// eagerly; removal happens opportunistically on the next write or when the
// count/size budget is exceeded. Eviction is in insertion order; read recency
// is irrelevant.
type Cache[T any] struct {
	mu       sync.Mutex
	ttl      time.Duration
	maxCount int
	maxBytes int
	sizeOf   func(T) int
	clock    clockwork.Clock

	entries    map[string]*entry[T]
	order      []string // insertion order, oldest first
	totalBytes int
}

// New creates a cache. maxCount <= 0 means unlimited count; maxBytes <= 0 or a
// nil sizeOf disables the byte budget. The clock is injected so TTL behavior
// is testable with a fake clock.
func New[T any](ttl time.Duration, maxCount, maxBytes int, sizeOf func(T) int, clock clockwork.Clock) *Cache[T] {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Cache[T]{
		ttl:      ttl,
		maxCount: maxCount,
		maxBytes: maxBytes,
		sizeOf:   sizeOf,
		clock:    clock,
		entries:  make(map[string]*entry[T]),
	}
}

// Get returns the cached value only if its age is still within the TTL.
// Stale entries are reported absent but left in place (lazy expiry).
func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || c.clock.Since(e.insertedAt) >= c.ttl {
		var zero T
		return zero, false
	}
	return e.value, true
}

// Put stores a value, replacing any previous entry for the key. Expired
// entries are swept first, then the oldest entries are evicted until the cache
// is back under its count and byte budgets. Last write wins under concurrency.
func (c *Cache[T]) Put(key string, value T) {
	size := 0
	if c.sizeOf != nil {
		size = c.sizeOf(value)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.removeLocked(key)
	c.sweepExpiredLocked()

	c.entries[key] = &entry[T]{value: value, insertedAt: c.clock.Now(), size: size}
	c.order = append(c.order, key)
	c.totalBytes += size

	for len(c.order) > 0 {
		overCount := c.maxCount > 0 && len(c.entries) > c.maxCount
		overBytes := c.maxBytes > 0 && c.totalBytes > c.maxBytes
		if !overCount && !overBytes {
			break
		}
		c.removeLocked(c.order[0])
	}
}

// Clear removes all entries.
func (c *Cache[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*entry[T])
	c.order = nil
	c.totalBytes = 0
}

// Len returns the number of stored entries, including expired ones that have
// not yet been swept.
func (c *Cache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache[T]) removeLocked(key string) {
	e, ok := c.entries[key]
	if !ok {
		return
	}
	delete(c.entries, key)
	c.totalBytes -= e.size
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

func (c *Cache[T]) sweepExpiredLocked() {
	now := c.clock.Now()
	for _, key := range append([]string(nil), c.order...) {
		if e, ok := c.entries[key]; ok && now.Sub(e.insertedAt) >= c.ttl {
			c.removeLocked(key)
		}
	}
}
