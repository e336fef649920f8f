// Package cache implements a bounded in-process cache with LRU eviction
// and expire-after-access semantics, plus a read-through helper so write
// paths can invalidate explicitly.
package cache

import (
	"container/list"
	"sync"
	"time"
)

// entry is one cached value with its access bookkeeping. Position in the
// LRU list encodes lastAccessedAt ordering; insertedAt breaks ties for
// entries that were never touched after insertion.
type entry[K comparable, V any] struct {
	key            K
	value          V
	insertedAt     time.Time
	lastAccessedAt time.Time
}

// Cache is safe for concurrent use. A zero capacity or TTL falls back to
// the defaults (500 entries, 10 minutes).
type Cache[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	items    map[K]*list.Element
	lru      *list.List

	now func() time.Time

	// Optional observers, invoked outside hot paths only by name.
	onHit  func()
	onMiss func()
}

const (
	defaultCapacity = 500
	defaultTTL      = 10 * time.Minute
)

// New creates a cache bounded to capacity entries whose entries expire
// when unread for ttl.
func New[K comparable, V any](capacity int, ttl time.Duration) *Cache[K, V] {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Cache[K, V]{
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[K]*list.Element),
		lru:      list.New(),
		now:      time.Now,
	}
}

// Observe registers hit/miss callbacks (used for metrics). Either may be nil.
func (c *Cache[K, V]) Observe(onHit, onMiss func()) {
	c.onHit = onHit
	c.onMiss = onMiss
}

// Get returns the cached value and refreshes its last-access time.
// Entries whose TTL elapsed since the last access are removed lazily.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	elem, exists := c.items[key]
	if !exists {
		c.miss()
		return zero, false
	}

	ent := elem.Value.(*entry[K, V])
	now := c.now()
	if now.Sub(ent.lastAccessedAt) > c.ttl {
		c.removeElement(elem)
		c.miss()
		return zero, false
	}

	ent.lastAccessedAt = now
	c.lru.MoveToFront(elem)
	c.hit()
	return ent.value, true
}

// Put stores a value, evicting the least-recently-accessed entry when the
// capacity bound would be exceeded.
func (c *Cache[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if elem, exists := c.items[key]; exists {
		ent := elem.Value.(*entry[K, V])
		ent.value = value
		ent.lastAccessedAt = now
		c.lru.MoveToFront(elem)
		return
	}

	elem := c.lru.PushFront(&entry[K, V]{
		key:            key,
		value:          value,
		insertedAt:     now,
		lastAccessedAt: now,
	})
	c.items[key] = elem

	if c.lru.Len() > c.capacity {
		if oldest := c.lru.Back(); oldest != nil {
			c.removeElement(oldest)
		}
	}
}

// GetOrLoad returns the cached value or invokes loader on a miss. Only
// successful loads are cached; a loader error is returned as-is and
// nothing is stored, so not-found results are never cached.
func (c *Cache[K, V]) GetOrLoad(key K, loader func() (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	v, err := loader()
	if err != nil {
		return v, err
	}
	c.Put(key, v)
	return v, nil
}

// Invalidate removes a single key.
func (c *Cache[K, V]) Invalidate(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if elem, exists := c.items[key]; exists {
		c.removeElement(elem)
	}
}

// InvalidateAll drops every entry.
func (c *Cache[K, V]) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[K]*list.Element)
	c.lru.Init()
}

// Len reports the number of live entries, counting entries whose TTL has
// elapsed but which have not been touched since.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// Sweep proactively removes entries unread for longer than the TTL.
// Invalidation on writes does not depend on it; it only bounds memory for
// keys that are never read again.
func (c *Cache[K, V]) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for elem := c.lru.Back(); elem != nil; {
		prev := elem.Prev()
		ent := elem.Value.(*entry[K, V])
		if now.Sub(ent.lastAccessedAt) > c.ttl {
			c.removeElement(elem)
			removed++
		}
		elem = prev
	}
	return removed
}

func (c *Cache[K, V]) removeElement(elem *list.Element) {
	c.lru.Remove(elem)
	delete(c.items, elem.Value.(*entry[K, V]).key)
}

func (c *Cache[K, V]) hit() {
	if c.onHit != nil {
		c.onHit()
	}
}

func (c *Cache[K, V]) miss() {
	if c.onMiss != nil {
		c.onMiss()
	}
}
