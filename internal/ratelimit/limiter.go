// Package ratelimit implements per-key token buckets with interval refill:
// when the refill interval has elapsed the bucket is reset to full, and
// partial refills are never accumulated.
package ratelimit

import (
	"container/list"
	"math"
	"sync"
	"time"
)

// Defaults match the documented configuration.
const (
	DefaultCapacity       = 10
	DefaultRefillInterval = 60 * time.Second
	DefaultMaxKeys        = 10_000
)

// Result is the outcome of one admission check.
type Result struct {
	Allowed bool
	// Remaining is the token count left after a successful consume, or the
	// (insufficient) count available on rejection.
	Remaining int64
	// RetryAfter is the whole seconds until the next refill, rounded up.
	// Zero when the request was admitted.
	RetryAfter int64
}

// bucket holds the refill-and-consume state for one key. Mutated only under
// the limiter mutex so the check is observed atomically.
type bucket struct {
	key          string
	tokens       int64
	lastRefillAt time.Time
}

// Config tunes a Limiter. Zero values fall back to the package defaults.
type Config struct {
	// Capacity is the bucket size and the amount restored per refill.
	Capacity int64
	// RefillInterval is how often a bucket resets to full.
	RefillInterval time.Duration
	// MaxKeys bounds the bucket map; the least-recently-used key is pruned
	// when the bound would be exceeded. Unbounded key spaces (client IPs)
	// need this to hold memory steady.
	MaxKeys int
}

// Limiter tracks one token bucket per client key. Safe for concurrent use.
type Limiter struct {
	mu       sync.Mutex
	capacity int64
	interval time.Duration
	maxKeys  int
	buckets  map[string]*list.Element
	lru      *list.List

	now func() time.Time
}

// New creates a Limiter from cfg.
func New(cfg Config) *Limiter {
	capacity := cfg.Capacity
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	interval := cfg.RefillInterval
	if interval <= 0 {
		interval = DefaultRefillInterval
	}
	maxKeys := cfg.MaxKeys
	if maxKeys <= 0 {
		maxKeys = DefaultMaxKeys
	}
	return &Limiter{
		capacity: capacity,
		interval: interval,
		maxKeys:  maxKeys,
		buckets:  make(map[string]*list.Element),
		lru:      list.New(),
		now:      time.Now,
	}
}

// TryConsume attempts to take n tokens from the key's bucket. A key seen
// for the first time starts with a full bucket.
func (l *Limiter) TryConsume(key string, n int64) Result {
	if n <= 0 {
		n = 1
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	b := l.resolve(key)
	now := l.now()

	// Interval refill: reset to capacity, never accumulate partial refills.
	if now.Sub(b.lastRefillAt) >= l.interval {
		b.tokens = l.capacity
		b.lastRefillAt = now
	}

	if b.tokens >= n {
		b.tokens -= n
		return Result{Allowed: true, Remaining: b.tokens}
	}

	wait := b.lastRefillAt.Add(l.interval).Sub(now)
	retryAfter := int64(math.Ceil(wait.Seconds()))
	if retryAfter < 0 {
		retryAfter = 0
	}
	return Result{Allowed: false, Remaining: b.tokens, RetryAfter: retryAfter}
}

// Len reports the number of tracked keys.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lru.Len()
}

// resolve returns the bucket for key, creating it full on first use and
// pruning the least-recently-used key past the map bound.
func (l *Limiter) resolve(key string) *bucket {
	if elem, exists := l.buckets[key]; exists {
		l.lru.MoveToFront(elem)
		return elem.Value.(*bucket)
	}

	b := &bucket{key: key, tokens: l.capacity, lastRefillAt: l.now()}
	l.buckets[key] = l.lru.PushFront(b)

	if l.lru.Len() > l.maxKeys {
		if oldest := l.lru.Back(); oldest != nil {
			l.lru.Remove(oldest)
			delete(l.buckets, oldest.Value.(*bucket).key)
		}
	}
	return b
}
