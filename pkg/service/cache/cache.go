package cache

import (
	"strings"
	"sync"
	"time"
)

// DefaultTTL is how long entries live unless overridden per entry
const DefaultTTL = 5 * time.Minute

// Clock supplies the current time; injected so tests control expiry
type Clock func() time.Time

// Cache is a process-wide, time-expiring, prefix-invalidatable store used in
// front of repository reads. Values are stored as-is and shared between
// readers; callers must treat returned values as immutable snapshots.
type Cache struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	clock   Clock
}

type entry struct {
	value     any
	expiresAt time.Time
}

type Option func(*Cache)

// WithTTL overrides the default entry lifetime
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		c.ttl = ttl
	}
}

// WithClock injects a time source
func WithClock(clock Clock) Option {
	return func(c *Cache) {
		c.clock = clock
	}
}

func New(opts ...Option) *Cache {
	c := &Cache{
		entries: make(map[string]entry),
		ttl:     DefaultTTL,
		clock:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the value stored under key. An expired entry is evicted and
// reported as absent.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.clock().After(e.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

// Set stores value under key with the default TTL
func (c *Cache) Set(key string, value any) {
	c.SetTTL(key, value, c.ttl)
}

// SetTTL stores value under key with an explicit TTL
func (c *Cache) SetTTL(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{
		value:     value,
		expiresAt: c.clock().Add(ttl),
	}
}

// Invalidate removes all entries whose key starts with prefix and returns the
// number evicted. An empty prefix clears the whole cache.
func (c *Cache) Invalidate(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if prefix == "" {
		n := len(c.entries)
		c.entries = make(map[string]entry)
		return n
	}

	n := 0
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
			n++
		}
	}
	return n
}

// Len reports the number of entries, including not-yet-evicted expired ones
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
