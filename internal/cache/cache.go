// Package cache provides bounded response caching for the Tokenboard data
// consistency layer. Every read the dashboard performs flows through this
// package, which keeps rate-limited token API endpoints reachable under
// bursty UI access patterns (rapid tab switches, list scrolling, watch mode).
//
// CACHING ARCHITECTURE:
// The cache combines three mechanisms behind a single mutex-guarded store:
//
//   - LRU Bound: a fixed entry budget with least-recently-used eviction,
//     tracked via an access-ordered list (most recent at the front)
//   - Per-Entry TTL: each entry carries its own lifetime; expired entries
//     are deleted when read, never by a background sweeper
//   - Stale-While-Revalidate: entries older than half their TTL are served
//     immediately while a background refresh replaces them
//
// FRESHNESS MODEL:
// An entry's age divides its lifetime into three phases:
//
//	fresh (age < ttl/2) -> served directly, no fetch
//	stale (ttl/2 <= age < ttl) -> served, background refresh triggered
//	expired (age >= ttl) -> deleted on read, treated as a miss
//
// FETCH DEDUPLICATION:
// All fetches run through a singleflight group keyed by cache key, so
// concurrent misses and overlapping background refreshes of the same key
// collapse into one upstream request. Background refresh failures are
// swallowed at debug level; the stale entry stays serveable until it
// expires outright.
package cache

import (
	"container/list"
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tokenboard/tokenboard/internal/config"
	"github.com/tokenboard/tokenboard/internal/logging"
	"github.com/tokenboard/tokenboard/internal/validate"
	"golang.org/x/sync/singleflight"
)

// Config holds response cache configuration parameters. TTLs are not part of
// the cache configuration: each Set and GetOrFetch call supplies the lifetime
// for its key, since different response classes (token detail, search
// results, holder balances) age at different rates.
type Config struct {
	MaxSize int `json:"max_size"` // Maximum cached entries before LRU eviction
}

// DefaultConfig returns cache configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		MaxSize: config.DefaultCacheMaxSize,
	}
}

// Validate checks if the cache configuration is valid
func (c *Config) Validate() error {
	return validate.ValidatePositiveCount(c.MaxSize, "cache max size")
}

// FetchFunc produces a fresh value for a cache key. Fetch functions are the
// only source of errors in this package; cache operations themselves never
// fail.
type FetchFunc func(ctx context.Context) (any, error)

// Hit describes a successful cache read. Age is how long ago the value was
// stored and Fresh reports whether the entry is still in the first half of
// its lifetime (stale entries are served but should be revalidated).
type Hit struct {
	Value any           // Cached response payload
	Age   time.Duration // Time since the value was stored
	Fresh bool          // Whether age < ttl/2
}

// Stats holds cache performance metrics for monitoring and debugging cache
// effectiveness. Counters accumulate over the cache's lifetime.
type Stats struct {
	Hits      int64   `json:"hits"`      // Reads served from cache (fresh or stale)
	Misses    int64   `json:"misses"`    // Reads that required a synchronous fetch
	Refreshes int64   `json:"refreshes"` // Background refresh attempts
	Evictions int64   `json:"evictions"` // Entries removed by the LRU bound
	Expiries  int64   `json:"expiries"`  // Entries deleted on read after TTL
	Entries   int     `json:"entries"`   // Current cache size
	HitRate   float64 `json:"hit_rate"`  // Cache hit percentage
}

// entry is a single cached response with its own lifetime. Entries live as
// values of the access-order list; the map points at their list elements.
type entry struct {
	key      string
	value    any
	storedAt time.Time
	ttl      time.Duration
}

// Cache is a bounded LRU response cache with per-entry TTLs and
// stale-while-revalidate reads. Safe for concurrent use; one mutex guards
// the map and access order while metrics use atomic counters.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*list.Element
	order   *list.List // Front is most recently used, evict from the back
	maxSize int

	flights singleflight.Group

	// Performance metrics (atomic for lock-free updates)
	hitCount     int64
	missCount    int64
	refreshCount int64
	evictCount   int64
	expireCount  int64
}

// New creates a response cache with the given configuration
func New(cfg *Config) (*Cache, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Cache{
		entries: make(map[string]*list.Element),
		order:   list.New(),
		maxSize: cfg.MaxSize,
	}, nil
}

// Get returns the cached value for key if present and unexpired. An expired
// entry is deleted on the spot and reported as a miss. A hit promotes the
// entry to most recently used and reports its age and freshness.
func (c *Cache) Get(key string) (*Hit, bool) {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		atomic.AddInt64(&c.missCount, 1)
		return nil, false
	}

	ent := elem.Value.(*entry)
	age := now.Sub(ent.storedAt)
	if age >= ent.ttl {
		c.removeElement(elem)
		atomic.AddInt64(&c.expireCount, 1)
		atomic.AddInt64(&c.missCount, 1)
		logging.Debug("Cache entry expired for %s (age: %v, ttl: %v)",
			key, age.Round(time.Millisecond), ent.ttl)
		return nil, false
	}

	c.order.MoveToFront(elem)
	atomic.AddInt64(&c.hitCount, 1)
	return &Hit{Value: ent.value, Age: age, Fresh: age < ent.ttl/2}, true
}

// Set stores value under key with the given lifetime. Overwriting an
// existing key replaces its value and restarts its lifetime. New entries
// evict from the least recently used end while the cache is over capacity.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		ent := elem.Value.(*entry)
		ent.value = value
		ent.storedAt = now
		ent.ttl = ttl
		c.order.MoveToFront(elem)
		return
	}

	elem := c.order.PushFront(&entry{key: key, value: value, storedAt: now, ttl: ttl})
	c.entries[key] = elem

	for len(c.entries) > c.maxSize {
		oldest := c.order.Back()
		if oldest == nil {
			break
		}
		evicted := oldest.Value.(*entry)
		c.removeElement(oldest)
		atomic.AddInt64(&c.evictCount, 1)
		logging.Debug("Evicted least recently used cache entry %s", evicted.key)
	}
}

// GetOrFetch returns the value for key, fetching it when the cache cannot
// serve it. Behavior depends on the cached entry's age:
//
//  1. Fresh entry: returned immediately, no fetch.
//  2. Stale but unexpired entry with allowStale: returned immediately while
//     one background refresh replaces it. Concurrent refreshes of the same
//     key collapse; refresh failures are logged at debug and never surfaced.
//  3. Otherwise (miss, expired, or stale without allowStale): a synchronous
//     fetch runs through singleflight and populates the cache. If that fetch
//     fails and an old value was present, allowStale falls back to it with a
//     warning instead of surfacing the error.
func (c *Cache) GetOrFetch(ctx context.Context, key string, ttl time.Duration, fetch FetchFunc, allowStale bool) (any, error) {
	now := time.Now()

	var fallback any
	var hasFallback bool

	c.mu.Lock()
	if elem, ok := c.entries[key]; ok {
		ent := elem.Value.(*entry)
		age := now.Sub(ent.storedAt)

		if age < ent.ttl/2 {
			c.order.MoveToFront(elem)
			value := ent.value
			c.mu.Unlock()
			atomic.AddInt64(&c.hitCount, 1)
			logging.Debug("Cache hit for %s (age: %v)", key, age.Round(time.Millisecond))
			return value, nil
		}

		if age < ent.ttl && allowStale {
			c.order.MoveToFront(elem)
			value := ent.value
			c.mu.Unlock()
			atomic.AddInt64(&c.hitCount, 1)
			logging.Debug("Cache stale hit for %s (age: %v), triggering background refresh",
				key, age.Round(time.Millisecond))
			go c.refreshKey(context.WithoutCancel(ctx), key, ttl, fetch)
			return value, nil
		}

		// Expired or stale-but-strict: keep the old value around as a
		// fallback for the failure path, then clear expired state.
		fallback = ent.value
		hasFallback = true
		if age >= ent.ttl {
			c.removeElement(elem)
			atomic.AddInt64(&c.expireCount, 1)
		}
	}
	c.mu.Unlock()

	atomic.AddInt64(&c.missCount, 1)
	logging.Debug("Cache miss for %s, fetching fresh data", key)

	value, err := c.fetchInto(ctx, key, ttl, fetch)
	if err != nil {
		if hasFallback && allowStale {
			logging.Warn("Fetch failed for %s, serving stale cached data: %v", key, err)
			return fallback, nil
		}
		return nil, err
	}
	return value, nil
}

// ForceRefresh fetches a fresh value for key regardless of any cached entry
// and stores the result. Used for reads that must reflect current upstream
// state, like holder balance checks before a vote. Fetch failures propagate;
// there is no stale fallback on this path.
func (c *Cache) ForceRefresh(ctx context.Context, key string, ttl time.Duration, fetch FetchFunc) (any, error) {
	logging.Debug("Force refreshing cache entry %s", key)
	return c.fetchInto(ctx, key, ttl, fetch)
}

// fetchInto runs fetch through singleflight and stores a successful result.
// Concurrent callers for the same key share one upstream request.
func (c *Cache) fetchInto(ctx context.Context, key string, ttl time.Duration, fetch FetchFunc) (any, error) {
	value, err, _ := c.flights.Do(key, func() (any, error) {
		v, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		c.Set(key, v, ttl)
		return v, nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// refreshKey performs a background refresh of a single key. Used by the
// stale-while-revalidate path so readers never wait on revalidation.
func (c *Cache) refreshKey(ctx context.Context, key string, ttl time.Duration, fetch FetchFunc) {
	atomic.AddInt64(&c.refreshCount, 1)

	if _, err := c.fetchInto(ctx, key, ttl, fetch); err != nil {
		// The stale entry stays serveable until it expires outright, so a
		// failed refresh is invisible to callers.
		logging.Debug("Background refresh failed for %s: %v", key, err)
		return
	}
	logging.Debug("Background refresh completed for %s", key)
}

// ClearPattern removes every entry whose key contains the given substring
// and returns how many were removed. Used for targeted invalidation, like
// dropping all holder balance entries when the wallet disconnects.
func (c *Cache) ClearPattern(pattern string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, elem := range c.entries {
		if strings.Contains(key, pattern) {
			c.removeElement(elem)
			removed++
		}
	}

	if removed > 0 {
		logging.Debug("Cleared %d cache entries matching %q", removed, pattern)
	}
	return removed
}

// Clear removes all cached entries, forcing fresh fetches on next access
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := len(c.entries)
	c.entries = make(map[string]*list.Element)
	c.order.Init()

	if count > 0 {
		logging.Debug("Cleared all %d cache entries", count)
	}
}

// Len returns the current number of cached entries
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// GetStats returns current cache performance metrics for monitoring and
// debugging cache effectiveness. Includes computed metrics like hit rate.
func (c *Cache) GetStats() Stats {
	hits := atomic.LoadInt64(&c.hitCount)
	misses := atomic.LoadInt64(&c.missCount)
	total := hits + misses

	var hitRate float64
	if total > 0 {
		hitRate = float64(hits) / float64(total) * 100.0
	}

	return Stats{
		Hits:      hits,
		Misses:    misses,
		Refreshes: atomic.LoadInt64(&c.refreshCount),
		Evictions: atomic.LoadInt64(&c.evictCount),
		Expiries:  atomic.LoadInt64(&c.expireCount),
		Entries:   c.Len(),
		HitRate:   hitRate,
	}
}

// removeElement deletes an entry from both the map and the access order.
// Caller must hold the mutex.
func (c *Cache) removeElement(elem *list.Element) {
	ent := elem.Value.(*entry)
	c.order.Remove(elem)
	delete(c.entries, ent.key)
}
