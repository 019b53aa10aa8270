// Package cache provides response caching with ETag support: an in-memory
// TTL cache for a single instance and a Redis-backed cache shared between
// replicas. Both are purged whenever the standings tracker recomputes.
package cache

import (
	"context"
	"crypto/md5"
	"fmt"
	"strings"
	"sync"
	"time"
)

// TTLs by resource. Derived data is also purged on every change, so these
// only bound staleness when the change feed is down.
const (
	TTLStandings = 30 * time.Second
	TTLMatches   = 30 * time.Second
	TTLTeams     = 5 * time.Minute
)

// Key prefixes. PrefixLeague covers every derived response.
const (
	PrefixLeague = "league:"
	KeyStandings = PrefixLeague + "standings"
	KeyMatches   = PrefixLeague + "matches"
	KeyTeams     = PrefixLeague + "teams"
)

// Backend is the method set shared by Cache and Redis.
//
// Every Purge advances the epoch. Readers take Epoch before loading from the
// store and hand it to SetIfEpoch, which refuses to store once a purge has
// happened in between.
type Backend interface {
	Get(ctx context.Context, key string) (data []byte, etag string, ok bool)
	Epoch(ctx context.Context) uint64
	SetIfEpoch(ctx context.Context, key string, data []byte, ttl time.Duration, epoch uint64) (etag string, stored bool)
	Purge(ctx context.Context, prefix string) int
	Stats(ctx context.Context) map[string]interface{}
}

type entry struct {
	data      []byte
	etag      string
	expiresAt time.Time
}

// Cache is a thread-safe in-memory TTL cache.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	enabled bool
	purges  uint64
}

// New creates a new cache. Pass enabled=false to create a no-op cache.
func New(enabled bool) *Cache {
	c := &Cache{
		entries: make(map[string]entry),
		enabled: enabled,
	}
	if enabled {
		go c.evictLoop()
	}
	return c
}

// Get retrieves a cached value. Returns data, etag, and whether the entry was found.
func (c *Cache) Get(_ context.Context, key string) (data []byte, etag string, ok bool) {
	if !c.enabled {
		return nil, "", false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, exists := c.entries[key]
	if !exists || time.Now().After(e.expiresAt) {
		return nil, "", false
	}
	return e.data, e.etag, true
}

// Epoch returns the number of purges so far.
func (c *Cache) Epoch(_ context.Context) uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.purges
}

// SetIfEpoch stores a value with a TTL unless a purge happened after epoch
// was read. The etag is returned either way.
func (c *Cache) SetIfEpoch(_ context.Context, key string, data []byte, ttl time.Duration, epoch uint64) (string, bool) {
	etag := ComputeETag(data)
	if !c.enabled {
		return etag, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.purges != epoch {
		return etag, false
	}
	c.entries[key] = entry{
		data:      data,
		etag:      etag,
		expiresAt: time.Now().Add(ttl),
	}
	return etag, true
}

// Purge drops every entry whose key starts with prefix and returns how many
// were removed.
func (c *Cache) Purge(_ context.Context, prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	removed := 0
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
			removed++
		}
	}
	c.purges++
	return removed
}

// Stats returns cache statistics.
func (c *Cache) Stats(_ context.Context) map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	active := 0
	now := time.Now()
	for _, e := range c.entries {
		if now.Before(e.expiresAt) {
			active++
		}
	}
	return map[string]interface{}{
		"backend":      "memory",
		"enabled":      c.enabled,
		"total_keys":   len(c.entries),
		"active_keys":  active,
		"expired_keys": len(c.entries) - active,
		"purges":       c.purges,
	}
}

// evictLoop periodically removes expired entries.
func (c *Cache) evictLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		c.evict()
	}
}

func (c *Cache) evict() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
		}
	}
}

// ComputeETag generates a weak ETag from response data using MD5.
func ComputeETag(data []byte) string {
	hash := md5.Sum(data)
	return fmt.Sprintf(`W/"%x"`, hash[:8])
}

// CheckETagMatch checks if If-None-Match header matches the current ETag.
func CheckETagMatch(ifNoneMatch, etag string) bool {
	if ifNoneMatch == "" {
		return false
	}
	if ifNoneMatch == "*" {
		return true
	}
	for _, candidate := range strings.Split(ifNoneMatch, ",") {
		if strings.TrimSpace(candidate) == etag {
			return true
		}
	}
	return false
}
