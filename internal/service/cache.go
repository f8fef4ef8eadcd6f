package service

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"
	"time"

	"github.com/rpgo/bootstrap-sim/internal/calculation"
	"github.com/rpgo/bootstrap-sim/internal/domain"
)

// cacheEntry is a memoized simulation result.
type cacheEntry struct {
	result    *calculation.SimulationResult
	expiresAt time.Time
}

// ResultCache memoizes simulation results in memory. A nil *ResultCache is
// valid and caches nothing.
type ResultCache struct {
	mu      sync.RWMutex
	store   map[string]*cacheEntry
	ttl     time.Duration
	maxSize int
	now     func() time.Time
}

// NewResultCache returns a cache whose entries live for ttl. When maxSize
// entries are held, expired entries are purged and, failing that, the entry
// closest to expiry is evicted. A non-positive ttl disables caching.
func NewResultCache(ttl time.Duration, maxSize int) *ResultCache {
	if ttl <= 0 {
		return nil
	}
	return &ResultCache{
		store:   make(map[string]*cacheEntry),
		ttl:     ttl,
		maxSize: maxSize,
		now:     time.Now,
	}
}

// Get retrieves a cached result if available and not expired
func (c *ResultCache) Get(key string) (*calculation.SimulationResult, bool) {
	if c == nil {
		return nil, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.store[key]
	if !exists || c.now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.result, true
}

// Set stores a result in the cache
func (c *ResultCache) Set(key string, result *calculation.SimulationResult) {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.store[key]; !exists && c.maxSize > 0 && len(c.store) >= c.maxSize {
		c.evictLocked()
	}
	c.store[key] = &cacheEntry{result: result, expiresAt: c.now().Add(c.ttl)}
}

// Len returns the number of entries held, expired or not.
func (c *ResultCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}

// Clear removes all entries from the cache
func (c *ResultCache) Clear() {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.store = make(map[string]*cacheEntry)
}

// Purge removes expired entries and returns how many were dropped.
func (c *ResultCache) Purge() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.purgeLocked()
}

func (c *ResultCache) purgeLocked() int {
	now := c.now()
	dropped := 0
	for key, entry := range c.store {
		if now.After(entry.expiresAt) {
			delete(c.store, key)
			dropped++
		}
	}
	return dropped
}

func (c *ResultCache) evictLocked() {
	if c.purgeLocked() > 0 {
		return
	}
	var oldestKey string
	var oldest time.Time
	for key, entry := range c.store {
		if oldestKey == "" || entry.expiresAt.Before(oldest) {
			oldestKey, oldest = key, entry.expiresAt
		}
	}
	delete(c.store, oldestKey)
}

// CacheKey identifies a simulation by the series it draws from, every
// parameter that influences the outcome (seed included) and whether the
// scenario matrix is kept.
func CacheKey(series *domain.ReturnSeries, params domain.SimulationParameters, withScenarios bool) (string, error) {
	canonical, err := json.Marshal(params)
	if err != nil {
		return "", err
	}

	h := sha256.New()
	h.Write([]byte(series.Fingerprint()))
	h.Write([]byte{0})
	h.Write(canonical)
	if withScenarios {
		h.Write([]byte("+scenarios"))
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
