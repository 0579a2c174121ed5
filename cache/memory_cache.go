package cache

import (
	"sync"
	"time"
)

type CacheEntry struct {
	Value      string
	Expiration time.Time
}

// MemoryCache is a bounded TTL map of strings. A background goroutine drops
// expired entries until Close is called.
type MemoryCache struct {
	data       map[string]CacheEntry
	mutex      sync.RWMutex
	ttl        time.Duration
	maxSize    int
	cleanupInt time.Duration
	stopChan   chan struct{}
	closeOnce  sync.Once
	now        func() time.Time
}

func NewMemoryCache(ttl time.Duration, maxSize int) *MemoryCache {
	if maxSize <= 0 {
		maxSize = 1
	}

	cache := &MemoryCache{
		data:       make(map[string]CacheEntry),
		ttl:        ttl,
		maxSize:    maxSize,
		cleanupInt: ttl / 2,
		stopChan:   make(chan struct{}),
		now:        time.Now,
	}

	if cache.cleanupInt <= 0 {
		cache.cleanupInt = time.Minute
	}

	go cache.cleanupExpiredEntries()

	return cache
}

func (c *MemoryCache) Set(key, value string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if _, exists := c.data[key]; !exists && len(c.data) >= c.maxSize {
		c.evictOldestEntry()
	}

	c.data[key] = CacheEntry{
		Value:      value,
		Expiration: c.now().Add(c.ttl),
	}
}

func (c *MemoryCache) Get(key string) (string, bool) {
	c.mutex.RLock()
	entry, exists := c.data[key]
	c.mutex.RUnlock()

	if !exists {
		return "", false
	}

	if c.now().After(entry.Expiration) {
		c.Delete(key)
		return "", false
	}

	return entry.Value, true
}

func (c *MemoryCache) Delete(key string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.data, key)
}

func (c *MemoryCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return len(c.data)
}

// Close stops the cleanup goroutine. It is safe to call more than once.
func (c *MemoryCache) Close() {
	c.closeOnce.Do(func() { close(c.stopChan) })
}

func (c *MemoryCache) evictOldestEntry() {
	var oldestKey string
	var oldestTime time.Time

	for key, entry := range c.data {
		if oldestKey == "" || entry.Expiration.Before(oldestTime) {
			oldestKey = key
			oldestTime = entry.Expiration
		}
	}

	if oldestKey != "" {
		delete(c.data, oldestKey)
	}
}

func (c *MemoryCache) cleanupExpiredEntries() {
	ticker := time.NewTicker(c.cleanupInt)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.removeExpiredEntries()
		case <-c.stopChan:
			return
		}
	}
}

func (c *MemoryCache) removeExpiredEntries() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := c.now()
	for key, entry := range c.data {
		if now.After(entry.Expiration) {
			delete(c.data, key)
		}
	}
}
