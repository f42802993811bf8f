package oracle

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/chrishsmith/sourcify-sub003/internal/service"
)

// cacheEntry represents a cached oracle response.
type cacheEntry struct {
	expiry   time.Time
	response service.OracleResponse
}

// responseCache provides thread-safe caching for oracle responses. The
// oracle call is the most expensive step in a classification request;
// identical requests within the TTL reuse the prior answer.
type responseCache struct {
	entries map[string]cacheEntry
	stopCh  chan struct{}
	ttl     time.Duration
	mu      sync.RWMutex
}

// newResponseCache creates a new cache with the specified TTL.
func newResponseCache(ttl time.Duration) *responseCache {
	if ttl == 0 {
		ttl = 15 * time.Minute
	}

	cache := &responseCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		stopCh:  make(chan struct{}),
	}

	go cache.cleanup()

	return cache
}

// get retrieves a response from the cache if it exists and hasn't expired.
func (c *responseCache) get(key string) (service.OracleResponse, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.entries[key]
	if !exists {
		return service.OracleResponse{}, false
	}

	if time.Now().After(entry.expiry) {
		return service.OracleResponse{}, false
	}

	return entry.response, true
}

// set stores a response in the cache.
func (c *responseCache) set(key string, response service.OracleResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{
		response: response,
		expiry:   time.Now().Add(c.ttl),
	}
}

// cleanup periodically removes expired entries.
func (c *responseCache) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.mu.Lock()
			now := time.Now()
			for key, entry := range c.entries {
				if now.After(entry.expiry) {
					delete(c.entries, key)
				}
			}
			c.mu.Unlock()
		}
	}
}

// Close stops the cleanup goroutine.
func (c *responseCache) Close() {
	close(c.stopCh)
}

// cacheKey derives a stable key from the request fields.
func cacheKey(req service.OracleRequest) string {
	h := sha256.New()
	h.Write([]byte(req.Description))
	h.Write([]byte{0})
	h.Write([]byte(req.Material))
	h.Write([]byte{0})
	h.Write([]byte(req.Use))
	h.Write([]byte{0})
	h.Write([]byte(req.ProductType))
	return hex.EncodeToString(h.Sum(nil))
}
