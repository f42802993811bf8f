package storage

import (
	"context"
	"sync"
	"time"

	"github.com/chrishsmith/sourcify-sub003/internal/model"
	"github.com/chrishsmith/sourcify-sub003/internal/service"
)

// nodeEntry is a cached GetNode result. A nil node is cached too, so
// repeated lookups of unknown codes don't hit the database.
type nodeEntry struct {
	expiry time.Time
	node   *model.HtsNode
}

type childrenEntry struct {
	expiry   time.Time
	children []model.HtsNode
}

// CachedStore decorates a HierarchyStore with a time-based read cache.
// The hierarchy is read-only within this subsystem, so entries only go
// stale when the underlying data is re-imported; the TTL bounds that
// window. Safe for concurrent use.
type CachedStore struct {
	inner    service.HierarchyStore
	nodes    map[string]nodeEntry
	children map[string]childrenEntry
	stopCh   chan struct{}
	ttl      time.Duration
	mu       sync.RWMutex
}

// NewCachedStore wraps a store with a TTL cache. A zero TTL defaults to
// 15 minutes.
func NewCachedStore(inner service.HierarchyStore, ttl time.Duration) *CachedStore {
	if ttl == 0 {
		ttl = 15 * time.Minute
	}

	c := &CachedStore{
		inner:    inner,
		nodes:    make(map[string]nodeEntry),
		children: make(map[string]childrenEntry),
		ttl:      ttl,
		stopCh:   make(chan struct{}),
	}

	go c.cleanup()

	return c
}

// GetNode returns the cached node when fresh, delegating otherwise.
func (c *CachedStore) GetNode(ctx context.Context, code string) (*model.HtsNode, error) {
	c.mu.RLock()
	entry, ok := c.nodes[code]
	c.mu.RUnlock()
	if ok && time.Now().Before(entry.expiry) {
		return entry.node, nil
	}

	node, err := c.inner.GetNode(ctx, code)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.nodes[code] = nodeEntry{node: node, expiry: time.Now().Add(c.ttl)}
	c.mu.Unlock()

	return node, nil
}

// GetChildren returns the cached child list when fresh, delegating otherwise.
func (c *CachedStore) GetChildren(ctx context.Context, code string) ([]model.HtsNode, error) {
	c.mu.RLock()
	entry, ok := c.children[code]
	c.mu.RUnlock()
	if ok && time.Now().Before(entry.expiry) {
		return entry.children, nil
	}

	children, err := c.inner.GetChildren(ctx, code)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.children[code] = childrenEntry{children: children, expiry: time.Now().Add(c.ttl)}
	c.mu.Unlock()

	return children, nil
}

// Search is not cached: terms are too varied for a hit rate worth the memory.
func (c *CachedStore) Search(ctx context.Context, term string, filter service.SearchFilter) ([]model.HtsNode, error) {
	return c.inner.Search(ctx, term, filter)
}

// Invalidate drops all cached entries, e.g. after a re-import.
func (c *CachedStore) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nodes = make(map[string]nodeEntry)
	c.children = make(map[string]childrenEntry)
}

// cleanup periodically removes expired entries.
func (c *CachedStore) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.mu.Lock()
			now := time.Now()
			for key, entry := range c.nodes {
				if now.After(entry.expiry) {
					delete(c.nodes, key)
				}
			}
			for key, entry := range c.children {
				if now.After(entry.expiry) {
					delete(c.children, key)
				}
			}
			c.mu.Unlock()
		}
	}
}

// Close stops the cleanup goroutine.
func (c *CachedStore) Close() {
	close(c.stopCh)
}
