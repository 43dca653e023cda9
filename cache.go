package main

import (
	"sync"
	"time"
)

type draftEntry struct {
	content   string
	fetchedAt time.Time
}

// DraftCache provides thread-safe TTL caching of fetched drafts by URL
type DraftCache struct {
	mu      sync.RWMutex
	entries map[string]draftEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewDraftCache creates a new draft cache with the specified TTL
func NewDraftCache(ttl time.Duration) *DraftCache {
	return &DraftCache{
		entries: make(map[string]draftEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cached draft for url if present and not expired
func (c *DraftCache) Get(url string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[url]
	if !ok {
		return "", false
	}
	if c.now().Sub(entry.fetchedAt) > c.ttl {
		return "", false
	}
	return entry.content, true
}

// Set stores content for url and drops any expired entries
func (c *DraftCache) Set(url, content string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, entry := range c.entries {
		if now.Sub(entry.fetchedAt) > c.ttl {
			delete(c.entries, key)
		}
	}
	c.entries[url] = draftEntry{content: content, fetchedAt: now}
}

// Clear removes all drafts from the cache
func (c *DraftCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]draftEntry)
}

// Size returns the number of cached drafts, expired or not
func (c *DraftCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}
