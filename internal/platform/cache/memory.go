// Copyright (c) 2026 Pressgate. All rights reserved.
// Author: dev@pressgate.app

package cache

import (
	"context"
	"sync"
	"time"
)

// Memory is the in-process [Store] implementation.
//
// # Scope
//
// The cache is per-process: replicas do not see each other's entries or
// evictions. Deployments with more than one replica should either fan the
// invalidation webhook out to every instance or use the [Redis] backend.
type Memory struct {
	mu sync.RWMutex

	// entries maps cache key to value + expiry + the tags it was stored under.
	entries map[string]*memoryEntry

	// byTag is the inverted index: tag -> set of cache keys.
	byTag map[string]map[string]struct{}
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
	tags      []string
}

// NewMemory creates an empty in-process cache.
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]*memoryEntry),
		byTag:   make(map[string]map[string]struct{}),
	}
}

// Get retrieves a value. Expired entries are removed lazily and reported as misses.
func (c *Memory) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}

	if time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		// Re-check under the write lock: a concurrent Set may have replaced the entry.
		if current, stillThere := c.entries[key]; stillThere && time.Now().After(current.expiresAt) {
			c.removeLocked(key, current)
		}
		c.mu.Unlock()
		return nil, false
	}

	return entry.value, true
}

// Set stores a value under the given tags. TTL <= 0 disables caching for the call.
func (c *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration, tags ...string) error {
	if ttl <= 0 {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Detach the previous entry from the tag index before overwriting,
	// so stale tags do not keep pointing at the new value.
	if previous, ok := c.entries[key]; ok {
		c.removeLocked(key, previous)
	}

	stored := &memoryEntry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
		tags:      tags,
	}
	c.entries[key] = stored

	for _, tag := range tags {
		keys, ok := c.byTag[tag]
		if !ok {
			keys = make(map[string]struct{})
			c.byTag[tag] = keys
		}
		keys[key] = struct{}{}
	}

	return nil
}

// InvalidateTags evicts every entry labelled with any of the given tags.
// Unknown tags are ignored, so repeated invalidation is harmless.
func (c *Memory) InvalidateTags(_ context.Context, tags ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, tag := range tags {
		for key := range c.byTag[tag] {
			if entry, ok := c.entries[key]; ok {
				c.removeLocked(key, entry)
			}
		}
		delete(c.byTag, tag)
	}

	return nil
}

// Flush evicts everything.
func (c *Memory) Flush(_ context.Context) error {
	c.mu.Lock()
	c.entries = make(map[string]*memoryEntry)
	c.byTag = make(map[string]map[string]struct{})
	c.mu.Unlock()
	return nil
}

// Len reports the number of live entries. Intended for tests and debugging.
func (c *Memory) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// removeLocked deletes an entry and scrubs it from the tag index.
// Caller must hold the write lock.
func (c *Memory) removeLocked(key string, entry *memoryEntry) {
	delete(c.entries, key)
	for _, tag := range entry.tags {
		if keys, ok := c.byTag[tag]; ok {
			delete(keys, key)
			if len(keys) == 0 {
				delete(c.byTag, tag)
			}
		}
	}
}

// Ensure Memory implements Store
var _ Store = (*Memory)(nil)
