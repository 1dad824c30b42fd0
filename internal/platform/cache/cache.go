// Copyright (c) 2026 Pressgate. All rights reserved.
// Author: dev@pressgate.app

/*
Package cache provides the tag-addressed response cache shared by both
backend transports and evicted by the invalidation webhook.

Core Responsibilities:

  - Freshness: every entry carries a TTL; expired entries are treated as misses.
  - Addressability: entries are labelled with opaque tags so that a change
    notification can evict every response derived from the changed entity.
  - Idempotence: invalidating a tag that matches nothing is a no-op, never an error.

Two backends implement [Store]: an in-process map ([Memory], the default) and
a Redis-backed store ([Redis]) for deployments that want eviction to reach
all replicas.
*/
package cache

import (
	"context"
	"time"
)

// Store is the contract for tag-addressed response caching.
//
// Contract:
//   - Concurrency: implementations must be safe for concurrent use.
//   - Get never errors; it returns (nil, false) on miss or expiry.
//   - Invalidation is idempotent: evicting absent tags succeeds silently.
type Store interface {
	// Get retrieves a cached value. Returns (nil, false) on miss.
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores a value under the given tags with the given TTL.
	// TTL <= 0 means the value is not cached at all.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration, tags ...string) error

	// InvalidateTags evicts every entry labelled with any of the given tags.
	InvalidateTags(ctx context.Context, tags ...string) error

	// Flush evicts everything. Used as the webhook's safety net.
	Flush(ctx context.Context) error
}
