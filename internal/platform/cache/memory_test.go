// Copyright (c) 2026 Pressgate. All rights reserved.
// Author: dev@pressgate.app

package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pressgate/pressgate/internal/platform/cache"
)

func TestMemory_SetGet(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemory()

	require.NoError(t, store.Set(ctx, "k1", []byte("v1"), time.Minute, "posts"))

	value, ok := store.Get(ctx, "k1")
	assert.True(t, ok)
	assert.Equal(t, []byte("v1"), value)

	_, ok = store.Get(ctx, "missing")
	assert.False(t, ok)
}

func TestMemory_ZeroTTLNotCached(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemory()

	require.NoError(t, store.Set(ctx, "k1", []byte("v1"), 0, "posts"))

	_, ok := store.Get(ctx, "k1")
	assert.False(t, ok)
	assert.Zero(t, store.Len())
}

func TestMemory_Expiry(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemory()

	require.NoError(t, store.Set(ctx, "k1", []byte("v1"), 10*time.Millisecond))

	time.Sleep(20 * time.Millisecond)

	_, ok := store.Get(ctx, "k1")
	assert.False(t, ok)
}

func TestMemory_InvalidateTags(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemory()

	require.NoError(t, store.Set(ctx, "list", []byte("a"), time.Minute, "posts", "posts-page-1"))
	require.NoError(t, store.Set(ctx, "single", []byte("b"), time.Minute, "posts", "post-42"))
	require.NoError(t, store.Set(ctx, "other", []byte("c"), time.Minute, "pages"))

	// Evicting one tag removes only the entries carrying it.
	require.NoError(t, store.InvalidateTags(ctx, "post-42"))

	_, ok := store.Get(ctx, "single")
	assert.False(t, ok)

	_, ok = store.Get(ctx, "list")
	assert.True(t, ok)

	_, ok = store.Get(ctx, "other")
	assert.True(t, ok)

	// A second eviction of the same tag is a silent no-op.
	require.NoError(t, store.InvalidateTags(ctx, "post-42"))
	require.NoError(t, store.InvalidateTags(ctx, "never-existed"))
}

func TestMemory_InvalidateSharedTag(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemory()

	require.NoError(t, store.Set(ctx, "list", []byte("a"), time.Minute, "posts"))
	require.NoError(t, store.Set(ctx, "single", []byte("b"), time.Minute, "posts", "post-42"))

	require.NoError(t, store.InvalidateTags(ctx, "posts"))

	assert.Zero(t, store.Len())
}

func TestMemory_OverwriteDetachesOldTags(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemory()

	require.NoError(t, store.Set(ctx, "k", []byte("a"), time.Minute, "old-tag"))
	require.NoError(t, store.Set(ctx, "k", []byte("b"), time.Minute, "new-tag"))

	// The stale tag must no longer reach the rewritten entry.
	require.NoError(t, store.InvalidateTags(ctx, "old-tag"))
	value, ok := store.Get(ctx, "k")
	assert.True(t, ok)
	assert.Equal(t, []byte("b"), value)

	require.NoError(t, store.InvalidateTags(ctx, "new-tag"))
	_, ok = store.Get(ctx, "k")
	assert.False(t, ok)
}

func TestMemory_Flush(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemory()

	require.NoError(t, store.Set(ctx, "k1", []byte("a"), time.Minute, "posts"))
	require.NoError(t, store.Set(ctx, "k2", []byte("b"), time.Minute, "pages"))

	require.NoError(t, store.Flush(ctx))
	assert.Zero(t, store.Len())
}
