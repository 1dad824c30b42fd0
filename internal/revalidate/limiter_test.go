// Copyright (c) 2026 Pressgate. All rights reserved.
// Author: dev@pressgate.app

package revalidate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimiter_AllowsUpToLimit(t *testing.T) {
	limiter := NewLimiter(3, time.Minute)

	assert.True(t, limiter.Allow())
	assert.True(t, limiter.Allow())
	assert.True(t, limiter.Allow())
	assert.False(t, limiter.Allow())
	assert.False(t, limiter.Allow())
}

func TestLimiter_WindowSlides(t *testing.T) {
	current := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewLimiter(2, time.Minute)
	limiter.now = func() time.Time { return current }

	assert.True(t, limiter.Allow())

	current = current.Add(30 * time.Second)
	assert.True(t, limiter.Allow())
	assert.False(t, limiter.Allow())

	// The first hit ages out; the second is still inside the window.
	current = current.Add(31 * time.Second)
	assert.True(t, limiter.Allow())
	assert.False(t, limiter.Allow())
}

func TestLimiter_DeniedHitsDoNotExtendWindow(t *testing.T) {
	current := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewLimiter(1, time.Minute)
	limiter.now = func() time.Time { return current }

	assert.True(t, limiter.Allow())
	assert.False(t, limiter.Allow())

	current = current.Add(61 * time.Second)
	assert.True(t, limiter.Allow())
}
