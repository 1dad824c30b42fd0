// Copyright (c) 2026 Pressgate. All rights reserved.
// Author: dev@pressgate.app

package revalidate

import (
	"sync"
	"time"
)

// Limiter is a process-wide sliding-window rate limiter. The webhook
// is limited as a whole, not per caller: a misbehaving CMS plugin
// firing hundreds of events must not melt the cache, regardless of
// which address the events arrive from.
type Limiter struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	hits   []time.Time

	now func() time.Time
}

func NewLimiter(limit int, window time.Duration) *Limiter {
	return &Limiter{limit: limit, window: window, now: time.Now}
}

// Allow records one hit and reports whether it falls within the limit.
// Hits older than the window are discarded first, so the window slides
// rather than resetting on a fixed boundary.
func (l *Limiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	kept := l.hits[:0]
	for _, hit := range l.hits {
		if hit.After(cutoff) {
			kept = append(kept, hit)
		}
	}
	l.hits = kept

	if len(l.hits) >= l.limit {
		return false
	}
	l.hits = append(l.hits, now)
	return true
}
