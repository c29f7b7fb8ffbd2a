// Package ratelimit provides per-client request limiting for the HTTP API
// using token buckets.
package ratelimit

import (
	"sync"
	"time"
)

// bucket is a token bucket refilling at a steady rate.
type bucket struct {
	capacity   float64
	refillRate float64 // tokens per second
	tokens     float64
	lastRefill time.Time
}

func (b *bucket) allow(now time.Time) bool {
	elapsed := now.Sub(b.lastRefill).Seconds()
	b.tokens = min(b.capacity, b.tokens+elapsed*b.refillRate)
	b.lastRefill = now

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// Limiter manages token buckets keyed by client identifier.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	limit   int
	window  time.Duration
	now     func() time.Time
}

// NewLimiter creates a limiter allowing limit requests per window per client.
func NewLimiter(limit int, window time.Duration) *Limiter {
	return &Limiter{
		buckets: make(map[string]*bucket),
		limit:   limit,
		window:  window,
		now:     time.Now,
	}
}

// Allow reports whether the client may make another request now.
func (l *Limiter) Allow(clientID string) bool {
	if l.limit <= 0 {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[clientID]
	if !ok {
		b = &bucket{
			capacity:   float64(l.limit),
			refillRate: float64(l.limit) / l.window.Seconds(),
			tokens:     float64(l.limit),
			lastRefill: now,
		}
		l.buckets[clientID] = b
	}
	return b.allow(now)
}
