package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimiterAllowsUpToLimit(t *testing.T) {
	l := NewLimiter(3, time.Minute)

	assert.True(t, l.Allow("client-a"))
	assert.True(t, l.Allow("client-a"))
	assert.True(t, l.Allow("client-a"))
	assert.False(t, l.Allow("client-a"))
}

func TestLimiterIsPerClient(t *testing.T) {
	l := NewLimiter(1, time.Minute)

	assert.True(t, l.Allow("client-a"))
	assert.False(t, l.Allow("client-a"))
	assert.True(t, l.Allow("client-b"))
}

func TestLimiterRefillsOverTime(t *testing.T) {
	now := time.Unix(1000, 0)
	l := NewLimiter(2, time.Minute)
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow("client-a"))
	assert.True(t, l.Allow("client-a"))
	assert.False(t, l.Allow("client-a"))

	now = now.Add(time.Minute)
	assert.True(t, l.Allow("client-a"))
	assert.True(t, l.Allow("client-a"))
	assert.False(t, l.Allow("client-a"))
}

func TestLimiterPartialRefill(t *testing.T) {
	now := time.Unix(1000, 0)
	l := NewLimiter(2, time.Minute)
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow("client-a"))
	assert.True(t, l.Allow("client-a"))

	now = now.Add(30 * time.Second)
	assert.True(t, l.Allow("client-a"), "half the window refills one token")
	assert.False(t, l.Allow("client-a"))
}

func TestLimiterZeroLimitAllowsEverything(t *testing.T) {
	l := NewLimiter(0, time.Minute)

	for range 10 {
		assert.True(t, l.Allow("client-a"))
	}
}
