package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllowWithinBurst(t *testing.T) {
	limiter := NewInMemoryLimiter(1, time.Hour, 3)

	for i := 0; i < 3; i++ {
		assert.True(t, limiter.Allow(1), "request %d within burst", i)
	}
	assert.False(t, limiter.Allow(1), "burst exhausted")
}

func TestChatsAreIsolated(t *testing.T) {
	limiter := NewInMemoryLimiter(1, time.Hour, 1)

	assert.True(t, limiter.Allow(1))
	assert.False(t, limiter.Allow(1))

	// A different chat has its own bucket.
	assert.True(t, limiter.Allow(2))
}
