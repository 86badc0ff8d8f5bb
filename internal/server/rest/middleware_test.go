package rest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIPLimiter_PerClientBuckets(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	l := newIPLimiter(3)
	l.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		assert.True(t, l.allow("10.0.0.1"))
	}
	assert.False(t, l.allow("10.0.0.1"))
	assert.True(t, l.allow("10.0.0.2"), "other clients keep their own budget")

	// one token every 20s at 3/min
	now = now.Add(21 * time.Second)
	assert.True(t, l.allow("10.0.0.1"))
	assert.False(t, l.allow("10.0.0.1"))
}

func TestIPLimiter_PrunesIdleClients(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	l := newIPLimiter(1)
	l.now = func() time.Time { return now }

	l.allow("old")
	now = now.Add(limiterIdleTTL + time.Second)
	l.prune(now)

	_, ok := l.limiters["old"]
	assert.False(t, ok)
}

func TestRequestIDFromContext(t *testing.T) {
	assert.Empty(t, RequestIDFromContext(context.Background()))
	ctx := context.WithValue(context.Background(), requestIDKey, "abc")
	assert.Equal(t, "abc", RequestIDFromContext(ctx))
}
