package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *goredis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
}

func TestRateLimitStore_AllowWithinLimit(t *testing.T) {
	store := NewRateLimitStore(newTestClient(t))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		result, err := store.Allow(ctx, "client-a:intake", 5, time.Minute)
		require.NoError(t, err)
		assert.True(t, result.Allowed, "request %d should be allowed", i+1)
		assert.Equal(t, int64(5), result.Limit)
	}
}

func TestRateLimitStore_BlocksOverLimit(t *testing.T) {
	store := NewRateLimitStore(newTestClient(t))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := store.Allow(ctx, "client-b:intake", 3, time.Minute)
		require.NoError(t, err)
	}

	result, err := store.Allow(ctx, "client-b:intake", 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, int64(0), result.Remaining)
	assert.Greater(t, result.ResetAt, time.Now().Unix()-int64(time.Minute.Seconds()))
}

func TestRateLimitStore_IndependentKeys(t *testing.T) {
	store := NewRateLimitStore(newTestClient(t))
	ctx := context.Background()

	_, err := store.Allow(ctx, "client-c:intake", 1, time.Minute)
	require.NoError(t, err)

	// A different key has its own counter.
	result, err := store.Allow(ctx, "client-d:intake", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, result.Allowed)
}
