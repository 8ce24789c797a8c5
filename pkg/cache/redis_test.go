package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisCacheRoundTrip(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	c, err := NewRedisCache(ctx, RedisConfig{Addr: addr, Prefix: "custody-test:"})
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Set(ctx, "wallet:w1", entry{ID: "w1"}, time.Minute))
	var got entry
	found, err := c.Get(ctx, "wallet:w1", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "w1", got.ID)

	require.NoError(t, c.Delete(ctx, "wallet:w1"))
	found, err = c.Get(ctx, "wallet:w1", &got)
	require.NoError(t, err)
	assert.False(t, found)
}
