package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return client, mr
}

func TestViewDeduper_FirstView(t *testing.T) {
	client, _ := setupTestRedis(t)
	d := NewViewDeduper(client, zap.NewNop(), "penhub", 5*time.Minute)
	ctx := context.Background()

	first, err := d.FirstView(ctx, "42_user_alice")
	require.NoError(t, err)
	assert.True(t, first, "first view within the window must count")

	again, err := d.FirstView(ctx, "42_user_alice")
	require.NoError(t, err)
	assert.False(t, again, "repeat view within the window must be deduplicated")
}

func TestViewDeduper_DistinctViewers(t *testing.T) {
	client, _ := setupTestRedis(t)
	d := NewViewDeduper(client, zap.NewNop(), "penhub", 5*time.Minute)
	ctx := context.Background()

	first, err := d.FirstView(ctx, "42_user_alice")
	require.NoError(t, err)
	assert.True(t, first)

	other, err := d.FirstView(ctx, "42_ip_10.0.0.7")
	require.NoError(t, err)
	assert.True(t, other, "a different viewer of the same work must count")

	otherWork, err := d.FirstView(ctx, "43_user_alice")
	require.NoError(t, err)
	assert.True(t, otherWork, "the same viewer on a different work must count")
}

func TestViewDeduper_WindowExpiry(t *testing.T) {
	client, mr := setupTestRedis(t)
	d := NewViewDeduper(client, zap.NewNop(), "penhub", 5*time.Minute)
	ctx := context.Background()

	first, err := d.FirstView(ctx, "42_user_alice")
	require.NoError(t, err)
	require.True(t, first)

	mr.FastForward(5*time.Minute + time.Second)

	again, err := d.FirstView(ctx, "42_user_alice")
	require.NoError(t, err)
	assert.True(t, again, "views past the window count again")
}

func TestCache_RoundTrip(t *testing.T) {
	client, _ := setupTestRedis(t)
	c := NewCache(client, zap.NewNop(), "penhub")
	ctx := context.Background()

	missing, err := c.Get(ctx, "trending:p1")
	require.NoError(t, err)
	assert.Nil(t, missing, "miss must return nil without error")

	require.NoError(t, c.Set(ctx, "trending:p1", []byte(`{"total":3}`), time.Minute))

	got, err := c.Get(ctx, "trending:p1")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"total":3}`), got)

	require.NoError(t, c.Delete(ctx, "trending:p1"))

	gone, err := c.Get(ctx, "trending:p1")
	require.NoError(t, err)
	assert.Nil(t, gone)
}
