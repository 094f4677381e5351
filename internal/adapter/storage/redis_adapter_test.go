package storage

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rl1809/coffee-maker/internal/core/domain"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestSetStock_RoundTrip(t *testing.T) {
	mr, client := newTestRedis(t)
	ctx := context.Background()
	adapter := NewRedisAdapter(client)

	want := domain.Stock{Coffee: 12, Milk: 14, Sugar: 14, Chocolate: 15}
	require.NoError(t, adapter.SetStock(ctx, "lobby", want))

	assert.Equal(t, "12", mr.HGet("inventory:lobby", "coffee"))
	assert.Equal(t, "15", mr.HGet("inventory:lobby", "chocolate"))

	got, ok, err := adapter.GetStock(ctx, "lobby")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, want, got)
}

func TestSetStock_Overwrites(t *testing.T) {
	_, client := newTestRedis(t)
	ctx := context.Background()
	adapter := NewRedisAdapter(client)

	require.NoError(t, adapter.SetStock(ctx, "m", domain.Stock{Coffee: 1, Milk: 1, Sugar: 1, Chocolate: 1}))
	require.NoError(t, adapter.SetStock(ctx, "m", domain.Stock{Coffee: 0, Milk: 2, Sugar: 3, Chocolate: 4}))

	got, _, err := adapter.GetStock(ctx, "m")
	require.NoError(t, err)
	assert.Equal(t, domain.Stock{Coffee: 0, Milk: 2, Sugar: 3, Chocolate: 4}, got)
}

func TestGetStock_Missing(t *testing.T) {
	_, client := newTestRedis(t)
	adapter := NewRedisAdapter(client)

	_, ok, err := adapter.GetStock(context.Background(), "nonexistent")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGetStock_Corrupt(t *testing.T) {
	mr, client := newTestRedis(t)
	adapter := NewRedisAdapter(client)
	mr.HSet("inventory:bad", "coffee", "lots")

	_, _, err := adapter.GetStock(context.Background(), "bad")
	assert.Error(t, err)
}

func TestSetIdempotency_Success(t *testing.T) {
	mr, client := newTestRedis(t)
	ctx := context.Background()
	adapter := NewRedisAdapter(client)

	// First call should succeed
	ok, err := adapter.SetIdempotency(ctx, "test-idem-key")
	require.NoError(t, err)
	assert.True(t, ok)

	// Second call should fail (key exists)
	ok, err = adapter.SetIdempotency(ctx, "test-idem-key")
	require.NoError(t, err)
	assert.False(t, ok)

	// Key expires after the TTL
	mr.FastForward(idempotencyKeyTTL + time.Second)
	ok, err = adapter.SetIdempotency(ctx, "test-idem-key")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestReleaseIdempotency(t *testing.T) {
	mr, client := newTestRedis(t)
	ctx := context.Background()
	adapter := NewRedisAdapter(client)

	ok, err := adapter.SetIdempotency(ctx, "release-key")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, mr.Exists("release-key"))

	require.NoError(t, adapter.ReleaseIdempotency(ctx, "release-key"))
	assert.False(t, mr.Exists("release-key"))

	// Releasing a missing key is not an error
	require.NoError(t, adapter.ReleaseIdempotency(ctx, "release-key"))

	ok, err = adapter.SetIdempotency(ctx, "release-key")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSetIdempotency_Concurrent(t *testing.T) {
	_, client := newTestRedis(t)
	ctx := context.Background()
	adapter := NewRedisAdapter(client)

	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := adapter.SetIdempotency(ctx, "concurrent-idem-key")
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			if ok {
				successCount.Add(1)
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, int32(1), successCount.Load())
}

func TestRedisAdapter_ServerDown(t *testing.T) {
	mr, client := newTestRedis(t)
	adapter := NewRedisAdapter(client)
	mr.Close()

	err := adapter.SetStock(context.Background(), "m", domain.Stock{})
	assert.Error(t, err)
}
