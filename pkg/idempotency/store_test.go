package idempotency

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, ttl time.Duration) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewStore(client, ttl), mr
}

func TestAcquireRejectsDuplicate(t *testing.T) {
	store, _ := newTestStore(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Acquire(ctx, "POST /api/quotations", "abc"))
	assert.ErrorIs(t, store.Acquire(ctx, "POST /api/quotations", "abc"), ErrConflict)

	// same key under another route is independent
	assert.NoError(t, store.Acquire(ctx, "POST /api/bookings", "abc"))
}

func TestReleaseAllowsRetry(t *testing.T) {
	store, _ := newTestStore(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Acquire(ctx, "s", "k"))
	require.NoError(t, store.Release(ctx, "s", "k"))
	assert.NoError(t, store.Acquire(ctx, "s", "k"))
}

func TestKeyExpires(t *testing.T) {
	store, mr := newTestStore(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Acquire(ctx, "s", "k"))
	assert.True(t, mr.Exists("idem:s:k"))

	mr.FastForward(2 * time.Minute)
	assert.NoError(t, store.Acquire(ctx, "s", "k"))
}

func TestEmptyKey(t *testing.T) {
	store, _ := newTestStore(t, 0)
	assert.ErrorIs(t, store.Acquire(context.Background(), "s", ""), ErrKeyMissing)
	assert.ErrorIs(t, store.Release(context.Background(), "s", ""), ErrKeyMissing)
}
