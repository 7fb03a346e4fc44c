package cache

import (
	"context"
	"testing"
	"time"

	"chowpay/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestCacheService_WalletProfileRoundTrip(t *testing.T) {
	mr, client := newTestRedis(t)
	svc := NewCacheService(client, time.Minute)
	ctx := context.Background()

	miss, err := svc.GetWalletProfile(ctx, "user-1")
	require.NoError(t, err)
	assert.Nil(t, miss)

	walletID := "w-1"
	require.NoError(t, svc.CacheWalletProfile(ctx, &models.Profile{
		ID:            "user-1",
		WalletID:      &walletID,
		WalletBalance: decimal.RequireFromString("3000.50"),
	}))
	assert.True(t, mr.Exists("wallet:profile:user-1"))
	assert.Equal(t, time.Minute, mr.TTL("wallet:profile:user-1"))

	got, err := svc.GetWalletProfile(ctx, "user-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, decimal.RequireFromString("3000.50").Equal(got.WalletBalance))

	require.NoError(t, svc.InvalidateWalletProfile(ctx, "user-1"))
	assert.False(t, mr.Exists("wallet:profile:user-1"))
}

func TestCacheService_CorruptValue(t *testing.T) {
	mr, client := newTestRedis(t)
	svc := NewCacheService(client, time.Minute)

	require.NoError(t, mr.Set("wallet:profile:user-1", "{not json"))
	_, err := svc.GetWalletProfile(context.Background(), "user-1")
	assert.Error(t, err)
}

func TestCacheService_HealthCheck(t *testing.T) {
	mr, client := newTestRedis(t)
	svc := NewCacheService(client, time.Minute)

	assert.NoError(t, svc.HealthCheck(context.Background()))
	mr.Close()
	assert.Error(t, svc.HealthCheck(context.Background()))
}

func TestLocker_AcquireRelease(t *testing.T) {
	mr, client := newTestRedis(t)
	locker := NewLocker(client, "lock:cleanup:")
	ctx := context.Background()

	release, err := locker.Acquire(ctx, "tx-1", 30*time.Second)
	require.NoError(t, err)
	assert.True(t, mr.Exists("lock:cleanup:tx-1"))

	_, err = locker.Acquire(ctx, "tx-1", 30*time.Second)
	assert.ErrorIs(t, err, ErrLockHeld)

	release()
	assert.False(t, mr.Exists("lock:cleanup:tx-1"))

	release2, err := locker.Acquire(ctx, "tx-1", 30*time.Second)
	require.NoError(t, err)
	release2()
}

func TestLocker_ReleaseDoesNotDropForeignLock(t *testing.T) {
	mr, client := newTestRedis(t)
	locker := NewLocker(client, "lock:")
	ctx := context.Background()

	release, err := locker.Acquire(ctx, "tx-1", time.Second)
	require.NoError(t, err)

	mr.FastForward(2 * time.Second)
	other, err := locker.Acquire(ctx, "tx-1", time.Minute)
	require.NoError(t, err)

	release()
	assert.True(t, mr.Exists("lock:tx-1"))
	other()
}
