package wallet

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	apperrors "chowpay/internal/errors"
	"chowpay/internal/mocks"
	"chowpay/internal/models"
	"chowpay/internal/provider"
	"chowpay/internal/repositories"
	"chowpay/internal/repositories/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	profiles *mocks.ProfileRepository
	provider *mocks.ProviderAPI
	redis    *miniredis.Miniredis
	cache    *cache.CacheService
	svc      Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	f := &fixture{
		profiles: new(mocks.ProfileRepository),
		provider: new(mocks.ProviderAPI),
		redis:    mr,
		cache:    cache.NewCacheService(client, time.Minute),
	}
	f.svc = NewService(f.profiles, f.provider, f.cache, Config{
		ReadRetries:     2,
		InitialInterval: time.Millisecond,
		MaxElapsedTime:  time.Second,
	}, nil, nil)
	return f
}

func activeWallet(balance int64) *provider.Wallet {
	return &provider.Wallet{
		ID:               "w-1",
		AvailableBalance: decimal.NewFromInt(balance),
		VirtualAccount: provider.VirtualAccount{
			AccountNumber: "0123456789",
			BankCode:      "999",
			BankName:      "Test Bank",
		},
	}
}

func TestSync_MirrorsProviderState(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.provider.On("GetWallet", mock.Anything, "w-1").Return(activeWallet(5000), nil).Once()
	f.profiles.On("UpdateWalletMirror", mock.Anything, "user-1", mock.MatchedBy(func(m models.WalletMirror) bool {
		return m.Balance.Equal(decimal.NewFromInt(5000)) && m.IsActive &&
			m.AccountNumber == "0123456789" && m.BankName == "Test Bank" && !m.SyncedAt.IsZero()
	})).Return(nil).Once()

	require.NoError(t, f.redis.Set("wallet:profile:user-1", `{"id":"user-1"}`))

	res, err := f.svc.Sync(ctx, "user-1", "w-1")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(5000).Equal(res.Balance))
	assert.True(t, res.IsActive)
	assert.False(t, f.redis.Exists("wallet:profile:user-1"), "mirror write must invalidate the cached view")

	f.provider.AssertExpectations(t)
	f.profiles.AssertExpectations(t)
}

func TestSync_NoWalletID(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Sync(context.Background(), "user-1", "")
	assert.ErrorIs(t, err, apperrors.ErrWalletNotFound)
	f.provider.AssertNotCalled(t, "GetWallet", mock.Anything, mock.Anything)
}

func TestSync_MirrorFailure(t *testing.T) {
	f := newFixture(t)

	f.provider.On("GetWallet", mock.Anything, "w-1").Return(activeWallet(10), nil)
	f.profiles.On("UpdateWalletMirror", mock.Anything, "user-1", mock.Anything).
		Return(repositories.ErrProfileNotFound)

	_, err := f.svc.Sync(context.Background(), "user-1", "w-1")
	assert.ErrorIs(t, err, ErrMirrorFailed)
}

func TestSyncQuietly_SwallowsErrors(t *testing.T) {
	f := newFixture(t)

	f.provider.On("GetWallet", mock.Anything, "w-1").
		Return(nil, &provider.Error{StatusCode: http.StatusNotFound, Message: "wallet not found"})

	assert.NotPanics(t, func() {
		f.svc.SyncQuietly(context.Background(), "user-1", "w-1")
	})
	f.profiles.AssertNotCalled(t, "UpdateWalletMirror", mock.Anything, mock.Anything, mock.Anything)
}

func TestFetchBalance_RetriesTransientErrors(t *testing.T) {
	f := newFixture(t)

	f.provider.On("GetWallet", mock.Anything, "w-1").
		Return(nil, &provider.Error{StatusCode: http.StatusServiceUnavailable, Message: "try later"}).Once()
	f.provider.On("GetWallet", mock.Anything, "w-1").
		Return(activeWallet(3000), nil).Once()

	w, err := f.svc.FetchBalance(context.Background(), "w-1")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(3000).Equal(w.AvailableBalance))
	f.provider.AssertNumberOfCalls(t, "GetWallet", 2)
}

func TestFetchBalance_GivesUpAfterRetries(t *testing.T) {
	f := newFixture(t)

	f.provider.On("GetWallet", mock.Anything, "w-1").Return(nil, errors.New("connection reset"))

	_, err := f.svc.FetchBalance(context.Background(), "w-1")
	assert.ErrorIs(t, err, apperrors.ErrProviderUnavailable)
	f.provider.AssertNumberOfCalls(t, "GetWallet", 3)
}

func TestFetchBalance_ClientErrorIsFinal(t *testing.T) {
	f := newFixture(t)

	f.provider.On("GetWallet", mock.Anything, "w-1").
		Return(nil, &provider.Error{StatusCode: http.StatusNotFound, Message: "no such wallet"})

	_, err := f.svc.FetchBalance(context.Background(), "w-1")
	assert.Error(t, err)
	f.provider.AssertNumberOfCalls(t, "GetWallet", 1)
}

func TestGetWallet_CachesView(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	walletID := "w-1"

	f.profiles.On("GetByID", mock.Anything, "user-1").Return(&models.Profile{
		ID:             "user-1",
		WalletID:       &walletID,
		WalletBalance:  decimal.NewFromInt(4200),
		IsWalletActive: true,
	}, nil).Once()

	first, err := f.svc.GetWallet(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "w-1", first.WalletID)
	assert.True(t, f.redis.Exists("wallet:profile:user-1"))

	second, err := f.svc.GetWallet(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, first.Balance.Equal(second.Balance))

	f.profiles.AssertNumberOfCalls(t, "GetByID", 1)
}

func TestGetWallet_NoLinkedWallet(t *testing.T) {
	f := newFixture(t)

	f.profiles.On("GetByID", mock.Anything, "user-2").Return(&models.Profile{ID: "user-2"}, nil)
	_, err := f.svc.GetWallet(context.Background(), "user-2")
	assert.ErrorIs(t, err, apperrors.ErrWalletNotFound)

	f.profiles.On("GetByID", mock.Anything, "ghost").Return(nil, repositories.ErrProfileNotFound)
	_, err = f.svc.GetWallet(context.Background(), "ghost")
	assert.ErrorIs(t, err, apperrors.ErrWalletNotFound)
}

func TestRetryable(t *testing.T) {
	assert.True(t, retryable(errors.New("timeout")))
	assert.True(t, retryable(&provider.Error{StatusCode: http.StatusBadGateway}))
	assert.True(t, retryable(&provider.Error{StatusCode: http.StatusTooManyRequests}))
	assert.False(t, retryable(&provider.Error{StatusCode: http.StatusUnauthorized}))
	assert.False(t, retryable(provider.ErrEmptyWalletID))
	assert.False(t, retryable(context.Canceled))
}
