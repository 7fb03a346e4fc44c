package wallet

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	apperrors "chowpay/internal/errors"
	"chowpay/internal/metrics"
	"chowpay/internal/models"
	"chowpay/internal/provider"
	"chowpay/internal/repositories"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

type service struct {
	profiles repositories.ProfileRepository
	provider provider.API
	cache    ViewCache
	config   Config
	logger   *zap.Logger
	metrics  metrics.Collector
	now      func() time.Time
}

// NewService creates a new balance synchronizer
func NewService(
	profiles repositories.ProfileRepository,
	providerAPI provider.API,
	cache ViewCache,
	config Config,
	logger *zap.Logger,
	collector metrics.Collector,
) Service {
	if profiles == nil {
		panic("profile repository is required")
	}
	if providerAPI == nil {
		panic("provider client is required")
	}

	if config.ReadRetries == 0 {
		config.ReadRetries = DefaultReadRetries
	}
	if config.InitialInterval == 0 {
		config.InitialInterval = DefaultInitialInterval
	}
	if config.MaxElapsedTime == 0 {
		config.MaxElapsedTime = DefaultMaxElapsedTime
	}

	// Cache, logger and metrics are optional
	if logger == nil {
		logger = zap.NewNop()
	}
	if collector == nil {
		collector = metrics.NoopCollector{}
	}

	return &service{
		profiles: profiles,
		provider: providerAPI,
		cache:    cache,
		config:   config,
		logger:   logger,
		metrics:  collector,
		now:      time.Now,
	}
}

func (s *service) Sync(ctx context.Context, userID, walletID string) (*SyncResult, error) {
	start := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(opSync, time.Since(start))
	}()

	if walletID == "" {
		s.metrics.RecordOperationResult(opSync, metrics.ResultFailure)
		return nil, apperrors.ErrWalletNotFound
	}

	w, err := s.FetchBalance(ctx, walletID)
	if err != nil {
		s.metrics.RecordOperationResult(opSync, metrics.ResultFailure)
		return nil, err
	}

	if err := s.Mirror(ctx, userID, w); err != nil {
		s.metrics.RecordOperationResult(opSync, metrics.ResultFailure)
		return nil, err
	}

	s.metrics.RecordOperationResult(opSync, metrics.ResultSuccess)
	return &SyncResult{
		Balance:  w.AvailableBalance,
		IsActive: w.Active(),
		SyncedAt: s.now(),
	}, nil
}

func (s *service) SyncQuietly(ctx context.Context, userID, walletID string) {
	if _, err := s.Sync(ctx, userID, walletID); err != nil {
		s.logger.Warn("wallet sync failed",
			zap.String("user_id", userID),
			zap.String("wallet_id", walletID),
			zap.Error(err),
		)
	}
}

func (s *service) Mirror(ctx context.Context, userID string, w *provider.Wallet) error {
	if userID == "" || w == nil {
		return fmt.Errorf("%w: missing user or wallet", ErrMirrorFailed)
	}

	mirror := models.WalletMirror{
		Balance:       w.AvailableBalance,
		IsActive:      w.Active(),
		SyncedAt:      s.now(),
		AccountNumber: w.VirtualAccount.AccountNumber,
		BankCode:      w.VirtualAccount.BankCode,
		BankName:      w.VirtualAccount.BankName,
	}
	if err := s.profiles.UpdateWalletMirror(ctx, userID, mirror); err != nil {
		return fmt.Errorf("%w: %v", ErrMirrorFailed, err)
	}

	s.invalidate(ctx, userID)
	return nil
}

func (s *service) FetchBalance(ctx context.Context, walletID string) (*provider.Wallet, error) {
	start := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(opFetchBalance, time.Since(start))
	}()

	var w *provider.Wallet
	operation := func() error {
		var err error
		w, err = s.provider.GetWallet(ctx, walletID)
		if err != nil && !retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = s.config.InitialInterval
	policy.MaxElapsedTime = s.config.MaxElapsedTime

	notify := func(err error, wait time.Duration) {
		s.logger.Debug("retrying provider wallet read",
			zap.String("wallet_id", walletID),
			zap.Duration("wait", wait),
			zap.Error(err),
		)
	}

	err := backoff.RetryNotify(operation,
		backoff.WithContext(backoff.WithMaxRetries(policy, s.config.ReadRetries), ctx),
		notify,
	)
	if err != nil {
		s.metrics.RecordError(opFetchBalance, "provider")
		return nil, fmt.Errorf("%w: %v", apperrors.ErrProviderUnavailable, err)
	}
	return w, nil
}

func (s *service) GetWallet(ctx context.Context, userID string) (*View, error) {
	if s.cache != nil {
		cached, err := s.cache.GetWalletProfile(ctx, userID)
		if err != nil {
			s.logger.Warn("wallet cache read failed", zap.String("user_id", userID), zap.Error(err))
		}
		if cached != nil {
			s.metrics.RecordCacheHit(cacheKey(userID))
			return viewOf(cached), nil
		}
		s.metrics.RecordCacheMiss(cacheKey(userID))
	}

	profile, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrWalletNotFound
		}
		s.metrics.RecordError(opGetWallet, "database")
		return nil, err
	}
	if !profile.HasWallet() {
		return nil, apperrors.ErrWalletNotFound
	}

	if s.cache != nil {
		if err := s.cache.CacheWalletProfile(ctx, profile); err != nil {
			s.logger.Warn("wallet cache write failed", zap.String("user_id", userID), zap.Error(err))
		}
	}
	return viewOf(profile), nil
}

func (s *service) invalidate(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateWalletProfile(ctx, userID); err != nil {
		s.logger.Warn("wallet cache invalidation failed", zap.String("user_id", userID), zap.Error(err))
	}
}

// retryable reports whether a provider read failure may succeed on retry.
// Provider 4xx responses and a missing wallet id are final.
func retryable(err error) bool {
	if errors.Is(err, provider.ErrEmptyWalletID) || errors.Is(err, context.Canceled) {
		return false
	}
	var pe *provider.Error
	if errors.As(err, &pe) {
		return pe.StatusCode >= http.StatusInternalServerError || pe.StatusCode == http.StatusTooManyRequests
	}
	return true
}

func viewOf(p *models.Profile) *View {
	v := &View{
		UserID:               p.ID,
		Balance:              p.WalletBalance,
		IsActive:             p.IsWalletActive,
		LastSync:             p.LastWalletSync,
		VirtualAccountNumber: p.VirtualAccountNumber,
		BankCode:             p.BankCode,
		BankName:             p.BankName,
	}
	if p.WalletID != nil {
		v.WalletID = *p.WalletID
	}
	return v
}

func cacheKey(userID string) string {
	return "wallet:profile:" + userID
}
