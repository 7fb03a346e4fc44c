package cleanup

import (
	"context"
	"time"

	"chowpay/internal/events"
	"chowpay/internal/metrics"
	"chowpay/internal/repositories"

	"go.uber.org/zap"
)

const DefaultLockTTL = 30 * time.Second

type Config struct {
	LockTTL time.Duration
}

type service struct {
	transactions repositories.WalletTransactionRepository
	profiles     repositories.ProfileRepository
	orders       repositories.OrderRepository
	tx           repositories.Transactor
	balances     BalanceReader
	locker       Locker
	cache        CacheInvalidator
	publisher    events.Publisher
	config       Config
	logger       *zap.Logger
	metrics      metrics.Collector
	now          func() time.Time
}

// NewService creates a new cleanup service. cache, publisher, logger and
// metrics may be nil.
func NewService(
	store *repositories.Store,
	tx repositories.Transactor,
	balances BalanceReader,
	locker Locker,
	cache CacheInvalidator,
	publisher events.Publisher,
	config Config,
	logger *zap.Logger,
	collector metrics.Collector,
) Service {
	if store == nil || store.Transactions == nil || store.Profiles == nil || store.Orders == nil {
		panic("cleanup service requires transaction, profile and order repositories")
	}
	if tx == nil {
		panic("transactor is required")
	}
	if balances == nil {
		panic("balance reader is required")
	}
	if locker == nil {
		panic("locker is required")
	}

	if config.LockTTL == 0 {
		config.LockTTL = DefaultLockTTL
	}
	if publisher == nil {
		publisher = events.NewNoopPublisher()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if collector == nil {
		collector = metrics.NoopCollector{}
	}

	return &service{
		transactions: store.Transactions,
		profiles:     store.Profiles,
		orders:       store.Orders,
		tx:           tx,
		balances:     balances,
		locker:       locker,
		cache:        cache,
		publisher:    publisher,
		config:       config,
		logger:       logger,
		metrics:      collector,
		now:          time.Now,
	}
}

func (s *service) publish(ctx context.Context, event events.Event) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = s.now().UTC()
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish ledger event",
			zap.String("type", event.Type),
			zap.String("transaction_id", event.TransactionID),
			zap.Error(err),
		)
	}
}

func (s *service) invalidate(ctx context.Context, userID string) {
	if s.cache == nil || userID == "" {
		return
	}
	if err := s.cache.InvalidateWalletProfile(ctx, userID); err != nil {
		s.logger.Warn("wallet cache invalidation failed", zap.String("user_id", userID), zap.Error(err))
	}
}
