package payment

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	apperrors "chowpay/internal/errors"
	"chowpay/internal/events"
	"chowpay/internal/metrics"
	"chowpay/internal/models"
	"chowpay/internal/provider"
	"chowpay/internal/repositories"

	"go.uber.org/zap"
)

type service struct {
	transactions repositories.WalletTransactionRepository
	profiles     repositories.ProfileRepository
	orders       repositories.OrderRepository
	provider     provider.API
	wallets      WalletSynchronizer
	loyalty      LoyaltyAwarder
	publisher    events.Publisher
	config       Config
	logger       *zap.Logger
	metrics      metrics.Collector
	now          func() time.Time
}

// NewService creates a new payment service
func NewService(
	store *repositories.Store,
	providerAPI provider.API,
	wallets WalletSynchronizer,
	loyaltySvc LoyaltyAwarder,
	publisher events.Publisher,
	config Config,
	logger *zap.Logger,
	collector metrics.Collector,
) Service {
	if store == nil || store.Transactions == nil || store.Profiles == nil || store.Orders == nil {
		panic("payment service requires transaction, profile and order repositories")
	}
	if providerAPI == nil {
		panic("provider client is required")
	}
	if wallets == nil {
		panic("wallet synchronizer is required")
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
		provider:     providerAPI,
		wallets:      wallets,
		loyalty:      loyaltySvc,
		publisher:    publisher,
		config:       config,
		logger:       logger,
		metrics:      collector,
		now:          time.Now,
	}
}

// Pay runs one payment attempt. Failures before the ledger row is written
// leave no state behind. Once the row exists it is only ever updated by
// id and never deleted or retried here.
//
// When the order cannot be marked paid after funds moved, Pay returns the
// result together with an error wrapping ErrOrderUpdateFailed.
func (s *service) Pay(ctx context.Context, req PayRequest) (result *PayResult, err error) {
	start := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(opPay, time.Since(start))
		if err != nil {
			s.metrics.RecordOperationResult(opPay, metrics.ResultFailure)
			s.metrics.RecordError(opPay, apperrors.Code(err))
			return
		}
		s.metrics.RecordOperationResult(opPay, metrics.ResultSuccess)
	}()

	if !req.Amount.IsPositive() || !models.WholeCents(req.Amount) {
		return nil, apperrors.ErrInvalidAmount
	}
	if req.OrderID == "" || req.PayerID == "" {
		return nil, fmt.Errorf("%w: order id and payer are required", apperrors.ErrInvalidRequest)
	}

	log := s.logger.With(
		zap.String("order_id", req.OrderID),
		zap.String("payer_id", req.PayerID),
		zap.String("amount", req.Amount.StringFixed(2)),
	)

	// 1. payer wallet id
	profile, err := s.profiles.GetByID(ctx, req.PayerID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to load payer profile: %w", err)
	}
	if !profile.HasWallet() {
		return nil, apperrors.ErrWalletNotFound
	}
	walletID := *profile.WalletID

	// 2. live provider state, read directly
	payerWallet, err := s.provider.GetWallet(ctx, walletID)
	if err != nil {
		return nil, providerReadError(err)
	}

	// 3. opportunistic mirror
	if err := s.wallets.Mirror(ctx, req.PayerID, payerWallet); err != nil {
		log.Warn("failed to mirror wallet before payment", zap.Error(err))
	}

	// 4, 5. preconditions
	if !payerWallet.Active() {
		return nil, apperrors.ErrWalletInactive
	}
	currentBalance := payerWallet.AvailableBalance
	if currentBalance.LessThan(req.Amount) {
		return nil, fmt.Errorf("%w: available %s, requested %s",
			apperrors.ErrInsufficientBalance, currentBalance.StringFixed(2), req.Amount.StringFixed(2))
	}

	// 6. pending debit
	reference := fmt.Sprintf("ORD-%s-%d", req.OrderID, s.now().UnixNano())
	row := &models.WalletTransaction{
		UserID:        &req.PayerID,
		Type:          models.TransactionTypeDebit,
		Amount:        req.Amount,
		Reference:     reference,
		Status:        models.TransactionStatusPending,
		BalanceBefore: currentBalance,
		BalanceAfter:  currentBalance.Sub(req.Amount),
		Description:   description(req),
		Metadata:      models.JSON{models.MetaOrderID: req.OrderID},
	}
	if err := s.transactions.Create(ctx, row); err != nil {
		log.Error("failed to create pending ledger row", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", apperrors.ErrLedgerWriteFailed, err)
	}
	log = log.With(zap.String("transaction_id", row.ID), zap.String("reference", reference))

	// 7. merchant wallet
	merchantID := s.config.MerchantWalletID
	if !merchantConfigured(merchantID) {
		s.markFailed(ctx, log, row, errorTypeConfiguration, "merchant wallet id is not configured")
		log.Error("merchant wallet id is not configured")
		return nil, apperrors.ErrMerchantWalletNotConfigured
	}
	row.Metadata[models.MetaMerchantWalletID] = merchantID

	merchantWallet, err := s.provider.GetWallet(ctx, merchantID)
	if err != nil {
		msg := provider.Message(err)
		s.markFailed(ctx, log, row, errorTypeMerchantLookup, msg)
		return nil, fmt.Errorf("%w: merchant wallet lookup: %s", apperrors.ErrTransferFailed, msg)
	}

	// 8. move funds
	err = s.provider.Transfer(ctx, provider.TransferRequest{
		FromAccount:          payerWallet.AccountID(),
		ToAccount:            merchantWallet.AccountID(),
		Amount:               req.Amount,
		TransactionReference: reference,
		Remarks:              req.Remarks,
	})

	// 9. transfer failed
	if err != nil {
		msg := provider.Message(err)
		s.markFailed(ctx, log, row, errorTypeTransfer, msg)
		log.Warn("wallet transfer failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %s", apperrors.ErrTransferFailed, msg)
	}

	// 10. completed, then settle balance_after
	result = s.complete(ctx, log, row, walletID, req.PayerID)

	// 11. order
	if err := s.orders.MarkPaid(ctx, req.OrderID, reference, s.now()); err != nil {
		log.Error("funds moved but order could not be marked paid", zap.Error(err))
		return result, fmt.Errorf("%w: reference %s: %v", apperrors.ErrOrderUpdateFailed, reference, err)
	}

	// 12. loyalty
	if s.loyalty != nil {
		if _, err := s.loyalty.AwardForOrder(ctx, req.PayerID, req.OrderID, req.Amount); err != nil {
			log.Warn("failed to award loyalty points", zap.Error(err))
		}
	}

	log.Info("wallet payment settled",
		zap.String("status", result.Status),
		zap.Bool("balance_verified", result.BalanceVerified),
	)
	return result, nil
}

// complete marks the row completed and records the post-transfer balance,
// preferring the provider's figure over the local estimate. When the row
// cannot be completed it is left pending, untouched, for reconciliation and
// the result reports it as pending.
func (s *service) complete(ctx context.Context, log *zap.Logger, row *models.WalletTransaction, walletID, userID string) *PayResult {
	meta := row.Metadata.Merge(map[string]interface{}{
		models.MetaCompletedAt: s.now().UTC().Format(time.RFC3339),
	})
	completed := true
	if err := s.transactions.UpdateStatus(ctx, row.ID, repositories.StatusUpdate{
		Status:   models.TransactionStatusCompleted,
		Metadata: meta,
	}); err != nil {
		completed = false
		log.Error("transfer succeeded but ledger row could not be completed", zap.Error(err))
		s.metrics.RecordError(opPay, apperrors.ErrLedgerWriteFailed.Code)
	} else {
		row.Status = models.TransactionStatusCompleted
		row.Metadata = meta
	}

	estimate := row.BalanceBefore.Sub(row.Amount)
	balance := estimate
	verified := false

	fresh, err := s.wallets.FetchBalance(ctx, walletID)
	if err == nil {
		balance = fresh.AvailableBalance
		verified = true
		if err := s.wallets.Mirror(ctx, userID, fresh); err != nil {
			log.Warn("failed to mirror wallet after payment", zap.Error(err))
		}
	} else {
		log.Warn("post-transfer balance unavailable, using local estimate",
			zap.String("estimate", estimate.StringFixed(2)),
			zap.Error(err),
		)
	}

	s.metrics.RecordTransaction(row.Type, row.Status, row.Amount)
	result := &PayResult{
		Reference:       row.Reference,
		TransactionID:   row.ID,
		NewBalance:      balance,
		Status:          row.Status,
		BalanceVerified: verified,
	}
	if !completed {
		return result
	}

	if !verified {
		row.Metadata[models.MetaBalanceUnverified] = true
	}
	row.BalanceAfter = balance
	row.BalanceVerified = verified
	if err := s.transactions.UpdateStatus(ctx, row.ID, repositories.StatusUpdate{
		BalanceAfter:    &balance,
		BalanceVerified: &verified,
		Metadata:        row.Metadata.Merge(nil),
	}); err != nil {
		log.Error("failed to record post-transfer balance", zap.Error(err))
	}

	s.publish(ctx, log, events.Event{
		Type:          events.TypePaymentCompleted,
		TransactionID: row.ID,
		UserID:        userID,
		OrderID:       row.OrderID(),
		Reference:     row.Reference,
		Amount:        row.Amount,
		Status:        row.Status,
		Attributes:    map[string]string{"balance_verified": fmt.Sprint(verified)},
	})
	return result
}

func (s *service) markFailed(ctx context.Context, log *zap.Logger, row *models.WalletTransaction, errorType, msg string) {
	row.Status = models.TransactionStatusFailed
	row.Metadata[models.MetaError] = msg
	row.Metadata[models.MetaErrorType] = errorType
	row.Metadata[models.MetaFailedAt] = s.now().UTC().Format(time.RFC3339)

	if err := s.transactions.UpdateStatus(ctx, row.ID, repositories.StatusUpdate{
		Status:   models.TransactionStatusFailed,
		Metadata: row.Metadata.Merge(nil),
	}); err != nil {
		log.Error("failed to mark ledger row failed", zap.Error(err))
	}

	s.metrics.RecordTransaction(row.Type, row.Status, row.Amount)
	s.publish(ctx, log, events.Event{
		Type:          events.TypePaymentFailed,
		TransactionID: row.ID,
		UserID:        row.Owner(),
		OrderID:       row.OrderID(),
		Reference:     row.Reference,
		Amount:        row.Amount,
		Status:        row.Status,
		Attributes:    map[string]string{"error_type": errorType, "error": msg},
	})
}

func (s *service) publish(ctx context.Context, log *zap.Logger, event events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.Warn("failed to publish ledger event", zap.String("type", event.Type), zap.Error(err))
	}
}

func providerReadError(err error) error {
	var pe *provider.Error
	if errors.As(err, &pe) && pe.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", apperrors.ErrWalletNotFound, pe.Message)
	}
	if errors.Is(err, provider.ErrEmptyWalletID) {
		return apperrors.ErrWalletNotFound
	}
	return fmt.Errorf("%w: %v", apperrors.ErrProviderUnavailable, err)
}

func description(req PayRequest) string {
	if req.Remarks != "" {
		return req.Remarks
	}
	return "Payment for order " + req.OrderID
}
