package cleanup

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "chowpay/internal/errors"
	"chowpay/internal/events"
	"chowpay/internal/metrics"
	"chowpay/internal/models"
	"chowpay/internal/repositories"
	"chowpay/internal/repositories/cache"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func (s *service) Dispatch(ctx context.Context, a Action) (result *ActionResult, err error) {
	start := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(opCleanup+":"+a.Name, time.Since(start))
		if err != nil {
			s.metrics.RecordOperationResult(opCleanup+":"+a.Name, metrics.ResultFailure)
			s.metrics.RecordError(opCleanup, apperrors.Code(err))
			return
		}
		s.metrics.RecordOperationResult(opCleanup+":"+a.Name, metrics.ResultSuccess)
	}()

	switch a.Name {
	case ActionDeleteTransaction:
		if a.TransactionID == "" {
			return nil, fmt.Errorf("%w: transaction_id is required", apperrors.ErrInvalidAction)
		}
		return s.DeleteTransaction(ctx, a.TransactionID, a.OperatorID)
	case ActionRefundToWallet:
		if a.UserID == "" {
			return nil, fmt.Errorf("%w: user_id is required", apperrors.ErrInvalidAction)
		}
		return s.RefundToWallet(ctx, a.UserID, a.Amount, a.OperatorID)
	case ActionRefundAndDeletePending:
		if a.TransactionID == "" {
			return nil, fmt.Errorf("%w: transaction_id is required", apperrors.ErrInvalidAction)
		}
		return s.RefundAndDeletePending(ctx, a.TransactionID, a.OperatorID)
	case ActionDeleteAllUserPending:
		if a.UserID == "" {
			return nil, fmt.Errorf("%w: user_id is required", apperrors.ErrInvalidAction)
		}
		return s.DeleteAllUserPending(ctx, a.UserID, a.OperatorID)
	case ActionMarkCompleted:
		if a.TransactionID == "" {
			return nil, fmt.Errorf("%w: transaction_id is required", apperrors.ErrInvalidAction)
		}
		return s.MarkCompleted(ctx, a.TransactionID, a.OperatorID)
	default:
		return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidAction, a.Name)
	}
}

// DeleteTransaction hard-removes one pending or failed row. No balance
// changes.
func (s *service) DeleteTransaction(ctx context.Context, transactionID, operatorID string) (*ActionResult, error) {
	row, err := s.load(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if row.Status == models.TransactionStatusCompleted {
		return nil, fmt.Errorf("%w: completed transactions cannot be deleted", apperrors.ErrInvalidTransition)
	}

	if err := s.transactions.Delete(ctx, row.ID); err != nil {
		return nil, s.notFoundOr(err, "failed to delete transaction")
	}

	s.logger.Info("ledger row deleted",
		zap.String("transaction_id", row.ID),
		zap.String("status", row.Status),
		zap.String("operator_id", operatorID),
	)
	s.publishDeleted(ctx, row, operatorID)

	amount := row.Amount
	return &ActionResult{
		Action:        ActionDeleteTransaction,
		Message:       "transaction deleted",
		TransactionID: row.ID,
		UserID:        row.Owner(),
		Amount:        &amount,
		Deleted:       1,
		Changed:       true,
	}, nil
}

// RefundToWallet records a completed credit against the live provider
// balance and raises the profile mirror by amount.
func (s *service) RefundToWallet(ctx context.Context, userID string, amount decimal.Decimal, operatorID string) (*ActionResult, error) {
	if !amount.IsPositive() || !models.WholeCents(amount) {
		return nil, apperrors.ErrInvalidAmount
	}
	profile, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if !profile.HasWallet() {
		return nil, apperrors.ErrWalletNotFound
	}

	reference := fmt.Sprintf("REFUND-%s-%d", userID, s.now().UnixNano())
	credit, err := s.credit(ctx, profile, amount, reference, models.JSON{
		models.MetaRefundedBy: operatorID,
	}, nil)
	if err != nil {
		return nil, err
	}

	s.logger.Info("wallet refunded",
		zap.String("user_id", userID),
		zap.String("amount", amount.StringFixed(2)),
		zap.String("refund_transaction_id", credit.ID),
		zap.String("operator_id", operatorID),
	)

	newBalance := credit.BalanceAfter
	return &ActionResult{
		Action:              ActionRefundToWallet,
		Message:             "wallet refunded",
		RefundTransactionID: credit.ID,
		UserID:              userID,
		Amount:              &amount,
		NewBalance:          &newBalance,
		Changed:             true,
	}, nil
}

// RefundAndDeletePending collapses a stuck pending debit into a refund
// credit plus removal. When the owner has no wallet the row is only
// removed. The action holds a lock on the transaction id.
func (s *service) RefundAndDeletePending(ctx context.Context, transactionID, operatorID string) (*ActionResult, error) {
	release, err := s.locker.Acquire(ctx, transactionID, s.config.LockTTL)
	if err != nil {
		if errors.Is(err, cache.ErrLockHeld) {
			return nil, apperrors.ErrActionInProgress
		}
		return nil, fmt.Errorf("failed to lock transaction: %w", err)
	}
	defer release()

	row, err := s.load(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if row.Status != models.TransactionStatusPending {
		return nil, fmt.Errorf("%w: only pending transactions can be refunded and deleted (status %s)",
			apperrors.ErrInvalidTransition, row.Status)
	}

	amount := row.Amount
	result := &ActionResult{
		Action:        ActionRefundAndDeletePending,
		TransactionID: row.ID,
		UserID:        row.Owner(),
		Amount:        &amount,
		Deleted:       1,
		Changed:       true,
	}

	owner := s.buildOwnerIndex(ctx, []models.WalletTransaction{*row}).resolve(*row)
	if owner.Kind != OwnerKnown || !owner.Profile.HasWallet() {
		if err := s.transactions.Delete(ctx, row.ID); err != nil {
			return nil, s.notFoundOr(err, "failed to delete transaction")
		}
		s.logger.Info("pending row deleted without refund, owner has no wallet",
			zap.String("transaction_id", row.ID),
			zap.String("operator_id", operatorID),
		)
		s.publishDeleted(ctx, row, operatorID)
		result.Message = "transaction deleted, owner has no wallet to refund"
		return result, nil
	}

	meta := models.JSON{
		models.MetaRefundOf:   row.ID,
		models.MetaRefundedBy: operatorID,
	}
	if oid := row.OrderID(); oid != "" {
		meta[models.MetaOrderID] = oid
	}
	credit, err := s.credit(ctx, owner.Profile, amount, "REFUND-"+row.ID, meta, func(tx *repositories.Store) error {
		return tx.Transactions.Delete(ctx, row.ID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("pending row refunded and deleted",
		zap.String("transaction_id", row.ID),
		zap.String("refund_transaction_id", credit.ID),
		zap.String("user_id", owner.Profile.ID),
		zap.String("amount", amount.StringFixed(2)),
		zap.String("operator_id", operatorID),
	)
	s.publishDeleted(ctx, row, operatorID)

	newBalance := credit.BalanceAfter
	result.UserID = owner.Profile.ID
	result.RefundTransactionID = credit.ID
	result.NewBalance = &newBalance
	result.Message = "transaction refunded and deleted"
	return result, nil
}

// DeleteAllUserPending removes every pending or failed row of a user.
// Completed rows are untouched.
func (s *service) DeleteAllUserPending(ctx context.Context, userID, operatorID string) (*ActionResult, error) {
	n, err := s.transactions.DeleteByUserAndStatuses(ctx, userID, unresolvedStatuses)
	if err != nil {
		return nil, fmt.Errorf("failed to delete user transactions: %w", err)
	}

	s.logger.Info("unresolved rows deleted for user",
		zap.String("user_id", userID),
		zap.Int64("deleted", n),
		zap.String("operator_id", operatorID),
	)
	if n > 0 {
		s.publish(ctx, events.Event{
			Type:          events.TypeTransactionDeleted,
			TransactionID: "bulk:" + userID,
			UserID:        userID,
			ActorID:       operatorID,
			Attributes:    map[string]string{"deleted": fmt.Sprint(n)},
		})
	}

	return &ActionResult{
		Action:  ActionDeleteAllUserPending,
		Message: fmt.Sprintf("%d transactions deleted", n),
		UserID:  userID,
		Deleted: n,
		Changed: n > 0,
	}, nil
}

// MarkCompleted flips a pending row to completed without a provider call
// or balance change. Completed rows are left as they are.
func (s *service) MarkCompleted(ctx context.Context, transactionID, operatorID string) (*ActionResult, error) {
	row, err := s.load(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	result := &ActionResult{
		Action:        ActionMarkCompleted,
		TransactionID: row.ID,
		UserID:        row.Owner(),
	}

	switch row.Status {
	case models.TransactionStatusCompleted:
		result.Message = "transaction already completed"
		return result, nil
	case models.TransactionStatusFailed:
		return nil, fmt.Errorf("%w: failed transactions cannot be completed", apperrors.ErrInvalidTransition)
	}

	meta := row.Metadata.Merge(map[string]interface{}{
		models.MetaMarkedCompletedBy: operatorID,
		models.MetaCompletedAt:       s.now().UTC().Format(time.RFC3339),
	})
	err = s.transactions.UpdateStatus(ctx, row.ID, repositories.StatusUpdate{
		Status:   models.TransactionStatusCompleted,
		Metadata: meta,
	})
	if err != nil {
		return nil, s.notFoundOr(err, "failed to mark transaction completed")
	}

	s.logger.Info("ledger row marked completed",
		zap.String("transaction_id", row.ID),
		zap.String("operator_id", operatorID),
	)
	s.metrics.RecordTransaction(row.Type, models.TransactionStatusCompleted, row.Amount)
	s.publish(ctx, events.Event{
		Type:          events.TypeTransactionMarkCompleted,
		TransactionID: row.ID,
		UserID:        row.Owner(),
		OrderID:       row.OrderID(),
		Reference:     row.Reference,
		Amount:        row.Amount,
		Status:        models.TransactionStatusCompleted,
		ActorID:       operatorID,
	})

	result.Message = "transaction marked completed"
	result.Changed = true
	return result, nil
}

// credit inserts a completed credit row and raises the profile mirror in
// one transaction. extra runs inside the same transaction.
func (s *service) credit(
	ctx context.Context,
	profile *models.Profile,
	amount decimal.Decimal,
	reference string,
	meta models.JSON,
	extra func(tx *repositories.Store) error,
) (*models.WalletTransaction, error) {
	live, err := s.balances.FetchBalance(ctx, *profile.WalletID)
	if err != nil {
		return nil, fmt.Errorf("failed to read provider balance: %w", err)
	}

	userID := profile.ID
	credit := &models.WalletTransaction{
		UserID:        &userID,
		Type:          models.TransactionTypeCredit,
		Amount:        amount,
		Reference:     reference,
		Status:        models.TransactionStatusCompleted,
		BalanceBefore: live.AvailableBalance,
		BalanceAfter:  live.AvailableBalance.Add(amount),
		Description:   "Wallet refund",
		Metadata:      meta,
	}

	err = s.tx.ExecuteInTransaction(ctx, func(tx *repositories.Store) error {
		if err := tx.Transactions.Create(ctx, credit); err != nil {
			return err
		}
		if err := tx.Profiles.IncrementWalletBalance(ctx, userID, amount); err != nil {
			return err
		}
		if extra != nil {
			return extra(tx)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateReference) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrDuplicateReference, reference)
		}
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrLedgerWriteFailed, err)
	}

	s.invalidate(ctx, userID)
	s.metrics.RecordTransaction(credit.Type, credit.Status, amount)

	var attrs map[string]string
	if of := meta.String(models.MetaRefundOf); of != "" {
		attrs = map[string]string{"refund_of": of}
	}
	s.publish(ctx, events.Event{
		Type:          events.TypeRefundCreated,
		TransactionID: credit.ID,
		UserID:        userID,
		OrderID:       credit.OrderID(),
		Reference:     reference,
		Amount:        amount,
		Status:        credit.Status,
		ActorID:       meta.String(models.MetaRefundedBy),
		Attributes:    attrs,
	})
	return credit, nil
}

func (s *service) load(ctx context.Context, transactionID string) (*models.WalletTransaction, error) {
	row, err := s.transactions.GetByID(ctx, transactionID)
	if err != nil {
		return nil, s.notFoundOr(err, "failed to load transaction")
	}
	return row, nil
}

func (s *service) notFoundOr(err error, msg string) error {
	if errors.Is(err, repositories.ErrTransactionNotFound) {
		return apperrors.ErrTransactionNotFound
	}
	return fmt.Errorf("%s: %w", msg, err)
}

func (s *service) publishDeleted(ctx context.Context, row *models.WalletTransaction, operatorID string) {
	s.publish(ctx, events.Event{
		Type:          events.TypeTransactionDeleted,
		TransactionID: row.ID,
		UserID:        row.Owner(),
		OrderID:       row.OrderID(),
		Reference:     row.Reference,
		Amount:        row.Amount,
		Status:        row.Status,
		ActorID:       operatorID,
	})
}
