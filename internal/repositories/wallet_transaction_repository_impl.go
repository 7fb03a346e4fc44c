package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"chowpay/internal/models"

	"gorm.io/gorm"
)

type walletTransactionRepository struct {
	db *gorm.DB
}

func NewWalletTransactionRepository(db *gorm.DB) WalletTransactionRepository {
	return &walletTransactionRepository{db: db}
}

func (r *walletTransactionRepository) Create(ctx context.Context, tx *models.WalletTransaction) error {
	if err := r.db.WithContext(ctx).Create(tx).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", ErrDuplicateReference, tx.Reference)
		}
		return fmt.Errorf("failed to create wallet transaction: %w", err)
	}
	return nil
}

func (r *walletTransactionRepository) GetByID(ctx context.Context, id string) (*models.WalletTransaction, error) {
	var tx models.WalletTransaction
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&tx).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get wallet transaction: %w", err)
	}
	return &tx, nil
}

func (r *walletTransactionRepository) UpdateStatus(ctx context.Context, id string, update StatusUpdate) error {
	fields := map[string]interface{}{}
	if update.Status != "" {
		fields["status"] = update.Status
	}
	if update.BalanceAfter != nil {
		fields["balance_after"] = *update.BalanceAfter
	}
	if update.BalanceVerified != nil {
		fields["balance_verified"] = *update.BalanceVerified
	}
	if update.Metadata != nil {
		fields["metadata"] = update.Metadata
	}
	if len(fields) == 0 {
		return nil
	}

	result := r.db.WithContext(ctx).
		Model(&models.WalletTransaction{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("failed to update wallet transaction: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

func (r *walletTransactionRepository) ListByStatuses(ctx context.Context, statuses []string, userID *string) ([]models.WalletTransaction, error) {
	var txs []models.WalletTransaction
	q := r.db.WithContext(ctx).Where("status IN ?", statuses)
	if userID != nil && *userID != "" {
		q = q.Where("user_id = ?", *userID)
	}
	if err := q.Order("created_at ASC").Find(&txs).Error; err != nil {
		return nil, fmt.Errorf("failed to list wallet transactions: %w", err)
	}
	return txs, nil
}

func (r *walletTransactionRepository) ListCompletedForUsers(ctx context.Context, userIDs []string) ([]models.WalletTransaction, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var txs []models.WalletTransaction
	err := r.db.WithContext(ctx).
		Where("status = ? AND user_id IN ?", models.TransactionStatusCompleted, userIDs).
		Order("created_at ASC").
		Find(&txs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list completed transactions: %w", err)
	}
	return txs, nil
}

func (r *walletTransactionRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.WalletTransaction, error) {
	var txs []models.WalletTransaction
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&txs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction history: %w", err)
	}
	return txs, nil
}

func (r *walletTransactionRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.WalletTransaction{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete wallet transaction: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

func (r *walletTransactionRepository) DeleteByUserAndStatuses(ctx context.Context, userID string, statuses []string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND status IN ?", userID, statuses).
		Delete(&models.WalletTransaction{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete wallet transactions: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// isUniqueViolation matches the postgres unique_violation code (23505)
// and gorm's translated error.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "23505") || strings.Contains(msg, "duplicate key")
}
