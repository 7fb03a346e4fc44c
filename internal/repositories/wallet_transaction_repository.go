package repositories

import (
	"context"
	"errors"

	"chowpay/internal/models"

	"github.com/shopspring/decimal"
)

var (
	ErrTransactionNotFound = errors.New("wallet transaction not found")
	ErrDuplicateReference  = errors.New("wallet transaction reference already used")
)

// StatusUpdate is a lifecycle change applied to one ledger row by id.
// Nil fields are left untouched.
type StatusUpdate struct {
	Status          string
	BalanceAfter    *decimal.Decimal
	BalanceVerified *bool
	Metadata        models.JSON
}

// WalletTransactionRepository is the local ledger store. Rows are only
// ever mutated by primary key.
type WalletTransactionRepository interface {
	Create(ctx context.Context, tx *models.WalletTransaction) error
	GetByID(ctx context.Context, id string) (*models.WalletTransaction, error)
	UpdateStatus(ctx context.Context, id string, update StatusUpdate) error

	// ListByStatuses returns rows in the given statuses, oldest first,
	// optionally restricted to one user.
	ListByStatuses(ctx context.Context, statuses []string, userID *string) ([]models.WalletTransaction, error)
	// ListCompletedForUsers returns completed rows for the given users.
	ListCompletedForUsers(ctx context.Context, userIDs []string) ([]models.WalletTransaction, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.WalletTransaction, error)

	Delete(ctx context.Context, id string) error
	DeleteByUserAndStatuses(ctx context.Context, userID string, statuses []string) (int64, error)
}
