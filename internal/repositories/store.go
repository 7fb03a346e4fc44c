package repositories

import (
	"context"

	"gorm.io/gorm"
)

// Transactor runs fn against repositories bound to one transaction.
type Transactor interface {
	ExecuteInTransaction(ctx context.Context, fn func(tx *Store) error) error
}

// Store groups the repositories that share one connection. Services
// that need several writes to commit together use ExecuteInTransaction.
type Store struct {
	db *gorm.DB

	Transactions WalletTransactionRepository
	Profiles     ProfileRepository
	Orders       OrderRepository
	Loyalty      LoyaltyRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:           db,
		Transactions: NewWalletTransactionRepository(db),
		Profiles:     NewProfileRepository(db),
		Orders:       NewOrderRepository(db),
		Loyalty:      NewLoyaltyRepository(db),
	}
}

// ExecuteInTransaction runs fn with a Store bound to a single database
// transaction. Returning an error rolls everything back.
func (s *Store) ExecuteInTransaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

var _ Transactor = (*Store)(nil)
