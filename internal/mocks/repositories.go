package mocks

import (
	"context"
	"sync"
	"time"

	"chowpay/internal/models"
	"chowpay/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type WalletTransactionRepository struct {
	mock.Mock
}

func (m *WalletTransactionRepository) Create(ctx context.Context, tx *models.WalletTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *WalletTransactionRepository) GetByID(ctx context.Context, id string) (*models.WalletTransaction, error) {
	args := m.Called(ctx, id)
	if tx, ok := args.Get(0).(*models.WalletTransaction); ok {
		return tx, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *WalletTransactionRepository) UpdateStatus(ctx context.Context, id string, update repositories.StatusUpdate) error {
	args := m.Called(ctx, id, update)
	return args.Error(0)
}

func (m *WalletTransactionRepository) ListByStatuses(ctx context.Context, statuses []string, userID *string) ([]models.WalletTransaction, error) {
	args := m.Called(ctx, statuses, userID)
	txs, _ := args.Get(0).([]models.WalletTransaction)
	return txs, args.Error(1)
}

func (m *WalletTransactionRepository) ListCompletedForUsers(ctx context.Context, userIDs []string) ([]models.WalletTransaction, error) {
	args := m.Called(ctx, userIDs)
	txs, _ := args.Get(0).([]models.WalletTransaction)
	return txs, args.Error(1)
}

func (m *WalletTransactionRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.WalletTransaction, error) {
	args := m.Called(ctx, userID, limit, offset)
	txs, _ := args.Get(0).([]models.WalletTransaction)
	return txs, args.Error(1)
}

func (m *WalletTransactionRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *WalletTransactionRepository) DeleteByUserAndStatuses(ctx context.Context, userID string, statuses []string) (int64, error) {
	args := m.Called(ctx, userID, statuses)
	return args.Get(0).(int64), args.Error(1)
}

type ProfileRepository struct {
	mock.Mock
}

func (m *ProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *ProfileRepository) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*models.Profile); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProfileRepository) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	args := m.Called(ctx, email)
	if p, ok := args.Get(0).(*models.Profile); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProfileRepository) GetByIDs(ctx context.Context, ids []string) ([]models.Profile, error) {
	args := m.Called(ctx, ids)
	profiles, _ := args.Get(0).([]models.Profile)
	return profiles, args.Error(1)
}

func (m *ProfileRepository) UpdateWalletMirror(ctx context.Context, id string, mirror models.WalletMirror) error {
	args := m.Called(ctx, id, mirror)
	return args.Error(0)
}

func (m *ProfileRepository) IncrementWalletBalance(ctx context.Context, id string, delta decimal.Decimal) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

func (m *ProfileRepository) AddLoyaltyPoints(ctx context.Context, id string, points int) error {
	args := m.Called(ctx, id, points)
	return args.Error(0)
}

func (m *ProfileRepository) ClaimFirstOrderBonus(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type OrderRepository struct {
	mock.Mock
}

func (m *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *OrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	args := m.Called(ctx, id)
	if o, ok := args.Get(0).(*models.Order); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *OrderRepository) GetByIDs(ctx context.Context, ids []string) ([]models.Order, error) {
	args := m.Called(ctx, ids)
	orders, _ := args.Get(0).([]models.Order)
	return orders, args.Error(1)
}

func (m *OrderRepository) MarkPaid(ctx context.Context, id, reference string, paidAt time.Time) error {
	args := m.Called(ctx, id, reference, paidAt)
	return args.Error(0)
}

type LoyaltyRepository struct {
	mock.Mock
}

func (m *LoyaltyRepository) Create(ctx context.Context, entry *models.LoyaltyPointsEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *LoyaltyRepository) ListByUser(ctx context.Context, userID string) ([]models.LoyaltyPointsEntry, error) {
	args := m.Called(ctx, userID)
	entries, _ := args.Get(0).([]models.LoyaltyPointsEntry)
	return entries, args.Error(1)
}

var (
	_ repositories.WalletTransactionRepository = (*WalletTransactionRepository)(nil)
	_ repositories.ProfileRepository           = (*ProfileRepository)(nil)
	_ repositories.OrderRepository             = (*OrderRepository)(nil)
	_ repositories.LoyaltyRepository           = (*LoyaltyRepository)(nil)
	_ repositories.Transactor                  = (*Transactor)(nil)
)

// Transactor hands Store to the callback without a real transaction.
// Err, when set, is returned instead of running the callback.
type Transactor struct {
	Store *repositories.Store
	Err   error
	Calls int

	mu sync.Mutex
}

func (t *Transactor) ExecuteInTransaction(ctx context.Context, fn func(tx *repositories.Store) error) error {
	t.mu.Lock()
	t.Calls++
	t.mu.Unlock()
	if t.Err != nil {
		return t.Err
	}
	return fn(t.Store)
}
