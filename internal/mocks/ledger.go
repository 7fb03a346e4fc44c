package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"chowpay/internal/models"
	"chowpay/internal/repositories"
)

// Ledger is an in-memory WalletTransactionRepository that enforces the
// unique reference index. Rows are copied in and out.
type Ledger struct {
	mu    sync.Mutex
	rows  map[string]models.WalletTransaction
	seq   int
	clock time.Time
	Err   error

	// UpdateErr fails UpdateStatus only.
	UpdateErr error
}

func NewLedger(rows ...models.WalletTransaction) *Ledger {
	l := &Ledger{
		rows:  map[string]models.WalletTransaction{},
		clock: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	for _, r := range rows {
		l.rows[r.ID] = r
	}
	return l
}

func (l *Ledger) tick() time.Time {
	l.clock = l.clock.Add(time.Second)
	return l.clock
}

func (l *Ledger) Create(_ context.Context, tx *models.WalletTransaction) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.Err != nil {
		return l.Err
	}
	for _, r := range l.rows {
		if r.Reference == tx.Reference {
			return fmt.Errorf("%w: %s", repositories.ErrDuplicateReference, tx.Reference)
		}
	}
	if tx.ID == "" {
		l.seq++
		tx.ID = fmt.Sprintf("tx-%d", l.seq)
	}
	if tx.Metadata == nil {
		tx.Metadata = models.JSON{}
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = l.tick()
	}
	tx.UpdatedAt = tx.CreatedAt
	row := *tx
	row.Metadata = tx.Metadata.Merge(nil)
	l.rows[tx.ID] = row
	return nil
}

func (l *Ledger) GetByID(_ context.Context, id string) (*models.WalletTransaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	r, ok := l.rows[id]
	if !ok {
		return nil, repositories.ErrTransactionNotFound
	}
	return copyRow(r), nil
}

func (l *Ledger) UpdateStatus(_ context.Context, id string, update repositories.StatusUpdate) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.Err != nil {
		return l.Err
	}
	if l.UpdateErr != nil {
		return l.UpdateErr
	}
	r, ok := l.rows[id]
	if !ok {
		return repositories.ErrTransactionNotFound
	}
	if update.Status != "" {
		r.Status = update.Status
	}
	if update.BalanceAfter != nil {
		r.BalanceAfter = *update.BalanceAfter
	}
	if update.BalanceVerified != nil {
		r.BalanceVerified = *update.BalanceVerified
	}
	if update.Metadata != nil {
		r.Metadata = update.Metadata.Merge(nil)
	}
	r.UpdatedAt = l.tick()
	l.rows[id] = r
	return nil
}

func (l *Ledger) ListByStatuses(_ context.Context, statuses []string, userID *string) ([]models.WalletTransaction, error) {
	return l.filter(func(r models.WalletTransaction) bool {
		if userID != nil && *userID != "" && r.Owner() != *userID {
			return false
		}
		return contains(statuses, r.Status)
	}), nil
}

func (l *Ledger) ListCompletedForUsers(_ context.Context, userIDs []string) ([]models.WalletTransaction, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	return l.filter(func(r models.WalletTransaction) bool {
		return r.Status == models.TransactionStatusCompleted && contains(userIDs, r.Owner())
	}), nil
}

func (l *Ledger) ListByUser(_ context.Context, userID string, limit, offset int) ([]models.WalletTransaction, error) {
	rows := l.filter(func(r models.WalletTransaction) bool { return r.Owner() == userID })
	if offset >= len(rows) {
		return nil, nil
	}
	rows = rows[offset:]
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows, nil
}

func (l *Ledger) Delete(_ context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.rows[id]; !ok {
		return repositories.ErrTransactionNotFound
	}
	delete(l.rows, id)
	return nil
}

func (l *Ledger) DeleteByUserAndStatuses(_ context.Context, userID string, statuses []string) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var n int64
	for id, r := range l.rows {
		if r.Owner() == userID && contains(statuses, r.Status) {
			delete(l.rows, id)
			n++
		}
	}
	return n, nil
}

// All returns every row ordered by creation time.
func (l *Ledger) All() []models.WalletTransaction {
	return l.filter(func(models.WalletTransaction) bool { return true })
}

func (l *Ledger) filter(keep func(models.WalletTransaction) bool) []models.WalletTransaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []models.WalletTransaction
	for _, r := range l.rows {
		if keep(r) {
			out = append(out, *copyRow(r))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func copyRow(r models.WalletTransaction) *models.WalletTransaction {
	c := r
	c.Metadata = r.Metadata.Merge(nil)
	return &c
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

var _ repositories.WalletTransactionRepository = (*Ledger)(nil)
