package repositories

import (
	"context"
	"errors"
	"testing"

	"chowpay/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestStore_ExecuteInTransactionCommits(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewStore(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "wallet_transactions"`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`UPDATE "profiles" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := store.ExecuteInTransaction(context.Background(), func(tx *Store) error {
		if err := tx.Transactions.Create(context.Background(), &models.WalletTransaction{Reference: "REFUND-1"}); err != nil {
			return err
		}
		return tx.Profiles.IncrementWalletBalance(context.Background(), "user-1", decimal.NewFromInt(100))
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_ExecuteInTransactionRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewStore(db)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := store.ExecuteInTransaction(context.Background(), func(tx *Store) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}
