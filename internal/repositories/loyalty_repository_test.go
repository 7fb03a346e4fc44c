package repositories

import (
	"context"
	"testing"
	"time"

	"chowpay/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoyaltyRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLoyaltyRepository(db)

	mock.ExpectExec(`INSERT INTO "loyalty_points_history"`).WillReturnResult(sqlmock.NewResult(1, 1))

	entry := &models.LoyaltyPointsEntry{UserID: "u-1", OrderID: "o-1", Points: 20, Reason: models.LoyaltyReasonOrder}
	require.NoError(t, repo.Create(context.Background(), entry))
	assert.NotEmpty(t, entry.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoyaltyRepository_ListByUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLoyaltyRepository(db)

	rows := sqlmock.NewRows([]string{"id", "user_id", "order_id", "points", "reason", "created_at"}).
		AddRow("l-2", "u-1", "o-1", 50, models.LoyaltyReasonFirstOrderBonus, time.Now()).
		AddRow("l-1", "u-1", "o-1", 20, models.LoyaltyReasonOrder, time.Now())
	mock.ExpectQuery(`SELECT \* FROM "loyalty_points_history" WHERE user_id = \$1 ORDER BY created_at DESC`).
		WillReturnRows(rows)

	entries, err := repo.ListByUser(context.Background(), "u-1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 50, entries[0].Points)
}
