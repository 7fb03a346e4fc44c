package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderRepository_MarkPaid(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrderRepository(db)

	mock.ExpectExec(`UPDATE "orders" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.MarkPaid(context.Background(), "o1", "ORD-o1-1", time.Now()))

	mock.ExpectExec(`UPDATE "orders" SET`).WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.MarkPaid(context.Background(), "o2", "ORD-o2-1", time.Now()), ErrOrderNotFound)
}

func TestOrderRepository_GetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrderRepository(db)

	rows := sqlmock.NewRows([]string{"id", "user_id", "customer_name", "customer_email", "total_amount", "payment_status"}).
		AddRow("o1", nil, "Guest Diner", "guest@example.com", "1500.00", "unpaid")
	mock.ExpectQuery(`SELECT \* FROM "orders" WHERE id = \$1`).WillReturnRows(rows)

	order, err := repo.GetByID(context.Background(), "o1")
	require.NoError(t, err)
	assert.Nil(t, order.UserID)
	assert.Equal(t, "guest@example.com", order.CustomerEmail)
	assert.False(t, order.IsPaid())
}

func TestOrderRepository_GetByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrderRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "orders"`).WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
