package payment

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

func TestGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id, bookingID := uuid.New(), uuid.New()
	now := time.Now()
	mock.ExpectQuery(`SELECT (.+) FROM payments WHERE id = \$1`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(paymentColumns).
			AddRow(id.String(), bookingID.String(), 120.0, "INR", "pending", "mock", "order_1", now, now))

	order, err := NewRepository(db).GetByID(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, bookingID, order.BookingID)
	assert.Equal(t, domain.PaymentPending, order.Status)
	assert.False(t, order.IsPaid())
}

func TestGetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM payments`).WillReturnError(sql.ErrNoRows)

	_, err = NewRepository(db).GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestMarkSuccess_OnlyFromPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	mock.ExpectExec(`UPDATE payments SET status = \$1, updated_at = NOW\(\) WHERE id = \$2 AND status = \$3`).
		WithArgs("success", id, "pending").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE payments`).WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewRepository(db)

	changed, err := repo.MarkSuccess(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = repo.MarkSuccess(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, changed)
}
