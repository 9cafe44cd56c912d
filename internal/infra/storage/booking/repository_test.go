package booking

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
)

func newRepo(t *testing.T) (*Repository, *sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), db, mock
}

func bookingRow(rows *sqlmock.Rows, id, lotID uuid.UUID, userID interface{}, slot string, start, end time.Time, status domain.BookingStatus) *sqlmock.Rows {
	return rows.AddRow(
		id.String(), userID, lotID.String(), slot, domain.SlotToken(lotID, slot),
		start, end, 1, 50.0, string(status),
		nil, nil, nil, nil,
		nil, nil, nil,
		start, start,
	)
}

func TestCreate_ExclusionViolationIsSlotTaken(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(`INSERT INTO bookings`).WillReturnError(&pq.Error{Code: "23P01"})

	_, err := repo.Create(context.Background(), &domain.Booking{
		LotID:     uuid.New(),
		SlotKey:   "A1",
		StartTime: time.Now(),
		EndTime:   time.Now().Add(time.Hour),
		Status:    domain.StatusPending,
	})

	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestCreate_WalkInColumns(t *testing.T) {
	repo, _, mock := newRepo(t)
	lotID, operatorID := uuid.New(), uuid.New()
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO bookings \(id,user_id,lot_id,slot_key,qr_code_data,start_time,end_time,duration_hours,total_cost,status,vehicle_number,customer_name,customer_phone,created_by\)`).
		WithArgs(
			sqlmock.AnyArg(), nil, lotID, "A1", domain.SlotToken(lotID, "A1"),
			start, start.Add(2*time.Hour), 2, 100.0, "confirmed",
			nil, "Ivan", "+7900", operatorID,
		).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	created, err := repo.Create(context.Background(), &domain.Booking{
		LotID:         lotID,
		SlotKey:       "A1",
		QRCodeData:    domain.SlotToken(lotID, "A1"),
		StartTime:     start,
		EndTime:       start.Add(2 * time.Hour),
		DurationHours: 2,
		TotalCost:     100,
		Status:        domain.StatusConfirmed,
		WalkIn:        &domain.WalkInDetails{CustomerName: "Ivan", CustomerPhone: "+7900", CreatedBy: operatorID},
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_ScansNullableColumns(t *testing.T) {
	repo, _, mock := newRepo(t)
	id, lotID, userID := uuid.New(), uuid.New(), uuid.New()
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE id = \$1`).
		WithArgs(id).
		WillReturnRows(bookingRow(sqlmock.NewRows(bookingColumns), id, lotID, userID.String(), "A2", start, start.Add(time.Hour), domain.StatusPending))

	b, err := repo.GetByID(context.Background(), id)

	require.NoError(t, err)
	require.NotNil(t, b.UserID)
	assert.Equal(t, userID, *b.UserID)
	assert.Equal(t, "A2", b.SlotKey)
	assert.Equal(t, domain.StatusPending, b.Status)
	assert.Nil(t, b.WalkIn)
	assert.Nil(t, b.VehicleNumber)
}

func TestGetByID_NotFound(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(`FROM bookings`).WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestListOverlapping_HalfOpenConditionsAndLockInTx(t *testing.T) {
	repo, db, mock := newRepo(t)
	lotID := uuid.New()
	start := time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM bookings WHERE lot_id = \$1 AND status IN \(\$2,\$3,\$4\) AND start_time < \$5 AND end_time > \$6 ORDER BY slot_key ASC, start_time ASC FOR UPDATE`).
		WithArgs(lotID, "pending", "confirmed", "active", end, start).
		WillReturnRows(bookingRow(sqlmock.NewRows(bookingColumns), uuid.New(), lotID, nil, "A1",
			start.Add(-30*time.Minute), start.Add(30*time.Minute), domain.StatusConfirmed))

	tx, err := dbmetrics.Wrap(db, nil).BeginTx(context.Background(), nil)
	require.NoError(t, err)
	ctx := dbmetrics.WithTx(context.Background(), tx)

	bookings, err := repo.ListOverlapping(ctx, lotID, nil, start, end)

	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, "A1", bookings[0].SlotKey)
	assert.Nil(t, bookings[0].UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListOverlapping_SingleSlotWithoutTx(t *testing.T) {
	repo, _, mock := newRepo(t)
	lotID := uuid.New()
	slot := "B3"
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`AND end_time > \$6 AND slot_key = \$7 ORDER BY`).
		WithArgs(lotID, "pending", "confirmed", "active", start.Add(time.Hour), start, slot).
		WillReturnRows(sqlmock.NewRows(bookingColumns))

	bookings, err := repo.ListOverlapping(context.Background(), lotID, &slot, start, start.Add(time.Hour))

	require.NoError(t, err)
	assert.Empty(t, bookings)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransitionStatus(t *testing.T) {
	repo, _, mock := newRepo(t)
	id := uuid.New()
	at := time.Now()

	mock.ExpectExec(`UPDATE bookings SET status = \$1, updated_at = \$2, cancelled_at = \$3 WHERE id = \$4 AND status IN \(\$5,\$6,\$7\)`).
		WithArgs("cancelled", at, at, id, "pending", "confirmed", "active").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE bookings`).WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.TransitionStatus(context.Background(), id, domain.NonTerminalStatuses, domain.StatusCancelled, at)
	require.NoError(t, err)

	err = repo.TransitionStatus(context.Background(), id, []domain.BookingStatus{domain.StatusPending}, domain.StatusConfirmed, at)
	assert.ErrorIs(t, err, ErrStatusConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsSlotOccupiedAt(t *testing.T) {
	repo, _, mock := newRepo(t)
	lotID := uuid.New()
	at := time.Now()

	mock.ExpectQuery(`SELECT COUNT\(\*\) > 0 FROM bookings WHERE lot_id = \$1 AND slot_key = \$2`).
		WithArgs(lotID, "A1", "pending", "confirmed", "active", at, at).
		WillReturnRows(sqlmock.NewRows([]string{"occupied"}).AddRow(true))

	occupied, err := repo.IsSlotOccupiedAt(context.Background(), lotID, "A1", at)

	require.NoError(t, err)
	assert.True(t, occupied)
}

func TestListOccupiedSlotsAtAndCount(t *testing.T) {
	repo, _, mock := newRepo(t)
	lotID := uuid.New()
	at := time.Now()

	mock.ExpectQuery(`SELECT DISTINCT slot_key FROM bookings`).
		WillReturnRows(sqlmock.NewRows([]string{"slot_key"}).AddRow("A1").AddRow("A3"))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings WHERE status IN \(\$1\)`).
		WithArgs("completed").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	keys, err := repo.ListOccupiedSlotsAt(context.Background(), lotID, at)
	require.NoError(t, err)
	assert.Equal(t, []string{"A1", "A3"}, keys)

	count, err := repo.CountByStatus(context.Background(), domain.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, 7, count)
}
