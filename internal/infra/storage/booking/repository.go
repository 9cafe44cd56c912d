package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/pgerrors"
	"github.com/m04kA/SMC-ParkingService/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"id",
	"user_id",
	"lot_id",
	"slot_key",
	"qr_code_data",
	"start_time",
	"end_time",
	"duration_hours",
	"total_cost",
	"status",
	"vehicle_number",
	"customer_name",
	"customer_phone",
	"created_by",
	"checked_in_at",
	"completed_at",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция, использует её.
// Нарушение exclusion constraint bookings_no_overlap -> ErrSlotTaken
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}

	var (
		customerName, customerPhone *string
		createdBy                   uuid.NullUUID
	)
	if booking.WalkIn != nil {
		customerName = &booking.WalkIn.CustomerName
		customerPhone = &booking.WalkIn.CustomerPhone
		createdBy = uuid.NullUUID{UUID: booking.WalkIn.CreatedBy, Valid: true}
	}

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"id",
			"user_id",
			"lot_id",
			"slot_key",
			"qr_code_data",
			"start_time",
			"end_time",
			"duration_hours",
			"total_cost",
			"status",
			"vehicle_number",
			"customer_name",
			"customer_phone",
			"created_by",
		).
		Values(
			booking.ID,
			nullUUID(booking.UserID),
			booking.LotID,
			booking.SlotKey,
			booking.QRCodeData,
			booking.StartTime,
			booking.EndTime,
			booking.DurationHours,
			booking.TotalCost,
			booking.Status,
			booking.VehicleNumber,
			customerName,
			customerPhone,
			createdBy,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		switch {
		case pgerrors.IsExclusionViolation(err), pgerrors.IsUniqueViolation(err):
			return nil, ErrSlotTaken
		case pgerrors.IsSerializationFailure(err):
			return nil, fmt.Errorf("%w: Create - %v", ErrSerializationFailure, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByUserID получает список бронирований пользователя
// Опционально фильтрует по статусу
func (r *Repository) GetByUserID(ctx context.Context, userID uuid.UUID, status *domain.BookingStatus) ([]*domain.Booking, error) {
	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("start_time DESC")

	// Фильтрация по статусу, если указан
	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	return r.query(ctx, "GetByUserID", selectBuilder)
}

// GetByLotWithFilter получает бронирования парковки с фильтрацией по периоду и статусу
func (r *Repository) GetByLotWithFilter(ctx context.Context, filter domain.LotBookingsFilter) ([]*domain.Booking, error) {
	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"lot_id": filter.LotID})

	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.Gt{"end_time": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_time": *filter.To})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statusStrings(domain.NonTerminalStatuses)})
	}

	selectBuilder = selectBuilder.OrderBy("start_time ASC", "slot_key ASC")

	return r.query(ctx, "GetByLotWithFilter", selectBuilder)
}

// ListOverlapping возвращает незавершённые брони парковки, пересекающиеся с [start, end).
// slotKey ограничивает выборку одним местом.
// Внутри транзакции строки блокируются FOR UPDATE
func (r *Repository) ListOverlapping(
	ctx context.Context,
	lotID uuid.UUID,
	slotKey *string,
	start, end time.Time,
) ([]*domain.Booking, error) {
	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"lot_id": lotID}).
		Where(squirrel.Eq{"status": statusStrings(domain.NonTerminalStatuses)}).
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Gt{"end_time": start}).
		OrderBy("slot_key ASC", "start_time ASC")

	if slotKey != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"slot_key": *slotKey})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	return r.query(ctx, "ListOverlapping", selectBuilder)
}

// ListOccupiedSlotsAt ключи мест парковки, занятых незавершёнными бронями в момент at
func (r *Repository) ListOccupiedSlotsAt(ctx context.Context, lotID uuid.UUID, at time.Time) ([]string, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("DISTINCT slot_key").
		From("bookings").
		Where(squirrel.Eq{"lot_id": lotID}).
		Where(squirrel.Eq{"status": statusStrings(domain.NonTerminalStatuses)}).
		Where(squirrel.LtOrEq{"start_time": at}).
		Where(squirrel.Gt{"end_time": at}).
		OrderBy("slot_key ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListOccupiedSlotsAt - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOccupiedSlotsAt - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	keys := make([]string, 0)
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("%w: ListOccupiedSlotsAt - scan slot_key: %v", ErrScanRow, err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListOccupiedSlotsAt - rows error: %v", ErrScanRow, err)
	}

	return keys, nil
}

// IsSlotOccupiedAt занято ли место незавершённой бронью в момент at
func (r *Repository) IsSlotOccupiedAt(ctx context.Context, lotID uuid.UUID, slotKey string, at time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*) > 0").
		From("bookings").
		Where(squirrel.Eq{"lot_id": lotID, "slot_key": slotKey}).
		Where(squirrel.Eq{"status": statusStrings(domain.NonTerminalStatuses)}).
		Where(squirrel.LtOrEq{"start_time": at}).
		Where(squirrel.Gt{"end_time": at}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: IsSlotOccupiedAt - build select query: %v", ErrBuildQuery, err)
	}

	var occupied bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&occupied); err != nil {
		return false, fmt.Errorf("%w: IsSlotOccupiedAt - scan: %v", ErrScanRow, err)
	}

	return occupied, nil
}

// TransitionStatus переводит бронь в статус to, только если текущий статус входит в from.
// Проставляет отметку времени перехода. Ноль затронутых строк -> ErrStatusConflict
func (r *Repository) TransitionStatus(
	ctx context.Context,
	id uuid.UUID,
	from []domain.BookingStatus,
	to domain.BookingStatus,
	at time.Time,
) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("bookings").
		Set("status", to).
		Set("updated_at", at)

	switch to {
	case domain.StatusActive:
		updateBuilder = updateBuilder.Set("checked_in_at", at)
	case domain.StatusCompleted:
		updateBuilder = updateBuilder.Set("completed_at", at)
	case domain.StatusCancelled:
		updateBuilder = updateBuilder.Set("cancelled_at", at)
	}

	query, args, err := updateBuilder.
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": statusStrings(from)}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: TransitionStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: TransitionStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: TransitionStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrStatusConflict
	}

	return nil
}

// CountByStatus количество бронирований в указанных статусах
func (r *Repository) CountByStatus(ctx context.Context, statuses ...domain.BookingStatus) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"status": statusStrings(statuses)}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountByStatus - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByStatus - scan: %v", ErrScanRow, err)
	}
	return count, nil
}

func (r *Repository) query(ctx context.Context, op string, builder squirrel.SelectBuilder) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		if pgerrors.IsSerializationFailure(err) {
			return nil, fmt.Errorf("%w: %s - %v", ErrSerializationFailure, op, err)
		}
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return bookings, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking                     domain.Booking
		userID, createdBy           uuid.NullUUID
		customerName, customerPhone sql.NullString
		createdAt, updatedAt        sql.NullTime
	)

	err := row.Scan(
		&booking.ID,
		&userID,
		&booking.LotID,
		&booking.SlotKey,
		&booking.QRCodeData,
		&booking.StartTime,
		&booking.EndTime,
		&booking.DurationHours,
		&booking.TotalCost,
		&booking.Status,
		&booking.VehicleNumber,
		&customerName,
		&customerPhone,
		&createdBy,
		&booking.CheckedInAt,
		&booking.CompletedAt,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if userID.Valid {
		booking.UserID = &userID.UUID
	}
	if createdBy.Valid || customerName.Valid {
		booking.WalkIn = &domain.WalkInDetails{
			CustomerName:  customerName.String,
			CustomerPhone: customerPhone.String,
			CreatedBy:     createdBy.UUID,
		}
	}
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

func nullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

func statusStrings(statuses []domain.BookingStatus) []string {
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = string(s)
	}
	return result
}
