package lot

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/pgerrors"
	"github.com/m04kA/SMC-ParkingService/pkg/psqlbuilder"
)

var lotColumns = []string{
	"id",
	"name",
	"address",
	"total_slots",
	"available_spots",
	"slots",
	"hourly_rate",
	"latitude",
	"longitude",
	"slot_prefix",
	"created_at",
	"updated_at",
}

// Repository репозиторий парковок и их кэша занятости
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория парковок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает парковку вместе с начальной картой мест
func (r *Repository) Create(ctx context.Context, lot *domain.ParkingLot) (*domain.ParkingLot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if lot.ID == uuid.Nil {
		lot.ID = uuid.New()
	}

	slots, err := encodeSlots(lot.Slots)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - %v", ErrEncodeSlots, err)
	}

	query, args, err := psqlbuilder.Insert("parking_lots").
		Columns(
			"id",
			"name",
			"address",
			"total_slots",
			"available_spots",
			"slots",
			"hourly_rate",
			"latitude",
			"longitude",
			"slot_prefix",
		).
		Values(
			lot.ID,
			lot.Name,
			lot.Address,
			lot.TotalSlots,
			lot.AvailableSlots,
			slots,
			lot.HourlyRate,
			lot.Location.Latitude,
			lot.Location.Longitude,
			lot.SlotPrefix,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	lot.CreatedAt = createdAt.Time
	lot.UpdatedAt = updatedAt.Time

	return lot, nil
}

// GetByID получает парковку по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ParkingLot, error) {
	return r.get(ctx, id, false)
}

// GetByIDForUpdate получает парковку и блокирует строку до конца транзакции.
// Вне транзакции работает как GetByID
func (r *Repository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.ParkingLot, error) {
	return r.get(ctx, id, dbmetrics.IsInTransaction(ctx))
}

func (r *Repository) get(ctx context.Context, id uuid.UUID, forUpdate bool) (*domain.ParkingLot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(lotColumns...).
		From("parking_lots").
		Where(squirrel.Eq{"id": id})
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	lot, err := scanLot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLotNotFound
	}
	if pgerrors.IsSerializationFailure(err) {
		return nil, fmt.Errorf("%w: GetByID - %v", ErrSerializationFailure, err)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - %v", ErrScanRow, err)
	}

	return lot, nil
}

// List возвращает все парковки, упорядоченные по названию
func (r *Repository) List(ctx context.Context) ([]*domain.ParkingLot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(lotColumns...).
		From("parking_lots").
		OrderBy("name ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	lots := make([]*domain.ParkingLot, 0)
	for rows.Next() {
		lot, err := scanLot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - %v", ErrScanRow, err)
		}
		lots = append(lots, lot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return lots, nil
}

// ListIDs возвращает идентификаторы всех парковок
func (r *Repository) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id").From("parking_lots").OrderBy("id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: ListIDs - scan id: %v", ErrScanRow, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListIDs - rows error: %v", ErrScanRow, err)
	}

	return ids, nil
}

// Count количество парковок
func (r *Repository) Count(ctx context.Context) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").From("parking_lots").ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: Count - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: Count - scan: %v", ErrScanRow, err)
	}
	return count, nil
}

// UpdateCache записывает карту мест и счётчик свободных мест с оптимистичной блокировкой:
// запись проходит, только если available_spots всё ещё равен expectedAvailable.
// Ноль затронутых строк -> ErrConcurrentModification
func (r *Repository) UpdateCache(
	ctx context.Context,
	lotID uuid.UUID,
	slots map[string]domain.SlotState,
	newAvailable int,
	expectedAvailable int,
) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	encoded, err := encodeSlots(slots)
	if err != nil {
		return fmt.Errorf("%w: UpdateCache - %v", ErrEncodeSlots, err)
	}

	query, args, err := psqlbuilder.Update("parking_lots").
		Set("slots", encoded).
		Set("available_spots", newAvailable).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": lotID, "available_spots": expectedAvailable}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateCache - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if pgerrors.IsSerializationFailure(err) {
			return fmt.Errorf("%w: UpdateCache - %v", ErrSerializationFailure, err)
		}
		return fmt.Errorf("%w: UpdateCache - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateCache - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrConcurrentModification
	}

	return nil
}

// SyncCache пересобирает кэш парковки на стороне БД хранимой процедурой sync_lot_cache.
// Возвращает новое значение available_spots
func (r *Repository) SyncCache(ctx context.Context, lotID uuid.UUID) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select().
		Column(squirrel.Expr("sync_lot_cache(?)", lotID)).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: SyncCache - build query: %v", ErrBuildQuery, err)
	}

	var available int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&available); err != nil {
		if pgerrors.Code(err) == pgerrors.CodeNoDataFound {
			return 0, ErrLotNotFound
		}
		return 0, fmt.Errorf("%w: SyncCache - execute: %v", ErrExecQuery, err)
	}

	return available, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLot(row rowScanner) (*domain.ParkingLot, error) {
	var (
		lot                  domain.ParkingLot
		rawSlots             []byte
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&lot.ID,
		&lot.Name,
		&lot.Address,
		&lot.TotalSlots,
		&lot.AvailableSlots,
		&rawSlots,
		&lot.HourlyRate,
		&lot.Location.Latitude,
		&lot.Location.Longitude,
		&lot.SlotPrefix,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	lot.Slots, err = decodeSlots(rawSlots)
	if err != nil {
		return nil, err
	}
	lot.CreatedAt = createdAt.Time
	lot.UpdatedAt = updatedAt.Time

	return &lot, nil
}

// encodeSlots сериализует карту в строку: lib/pq передаёт []byte как bytea, а колонка jsonb
func encodeSlots(slots map[string]domain.SlotState) (string, error) {
	if slots == nil {
		slots = map[string]domain.SlotState{}
	}
	data, err := json.Marshal(slots)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeSlots(raw []byte) (map[string]domain.SlotState, error) {
	slots := make(map[string]domain.SlotState)
	if len(raw) == 0 {
		return slots, nil
	}
	if err := json.Unmarshal(raw, &slots); err != nil {
		return nil, fmt.Errorf("decode slots: %w", err)
	}
	return slots, nil
}
