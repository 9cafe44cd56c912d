package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/psqlbuilder"
)

var paymentColumns = []string{
	"id", "booking_id", "amount", "currency", "status", "provider", "provider_ref", "created_at", "updated_at",
}

// Repository платёжные заказы
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория платежей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет платёжный заказ
func (r *Repository) Create(ctx context.Context, order *domain.PaymentOrder) (*domain.PaymentOrder, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert("payments").
		Columns("id", "booking_id", "amount", "currency", "status", "provider", "provider_ref").
		Values(order.ID, order.BookingID, order.Amount, order.Currency, order.Status, order.Provider, order.ProviderRef).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	order.CreatedAt = createdAt.Time
	order.UpdatedAt = updatedAt.Time

	return order, nil
}

// GetByID получает заказ по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.PaymentOrder, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(paymentColumns...).
		From("payments").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var (
		order                domain.PaymentOrder
		createdAt, updatedAt sql.NullTime
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&order.ID,
		&order.BookingID,
		&order.Amount,
		&order.Currency,
		&order.Status,
		&order.Provider,
		&order.ProviderRef,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan: %v", ErrScanRow, err)
	}
	order.CreatedAt = createdAt.Time
	order.UpdatedAt = updatedAt.Time

	return &order, nil
}

// MarkSuccess переводит заказ pending -> success. Возвращает false, если заказ уже оплачен
func (r *Repository) MarkSuccess(ctx context.Context, id uuid.UUID) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("payments").
		Set("status", domain.PaymentSuccess).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.PaymentPending}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: MarkSuccess - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: MarkSuccess - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: MarkSuccess - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected > 0, nil
}
