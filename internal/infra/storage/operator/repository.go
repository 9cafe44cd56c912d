package operator

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/pgerrors"
	"github.com/m04kA/SMC-ParkingService/pkg/psqlbuilder"
)

// Repository назначения операторов на парковки
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория назначений
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// IsAssigned проверяет, назначен ли оператор на парковку
func (r *Repository) IsAssigned(ctx context.Context, operatorID, lotID uuid.UUID) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*) > 0").
		From("operator_assignments").
		Where(squirrel.Eq{"operator_id": operatorID, "lot_id": lotID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: IsAssigned - build select query: %v", ErrBuildQuery, err)
	}

	var assigned bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&assigned); err != nil {
		return false, fmt.Errorf("%w: IsAssigned - scan: %v", ErrExecQuery, err)
	}
	return assigned, nil
}

// Assign назначает оператора на парковку
func (r *Repository) Assign(ctx context.Context, operatorID, lotID uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("operator_assignments").
		Columns("operator_id", "lot_id").
		Values(operatorID, lotID).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Assign - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		if pgerrors.IsUniqueViolation(err) {
			return ErrAlreadyAssigned
		}
		return fmt.Errorf("%w: Assign - execute insert: %v", ErrExecQuery, err)
	}
	return nil
}
