package profile

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

var profileColumns = []string{
	"id", "email", "full_name", "vehicle_plate", "vehicle_type", "role", "created_at", "updated_at",
}

// Repository профили пользователей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория профилей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает профиль по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByEmail получает профиль по email
func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	return r.getOne(ctx, "GetByEmail", squirrel.Eq{"email": email})
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Eq) (*domain.Profile, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(profileColumns...).
		From("profiles").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	profile, err := scanProfile(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan: %v", ErrScanRow, op, err)
	}
	return profile, nil
}

// Ensure создаёт профиль с ролью по умолчанию, если его ещё нет, и возвращает актуальную запись
func (r *Repository) Ensure(ctx context.Context, id uuid.UUID, email string) (*domain.Profile, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("profiles").
		Columns("id", "email", "role").
		Values(id, email, domain.DefaultRole).
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Ensure - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: Ensure - execute insert: %v", ErrExecQuery, err)
	}

	return r.GetByID(ctx, id)
}

// UpdateDetails сохраняет ФИО и данные ТС
func (r *Repository) UpdateDetails(ctx context.Context, profile *domain.Profile) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var vehicleType *string
	if profile.VehicleType != nil {
		s := string(*profile.VehicleType)
		vehicleType = &s
	}

	query, args, err := psqlbuilder.Update("profiles").
		Set("full_name", profile.FullName).
		Set("vehicle_plate", profile.VehiclePlate).
		Set("vehicle_type", vehicleType).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": profile.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateDetails - build update query: %v", ErrBuildQuery, err)
	}

	return r.execOne(ctx, executor, "UpdateDetails", query, args)
}

// SetRole меняет роль пользователя по email
func (r *Repository) SetRole(ctx context.Context, email string, role domain.Role) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("profiles").
		Set("role", role).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"email": email}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetRole - build update query: %v", ErrBuildQuery, err)
	}

	return r.execOne(ctx, executor, "SetRole", query, args)
}

// List возвращает все профили, новые первыми
func (r *Repository) List(ctx context.Context) ([]*domain.Profile, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(profileColumns...).
		From("profiles").
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	profiles := make([]*domain.Profile, 0)
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan: %v", ErrScanRow, err)
		}
		profiles = append(profiles, profile)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows iteration: %v", ErrExecQuery, err)
	}

	return profiles, nil
}

// Count количество профилей
func (r *Repository) Count(ctx context.Context) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").From("profiles").ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: Count - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: Count - scan: %v", ErrExecQuery, err)
	}
	return count, nil
}

func (r *Repository) execOne(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProfile(row rowScanner) (*domain.Profile, error) {
	var (
		profile                      domain.Profile
		fullName, plate, vehicleType sql.NullString
		role                         string
		createdAt, updatedAt         sql.NullTime
	)

	err := row.Scan(
		&profile.ID,
		&profile.Email,
		&fullName,
		&plate,
		&vehicleType,
		&role,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if fullName.Valid {
		profile.FullName = &fullName.String
	}
	if plate.Valid {
		profile.VehiclePlate = &plate.String
	}
	if vehicleType.Valid {
		vt := domain.VehicleType(vehicleType.String)
		profile.VehicleType = &vt
	}
	profile.Role = domain.Role(role)
	profile.CreatedAt = createdAt.Time
	profile.UpdatedAt = updatedAt.Time

	return &profile, nil
}
