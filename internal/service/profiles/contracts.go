package profiles

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// ProfileRepository интерфейс репозитория профилей
type ProfileRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	Ensure(ctx context.Context, id uuid.UUID, email string) (*domain.Profile, error)
	UpdateDetails(ctx context.Context, profile *domain.Profile) error
	SetRole(ctx context.Context, email string, role domain.Role) error
	List(ctx context.Context) ([]*domain.Profile, error)
	Count(ctx context.Context) (int, error)
}

// LotRepository интерфейс репозитория парковок
type LotRepository interface {
	Count(ctx context.Context) (int, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	CountByStatus(ctx context.Context, statuses ...domain.BookingStatus) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
