package lots

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// LotRepository интерфейс репозитория парковок
type LotRepository interface {
	Create(ctx context.Context, lot *domain.ParkingLot) (*domain.ParkingLot, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ParkingLot, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.ParkingLot, error)
	List(ctx context.Context) ([]*domain.ParkingLot, error)
	UpdateCache(ctx context.Context, lotID uuid.UUID, slots map[string]domain.SlotState, newAvailable, expectedAvailable int) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListOccupiedSlotsAt(ctx context.Context, lotID uuid.UUID, at time.Time) ([]string, error)
}

// OperatorRepository интерфейс репозитория назначений операторов
type OperatorRepository interface {
	Assign(ctx context.Context, operatorID, lotID uuid.UUID) error
}

// ProfileRepository интерфейс репозитория профилей
type ProfileRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
}

// ListCache кэш списка парковок
type ListCache interface {
	GetList(ctx context.Context) ([]*domain.ParkingLot, bool, error)
	SetList(ctx context.Context, lots []*domain.ParkingLot) error
	Invalidate(ctx context.Context) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
