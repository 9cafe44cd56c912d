package reconciler

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// LotRepository интерфейс репозитория парковок
type LotRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ParkingLot, error)
	ListIDs(ctx context.Context) ([]uuid.UUID, error)
	UpdateCache(ctx context.Context, lotID uuid.UUID, slots map[string]domain.SlotState, newAvailable, expectedAvailable int) error
	SyncCache(ctx context.Context, lotID uuid.UUID) (int, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	IsSlotOccupiedAt(ctx context.Context, lotID uuid.UUID, slotKey string, at time.Time) (bool, error)
	ListOccupiedSlotsAt(ctx context.Context, lotID uuid.UUID, at time.Time) ([]string, error)
}

// ListCache кэш списка парковок, сбрасывается после записи
type ListCache interface {
	Invalidate(ctx context.Context) error
}

// Metrics счётчики синхронизаций
type Metrics interface {
	IncReconciliation(result string)
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
