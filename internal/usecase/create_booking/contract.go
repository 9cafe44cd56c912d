package create_booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/allocator"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// LotRepository интерфейс репозитория парковок
type LotRepository interface {
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.ParkingLot, error)
	UpdateCache(ctx context.Context, lotID uuid.UUID, slots map[string]domain.SlotState, newAvailable, expectedAvailable int) error
}

// OperatorRepository интерфейс репозитория назначений операторов
type OperatorRepository interface {
	IsAssigned(ctx context.Context, operatorID, lotID uuid.UUID) (bool, error)
}

// SlotAllocator интерфейс выбора места
type SlotAllocator interface {
	Allocate(ctx context.Context, lot *domain.ParkingLot, requestedSlot *string, start, end time.Time) (*allocator.Allocation, error)
}

// CacheReconciler фоновая синхронизация кэша занятости
type CacheReconciler interface {
	Trigger(lotID uuid.UUID, slotKey string)
}

// EventPublisher публикация событий жизненного цикла брони
type EventPublisher interface {
	Publish(ctx context.Context, event domain.BookingEvent) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счётчики попыток бронирования
type Metrics interface {
	IncBooking(kind, result string)
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
