package bookings

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	GetByUserID(ctx context.Context, userID uuid.UUID, status *domain.BookingStatus) ([]*domain.Booking, error)
	GetByLotWithFilter(ctx context.Context, filter domain.LotBookingsFilter) ([]*domain.Booking, error)
	TransitionStatus(ctx context.Context, id uuid.UUID, from []domain.BookingStatus, to domain.BookingStatus, at time.Time) error
}

// LotRepository интерфейс репозитория парковок
type LotRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ParkingLot, error)
}

// OperatorRepository интерфейс репозитория назначений операторов
type OperatorRepository interface {
	IsAssigned(ctx context.Context, operatorID, lotID uuid.UUID) (bool, error)
}

// CacheReconciler фоновая синхронизация кэша занятости
type CacheReconciler interface {
	Trigger(lotID uuid.UUID, slotKey string)
}

// EventPublisher публикация событий жизненного цикла брони
type EventPublisher interface {
	Publish(ctx context.Context, event domain.BookingEvent) error
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
