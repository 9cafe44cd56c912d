package get_available_slots

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// LotRepository интерфейс репозитория парковок
type LotRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ParkingLot, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// ListOverlapping незавершённые брони парковки, пересекающиеся с [start, end)
	ListOverlapping(ctx context.Context, lotID uuid.UUID, slotKey *string, start, end time.Time) ([]*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
