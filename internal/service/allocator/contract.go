package allocator

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// AvailabilityCalculator источник истины о свободных местах
type AvailabilityCalculator interface {
	AvailableForLot(ctx context.Context, lot *domain.ParkingLot, start, end time.Time) ([]string, error)
	IsSlotAvailableForLot(ctx context.Context, lot *domain.ParkingLot, slotKey string, start, end time.Time) (bool, error)
}

// Metrics счётчик деградированного пути синтеза ключей
type Metrics interface {
	IncSlotSynthesis()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
