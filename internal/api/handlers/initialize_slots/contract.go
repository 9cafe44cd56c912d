package initialize_slots

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/lots/models"
)

type LotService interface {
	InitializeSlots(ctx context.Context, actor *domain.Actor, lotID uuid.UUID) (*models.LotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
