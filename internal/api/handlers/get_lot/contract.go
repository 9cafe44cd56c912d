package get_lot

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/service/lots/models"
)

type LotService interface {
	Get(ctx context.Context, id uuid.UUID) (*models.LotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
