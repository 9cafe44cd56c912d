package add_lot

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/lots/models"
)

type LotService interface {
	AddLot(ctx context.Context, actor *domain.Actor, req *models.AddLotRequest) (*models.LotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
