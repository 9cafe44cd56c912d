package admin_stats

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/profiles/models"
)

type ProfileService interface {
	AdminStats(ctx context.Context, actor *domain.Actor) (*models.AdminStatsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
