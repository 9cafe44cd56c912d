package setup_profile

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/profiles/models"
)

type ProfileService interface {
	SetupProfile(ctx context.Context, actor *domain.Actor, req *models.SetupProfileRequest) (*models.ProfileResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
