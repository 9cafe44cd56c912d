package check_in_booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
)

type BookingService interface {
	CheckIn(ctx context.Context, actor *domain.Actor, id uuid.UUID) (*models.CheckInResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
