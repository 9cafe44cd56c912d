package create_walk_in_booking

import (
	"context"

	createBooking "github.com/m04kA/SMC-ParkingService/internal/usecase/create_booking"
)

type WalkInUseCase interface {
	ExecuteWalkIn(ctx context.Context, req *createBooking.WalkInRequest) (*createBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
