package create_walk_in_booking

import (
	"github.com/m04kA/SMC-ParkingService/internal/api/handlers/create_booking"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	createBooking "github.com/m04kA/SMC-ParkingService/internal/usecase/create_booking"
)

// WalkInBookingRequest HTTP request model
type WalkInBookingRequest struct {
	create_booking.CreateBookingRequest
	CustomerName  string `json:"customerName" validate:"required,max=200"`
	CustomerPhone string `json:"customerPhone" validate:"required,max=32"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *WalkInBookingRequest) ToUseCaseRequest(actor *domain.Actor) *createBooking.WalkInRequest {
	return &createBooking.WalkInRequest{
		Request:       *r.CreateBookingRequest.ToUseCaseRequest(actor),
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
	}
}
