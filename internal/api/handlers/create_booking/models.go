package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-ParkingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	LotID         uuid.UUID  `json:"lotId" validate:"required"`
	SlotKey       *string    `json:"slotKey,omitempty" validate:"omitempty,min=1,max=32"`
	StartTime     *time.Time `json:"startTime,omitempty"` // RFC3339, по умолчанию сейчас
	EndTime       *time.Time `json:"endTime,omitempty"`
	DurationHours *int       `json:"durationHours,omitempty" validate:"omitempty,gt=0"`
	VehicleNumber *string    `json:"vehicleNumber,omitempty" validate:"omitempty,max=20"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	*models.BookingResponse
	SlotSynthesized bool `json:"slotSynthesized"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(actor *domain.Actor) *createBooking.Request {
	return &createBooking.Request{
		Actor:         actor,
		LotID:         r.LotID,
		SlotKey:       r.SlotKey,
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
		DurationHours: r.DurationHours,
		VehicleNumber: r.VehicleNumber,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	return &CreateBookingResponse{
		BookingResponse: models.FromDomainBooking(resp.Booking),
		SlotSynthesized: resp.SlotSynthesized,
	}
}
