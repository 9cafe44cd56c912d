package create_walk_in_booking

import (
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/handlers/create_booking"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgValidationFailed   = "некорректные данные бронирования"
)

type Handler struct {
	useCase WalkInUseCase
	logger  Logger
}

func NewHandler(useCase WalkInUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/walk-in
// Бронь для клиента без аккаунта, создается персоналом парковки
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req WalkInBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/walk-in - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("POST /bookings/walk-in - Validation failed: %v", err)
		handlers.RespondValidationError(w, msgValidationFailed, err)
		return
	}

	actor := middleware.GetActor(r.Context())

	result, err := h.useCase.ExecuteWalkIn(r.Context(), req.ToUseCaseRequest(actor))
	if err != nil {
		if create_booking.RespondUseCaseError(w, err) {
			h.logger.Error("POST /bookings/walk-in - Failed to create booking: lot_id=%s, error=%v", req.LotID, err)
		} else {
			h.logger.Warn("POST /bookings/walk-in - Booking rejected: lot_id=%s, error=%v", req.LotID, err)
		}
		return
	}

	h.logger.Info("POST /bookings/walk-in - Walk-in booking created: booking_id=%s, lot_id=%s, slot=%s, operator=%s",
		result.Booking.ID, result.Booking.LotID, result.Booking.SlotKey, actor.ID)
	handlers.RespondJSON(w, http.StatusCreated, create_booking.FromUseCaseResponse(result))
}
