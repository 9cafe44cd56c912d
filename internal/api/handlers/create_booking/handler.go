package create_booking

import (
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("POST /bookings - Validation failed: %v", err)
		handlers.RespondValidationError(w, msgValidationFailed, err)
		return
	}

	actor := middleware.GetActor(r.Context())

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(actor))
	if err != nil {
		if RespondUseCaseError(w, err) {
			h.logger.Error("POST /bookings - Failed to create booking: lot_id=%s, error=%v", req.LotID, err)
		} else {
			h.logger.Warn("POST /bookings - Booking rejected: lot_id=%s, error=%v", req.LotID, err)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, lot_id=%s, slot=%s",
		result.Booking.ID, result.Booking.LotID, result.Booking.SlotKey)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
