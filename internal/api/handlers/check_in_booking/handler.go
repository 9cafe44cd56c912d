package check_in_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgNotFound         = "бронирование не найдено"
	msgForbidden        = "отмечать въезд может только персонал парковки"
	msgCannotCheckIn    = "въезд по этому бронированию невозможен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/check-in
// Повторная отметка въезда возвращает 200 с исходным временем въезда
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.UUIDVar(r, "bookingId")
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/check-in - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actor := middleware.GetActor(r.Context())

	result, err := h.service.CheckIn(r.Context(), actor, bookingID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrUnauthorized):
			handlers.RespondUnauthorized(w)

		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/check-in - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/check-in - Access denied: booking_id=%s, user_id=%s",
				bookingID, actor.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrAlreadyTerminal):
			h.logger.Warn("POST /bookings/{id}/check-in - Cannot check in: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondConflict(w, msgCannotCheckIn)

		default:
			h.logger.Error("POST /bookings/{id}/check-in - Failed to check in: booking_id=%s, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/check-in - %s: booking_id=%s", result.Message, bookingID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
