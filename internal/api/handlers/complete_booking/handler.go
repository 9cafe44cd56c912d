package complete_booking

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
	msgForbidden        = "завершать бронирования может только персонал парковки"
	msgCannotComplete   = "бронирование не может быть завершено"
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

// Handle PATCH /api/v1/bookings/{bookingId}/complete
// Только admin, superadmin или оператор, назначенный на парковку
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.UUIDVar(r, "bookingId")
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/complete - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actor := middleware.GetActor(r.Context())

	booking, err := h.service.Complete(r.Context(), actor, bookingID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrUnauthorized):
			handlers.RespondUnauthorized(w)

		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/complete - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/{id}/complete - Access denied: booking_id=%s, user_id=%s, role=%s",
				bookingID, actor.ID, actor.Role)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrAlreadyTerminal):
			h.logger.Warn("PATCH /bookings/{id}/complete - Cannot complete: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondConflict(w, msgCannotComplete)

		default:
			h.logger.Error("PATCH /bookings/{id}/complete - Failed to complete booking: booking_id=%s, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/complete - Booking completed: booking_id=%s, slot=%s", bookingID, booking.SlotKey)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
