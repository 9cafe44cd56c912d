package get_my_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

const (
	msgInvalidStatus = "некорректный статус бронирования"
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

// Handle GET /api/v1/me/bookings
// Query params: status (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())

	req := &models.GetMyBookingsRequest{}
	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = ptr.Ptr(status)
	}

	result, err := h.service.ListMine(r.Context(), actor, req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrUnauthorized):
			handlers.RespondUnauthorized(w)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /me/bookings - Invalid status: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /me/bookings - Failed to get bookings: user_id=%s, error=%v", actor.ID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /me/bookings - Bookings retrieved: user_id=%s, count=%d", actor.ID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
