package get_lot_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings"
)

const (
	msgInvalidLotID  = "некорректный ID парковки"
	msgInvalidParams = "некорректные параметры запроса"
	msgLotNotFound   = "парковка не найдена"
	msgForbidden     = "доступ запрещен"
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

// Handle GET /api/v1/lots/{lotId}/bookings
// Query params: from, to (RFC3339), status, includeInactive (все опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	lotID, err := handlers.UUIDVar(r, "lotId")
	if err != nil {
		h.logger.Warn("GET /lots/{id}/bookings - Invalid lot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLotID)
		return
	}

	serviceReq, err := ToServiceRequest(lotID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /lots/{id}/bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	actor := middleware.GetActor(r.Context())

	result, err := h.service.ListLotBookings(r.Context(), actor, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrUnauthorized):
			handlers.RespondUnauthorized(w)

		case errors.Is(err, bookings.ErrLotNotFound):
			h.logger.Warn("GET /lots/{id}/bookings - Lot not found: lot_id=%s", lotID)
			handlers.RespondNotFound(w, msgLotNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /lots/{id}/bookings - Access denied: lot_id=%s, user_id=%s", lotID, actor.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /lots/{id}/bookings - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /lots/{id}/bookings - Failed to get bookings: lot_id=%s, error=%v", lotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /lots/{id}/bookings - Bookings retrieved: lot_id=%s, count=%d", lotID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
