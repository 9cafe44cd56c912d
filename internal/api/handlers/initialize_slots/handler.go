package initialize_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/service/lots"
)

const (
	msgInvalidLotID       = "некорректный ID парковки"
	msgLotNotFound        = "парковка не найдена"
	msgForbidden          = "инициализировать места может только администратор"
	msgConcurrentModified = "состояние парковки изменилось, повторите запрос"
)

type Handler struct {
	service LotService
	logger  Logger
}

func NewHandler(service LotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/lots/{lotId}/slots/initialize
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	lotID, err := handlers.UUIDVar(r, "lotId")
	if err != nil {
		h.logger.Warn("POST /lots/{id}/slots/initialize - Invalid lot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLotID)
		return
	}

	actor := middleware.GetActor(r.Context())

	result, err := h.service.InitializeSlots(r.Context(), actor, lotID)
	if err != nil {
		switch {
		case errors.Is(err, lots.ErrUnauthorized):
			handlers.RespondUnauthorized(w)

		case errors.Is(err, lots.ErrAccessDenied):
			h.logger.Warn("POST /lots/{id}/slots/initialize - Access denied: lot_id=%s, user_id=%s", lotID, actor.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, lots.ErrLotNotFound):
			h.logger.Warn("POST /lots/{id}/slots/initialize - Lot not found: lot_id=%s", lotID)
			handlers.RespondNotFound(w, msgLotNotFound)

		case errors.Is(err, lots.ErrConcurrentModification):
			h.logger.Warn("POST /lots/{id}/slots/initialize - Concurrent modification: lot_id=%s", lotID)
			handlers.RespondConflict(w, msgConcurrentModified)

		default:
			h.logger.Error("POST /lots/{id}/slots/initialize - Failed to initialize slots: lot_id=%s, error=%v",
				lotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /lots/{id}/slots/initialize - Slots initialized: lot_id=%s, slots=%d, available=%d",
		lotID, len(result.Slots), result.AvailableSlots)
	handlers.RespondJSON(w, http.StatusOK, result)
}
