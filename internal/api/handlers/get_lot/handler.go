package get_lot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/service/lots"
)

const (
	msgInvalidLotID = "некорректный ID парковки"
	msgLotNotFound  = "парковка не найдена"
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

// Handle GET /api/v1/lots/{lotId}
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	lotID, err := handlers.UUIDVar(r, "lotId")
	if err != nil {
		h.logger.Warn("GET /lots/{id} - Invalid lot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLotID)
		return
	}

	result, err := h.service.Get(r.Context(), lotID)
	if err != nil {
		if errors.Is(err, lots.ErrLotNotFound) {
			h.logger.Warn("GET /lots/{id} - Lot not found: lot_id=%s", lotID)
			handlers.RespondNotFound(w, msgLotNotFound)
			return
		}

		h.logger.Error("GET /lots/{id} - Failed to get lot: lot_id=%s, error=%v", lotID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /lots/{id} - Lot retrieved successfully: lot_id=%s, available=%d/%d",
		lotID, result.AvailableSlots, result.TotalSlots)
	handlers.RespondJSON(w, http.StatusOK, result)
}
