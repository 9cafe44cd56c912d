package list_lots

import (
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
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

// Handle GET /api/v1/lots
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /lots - Failed to list lots: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /lots - Lots retrieved: count=%d", len(result.Lots))
	handlers.RespondJSON(w, http.StatusOK, result)
}
