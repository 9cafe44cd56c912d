package add_lot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/service/lots"
	"github.com/m04kA/SMC-ParkingService/internal/service/lots/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgValidationFailed   = "некорректные данные парковки"
	msgForbidden          = "создавать парковки может только администратор"
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

// Handle POST /api/v1/lots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.AddLotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /lots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("POST /lots - Validation failed: %v", err)
		handlers.RespondValidationError(w, msgValidationFailed, err)
		return
	}

	actor := middleware.GetActor(r.Context())

	result, err := h.service.AddLot(r.Context(), actor, &req)
	if err != nil {
		switch {
		case errors.Is(err, lots.ErrUnauthorized):
			handlers.RespondUnauthorized(w)

		case errors.Is(err, lots.ErrAccessDenied):
			h.logger.Warn("POST /lots - Access denied: user_id=%s, role=%s", actor.ID, actor.Role)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, lots.ErrInvalidInput):
			h.logger.Warn("POST /lots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgValidationFailed)

		default:
			h.logger.Error("POST /lots - Failed to create lot: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /lots - Lot created successfully: lot_id=%s, total_slots=%d", result.ID, result.TotalSlots)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
