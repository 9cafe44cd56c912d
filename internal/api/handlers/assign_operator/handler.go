package assign_operator

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/service/lots"
	"github.com/m04kA/SMC-ParkingService/internal/service/lots/models"
)

const (
	msgInvalidLotID       = "некорректный ID парковки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgValidationFailed   = "ID оператора обязателен"
	msgLotNotFound        = "парковка не найдена"
	msgOperatorNotFound   = "оператор не найден"
	msgAlreadyAssigned    = "оператор уже назначен на эту парковку"
	msgForbidden          = "назначать операторов может только администратор"
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

// Handle POST /api/v1/lots/{lotId}/operators
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	lotID, err := handlers.UUIDVar(r, "lotId")
	if err != nil {
		h.logger.Warn("POST /lots/{id}/operators - Invalid lot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLotID)
		return
	}

	var req models.AssignOperatorRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /lots/{id}/operators - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("POST /lots/{id}/operators - Validation failed: %v", err)
		handlers.RespondValidationError(w, msgValidationFailed, err)
		return
	}

	actor := middleware.GetActor(r.Context())

	if err := h.service.AssignOperator(r.Context(), actor, lotID, &req); err != nil {
		switch {
		case errors.Is(err, lots.ErrUnauthorized):
			handlers.RespondUnauthorized(w)

		case errors.Is(err, lots.ErrAccessDenied):
			h.logger.Warn("POST /lots/{id}/operators - Access denied: lot_id=%s, user_id=%s", lotID, actor.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, lots.ErrLotNotFound):
			h.logger.Warn("POST /lots/{id}/operators - Lot not found: lot_id=%s", lotID)
			handlers.RespondNotFound(w, msgLotNotFound)

		case errors.Is(err, lots.ErrOperatorNotFound):
			h.logger.Warn("POST /lots/{id}/operators - Operator not found: operator_id=%s", req.OperatorID)
			handlers.RespondNotFound(w, msgOperatorNotFound)

		case errors.Is(err, lots.ErrAlreadyAssigned):
			h.logger.Warn("POST /lots/{id}/operators - Already assigned: lot_id=%s, operator_id=%s",
				lotID, req.OperatorID)
			handlers.RespondConflict(w, msgAlreadyAssigned)

		default:
			h.logger.Error("POST /lots/{id}/operators - Failed to assign operator: lot_id=%s, error=%v", lotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /lots/{id}/operators - Operator assigned: lot_id=%s, operator_id=%s", lotID, req.OperatorID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
