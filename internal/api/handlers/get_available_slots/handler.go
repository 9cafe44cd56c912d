package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-ParkingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidLotID     = "некорректный ID парковки"
	msgMissingWindow    = "параметры start и end обязательны"
	msgInvalidTime      = "некорректный формат времени, ожидается RFC3339"
	msgInvalidTimeRange = "время окончания должно быть позже времени начала"
	msgLotNotFound      = "парковка не найдена"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/lots/{lotId}/available-slots
// Query params: start (required, RFC3339), end (required, RFC3339)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	lotID, err := handlers.UUIDVar(r, "lotId")
	if err != nil {
		h.logger.Warn("GET /lots/{id}/available-slots - Invalid lot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLotID)
		return
	}

	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")
	if startStr == "" || endStr == "" {
		h.logger.Warn("GET /lots/{id}/available-slots - Missing window: lot_id=%s", lotID)
		handlers.RespondBadRequest(w, msgMissingWindow)
		return
	}

	useCaseReq, err := ToUseCaseRequest(lotID, startStr, endStr)
	if err != nil {
		h.logger.Warn("GET /lots/{id}/available-slots - Invalid time format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrLotNotFound):
			h.logger.Warn("GET /lots/{id}/available-slots - Lot not found: lot_id=%s", lotID)
			handlers.RespondNotFound(w, msgLotNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidTimeRange):
			h.logger.Warn("GET /lots/{id}/available-slots - Invalid time range: lot_id=%s, start=%s, end=%s",
				lotID, startStr, endStr)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /lots/{id}/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidLotID)

		default:
			h.logger.Error("GET /lots/{id}/available-slots - Failed to get slots: lot_id=%s, error=%v", lotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /lots/{id}/available-slots - Slots retrieved successfully: lot_id=%s, slots_count=%d",
		lotID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
