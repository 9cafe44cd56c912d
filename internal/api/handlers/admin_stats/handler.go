package admin_stats

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/service/profiles"
)

const (
	msgForbidden = "доступно только администраторам"
)

type Handler struct {
	service ProfileService
	logger  Logger
}

func NewHandler(service ProfileService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/stats
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())

	stats, err := h.service.AdminStats(r.Context(), actor)
	if err != nil {
		switch {
		case errors.Is(err, profiles.ErrUnauthorized):
			handlers.RespondUnauthorized(w)

		case errors.Is(err, profiles.ErrAccessDenied):
			h.logger.Warn("GET /admin/stats - Access denied: user_id=%s, role=%s", actor.ID, actor.Role)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /admin/stats - Failed to collect stats: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, stats)
}
