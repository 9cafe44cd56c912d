package admin_users

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

// Handle GET /api/v1/admin/users
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())

	result, err := h.service.ListUsers(r.Context(), actor)
	if err != nil {
		switch {
		case errors.Is(err, profiles.ErrUnauthorized):
			handlers.RespondUnauthorized(w)

		case errors.Is(err, profiles.ErrAccessDenied):
			h.logger.Warn("GET /admin/users - Access denied: user_id=%s, role=%s", actor.ID, actor.Role)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /admin/users - Failed to list users: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/users - Users retrieved: count=%d", len(result.Users))
	handlers.RespondJSON(w, http.StatusOK, result)
}
