package me

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/service/profiles"
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

// Handle GET /api/v1/me
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())

	profile, err := h.service.Me(r.Context(), actor)
	if err != nil {
		if errors.Is(err, profiles.ErrUnauthorized) {
			handlers.RespondUnauthorized(w)
			return
		}
		h.logger.Error("GET /me - Failed to get profile: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, profile)
}
