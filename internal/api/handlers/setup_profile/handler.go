package setup_profile

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/service/profiles"
	"github.com/m04kA/SMC-ParkingService/internal/service/profiles/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgValidationFailed   = "некорректные данные профиля"
	msgNotFound           = "профиль не найден"
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

// Handle PUT /api/v1/me/profile
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.SetupProfileRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /me/profile - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("PUT /me/profile - Validation failed: %v", err)
		handlers.RespondValidationError(w, msgValidationFailed, err)
		return
	}

	actor := middleware.GetActor(r.Context())

	profile, err := h.service.SetupProfile(r.Context(), actor, &req)
	if err != nil {
		switch {
		case errors.Is(err, profiles.ErrUnauthorized):
			handlers.RespondUnauthorized(w)

		case errors.Is(err, profiles.ErrInvalidInput):
			h.logger.Warn("PUT /me/profile - Invalid input: user_id=%s, error=%v", actor.ID, err)
			handlers.RespondBadRequest(w, msgValidationFailed)

		case errors.Is(err, profiles.ErrProfileNotFound):
			h.logger.Warn("PUT /me/profile - Profile not found: user_id=%s", actor.ID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("PUT /me/profile - Failed to update profile: user_id=%s, error=%v", actor.ID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /me/profile - Profile updated: user_id=%s", actor.ID)
	handlers.RespondJSON(w, http.StatusOK, profile)
}
