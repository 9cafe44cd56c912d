package cancel_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubService struct {
	resp *models.BookingResponse
	err  error
}

func (s stubService) Cancel(context.Context, *domain.Actor, uuid.UUID) (*models.BookingResponse, error) {
	return s.resp, s.err
}

func TestHandle(t *testing.T) {
	bookingID := uuid.New()
	actor := &domain.Actor{ID: uuid.New(), Role: domain.RoleUser}

	tests := []struct {
		name     string
		svc      stubService
		wantCode int
	}{
		{"cancelled", stubService{resp: &models.BookingResponse{ID: bookingID, Status: "cancelled"}}, http.StatusOK},
		{"not found", stubService{err: bookings.ErrBookingNotFound}, http.StatusNotFound},
		{"foreign booking", stubService{err: bookings.ErrAccessDenied}, http.StatusForbidden},
		{"already completed", stubService{err: bookings.ErrAlreadyCompleted}, http.StatusConflict},
		{"already cancelled", stubService{err: bookings.ErrAlreadyCancelled}, http.StatusConflict},
		{"internal", stubService{err: bookings.ErrInternal}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/"+bookingID.String()+"/cancel", nil)
			r = mux.SetURLVars(r, map[string]string{"bookingId": bookingID.String()})
			r = r.WithContext(middleware.WithActor(r.Context(), actor))

			w := httptest.NewRecorder()
			NewHandler(tt.svc, nopLogger{}).Handle(w, r)

			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestHandle_InvalidID(t *testing.T) {
	r := mux.SetURLVars(httptest.NewRequest(http.MethodPatch, "/", nil), map[string]string{"bookingId": "42"})

	w := httptest.NewRecorder()
	NewHandler(stubService{}, nopLogger{}).Handle(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
