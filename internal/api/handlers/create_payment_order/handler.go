package create_payment_order

import (
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/handlers/pay_order"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/service/payments/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgValidationFailed   = "ID бронирования обязателен"
)

type Handler struct {
	service PaymentService
	logger  Logger
}

func NewHandler(service PaymentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/payments/orders
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateOrderRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /payments/orders - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("POST /payments/orders - Validation failed: %v", err)
		handlers.RespondValidationError(w, msgValidationFailed, err)
		return
	}

	actor := middleware.GetActor(r.Context())

	order, err := h.service.CreateOrder(r.Context(), actor, &req)
	if err != nil {
		if pay_order.RespondPaymentError(w, err) {
			h.logger.Error("POST /payments/orders - Failed to create order: booking_id=%s, error=%v", req.BookingID, err)
		} else {
			h.logger.Warn("POST /payments/orders - Order rejected: booking_id=%s, error=%v", req.BookingID, err)
		}
		return
	}

	h.logger.Info("POST /payments/orders - Order created: order_id=%s, booking_id=%s, amount=%.2f %s",
		order.ID, order.BookingID, order.Amount, order.Currency)
	handlers.RespondJSON(w, http.StatusCreated, order)
}
