package pay_order

import (
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
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

// Handle POST /api/v1/payments/orders/{orderId}/pay
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	orderID, err := handlers.UUIDVar(r, "orderId")
	if err != nil {
		h.logger.Warn("POST /payments/orders/{id}/pay - Invalid order ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOrderID)
		return
	}

	actor := middleware.GetActor(r.Context())

	result, err := h.service.Pay(r.Context(), actor, orderID)
	if err != nil {
		if RespondPaymentError(w, err) {
			h.logger.Error("POST /payments/orders/{id}/pay - Payment failed: order_id=%s, error=%v", orderID, err)
		} else {
			h.logger.Warn("POST /payments/orders/{id}/pay - Payment rejected: order_id=%s, error=%v", orderID, err)
		}
		return
	}

	h.logger.Info("POST /payments/orders/{id}/pay - Payment processed: order_id=%s, success=%t", orderID, result.Success)
	handlers.RespondJSON(w, http.StatusOK, result)
}
