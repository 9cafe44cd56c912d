package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// CreateOrderRequest запрос на создание платёжного заказа
type CreateOrderRequest struct {
	BookingID uuid.UUID `json:"bookingId" validate:"required"`
}

// OrderResponse ответ с данными платёжного заказа
type OrderResponse struct {
	ID          uuid.UUID `json:"id"`
	BookingID   uuid.UUID `json:"bookingId"`
	Amount      float64   `json:"amount"`
	Currency    string    `json:"currency"`
	Status      string    `json:"status"`
	Provider    string    `json:"provider"`
	ProviderRef string    `json:"providerRef"`
	CreatedAt   time.Time `json:"createdAt"`
}

// PaymentResultResponse результат оплаты или проверки оплаты
type PaymentResultResponse struct {
	Success bool           `json:"success"`
	Order   *OrderResponse `json:"order"`
}

// FromDomainOrder конвертирует domain модель в DTO
func FromDomainOrder(o *domain.PaymentOrder) *OrderResponse {
	if o == nil {
		return nil
	}
	return &OrderResponse{
		ID:          o.ID,
		BookingID:   o.BookingID,
		Amount:      o.Amount,
		Currency:    o.Currency,
		Status:      string(o.Status),
		Provider:    o.Provider,
		ProviderRef: o.ProviderRef,
		CreatedAt:   o.CreatedAt,
	}
}
