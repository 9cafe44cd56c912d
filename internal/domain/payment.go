package domain

import (
	"time"

	"github.com/google/uuid"
)

// PaymentStatus статус платёжного заказа
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentSuccess PaymentStatus = "success"
)

// PaymentOrder платёжный заказ по бронированию
type PaymentOrder struct {
	ID          uuid.UUID
	BookingID   uuid.UUID
	Amount      float64
	Currency    string
	Status      PaymentStatus
	Provider    string
	ProviderRef string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPaid заказ оплачен
func (p *PaymentOrder) IsPaid() bool {
	return p.Status == PaymentSuccess
}
