package payments

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/integrations/payment"
)

// PaymentRepository интерфейс репозитория платёжных заказов
type PaymentRepository interface {
	Create(ctx context.Context, order *domain.PaymentOrder) (*domain.PaymentOrder, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.PaymentOrder, error)
	MarkSuccess(ctx context.Context, id uuid.UUID) (bool, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
}

// Gateway платёжный шлюз
type Gateway interface {
	Name() string
	CreateOrder(ctx context.Context, bookingID uuid.UUID, amount float64, currency string) (*payment.Order, error)
	Capture(ctx context.Context, ref string) (domain.PaymentStatus, error)
	Status(ctx context.Context, ref string) (domain.PaymentStatus, error)
}

// BookingConfirmer подтверждение брони после оплаты
type BookingConfirmer interface {
	OnPaymentSuccess(ctx context.Context, bookingID uuid.UUID) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
