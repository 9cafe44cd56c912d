package verify_payment

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/payments/models"
)

type PaymentService interface {
	Verify(ctx context.Context, actor *domain.Actor, orderID uuid.UUID) (*models.PaymentResultResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
