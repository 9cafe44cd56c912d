package payment

import (
	"errors"
	"math"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

var (
	// ErrOrderNotFound шлюз не знает заказ
	ErrOrderNotFound = errors.New("payment gateway: order not found")

	// ErrGateway ошибка обращения к платёжному шлюзу
	ErrGateway = errors.New("payment gateway: upstream failure")
)

// Order заказ на стороне шлюза
type Order struct {
	Ref      string
	Amount   float64
	Currency string
	Status   domain.PaymentStatus
}

// toMinorUnits переводит сумму в копейки/пайсы
func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
