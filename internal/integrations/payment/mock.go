package payment

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// MockGateway шлюз в памяти процесса: заказ оплачивается вызовом Capture
type MockGateway struct {
	mu     sync.Mutex
	orders map[string]*Order
}

// NewMockGateway создаёт mock-шлюз
func NewMockGateway() *MockGateway {
	return &MockGateway{orders: make(map[string]*Order)}
}

// Name имя провайдера
func (g *MockGateway) Name() string {
	return "mock"
}

// CreateOrder регистрирует заказ
func (g *MockGateway) CreateOrder(_ context.Context, bookingID uuid.UUID, amount float64, currency string) (*Order, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	order := &Order{
		Ref:      fmt.Sprintf("order_%s", uuid.NewString()),
		Amount:   amount,
		Currency: currency,
		Status:   domain.PaymentPending,
	}
	g.orders[order.Ref] = order

	copied := *order
	return &copied, nil
}

// Capture оплачивает заказ
func (g *MockGateway) Capture(_ context.Context, ref string) (domain.PaymentStatus, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	order, ok := g.orders[ref]
	if !ok {
		return "", ErrOrderNotFound
	}
	order.Status = domain.PaymentSuccess
	return order.Status, nil
}

// Status текущий статус заказа
func (g *MockGateway) Status(_ context.Context, ref string) (domain.PaymentStatus, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	order, ok := g.orders[ref]
	if !ok {
		return "", ErrOrderNotFound
	}
	return order.Status, nil
}
