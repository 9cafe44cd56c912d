package payments

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	paymentRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/payment"
	"github.com/m04kA/SMC-ParkingService/internal/integrations/payment"
	"github.com/m04kA/SMC-ParkingService/internal/service/payments/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type memOrders map[uuid.UUID]*domain.PaymentOrder

func (m memOrders) Create(_ context.Context, o *domain.PaymentOrder) (*domain.PaymentOrder, error) {
	o.ID = uuid.New()
	m[o.ID] = o
	return o, nil
}

func (m memOrders) GetByID(_ context.Context, id uuid.UUID) (*domain.PaymentOrder, error) {
	o, ok := m[id]
	if !ok {
		return nil, paymentRepo.ErrPaymentNotFound
	}
	cp := *o
	return &cp, nil
}

func (m memOrders) MarkSuccess(_ context.Context, id uuid.UUID) (bool, error) {
	o := m[id]
	if o.Status == domain.PaymentSuccess {
		return false, nil
	}
	o.Status = domain.PaymentSuccess
	return true, nil
}

type memBookings map[uuid.UUID]*domain.Booking

func (m memBookings) GetByID(_ context.Context, id uuid.UUID) (*domain.Booking, error) {
	if b, ok := m[id]; ok {
		return b, nil
	}
	return nil, bookingRepo.ErrBookingNotFound
}

type recordingConfirmer struct{ confirmed []uuid.UUID }

func (r *recordingConfirmer) OnPaymentSuccess(_ context.Context, id uuid.UUID) error {
	r.confirmed = append(r.confirmed, id)
	return nil
}

type failingGateway struct{ *payment.MockGateway }

func (failingGateway) CreateOrder(context.Context, uuid.UUID, float64, string) (*payment.Order, error) {
	return nil, errors.New("connection refused")
}

func setup(status domain.BookingStatus) (*Service, memOrders, *recordingConfirmer, *domain.Actor, *domain.Booking) {
	owner := &domain.Actor{ID: uuid.New(), Role: domain.RoleUser}
	booking := &domain.Booking{ID: uuid.New(), UserID: &owner.ID, TotalCost: 150, Status: status}
	orders := memOrders{}
	confirmer := &recordingConfirmer{}

	svc := NewService(orders, memBookings{booking.ID: booking}, payment.NewMockGateway(), confirmer, "", nopLogger{})
	return svc, orders, confirmer, owner, booking
}

func TestCreateOrderAndPay(t *testing.T) {
	svc, orders, confirmer, owner, booking := setup(domain.StatusPending)

	order, err := svc.CreateOrder(context.Background(), owner, &models.CreateOrderRequest{BookingID: booking.ID})
	require.NoError(t, err)
	assert.Equal(t, 150.0, order.Amount)
	assert.Equal(t, domain.DefaultCurrency, order.Currency)
	assert.Equal(t, "mock", order.Provider)
	assert.Equal(t, string(domain.PaymentPending), order.Status)

	verified, err := svc.Verify(context.Background(), owner, order.ID)
	require.NoError(t, err)
	assert.False(t, verified.Success)
	assert.Empty(t, confirmer.confirmed)

	paid, err := svc.Pay(context.Background(), owner, order.ID)
	require.NoError(t, err)
	assert.True(t, paid.Success)
	assert.Equal(t, string(domain.PaymentSuccess), paid.Order.Status)
	assert.Equal(t, domain.PaymentSuccess, orders[order.ID].Status)
	assert.Equal(t, []uuid.UUID{booking.ID}, confirmer.confirmed)

	again, err := svc.Verify(context.Background(), owner, order.ID)
	require.NoError(t, err)
	assert.True(t, again.Success)
}

func TestCreateOrderRejections(t *testing.T) {
	svc, _, _, owner, booking := setup(domain.StatusConfirmed)

	_, err := svc.CreateOrder(context.Background(), owner, &models.CreateOrderRequest{BookingID: booking.ID})
	assert.ErrorIs(t, err, ErrBookingNotPending)

	stranger := &domain.Actor{ID: uuid.New(), Role: domain.RoleUser}
	_, err = svc.CreateOrder(context.Background(), stranger, &models.CreateOrderRequest{BookingID: booking.ID})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.CreateOrder(context.Background(), owner, &models.CreateOrderRequest{BookingID: uuid.New()})
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = svc.Pay(context.Background(), owner, uuid.New())
	assert.ErrorIs(t, err, ErrOrderNotFound)

	_, err = svc.CreateOrder(context.Background(), nil, &models.CreateOrderRequest{BookingID: booking.ID})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestCreateOrderGatewayFailure(t *testing.T) {
	owner := &domain.Actor{ID: uuid.New(), Role: domain.RoleUser}
	booking := &domain.Booking{ID: uuid.New(), UserID: &owner.ID, TotalCost: 10, Status: domain.StatusPending}
	gw := failingGateway{payment.NewMockGateway()}
	svc := NewService(memOrders{}, memBookings{booking.ID: booking}, gw, &recordingConfirmer{}, "INR", nopLogger{})

	_, err := svc.CreateOrder(context.Background(), owner, &models.CreateOrderRequest{BookingID: booking.ID})
	assert.ErrorIs(t, err, ErrGateway)
}
