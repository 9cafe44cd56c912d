package payment

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

func TestMockGateway(t *testing.T) {
	g := NewMockGateway()
	ctx := context.Background()

	order, err := g.CreateOrder(ctx, uuid.New(), 150, "INR")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPending, order.Status)

	status, err := g.Status(ctx, order.Ref)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPending, status)

	status, err = g.Capture(ctx, order.Ref)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentSuccess, status)

	status, err = g.Status(ctx, order.Ref)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentSuccess, status)

	_, err = g.Capture(ctx, "order_missing")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestToMinorUnits(t *testing.T) {
	assert.Equal(t, int64(12050), toMinorUnits(120.5))
	assert.Equal(t, int64(1999), toMinorUnits(19.99))
}

func TestIntentStatus(t *testing.T) {
	assert.Equal(t, domain.PaymentSuccess, intentStatus(stripe.PaymentIntentStatusSucceeded))
	assert.Equal(t, domain.PaymentPending, intentStatus(stripe.PaymentIntentStatusRequiresPaymentMethod))
}
