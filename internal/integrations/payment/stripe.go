package payment

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v82"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// StripeGateway шлюз на PaymentIntents
type StripeGateway struct {
	client        *stripe.Client
	paymentMethod string
}

// NewStripeGateway создаёт шлюз. paymentMethod используется при подтверждении на сервере
func NewStripeGateway(secretKey, paymentMethod string) *StripeGateway {
	return &StripeGateway{
		client:        stripe.NewClient(secretKey),
		paymentMethod: paymentMethod,
	}
}

// Name имя провайдера
func (g *StripeGateway) Name() string {
	return "stripe"
}

// CreateOrder создаёт PaymentIntent
func (g *StripeGateway) CreateOrder(ctx context.Context, bookingID uuid.UUID, amount float64, currency string) (*Order, error) {
	params := &stripe.PaymentIntentCreateParams{
		Amount:   stripe.Int64(toMinorUnits(amount)),
		Currency: stripe.String(strings.ToLower(currency)),
	}
	params.AddMetadata("booking_id", bookingID.String())

	pi, err := g.client.V1PaymentIntents.Create(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateOrder - %v", ErrGateway, err)
	}

	return &Order{
		Ref:      pi.ID,
		Amount:   amount,
		Currency: currency,
		Status:   intentStatus(pi.Status),
	}, nil
}

// Capture подтверждает PaymentIntent
func (g *StripeGateway) Capture(ctx context.Context, ref string) (domain.PaymentStatus, error) {
	params := &stripe.PaymentIntentConfirmParams{}
	if g.paymentMethod != "" {
		params.PaymentMethod = stripe.String(g.paymentMethod)
	}

	pi, err := g.client.V1PaymentIntents.Confirm(ctx, ref, params)
	if err != nil {
		return "", fmt.Errorf("%w: Capture - %v", ErrGateway, err)
	}
	return intentStatus(pi.Status), nil
}

// Status перечитывает PaymentIntent
func (g *StripeGateway) Status(ctx context.Context, ref string) (domain.PaymentStatus, error) {
	pi, err := g.client.V1PaymentIntents.Retrieve(ctx, ref, &stripe.PaymentIntentRetrieveParams{})
	if err != nil {
		return "", fmt.Errorf("%w: Status - %v", ErrGateway, err)
	}
	return intentStatus(pi.Status), nil
}

func intentStatus(s stripe.PaymentIntentStatus) domain.PaymentStatus {
	if s == stripe.PaymentIntentStatusSucceeded {
		return domain.PaymentSuccess
	}
	return domain.PaymentPending
}
