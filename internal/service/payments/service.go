package payments

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	paymentRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/payment"
	"github.com/m04kA/SMC-ParkingService/internal/service/payments/models"
)

// Service сервис оплаты бронирований
type Service struct {
	paymentRepo PaymentRepository
	bookingRepo BookingRepository
	gateway     Gateway
	confirmer   BookingConfirmer
	currency    string
	logger      Logger
}

// NewService создает новый экземпляр сервиса оплаты
func NewService(
	paymentRepo PaymentRepository,
	bookingRepo BookingRepository,
	gateway Gateway,
	confirmer BookingConfirmer,
	currency string,
	logger Logger,
) *Service {
	if currency == "" {
		currency = domain.DefaultCurrency
	}
	return &Service{
		paymentRepo: paymentRepo,
		bookingRepo: bookingRepo,
		gateway:     gateway,
		confirmer:   confirmer,
		currency:    currency,
		logger:      logger,
	}
}

// CreateOrder создает платёжный заказ на полную стоимость брони.
// Доступно владельцу брони в статусе pending
func (s *Service) CreateOrder(ctx context.Context, actor *domain.Actor, req *models.CreateOrderRequest) (*models.OrderResponse, error) {
	if actor == nil {
		return nil, ErrUnauthorized
	}

	s.logger.Info("CreateOrder: booking=%s by user=%s", req.BookingID, actor.ID)

	booking, err := s.getOwnedBooking(ctx, "CreateOrder", actor, req.BookingID)
	if err != nil {
		return nil, err
	}

	if booking.Status != domain.StatusPending {
		s.logger.Warn("CreateOrder: booking=%s has status=%s", booking.ID, booking.Status)
		return nil, ErrBookingNotPending
	}

	gwOrder, err := s.gateway.CreateOrder(ctx, booking.ID, booking.TotalCost, s.currency)
	if err != nil {
		s.logger.Error("CreateOrder: %s gateway failed for booking=%s: %v", s.gateway.Name(), booking.ID, err)
		return nil, fmt.Errorf("%w: CreateOrder - %v", ErrGateway, err)
	}

	order, err := s.paymentRepo.Create(ctx, &domain.PaymentOrder{
		BookingID:   booking.ID,
		Amount:      gwOrder.Amount,
		Currency:    gwOrder.Currency,
		Status:      gwOrder.Status,
		Provider:    s.gateway.Name(),
		ProviderRef: gwOrder.Ref,
	})
	if err != nil {
		s.logger.Error("CreateOrder: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateOrder - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateOrder: created order id=%s ref=%s amount=%.2f %s", order.ID, order.ProviderRef, order.Amount, order.Currency)
	return models.FromDomainOrder(order), nil
}

// Pay проводит оплату заказа через шлюз
func (s *Service) Pay(ctx context.Context, actor *domain.Actor, orderID uuid.UUID) (*models.PaymentResultResponse, error) {
	return s.settle(ctx, "Pay", actor, orderID, s.gateway.Capture)
}

// Verify перезапрашивает статус заказа у шлюза
func (s *Service) Verify(ctx context.Context, actor *domain.Actor, orderID uuid.UUID) (*models.PaymentResultResponse, error) {
	return s.settle(ctx, "Verify", actor, orderID, s.gateway.Status)
}

// settle общий путь Pay и Verify: при успехе шлюза заказ помечается success,
// бронь подтверждается. Повторный вызов для оплаченного заказа безопасен
func (s *Service) settle(
	ctx context.Context,
	op string,
	actor *domain.Actor,
	orderID uuid.UUID,
	query func(ctx context.Context, ref string) (domain.PaymentStatus, error),
) (*models.PaymentResultResponse, error) {
	if actor == nil {
		return nil, ErrUnauthorized
	}

	s.logger.Info("%s: order=%s by user=%s", op, orderID, actor.ID)

	order, err := s.paymentRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			s.logger.Warn("%s: order id=%s not found", op, orderID)
			return nil, ErrOrderNotFound
		}
		s.logger.Error("%s: repository error for order id=%s: %v", op, orderID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if _, err := s.getOwnedBooking(ctx, op, actor, order.BookingID); err != nil {
		return nil, err
	}

	if !order.IsPaid() {
		status, err := query(ctx, order.ProviderRef)
		if err != nil {
			s.logger.Error("%s: %s gateway failed for ref=%s: %v", op, order.Provider, order.ProviderRef, err)
			return nil, fmt.Errorf("%w: %s - %v", ErrGateway, op, err)
		}

		if status != domain.PaymentSuccess {
			s.logger.Info("%s: order=%s is still %s", op, orderID, status)
			return &models.PaymentResultResponse{Success: false, Order: models.FromDomainOrder(order)}, nil
		}

		if _, err := s.paymentRepo.MarkSuccess(ctx, order.ID); err != nil {
			s.logger.Error("%s: failed to mark order=%s paid: %v", op, orderID, err)
			return nil, fmt.Errorf("%w: %s - mark success: %v", ErrInternal, op, err)
		}
		order.Status = domain.PaymentSuccess
	}

	if err := s.confirmer.OnPaymentSuccess(ctx, order.BookingID); err != nil {
		s.logger.Error("%s: failed to confirm booking=%s: %v", op, order.BookingID, err)
		return nil, fmt.Errorf("%w: %s - confirm booking: %v", ErrInternal, op, err)
	}

	s.logger.Info("%s: order=%s paid, booking=%s confirmed", op, orderID, order.BookingID)
	return &models.PaymentResultResponse{Success: true, Order: models.FromDomainOrder(order)}, nil
}

func (s *Service) getOwnedBooking(ctx context.Context, op string, actor *domain.Actor, bookingID uuid.UUID) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found", op, bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, bookingID, err)
		return nil, fmt.Errorf("%w: %s - get booking: %v", ErrInternal, op, err)
	}

	if !booking.IsOwnedBy(actor.ID) {
		s.logger.Warn("%s: user=%s does not own booking=%s", op, actor.ID, bookingID)
		return nil, ErrAccessDenied
	}
	return booking, nil
}
