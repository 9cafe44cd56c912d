package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	lotRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/lot"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
)

const (
	msgCheckedIn        = "booking verified, vehicle checked in"
	msgAlreadyCheckedIn = "booking already checked in"
)

// Service сервис жизненного цикла бронирований
type Service struct {
	bookingRepo  BookingRepository
	lotRepo      LotRepository
	operatorRepo OperatorRepository
	reconciler   CacheReconciler
	publisher    EventPublisher
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	lotRepo LotRepository,
	operatorRepo OperatorRepository,
	reconciler CacheReconciler,
	publisher EventPublisher,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		lotRepo:      lotRepo,
		operatorRepo: operatorRepo,
		reconciler:   reconciler,
		publisher:    publisher,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID.
// Владелец видит свою бронь, персонал - брони своих парковок
func (s *Service) GetByID(ctx context.Context, actor *domain.Actor, id uuid.UUID) (*models.BookingResponse, error) {
	if actor == nil {
		return nil, ErrUnauthorized
	}

	s.logger.Info("GetByID: fetching booking id=%s for user=%s", id, actor.ID)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if err := s.checkOwnerOrStaffAccess(ctx, actor, booking); err != nil {
		s.logger.Warn("GetByID: access denied for user=%s to booking id=%s", actor.ID, id)
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// ListMine получает историю бронирований текущего пользователя.
// Опционально фильтрует по статусу
func (s *Service) ListMine(ctx context.Context, actor *domain.Actor, req *models.GetMyBookingsRequest) (*models.BookingListResponse, error) {
	if actor == nil {
		return nil, ErrUnauthorized
	}

	s.logger.Info("ListMine: fetching bookings for user=%s, status=%v", actor.ID, req.Status)

	var status *domain.BookingStatus
	if req.Status != nil {
		parsed, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("ListMine: invalid status=%s for user=%s", *req.Status, actor.ID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		status = &parsed
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, actor.ID, status)
	if err != nil {
		s.logger.Error("ListMine: repository error for user=%s: %v", actor.ID, err)
		return nil, fmt.Errorf("%w: ListMine - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListMine: found %d bookings for user=%s", len(bookings), actor.ID)
	return models.FromDomainBookingList(bookings), nil
}

// ListLotBookings получает бронирования парковки для персонала
func (s *Service) ListLotBookings(ctx context.Context, actor *domain.Actor, req *models.GetLotBookingsRequest) (*models.BookingListResponse, error) {
	if actor == nil {
		return nil, ErrUnauthorized
	}

	s.logger.Info("ListLotBookings: fetching bookings for lot=%s by user=%s", req.LotID, actor.ID)

	if _, err := s.lotRepo.GetByID(ctx, req.LotID); err != nil {
		if errors.Is(err, lotRepo.ErrLotNotFound) {
			s.logger.Warn("ListLotBookings: lot id=%s not found", req.LotID)
			return nil, ErrLotNotFound
		}
		s.logger.Error("ListLotBookings: failed to get lot id=%s: %v", req.LotID, err)
		return nil, fmt.Errorf("%w: ListLotBookings - get lot: %v", ErrInternal, err)
	}

	if err := s.checkStaffAccess(ctx, actor, req.LotID); err != nil {
		return nil, err
	}

	if req.From != nil && req.To != nil && !req.From.Before(*req.To) {
		s.logger.Warn("ListLotBookings: invalid period from=%v to=%v", req.From, req.To)
		return nil, fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListLotBookings: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	bookings, err := s.bookingRepo.GetByLotWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ListLotBookings: repository error for lot=%s: %v", req.LotID, err)
		return nil, fmt.Errorf("%w: ListLotBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListLotBookings: found %d bookings for lot=%s", len(bookings), req.LotID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование. Доступно владельцу и персоналу парковки.
// Переход выполняется условным UPDATE из любого незавершённого статуса
func (s *Service) Cancel(ctx context.Context, actor *domain.Actor, id uuid.UUID) (*models.BookingResponse, error) {
	if actor == nil {
		return nil, ErrUnauthorized
	}

	s.logger.Info("Cancel: cancelling booking id=%s by user=%s", id, actor.ID)

	booking, err := s.getBooking(ctx, "Cancel", id)
	if err != nil {
		return nil, err
	}

	if err := s.checkOwnerOrStaffAccess(ctx, actor, booking); err != nil {
		s.logger.Warn("Cancel: access denied for user=%s to booking id=%s", actor.ID, id)
		return nil, err
	}

	if err := terminalError(booking.Status, false); err != nil {
		s.logger.Warn("Cancel: booking id=%s has status=%s", id, booking.Status)
		return nil, err
	}

	updated, _, err := s.transition(ctx, "Cancel", booking, domain.NonTerminalStatuses, domain.StatusCancelled, false)
	if err != nil {
		return nil, err
	}

	s.afterTransition(ctx, "Cancel", domain.EventBookingCancelled, updated)
	return models.FromDomainBooking(updated), nil
}

// Complete завершает бронирование. Доступно персоналу парковки
func (s *Service) Complete(ctx context.Context, actor *domain.Actor, id uuid.UUID) (*models.BookingResponse, error) {
	if actor == nil {
		return nil, ErrUnauthorized
	}

	s.logger.Info("Complete: completing booking id=%s by user=%s", id, actor.ID)

	booking, err := s.getBooking(ctx, "Complete", id)
	if err != nil {
		return nil, err
	}

	if err := s.checkStaffAccess(ctx, actor, booking.LotID); err != nil {
		return nil, err
	}

	if err := terminalError(booking.Status, true); err != nil {
		s.logger.Warn("Complete: booking id=%s has status=%s", id, booking.Status)
		return nil, err
	}

	updated, _, err := s.transition(ctx, "Complete", booking, domain.NonTerminalStatuses, domain.StatusCompleted, true)
	if err != nil {
		return nil, err
	}

	s.afterTransition(ctx, "Complete", domain.EventBookingCompleted, updated)
	return models.FromDomainBooking(updated), nil
}

// CheckIn проверяет бронь на въезде и переводит её в active.
// Повторная проверка активной брони успешна и ничего не меняет
func (s *Service) CheckIn(ctx context.Context, actor *domain.Actor, id uuid.UUID) (*models.CheckInResponse, error) {
	if actor == nil {
		return nil, ErrUnauthorized
	}

	s.logger.Info("CheckIn: verifying booking id=%s by user=%s", id, actor.ID)

	if !actor.IsStaff() {
		s.logger.Warn("CheckIn: role=%s is not allowed", actor.Role)
		return nil, ErrAccessDenied
	}

	booking, err := s.getBooking(ctx, "CheckIn", id)
	if err != nil {
		return nil, err
	}

	if err := s.checkStaffAccess(ctx, actor, booking.LotID); err != nil {
		return nil, err
	}

	if booking.Status == domain.StatusActive {
		s.logger.Info("CheckIn: booking id=%s already active", id)
		return &models.CheckInResponse{Success: true, Message: msgAlreadyCheckedIn, Booking: models.FromDomainBooking(booking)}, nil
	}

	if err := terminalError(booking.Status, false); err != nil {
		s.logger.Warn("CheckIn: booking id=%s has status=%s", id, booking.Status)
		return nil, err
	}

	from := []domain.BookingStatus{domain.StatusPending, domain.StatusConfirmed}
	updated, applied, err := s.transition(ctx, "CheckIn", booking, from, domain.StatusActive, false)
	if err != nil {
		return nil, err
	}

	if !applied {
		// Конкурентная проверка успела раньше
		return &models.CheckInResponse{Success: true, Message: msgAlreadyCheckedIn, Booking: models.FromDomainBooking(updated)}, nil
	}

	s.afterTransition(ctx, "CheckIn", domain.EventBookingCheckedIn, updated)
	return &models.CheckInResponse{Success: true, Message: msgCheckedIn, Booking: models.FromDomainBooking(updated)}, nil
}

// OnPaymentSuccess подтверждает оплаченную бронь: pending -> confirmed.
// Бронь в любом другом статусе не меняется
func (s *Service) OnPaymentSuccess(ctx context.Context, id uuid.UUID) error {
	s.logger.Info("OnPaymentSuccess: confirming booking id=%s", id)

	now := s.timeProvider.Now()
	err := s.bookingRepo.TransitionStatus(ctx, id, []domain.BookingStatus{domain.StatusPending}, domain.StatusConfirmed, now)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrStatusConflict) {
			s.logger.Info("OnPaymentSuccess: booking id=%s is not pending, ignoring", id)
			return nil
		}
		s.logger.Error("OnPaymentSuccess: failed to confirm booking id=%s: %v", id, err)
		return fmt.Errorf("%w: OnPaymentSuccess - transition: %v", ErrInternal, err)
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Warn("OnPaymentSuccess: confirmed booking id=%s but failed to reload: %v", id, err)
		return nil
	}

	s.publish(ctx, "OnPaymentSuccess", domain.EventBookingConfirmed, booking)
	return nil
}

// Вспомогательные методы

func (s *Service) getBooking(ctx context.Context, op string, id uuid.UUID) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// transition выполняет условный переход статуса. Если бронь успели перевести
// конкурентно, перечитывает её и возвращает ошибку по фактическому статусу.
// Если бронь уже в целевом статусе active, возвращает её с applied=false
func (s *Service) transition(
	ctx context.Context,
	op string,
	booking *domain.Booking,
	from []domain.BookingStatus,
	to domain.BookingStatus,
	completing bool,
) (updated *domain.Booking, applied bool, err error) {
	now := s.timeProvider.Now()

	err = s.bookingRepo.TransitionStatus(ctx, booking.ID, from, to, now)
	if err == nil {
		next := *booking
		next.Status = to
		next.UpdatedAt = now
		switch to {
		case domain.StatusActive:
			next.CheckedInAt = &now
		case domain.StatusCompleted:
			next.CompletedAt = &now
		case domain.StatusCancelled:
			next.CancelledAt = &now
		}
		s.logger.Info("%s: booking id=%s moved %s -> %s", op, booking.ID, booking.Status, to)
		return &next, true, nil
	}

	if !errors.Is(err, bookingRepo.ErrStatusConflict) {
		s.logger.Error("%s: failed to update booking id=%s: %v", op, booking.ID, err)
		return nil, false, fmt.Errorf("%w: %s - transition: %v", ErrInternal, op, err)
	}

	current, err := s.getBooking(ctx, op, booking.ID)
	if err != nil {
		return nil, false, err
	}

	s.logger.Warn("%s: booking id=%s changed concurrently to status=%s", op, booking.ID, current.Status)

	if to == domain.StatusActive && current.Status == domain.StatusActive {
		return current, false, nil
	}
	if err := terminalError(current.Status, completing); err != nil {
		return nil, false, err
	}
	return nil, false, fmt.Errorf("%w: %s - unexpected status %s", ErrInternal, op, current.Status)
}

// afterTransition запускает синхронизацию кэша и публикует событие
func (s *Service) afterTransition(ctx context.Context, op string, eventType domain.BookingEventType, booking *domain.Booking) {
	s.reconciler.Trigger(booking.LotID, booking.SlotKey)
	s.publish(ctx, op, eventType, booking)
}

func (s *Service) publish(ctx context.Context, op string, eventType domain.BookingEventType, booking *domain.Booking) {
	event := domain.NewBookingEvent(eventType, booking, s.timeProvider.Now())
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("%s: failed to publish %s for booking id=%s: %v", op, eventType, booking.ID, err)
	}
}

// terminalError ошибка для брони в финальном статусе, nil для незавершённой
func terminalError(status domain.BookingStatus, completing bool) error {
	switch status {
	case domain.StatusCompleted:
		return ErrAlreadyCompleted
	case domain.StatusCancelled:
		if completing {
			return ErrCannotCompleteCancelled
		}
		return ErrAlreadyCancelled
	}
	return nil
}

// checkOwnerOrStaffAccess владелец брони или персонал её парковки
func (s *Service) checkOwnerOrStaffAccess(ctx context.Context, actor *domain.Actor, booking *domain.Booking) error {
	if booking.IsOwnedBy(actor.ID) {
		return nil
	}
	if !actor.IsStaff() {
		return ErrAccessDenied
	}
	return s.checkStaffAccess(ctx, actor, booking.LotID)
}

// checkStaffAccess персонал; оператор должен быть назначен на парковку
func (s *Service) checkStaffAccess(ctx context.Context, actor *domain.Actor, lotID uuid.UUID) error {
	if !actor.IsStaff() {
		s.logger.Warn("checkStaffAccess: user=%s with role=%s is not staff", actor.ID, actor.Role)
		return ErrAccessDenied
	}
	if !actor.IsOperator() {
		return nil
	}

	assigned, err := s.operatorRepo.IsAssigned(ctx, actor.ID, lotID)
	if err != nil {
		s.logger.Error("checkStaffAccess: failed to check assignment of operator=%s: %v", actor.ID, err)
		return fmt.Errorf("%w: checkStaffAccess - assignment lookup: %v", ErrInternal, err)
	}
	if !assigned {
		s.logger.Warn("checkStaffAccess: operator=%s is not assigned to lot=%s", actor.ID, lotID)
		return ErrAccessDenied
	}
	return nil
}
