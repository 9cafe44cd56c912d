package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	lotRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/lot"
	"github.com/m04kA/SMC-ParkingService/internal/service/allocator"
	"github.com/m04kA/SMC-ParkingService/pkg/txmanager"
)

const (
	kindSelfService = "self_service"
	kindWalkIn      = "walk_in"

	resultCreated  = "created"
	resultRejected = "rejected"
	resultFailed   = "failed"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	lotRepo      LotRepository
	operatorRepo OperatorRepository
	allocator    SlotAllocator
	reconciler   CacheReconciler
	publisher    EventPublisher
	txManager    TransactionManager
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger

	maxDurationHours int
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	lotRepo LotRepository,
	operatorRepo OperatorRepository,
	allocator SlotAllocator,
	reconciler CacheReconciler,
	publisher EventPublisher,
	txManager TransactionManager,
	metrics Metrics,
	maxDurationHours int,
	logger Logger,
) *UseCase {
	if maxDurationHours <= 0 {
		maxDurationHours = domain.DefaultMaxDurationHours
	}
	return &UseCase{
		bookingRepo:      bookingRepo,
		lotRepo:          lotRepo,
		operatorRepo:     operatorRepo,
		allocator:        allocator,
		reconciler:       reconciler,
		publisher:        publisher,
		txManager:        txManager,
		metrics:          metrics,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
		maxDurationHours: maxDurationHours,
	}
}

// bookingDraft всё, чем различаются обычная бронь и бронь walk-in
type bookingDraft struct {
	op      string
	kind    string
	lotID   uuid.UUID
	slotKey *string
	window  *window
	status  domain.BookingStatus
	userID  *uuid.UUID
	vehicle *string
	walkIn  *domain.WalkInDetails
}

// Execute создаёт бронь от имени пользователя. Бронь создаётся в статусе pending до оплаты
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.Actor == nil {
		return nil, ErrUnauthorized
	}

	uc.logger.Info("CreateBooking: user=%s, lot=%s", req.Actor.ID, req.LotID)

	now := uc.timeProvider.Now()
	win, err := resolveWindow(req, now, uc.maxDurationHours)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		uc.metrics.IncBooking(kindSelfService, resultRejected)
		return nil, err
	}

	userID := req.Actor.ID
	return uc.create(ctx, now, &bookingDraft{
		op:      "CreateBooking",
		kind:    kindSelfService,
		lotID:   req.LotID,
		slotKey: normalizeSlotKey(req.SlotKey),
		window:  win,
		status:  domain.StatusPending,
		userID:  &userID,
		vehicle: req.VehicleNumber,
	})
}

// ExecuteWalkIn создаёт бронь для клиента без аккаунта. Доступно персоналу,
// оператор должен быть назначен на парковку. Бронь сразу confirmed
func (uc *UseCase) ExecuteWalkIn(ctx context.Context, req *WalkInRequest) (*Response, error) {
	if req.Actor == nil {
		return nil, ErrUnauthorized
	}

	uc.logger.Info("CreateWalkInBooking: staff=%s (%s), lot=%s", req.Actor.ID, req.Actor.Role, req.LotID)

	if !req.Actor.IsStaff() {
		uc.logger.Warn("CreateWalkInBooking: role=%s is not allowed", req.Actor.Role)
		return nil, ErrAccessDenied
	}

	if err := validateWalkIn(req); err != nil {
		uc.logger.Warn("CreateWalkInBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	win, err := resolveWindow(&req.Request, now, uc.maxDurationHours)
	if err != nil {
		uc.logger.Warn("CreateWalkInBooking: validation failed: %v", err)
		uc.metrics.IncBooking(kindWalkIn, resultRejected)
		return nil, err
	}

	if req.Actor.IsOperator() {
		assigned, err := uc.operatorRepo.IsAssigned(ctx, req.Actor.ID, req.LotID)
		if err != nil {
			uc.logger.Error("CreateWalkInBooking: failed to check assignment: %v", err)
			return nil, fmt.Errorf("%w: failed to check operator assignment: %v", ErrInternal, err)
		}
		if !assigned {
			uc.logger.Warn("CreateWalkInBooking: operator=%s is not assigned to lot=%s", req.Actor.ID, req.LotID)
			return nil, ErrAccessDenied
		}
	}

	return uc.create(ctx, now, &bookingDraft{
		op:      "CreateWalkInBooking",
		kind:    kindWalkIn,
		lotID:   req.LotID,
		slotKey: normalizeSlotKey(req.SlotKey),
		window:  win,
		status:  domain.StatusConfirmed,
		vehicle: req.VehicleNumber,
		walkIn: &domain.WalkInDetails{
			CustomerName:  req.CustomerName,
			CustomerPhone: req.CustomerPhone,
			CreatedBy:     req.Actor.ID,
		},
	})
}

// create выполняет бронирование в сериализуемой транзакции:
// блокировка парковки, выбор места, предварительная запись кэша, вставка брони.
// Любая ошибка откатывает и бронь, и запись кэша
func (uc *UseCase) create(ctx context.Context, now time.Time, draft *bookingDraft) (*Response, error) {
	var (
		result      *domain.Booking
		synthesized bool
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Блокируем строку парковки
		lot, err := uc.lotRepo.GetByIDForUpdate(txCtx, draft.lotID)
		if err != nil {
			if errors.Is(err, lotRepo.ErrLotNotFound) {
				uc.logger.Warn("%s: lot id=%s not found", draft.op, draft.lotID)
				return ErrLotNotFound
			}
			if isSerializationFailure(err) {
				uc.logger.Warn("%s: lock on lot id=%s lost to a concurrent writer: %v", draft.op, draft.lotID, err)
				return ErrConcurrentModification
			}
			uc.logger.Error("%s: failed to lock lot id=%s: %v", draft.op, draft.lotID, err)
			return fmt.Errorf("%w: failed to get lot: %v", ErrInternal, err)
		}

		// 2. Выбираем место по броням, прочитанным в этой транзакции
		allocation, err := uc.allocator.Allocate(txCtx, lot, draft.slotKey, draft.window.start, draft.window.end)
		if err != nil {
			return uc.mapAllocationError(draft.op, err)
		}
		synthesized = allocation.Synthesized

		// 3. Если окно покрывает текущий момент, место уже занято - обновляем кэш
		if !now.Before(draft.window.start) && now.Before(draft.window.end) {
			if err := uc.preWriteCache(txCtx, draft.op, lot, allocation.SlotKey); err != nil {
				return err
			}
		}

		// 4. Сохраняем бронь
		booking := &domain.Booking{
			UserID:        draft.userID,
			LotID:         lot.ID,
			SlotKey:       allocation.SlotKey,
			QRCodeData:    domain.SlotToken(lot.ID, allocation.SlotKey),
			StartTime:     draft.window.start,
			EndTime:       draft.window.end,
			DurationHours: draft.window.duration,
			TotalCost:     domain.TotalCost(lot.HourlyRate, draft.window.duration),
			Status:        draft.status,
			VehicleNumber: draft.vehicle,
			WalkIn:        draft.walkIn,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			switch {
			case errors.Is(err, bookingRepo.ErrSlotTaken):
				uc.logger.Warn("%s: slot=%s lot=%s taken by a concurrent booking", draft.op, allocation.SlotKey, lot.ID)
				return ErrSlotUnavailable
			case isSerializationFailure(err):
				uc.logger.Warn("%s: serialization failure on insert: %v", draft.op, err)
				return ErrConcurrentModification
			}
			uc.logger.Error("%s: failed to create booking: %v", draft.op, err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if isSerializationFailure(err) {
			uc.logger.Warn("%s: transaction lost to a concurrent writer: %v", draft.op, err)
			err = ErrConcurrentModification
		}
		uc.metrics.IncBooking(draft.kind, resultFor(err))
		return nil, err
	}

	uc.logger.Info("%s: created booking id=%s lot=%s slot=%s [%s, %s)", draft.op, result.ID, result.LotID, result.SlotKey,
		result.StartTime.Format(domain.TimeFormat), result.EndTime.Format(domain.TimeFormat))
	uc.metrics.IncBooking(draft.kind, resultCreated)

	uc.reconciler.Trigger(result.LotID, result.SlotKey)

	event := domain.NewBookingEvent(domain.EventBookingCreated, result, now)
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Warn("%s: failed to publish %s for booking id=%s: %v", draft.op, event.Type, result.ID, err)
	}

	return &Response{Booking: result, SlotSynthesized: synthesized}, nil
}

// preWriteCache оптимистично помечает место занятым. Конфликт записи не отменяет бронь:
// запись кэша пропускается, его выровняет реконсилер
func (uc *UseCase) preWriteCache(ctx context.Context, op string, lot *domain.ParkingLot, slotKey string) error {
	slots, available := lot.ApplySlotState(slotKey, domain.SlotOccupied)

	err := uc.lotRepo.UpdateCache(ctx, lot.ID, slots, available, lot.AvailableSlots)
	if err == nil {
		return nil
	}
	if errors.Is(err, lotRepo.ErrConcurrentModification) {
		uc.logger.Warn("%s: cache write conflict for lot=%s, skipping pre-write", op, lot.ID)
		return nil
	}
	if isSerializationFailure(err) {
		uc.logger.Warn("%s: cache pre-write for lot=%s lost to a concurrent writer: %v", op, lot.ID, err)
		return ErrConcurrentModification
	}

	uc.logger.Error("%s: failed to pre-write cache for lot=%s: %v", op, lot.ID, err)
	return fmt.Errorf("%w: failed to update occupancy cache: %v", ErrInternal, err)
}

func (uc *UseCase) mapAllocationError(op string, err error) error {
	switch {
	case errors.Is(err, allocator.ErrSlotNotDefined):
		return ErrSlotNotDefined
	case errors.Is(err, allocator.ErrSlotUnavailable):
		return ErrSlotUnavailable
	case errors.Is(err, allocator.ErrLotFull):
		return ErrLotFull
	case isSerializationFailure(err):
		uc.logger.Warn("%s: availability read lost to a concurrent writer: %v", op, err)
		return ErrConcurrentModification
	}
	uc.logger.Error("%s: allocation failed: %v", op, err)
	return fmt.Errorf("%w: allocation failed: %v", ErrInternal, err)
}

// isSerializationFailure конфликт с конкурентной сериализуемой транзакцией на любом шаге
func isSerializationFailure(err error) bool {
	return errors.Is(err, lotRepo.ErrSerializationFailure) ||
		errors.Is(err, bookingRepo.ErrSerializationFailure) ||
		errors.Is(err, txmanager.ErrSerializationFailure)
}

func resultFor(err error) string {
	for _, rejected := range []error{
		ErrLotNotFound, ErrSlotNotDefined, ErrSlotUnavailable, ErrLotFull, ErrConcurrentModification,
	} {
		if errors.Is(err, rejected) {
			return resultRejected
		}
	}
	return resultFailed
}
