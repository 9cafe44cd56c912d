package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	lotRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/lot"
)

// UseCase калькулятор доступности мест. Считает только по бронированиям,
// кэш занятости парковки не используется
type UseCase struct {
	lotRepo     LotRepository
	bookingRepo BookingRepository
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(lotRepo LotRepository, bookingRepo BookingRepository, logger Logger) *UseCase {
	return &UseCase{
		lotRepo:     lotRepo,
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// Execute обработка HTTP-запроса на список свободных мест
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: lot=%s, start=%s, end=%s",
		req.LotID, req.StartTime.Format(domain.TimeFormat), req.EndTime.Format(domain.TimeFormat))

	if req.LotID == uuid.Nil {
		return nil, fmt.Errorf("%w: lotId is required", ErrInvalidInput)
	}
	if err := validateRange(req.StartTime, req.EndTime); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	lot, err := uc.getLot(ctx, req.LotID)
	if err != nil {
		return nil, err
	}

	slots, err := uc.AvailableForLot(ctx, lot, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("GetAvailableSlots: lot=%s has %d free slots", req.LotID, len(slots))

	return &Response{
		LotID:       req.LotID,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Slots:       slots,
		Synthesized: !lot.HasStaticSlotMap(),
	}, nil
}

// AvailableSlots свободные места парковки на окне [start, end)
func (uc *UseCase) AvailableSlots(ctx context.Context, lotID uuid.UUID, start, end time.Time) ([]string, error) {
	if err := validateRange(start, end); err != nil {
		return nil, err
	}

	lot, err := uc.getLot(ctx, lotID)
	if err != nil {
		return nil, err
	}

	return uc.AvailableForLot(ctx, lot, start, end)
}

// IsSlotAvailable проверяет одно место на окне [start, end)
func (uc *UseCase) IsSlotAvailable(ctx context.Context, lotID uuid.UUID, slotKey string, start, end time.Time) (bool, error) {
	if err := validateRange(start, end); err != nil {
		return false, err
	}

	lot, err := uc.getLot(ctx, lotID)
	if err != nil {
		return false, err
	}

	return uc.IsSlotAvailableForLot(ctx, lot, slotKey, start, end)
}

// AvailableForLot свободные места уже прочитанной парковки.
// Для статической карты - ключи карты без занятых на окне.
// Для парковки без карты - синтезированные кандидаты начиная с номера 1 + занятые по счётчику
func (uc *UseCase) AvailableForLot(ctx context.Context, lot *domain.ParkingLot, start, end time.Time) ([]string, error) {
	bookings, err := uc.bookingRepo.ListOverlapping(ctx, lot.ID, nil, start, end)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list overlapping bookings for lot=%s: %v", lot.ID, err)
		return nil, fmt.Errorf("%w: failed to list bookings: %w", ErrInternal, err)
	}

	taken := takenSlots(bookings, start, end)

	if lot.HasStaticSlotMap() {
		free := make([]string, 0, len(lot.Slots))
		for _, key := range lot.SlotKeys() {
			if !taken[key] {
				free = append(free, key)
			}
		}
		return free, nil
	}

	return SynthesizedCandidates(lot, taken), nil
}

// IsSlotAvailableForLot проверка места уже прочитанной парковки.
// Ключ, которого на парковке нет, недоступен. Для парковки без карты ответ совпадает
// с принадлежностью ключа множеству AvailableForLot
func (uc *UseCase) IsSlotAvailableForLot(ctx context.Context, lot *domain.ParkingLot, slotKey string, start, end time.Time) (bool, error) {
	if !lot.DefinesSlot(slotKey) {
		return false, nil
	}

	bookings, err := uc.bookingRepo.ListOverlapping(ctx, lot.ID, &slotKey, start, end)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to check slot=%s lot=%s: %v", slotKey, lot.ID, err)
		return false, fmt.Errorf("%w: failed to list bookings: %w", ErrInternal, err)
	}

	taken := takenSlots(bookings, start, end)
	if lot.HasStaticSlotMap() {
		return !taken[slotKey], nil
	}

	for _, key := range SynthesizedCandidates(lot, taken) {
		if key == slotKey {
			return true, nil
		}
	}
	return false, nil
}

// SynthesizedCandidates ключи для парковки без карты: номера n..total, где n = 1 + занятые по счётчику
func SynthesizedCandidates(lot *domain.ParkingLot, taken map[string]bool) []string {
	first := 1 + lot.OccupiedFromCounter()
	candidates := make([]string, 0)
	for n := first; n <= lot.TotalSlots; n++ {
		key := domain.SynthesizeSlotKey(n)
		if !taken[key] {
			candidates = append(candidates, key)
		}
	}
	return candidates
}

func (uc *UseCase) getLot(ctx context.Context, lotID uuid.UUID) (*domain.ParkingLot, error) {
	lot, err := uc.lotRepo.GetByID(ctx, lotID)
	if err != nil {
		if errors.Is(err, lotRepo.ErrLotNotFound) {
			uc.logger.Warn("GetAvailableSlots: lot id=%s not found", lotID)
			return nil, ErrLotNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get lot id=%s: %v", lotID, err)
		return nil, fmt.Errorf("%w: failed to get lot: %w", ErrInternal, err)
	}
	return lot, nil
}

// takenSlots множество мест, занятых незавершёнными бронями на окне
func takenSlots(bookings []*domain.Booking, start, end time.Time) map[string]bool {
	taken := make(map[string]bool, len(bookings))
	for _, b := range bookings {
		if b.Status.IsTerminal() || !b.Overlaps(start, end) {
			continue
		}
		taken[b.SlotKey] = true
	}
	return taken
}

func validateRange(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrInvalidInput)
	}
	if !end.After(start) {
		return ErrInvalidTimeRange
	}
	return nil
}
