package allocator

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Allocation выбранное место
type Allocation struct {
	SlotKey     string
	Synthesized bool
}

// Allocator выбирает место для брони. Побочных эффектов нет
type Allocator struct {
	calculator AvailabilityCalculator
	metrics    Metrics
	logger     Logger
}

// NewAllocator создаёт аллокатор. metrics может быть nil
func NewAllocator(calculator AvailabilityCalculator, metrics Metrics, logger Logger) *Allocator {
	return &Allocator{
		calculator: calculator,
		metrics:    metrics,
		logger:     logger,
	}
}

// Allocate проверяет запрошенное место или выбирает первое свободное в естественном порядке
func (a *Allocator) Allocate(
	ctx context.Context,
	lot *domain.ParkingLot,
	requestedSlot *string,
	start, end time.Time,
) (*Allocation, error) {
	if requestedSlot != nil && *requestedSlot != "" {
		return a.allocateRequested(ctx, lot, *requestedSlot, start, end)
	}
	return a.autoAssign(ctx, lot, start, end)
}

func (a *Allocator) allocateRequested(
	ctx context.Context,
	lot *domain.ParkingLot,
	slotKey string,
	start, end time.Time,
) (*Allocation, error) {
	if !lot.DefinesSlot(slotKey) {
		a.logger.Warn("Allocate: slot=%s is not defined for lot=%s", slotKey, lot.ID)
		return nil, ErrSlotNotDefined
	}

	free, err := a.calculator.IsSlotAvailableForLot(ctx, lot, slotKey, start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: allocateRequested - %w", ErrInternal, err)
	}
	if !free {
		a.logger.Info("Allocate: slot=%s lot=%s is taken for [%s, %s)", slotKey, lot.ID,
			start.Format(domain.TimeFormat), end.Format(domain.TimeFormat))
		return nil, ErrSlotUnavailable
	}

	return &Allocation{SlotKey: slotKey}, nil
}

func (a *Allocator) autoAssign(ctx context.Context, lot *domain.ParkingLot, start, end time.Time) (*Allocation, error) {
	free, err := a.calculator.AvailableForLot(ctx, lot, start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: autoAssign - %w", ErrInternal, err)
	}
	if len(free) == 0 {
		a.logger.Info("Allocate: lot=%s is full for [%s, %s)", lot.ID,
			start.Format(domain.TimeFormat), end.Format(domain.TimeFormat))
		return nil, ErrLotFull
	}

	domain.SortSlotKeys(free)
	allocation := &Allocation{SlotKey: free[0]}

	if !lot.HasStaticSlotMap() {
		allocation.Synthesized = true
		a.logger.Warn("Allocate: lot=%s has no slot map, synthesized slot=%s (occupied by counter=%d)",
			lot.ID, allocation.SlotKey, lot.OccupiedFromCounter())
		if a.metrics != nil {
			a.metrics.IncSlotSynthesis()
		}
	}

	return allocation, nil
}
