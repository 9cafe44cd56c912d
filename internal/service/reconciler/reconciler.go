package reconciler

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	lotRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/lot"
)

const (
	resultSynced   = "synced"
	resultNoop     = "noop"
	resultConflict = "conflict"
	resultFailed   = "failed"
)

// Config параметры реконсилера
type Config struct {
	MaxRetries int
	Timeout    time.Duration
}

// Reconciler выравнивает денормализованный кэш занятости парковки по бронированиям
type Reconciler struct {
	lotRepo      LotRepository
	bookingRepo  BookingRepository
	cache        ListCache
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
	cfg          Config

	wg sync.WaitGroup
}

// New создаёт реконсилер
func New(
	lotRepo LotRepository,
	bookingRepo BookingRepository,
	cache ListCache,
	metrics Metrics,
	cfg Config,
	logger Logger,
) *Reconciler {
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Reconciler{
		lotRepo:      lotRepo,
		bookingRepo:  bookingRepo,
		cache:        cache,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		cfg:          cfg,
	}
}

// Trigger запускает Reconcile в фоне, не связанном с контекстом запроса. Ошибки только логируются
func (r *Reconciler) Trigger(lotID uuid.UUID, slotKey string) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), r.cfg.Timeout)
		defer cancel()

		if err := r.Reconcile(ctx, lotID, slotKey); err != nil {
			r.logger.Error("Reconcile: lot=%s slot=%s failed: %v", lotID, slotKey, err)
		}
	}()
}

// Wait дожидается фоновых синхронизаций, запущенных через Trigger
func (r *Reconciler) Wait() {
	r.wg.Wait()
}

// Reconcile пересчитывает состояние места slotKey на текущий момент и счётчик свободных мест.
// Запись условная по прочитанному available_spots, при конфликте повторяется со свежим чтением
func (r *Reconciler) Reconcile(ctx context.Context, lotID uuid.UUID, slotKey string) error {
	for attempt := 0; attempt <= r.cfg.MaxRetries; attempt++ {
		err := r.reconcileOnce(ctx, lotID, slotKey)
		if err == nil {
			return nil
		}
		if !errors.Is(err, lotRepo.ErrConcurrentModification) {
			r.metrics.IncReconciliation(resultFailed)
			return err
		}
		r.logger.Info("Reconcile: lot=%s write conflict, attempt %d/%d", lotID, attempt+1, r.cfg.MaxRetries+1)
	}

	r.metrics.IncReconciliation(resultConflict)
	r.logger.Warn("Reconcile: lot=%s gave up after %d conflicting writes", lotID, r.cfg.MaxRetries+1)
	return ErrConcurrentModification
}

func (r *Reconciler) reconcileOnce(ctx context.Context, lotID uuid.UUID, slotKey string) error {
	lot, err := r.lotRepo.GetByID(ctx, lotID)
	if err != nil {
		if errors.Is(err, lotRepo.ErrLotNotFound) {
			return ErrLotNotFound
		}
		return fmt.Errorf("%w: failed to get lot: %v", ErrInternal, err)
	}

	now := r.timeProvider.Now()

	var (
		slots     map[string]domain.SlotState
		available int
	)

	if lot.HasStaticSlotMap() {
		occupied, err := r.bookingRepo.IsSlotOccupiedAt(ctx, lotID, slotKey, now)
		if err != nil {
			return fmt.Errorf("%w: failed to check slot occupancy: %v", ErrInternal, err)
		}
		state := domain.SlotAvailable
		if occupied {
			state = domain.SlotOccupied
		}
		slots, available = lot.ApplySlotState(slotKey, state)
	} else {
		// Без карты мест пересчитывается только счётчик
		keys, err := r.bookingRepo.ListOccupiedSlotsAt(ctx, lotID, now)
		if err != nil {
			return fmt.Errorf("%w: failed to list occupied slots: %v", ErrInternal, err)
		}
		slots = map[string]domain.SlotState{}
		available = domain.ClampSlots(lot.TotalSlots-len(keys), lot.TotalSlots)
	}

	if available == lot.AvailableSlots && maps.Equal(slots, lot.Slots) {
		r.metrics.IncReconciliation(resultNoop)
		return nil
	}

	if err := r.lotRepo.UpdateCache(ctx, lotID, slots, available, lot.AvailableSlots); err != nil {
		if errors.Is(err, lotRepo.ErrConcurrentModification) {
			return err
		}
		return fmt.Errorf("%w: failed to write cache: %v", ErrInternal, err)
	}

	r.logger.Info("Reconcile: lot=%s slot=%s available %d -> %d", lotID, slotKey, lot.AvailableSlots, available)
	r.metrics.IncReconciliation(resultSynced)
	r.invalidate(ctx)
	return nil
}

// SyncLot полностью пересобирает кэш парковки хранимой процедурой
func (r *Reconciler) SyncLot(ctx context.Context, lotID uuid.UUID) (int, error) {
	available, err := r.lotRepo.SyncCache(ctx, lotID)
	if err != nil {
		r.metrics.IncReconciliation(resultFailed)
		if errors.Is(err, lotRepo.ErrLotNotFound) {
			return 0, ErrLotNotFound
		}
		return 0, fmt.Errorf("%w: failed to sync lot %s: %v", ErrInternal, lotID, err)
	}

	r.metrics.IncReconciliation(resultSynced)
	r.invalidate(ctx)
	return available, nil
}

// SyncAll пересобирает кэш всех парковок. Ошибка одной парковки не останавливает остальные
func (r *Reconciler) SyncAll(ctx context.Context) error {
	ids, err := r.lotRepo.ListIDs(ctx)
	if err != nil {
		return fmt.Errorf("%w: failed to list lots: %v", ErrInternal, err)
	}

	var errs []error
	for _, id := range ids {
		if _, err := r.SyncLot(ctx, id); err != nil {
			r.logger.Warn("SyncAll: lot=%s: %v", id, err)
			errs = append(errs, err)
		}
	}

	r.logger.Info("SyncAll: synced %d/%d lots", len(ids)-len(errs), len(ids))
	return errors.Join(errs...)
}

func (r *Reconciler) invalidate(ctx context.Context) {
	if err := r.cache.Invalidate(ctx); err != nil {
		r.logger.Warn("Reconcile: failed to invalidate lot list cache: %v", err)
	}
}
