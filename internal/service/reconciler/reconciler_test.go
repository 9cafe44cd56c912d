package reconciler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	lotRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/lot"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

// memLots хранит парковки и повторяет семантику условной записи
type memLots struct {
	mu        sync.Mutex
	lots      map[uuid.UUID]*domain.ParkingLot
	conflicts int // сколько следующих записей проиграют конкуренту
	writes    int
	synced    []uuid.UUID
	syncErr   map[uuid.UUID]error
}

func (m *memLots) GetByID(_ context.Context, id uuid.UUID) (*domain.ParkingLot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	lot, ok := m.lots[id]
	if !ok {
		return nil, lotRepo.ErrLotNotFound
	}
	copied := *lot
	copied.Slots = lot.CloneSlots()
	return &copied, nil
}

func (m *memLots) ListIDs(context.Context) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(m.lots))
	for id := range m.lots {
		ids = append(ids, id)
	}
	return ids, nil
}

func (m *memLots) UpdateCache(_ context.Context, lotID uuid.UUID, slots map[string]domain.SlotState, newAvailable, expected int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	lot := m.lots[lotID]
	if m.conflicts > 0 {
		m.conflicts--
		lot.AvailableSlots--
		return lotRepo.ErrConcurrentModification
	}
	if lot.AvailableSlots != expected {
		return lotRepo.ErrConcurrentModification
	}
	m.writes++
	lot.Slots = slots
	lot.AvailableSlots = newAvailable
	return nil
}

func (m *memLots) SyncCache(_ context.Context, lotID uuid.UUID) (int, error) {
	if err := m.syncErr[lotID]; err != nil {
		return 0, err
	}
	m.synced = append(m.synced, lotID)
	return m.lots[lotID].AvailableSlots, nil
}

type memBookings struct {
	bookings []*domain.Booking
}

func (m *memBookings) IsSlotOccupiedAt(_ context.Context, lotID uuid.UUID, slotKey string, at time.Time) (bool, error) {
	for _, b := range m.bookings {
		if b.LotID == lotID && b.SlotKey == slotKey && !b.Status.IsTerminal() && b.CoversInstant(at) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memBookings) ListOccupiedSlotsAt(_ context.Context, lotID uuid.UUID, at time.Time) ([]string, error) {
	seen := map[string]bool{}
	keys := make([]string, 0)
	for _, b := range m.bookings {
		if b.LotID == lotID && !b.Status.IsTerminal() && b.CoversInstant(at) && !seen[b.SlotKey] {
			seen[b.SlotKey] = true
			keys = append(keys, b.SlotKey)
		}
	}
	return keys, nil
}

type countingCache struct {
	mu          sync.Mutex
	invalidated int
}

func (c *countingCache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated++
	return nil
}

type countingMetrics struct {
	mu     sync.Mutex
	counts map[string]int
}

func (m *countingMetrics) IncReconciliation(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[result]++
}

var now = time.Date(2026, 5, 4, 10, 30, 0, 0, time.UTC)

type fixture struct {
	r        *Reconciler
	lots     *memLots
	bookings *memBookings
	cache    *countingCache
	metrics  *countingMetrics
	lot      *domain.ParkingLot
}

func newFixture(maxRetries int) *fixture {
	lot := &domain.ParkingLot{
		ID:             uuid.New(),
		TotalSlots:     3,
		AvailableSlots: 3,
		Slots:          domain.NewSlotMap([]string{"A1", "A2", "A3"}),
	}
	f := &fixture{
		lots:     &memLots{lots: map[uuid.UUID]*domain.ParkingLot{lot.ID: lot}},
		bookings: &memBookings{},
		cache:    &countingCache{},
		metrics:  &countingMetrics{counts: map[string]int{}},
		lot:      lot,
	}
	f.r = New(f.lots, f.bookings, f.cache, f.metrics, Config{MaxRetries: maxRetries, Timeout: time.Second}, nopLogger{})
	f.r.timeProvider = fixedTime{now: now}
	return f
}

func (f *fixture) book(slot string, status domain.BookingStatus) *domain.Booking {
	b := &domain.Booking{
		ID: uuid.New(), LotID: f.lot.ID, SlotKey: slot, Status: status,
		StartTime: now.Add(-time.Hour), EndTime: now.Add(time.Hour),
	}
	f.bookings.bookings = append(f.bookings.bookings, b)
	return b
}

func TestReconcile_MarksOccupiedAndBack(t *testing.T) {
	f := newFixture(3)
	b := f.book("A2", domain.StatusActive)

	require.NoError(t, f.r.Reconcile(context.Background(), f.lot.ID, "A2"))
	assert.Equal(t, domain.SlotOccupied, f.lot.Slots["A2"])
	assert.Equal(t, 2, f.lot.AvailableSlots)

	// Отмена возвращает кэш в исходное состояние
	b.Status = domain.StatusCancelled
	require.NoError(t, f.r.Reconcile(context.Background(), f.lot.ID, "A2"))
	assert.Equal(t, domain.SlotAvailable, f.lot.Slots["A2"])
	assert.Equal(t, 3, f.lot.AvailableSlots)

	assert.Equal(t, 2, f.cache.invalidated)
	assert.Equal(t, 2, f.metrics.counts[resultSynced])
}

func TestReconcile_NoopWhenInSync(t *testing.T) {
	f := newFixture(3)

	require.NoError(t, f.r.Reconcile(context.Background(), f.lot.ID, "A1"))

	assert.Equal(t, 0, f.lots.writes)
	assert.Equal(t, 0, f.cache.invalidated)
	assert.Equal(t, 1, f.metrics.counts[resultNoop])
}

func TestReconcile_RetriesOnConflict(t *testing.T) {
	f := newFixture(3)
	f.book("A1", domain.StatusPending)
	f.lots.conflicts = 2

	require.NoError(t, f.r.Reconcile(context.Background(), f.lot.ID, "A1"))

	assert.Equal(t, domain.SlotOccupied, f.lot.Slots["A1"])
	assert.Equal(t, 2, f.lot.AvailableSlots, "recounted from the map, drifted counter is repaired")
}

func TestReconcile_GivesUpAfterRetries(t *testing.T) {
	f := newFixture(1)
	f.book("A1", domain.StatusPending)
	f.lots.conflicts = 5

	err := f.r.Reconcile(context.Background(), f.lot.ID, "A1")

	assert.ErrorIs(t, err, ErrConcurrentModification)
	assert.Equal(t, 1, f.metrics.counts[resultConflict])
}

func TestReconcile_LegacyLotKeepsCounterOnly(t *testing.T) {
	f := newFixture(0)
	f.lot.Slots = map[string]domain.SlotState{}
	f.lot.AvailableSlots = 3
	f.book("A1", domain.StatusActive)
	f.book("A2", domain.StatusConfirmed)

	require.NoError(t, f.r.Reconcile(context.Background(), f.lot.ID, "A1"))

	assert.Empty(t, f.lot.Slots)
	assert.Equal(t, 1, f.lot.AvailableSlots)
}

func TestReconcile_LotNotFound(t *testing.T) {
	f := newFixture(0)

	err := f.r.Reconcile(context.Background(), uuid.New(), "A1")

	assert.ErrorIs(t, err, ErrLotNotFound)
}

func TestTrigger_RunsInBackground(t *testing.T) {
	f := newFixture(3)
	f.book("A3", domain.StatusActive)

	f.r.Trigger(f.lot.ID, "A3")
	f.r.Wait()

	lot, err := f.lots.GetByID(context.Background(), f.lot.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SlotOccupied, lot.Slots["A3"])
}

func TestSyncAll_ContinuesPastFailures(t *testing.T) {
	f := newFixture(0)
	broken := &domain.ParkingLot{ID: uuid.New(), TotalSlots: 1}
	f.lots.lots[broken.ID] = broken
	f.lots.syncErr = map[uuid.UUID]error{broken.ID: errors.New("routine failed")}

	err := f.r.SyncAll(context.Background())

	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, []uuid.UUID{f.lot.ID}, f.lots.synced)
	assert.Equal(t, 1, f.cache.invalidated)
}
