package allocator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/usecase/get_available_slots"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type mockMetrics struct {
	mock.Mock
}

func (m *mockMetrics) IncSlotSynthesis() {
	m.Called()
}

// memBookings хранилище броней в памяти с семантикой ListOverlapping
type memBookings struct {
	bookings []*domain.Booking
}

func (m *memBookings) ListOverlapping(_ context.Context, lotID uuid.UUID, slotKey *string, start, end time.Time) ([]*domain.Booking, error) {
	out := make([]*domain.Booking, 0)
	for _, b := range m.bookings {
		if b.LotID != lotID || b.Status.IsTerminal() || !b.Overlaps(start, end) {
			continue
		}
		if slotKey != nil && b.SlotKey != *slotKey {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (m *memBookings) add(lotID uuid.UUID, slot string, start, end time.Time) {
	m.bookings = append(m.bookings, &domain.Booking{
		ID: uuid.New(), LotID: lotID, SlotKey: slot, StartTime: start, EndTime: end, Status: domain.StatusPending,
	})
}

type noLots struct{}

func (noLots) GetByID(context.Context, uuid.UUID) (*domain.ParkingLot, error) {
	return nil, errors.New("unused")
}

func newAllocator(bookings *memBookings, metrics Metrics) *Allocator {
	calculator := get_available_slots.NewUseCase(noLots{}, bookings, nopLogger{})
	return NewAllocator(calculator, metrics, nopLogger{})
}

var t10 = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

func hours(h int) time.Time {
	return t10.Add(time.Duration(h) * time.Hour)
}

func strPtr(s string) *string {
	return &s
}

func TestAutoAssign_PicksFirstFree(t *testing.T) {
	lot := &domain.ParkingLot{ID: uuid.New(), TotalSlots: 3, AvailableSlots: 2, Slots: domain.NewSlotMap([]string{"A1", "A2", "A3"})}
	bookings := &memBookings{}
	bookings.add(lot.ID, "A1", hours(0), hours(2))

	allocation, err := newAllocator(bookings, nil).Allocate(context.Background(), lot, nil, hours(0), hours(1))

	require.NoError(t, err)
	assert.Equal(t, "A2", allocation.SlotKey)
	assert.False(t, allocation.Synthesized)
}

func TestAutoAssign_NaturalOrder(t *testing.T) {
	lot := &domain.ParkingLot{ID: uuid.New(), TotalSlots: 3, Slots: domain.NewSlotMap([]string{"A10", "A9", "B1"})}

	allocation, err := newAllocator(&memBookings{}, nil).Allocate(context.Background(), lot, nil, hours(0), hours(1))

	require.NoError(t, err)
	assert.Equal(t, "A9", allocation.SlotKey)
}

func TestTwoSlotScenario(t *testing.T) {
	lot := &domain.ParkingLot{ID: uuid.New(), TotalSlots: 2, AvailableSlots: 2, Slots: domain.NewSlotMap([]string{"A1", "A2"})}
	bookings := &memBookings{}
	a := newAllocator(bookings, nil)
	ctx := context.Background()

	first, err := a.Allocate(ctx, lot, strPtr("A1"), hours(0), hours(1))
	require.NoError(t, err)
	assert.Equal(t, "A1", first.SlotKey)
	bookings.add(lot.ID, first.SlotKey, hours(0), hours(1))

	second, err := a.Allocate(ctx, lot, nil, hours(0), hours(1))
	require.NoError(t, err)
	assert.Equal(t, "A2", second.SlotKey)
	bookings.add(lot.ID, second.SlotKey, hours(0), hours(1))

	_, err = a.Allocate(ctx, lot, nil, hours(0), hours(1))
	assert.ErrorIs(t, err, ErrLotFull)

	_, err = a.Allocate(ctx, lot, strPtr("A1"), hours(0), hours(1))
	assert.ErrorIs(t, err, ErrSlotUnavailable)

	adjacent, err := a.Allocate(ctx, lot, strPtr("A1"), hours(1), hours(2))
	require.NoError(t, err)
	assert.Equal(t, "A1", adjacent.SlotKey)
}

func TestRequestedSlotNotDefined(t *testing.T) {
	lot := &domain.ParkingLot{ID: uuid.New(), TotalSlots: 1, Slots: domain.NewSlotMap([]string{"A1"})}

	_, err := newAllocator(&memBookings{}, nil).Allocate(context.Background(), lot, strPtr("C7"), hours(0), hours(1))

	assert.ErrorIs(t, err, ErrSlotNotDefined)
}

func TestSynthesis(t *testing.T) {
	lot := &domain.ParkingLot{ID: uuid.New(), TotalSlots: 12, AvailableSlots: 2}
	bookings := &memBookings{}
	bookings.add(lot.ID, "A11", hours(0), hours(1))

	metrics := &mockMetrics{}
	metrics.On("IncSlotSynthesis").Once()

	allocation, err := newAllocator(bookings, metrics).Allocate(context.Background(), lot, nil, hours(0), hours(1))

	require.NoError(t, err)
	// n = 1 + 10 занятых = 11 -> ряд B, место 1
	assert.Equal(t, "B1", allocation.SlotKey)
	assert.True(t, allocation.Synthesized)
	metrics.AssertExpectations(t)
}

func TestSynthesis_ProbesForward(t *testing.T) {
	lot := &domain.ParkingLot{ID: uuid.New(), TotalSlots: 3, AvailableSlots: 3}
	bookings := &memBookings{}
	bookings.add(lot.ID, "A1", hours(0), hours(1))
	bookings.add(lot.ID, "A2", hours(0), hours(1))

	allocation, err := newAllocator(bookings, nil).Allocate(context.Background(), lot, nil, hours(0), hours(1))
	require.NoError(t, err)
	assert.Equal(t, "A3", allocation.SlotKey)

	bookings.add(lot.ID, "A3", hours(0), hours(1))
	_, err = newAllocator(bookings, nil).Allocate(context.Background(), lot, nil, hours(0), hours(1))
	assert.ErrorIs(t, err, ErrLotFull)
}

func TestRequestedSlot_LegacyLot(t *testing.T) {
	// Без карты известны A1..A3, по счётчику занято одно место
	lot := &domain.ParkingLot{ID: uuid.New(), TotalSlots: 3, AvailableSlots: 2}
	a := newAllocator(&memBookings{}, nil)
	ctx := context.Background()

	_, err := a.Allocate(ctx, lot, strPtr("ZZ99"), hours(0), hours(1))
	assert.ErrorIs(t, err, ErrSlotNotDefined)

	_, err = a.Allocate(ctx, lot, strPtr("A4"), hours(0), hours(1))
	assert.ErrorIs(t, err, ErrSlotNotDefined)

	_, err = a.Allocate(ctx, lot, strPtr("A1"), hours(0), hours(1))
	assert.ErrorIs(t, err, ErrSlotUnavailable)

	allocation, err := a.Allocate(ctx, lot, strPtr("A3"), hours(0), hours(1))
	require.NoError(t, err)
	assert.Equal(t, "A3", allocation.SlotKey)
}

// failingBookings хранилище, которое всегда возвращает ошибку
type failingBookings struct {
	err error
}

func (f failingBookings) ListOverlapping(context.Context, uuid.UUID, *string, time.Time, time.Time) ([]*domain.Booking, error) {
	return nil, f.err
}

func TestAllocate_KeepsCalculatorError(t *testing.T) {
	dbErr := errors.New("could not serialize access")
	lot := &domain.ParkingLot{ID: uuid.New(), TotalSlots: 1, Slots: domain.NewSlotMap([]string{"A1"})}
	a := NewAllocator(get_available_slots.NewUseCase(noLots{}, failingBookings{err: dbErr}, nopLogger{}), nil, nopLogger{})

	_, err := a.Allocate(context.Background(), lot, nil, hours(0), hours(1))
	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, dbErr)

	_, err = a.Allocate(context.Background(), lot, strPtr("A1"), hours(0), hours(1))
	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, dbErr)
}
