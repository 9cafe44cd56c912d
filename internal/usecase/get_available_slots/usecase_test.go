package get_available_slots

import (
	"context"
	"errors"
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

type fakeLots map[uuid.UUID]*domain.ParkingLot

func (f fakeLots) GetByID(_ context.Context, id uuid.UUID) (*domain.ParkingLot, error) {
	lot, ok := f[id]
	if !ok {
		return nil, lotRepo.ErrLotNotFound
	}
	return lot, nil
}

// fakeBookings отдаёт все брони без фильтрации, чтобы проверить фильтр калькулятора
type fakeBookings struct {
	bookings []*domain.Booking
	err      error
}

func (f *fakeBookings) ListOverlapping(_ context.Context, lotID uuid.UUID, slotKey *string, _, _ time.Time) ([]*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if b.LotID != lotID {
			continue
		}
		if slotKey != nil && b.SlotKey != *slotKey {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

var base = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

func at(h int) time.Time {
	return base.Add(time.Duration(h) * time.Hour)
}

func booking(lotID uuid.UUID, slot string, from, to int, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{ID: uuid.New(), LotID: lotID, SlotKey: slot, StartTime: at(from), EndTime: at(to), Status: status}
}

func staticLot(keys ...string) *domain.ParkingLot {
	return &domain.ParkingLot{
		ID:             uuid.New(),
		TotalSlots:     len(keys),
		AvailableSlots: len(keys),
		Slots:          domain.NewSlotMap(keys),
	}
}

func TestAvailableSlots(t *testing.T) {
	lot := staticLot("A1", "A2", "A3", "A10")

	tests := []struct {
		name     string
		bookings []*domain.Booking
		start    time.Time
		end      time.Time
		want     []string
	}{
		{
			name:  "no bookings returns all keys in natural order",
			start: at(0),
			end:   at(1),
			want:  []string{"A1", "A2", "A3", "A10"},
		},
		{
			name:     "overlapping pending booking takes the slot",
			bookings: []*domain.Booking{booking(lot.ID, "A1", 0, 2, domain.StatusPending)},
			start:    at(1),
			end:      at(3),
			want:     []string{"A2", "A3", "A10"},
		},
		{
			name:     "touching intervals do not overlap",
			bookings: []*domain.Booking{booking(lot.ID, "A1", 0, 1, domain.StatusActive)},
			start:    at(1),
			end:      at(2),
			want:     []string{"A1", "A2", "A3", "A10"},
		},
		{
			name: "terminal bookings are ignored",
			bookings: []*domain.Booking{
				booking(lot.ID, "A1", 0, 2, domain.StatusCancelled),
				booking(lot.ID, "A2", 0, 2, domain.StatusCompleted),
				booking(lot.ID, "A3", 0, 2, domain.StatusConfirmed),
			},
			start: at(0),
			end:   at(1),
			want:  []string{"A1", "A2", "A10"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewUseCase(fakeLots{lot.ID: lot}, &fakeBookings{bookings: tt.bookings}, nopLogger{})

			got, err := uc.AvailableSlots(context.Background(), lot.ID, tt.start, tt.end)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			// Множество и поштучная проверка согласованы
			for _, key := range lot.SlotKeys() {
				free, err := uc.IsSlotAvailable(context.Background(), lot.ID, key, tt.start, tt.end)
				require.NoError(t, err)
				assert.Equal(t, contains(tt.want, key), free, key)
			}
		})
	}
}

func TestIsSlotAvailable_UnknownKey(t *testing.T) {
	lot := staticLot("A1")
	uc := NewUseCase(fakeLots{lot.ID: lot}, &fakeBookings{}, nopLogger{})

	free, err := uc.IsSlotAvailable(context.Background(), lot.ID, "Z9", at(0), at(1))

	require.NoError(t, err)
	assert.False(t, free)
}

func TestAvailableSlots_Errors(t *testing.T) {
	lot := staticLot("A1")
	uc := NewUseCase(fakeLots{lot.ID: lot}, &fakeBookings{}, nopLogger{})

	_, err := uc.AvailableSlots(context.Background(), uuid.New(), at(0), at(1))
	assert.ErrorIs(t, err, ErrLotNotFound)

	_, err = uc.AvailableSlots(context.Background(), lot.ID, at(1), at(1))
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	_, err = uc.IsSlotAvailable(context.Background(), lot.ID, "A1", at(2), at(1))
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	failing := NewUseCase(fakeLots{lot.ID: lot}, &fakeBookings{err: errors.New("db down")}, nopLogger{})
	_, err = failing.AvailableSlots(context.Background(), lot.ID, at(0), at(1))
	assert.ErrorIs(t, err, ErrInternal)
}

func TestAvailableSlots_SynthesizedForLegacyLot(t *testing.T) {
	lot := &domain.ParkingLot{ID: uuid.New(), TotalSlots: 4, AvailableSlots: 3}
	bookings := &fakeBookings{bookings: []*domain.Booking{booking(lot.ID, "A2", 0, 2, domain.StatusPending)}}
	uc := NewUseCase(fakeLots{lot.ID: lot}, bookings, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{LotID: lot.ID, StartTime: at(0), EndTime: at(1)})

	require.NoError(t, err)
	assert.True(t, resp.Synthesized)
	assert.Equal(t, []string{"A3", "A4"}, resp.Slots)
}

func TestIsSlotAvailable_LegacyLotMatchesSet(t *testing.T) {
	lot := &domain.ParkingLot{ID: uuid.New(), TotalSlots: 3, AvailableSlots: 2}

	tests := []struct {
		name     string
		bookings []*domain.Booking
		want     []string
	}{
		{
			name: "no bookings",
			want: []string{"A2", "A3"},
		},
		{
			name:     "candidate taken by a booking",
			bookings: []*domain.Booking{booking(lot.ID, "A3", 0, 2, domain.StatusConfirmed)},
			want:     []string{"A2"},
		},
		{
			name:     "booking below the counter does not free other keys",
			bookings: []*domain.Booking{booking(lot.ID, "A1", 0, 2, domain.StatusCancelled)},
			want:     []string{"A2", "A3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewUseCase(fakeLots{lot.ID: lot}, &fakeBookings{bookings: tt.bookings}, nopLogger{})

			got, err := uc.AvailableSlots(context.Background(), lot.ID, at(0), at(1))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			for _, key := range []string{"A1", "A2", "A3", "A4", "B1", "ZZ99", ""} {
				free, err := uc.IsSlotAvailable(context.Background(), lot.ID, key, at(0), at(1))
				require.NoError(t, err)
				assert.Equal(t, contains(got, key), free, key)
			}
		})
	}
}

func TestAvailableSlots_KeepsRepositoryError(t *testing.T) {
	dbErr := errors.New("serialization failure")
	lot := staticLot("A1")
	uc := NewUseCase(fakeLots{lot.ID: lot}, &fakeBookings{err: dbErr}, nopLogger{})

	_, err := uc.AvailableForLot(context.Background(), lot, at(0), at(1))
	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, dbErr)

	_, err = uc.IsSlotAvailableForLot(context.Background(), lot, "A1", at(0), at(1))
	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, dbErr)
}

func contains(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}
