package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func at(h, m int) time.Time {
	return time.Date(2025, 6, 1, h, m, 0, 0, time.UTC)
}

func TestIntervalsOverlap_HalfOpen(t *testing.T) {
	assert.True(t, IntervalsOverlap(at(10, 0), at(11, 0), at(10, 30), at(11, 30)))
	assert.True(t, IntervalsOverlap(at(10, 0), at(12, 0), at(10, 30), at(11, 0)), "containment")
	assert.False(t, IntervalsOverlap(at(10, 0), at(11, 0), at(11, 0), at(12, 0)), "touching end is free")
	assert.False(t, IntervalsOverlap(at(11, 0), at(12, 0), at(10, 0), at(11, 0)), "touching start is free")
}

func TestBooking_CoversInstant(t *testing.T) {
	b := &Booking{StartTime: at(10, 0), EndTime: at(11, 0)}

	assert.True(t, b.CoversInstant(at(10, 0)))
	assert.True(t, b.CoversInstant(at(10, 59)))
	assert.False(t, b.CoversInstant(at(11, 0)))
}

func TestBookingStatus(t *testing.T) {
	for _, s := range NonTerminalStatuses {
		assert.False(t, s.IsTerminal(), s)
	}
	for _, s := range TerminalStatuses {
		assert.True(t, s.IsTerminal(), s)
	}

	status, err := ParseBookingStatus("active")
	assert.NoError(t, err)
	assert.Equal(t, StatusActive, status)

	_, err = ParseBookingStatus("ACTIVE")
	assert.Error(t, err)
}

func TestBooking_Ownership(t *testing.T) {
	owner := uuid.New()
	b := &Booking{UserID: &owner}

	assert.True(t, b.IsOwnedBy(owner))
	assert.False(t, b.IsOwnedBy(uuid.New()))
	assert.False(t, (&Booking{}).IsOwnedBy(owner))
	assert.True(t, (&Booking{}).IsWalkIn())
}

func TestTotalCostAndDuration(t *testing.T) {
	assert.Equal(t, 150.0, TotalCost(50, 3))
	assert.Equal(t, 0.9, TotalCost(0.3, 3))
	assert.Equal(t, 2, DurationHours(at(10, 0), at(11, 30)))
	assert.Equal(t, 1, DurationHours(at(10, 0), at(11, 0)))
}

func TestSlotToken(t *testing.T) {
	lotID := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	assert.Equal(t, "11111111-1111-1111-1111-111111111111_A2", SlotToken(lotID, "A2"))
}
