package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecountAvailable(t *testing.T) {
	slots := map[string]SlotState{"A1": SlotOccupied, "A2": SlotAvailable, "A3": SlotAvailable}

	assert.Equal(t, 2, RecountAvailable(3, slots))
	assert.Equal(t, 0, RecountAvailable(0, slots), "clamped to zero")
	assert.Equal(t, 4, RecountAvailable(5, slots), "legacy lot with partial map")
}

func TestParkingLot_SlotHelpers(t *testing.T) {
	lot := &ParkingLot{
		TotalSlots:     3,
		AvailableSlots: 2,
		Slots:          map[string]SlotState{"A10": SlotAvailable, "A2": SlotOccupied, "A1": SlotAvailable},
	}

	assert.True(t, lot.HasStaticSlotMap())
	assert.True(t, lot.HasSlot("A2"))
	assert.False(t, lot.HasSlot("B1"))
	assert.Equal(t, []string{"A1", "A2", "A10"}, lot.SlotKeys())
	assert.Equal(t, 1, lot.OccupiedCount())
	assert.Equal(t, 1, lot.OccupiedFromCounter())

	clone := lot.CloneSlots()
	clone["A1"] = SlotOccupied
	assert.Equal(t, SlotAvailable, lot.Slots["A1"])
}

func TestParkingLot_OccupiedFromCounterClamped(t *testing.T) {
	lot := &ParkingLot{TotalSlots: 5, AvailableSlots: 9}
	assert.Equal(t, 0, lot.OccupiedFromCounter())
	assert.False(t, lot.HasStaticSlotMap())
}

func TestParkingLot_DefinesSlot(t *testing.T) {
	static := &ParkingLot{TotalSlots: 2, Slots: map[string]SlotState{"P1": SlotAvailable, "P2": SlotAvailable}}
	assert.True(t, static.DefinesSlot("P2"))
	assert.False(t, static.DefinesSlot("A1"))

	legacy := &ParkingLot{TotalSlots: 12, AvailableSlots: 12}
	assert.True(t, legacy.DefinesSlot("A1"))
	assert.True(t, legacy.DefinesSlot("B2"))
	assert.False(t, legacy.DefinesSlot("B3"), "number 13 is past TotalSlots")
	assert.False(t, legacy.DefinesSlot("ZZ99"))
	assert.False(t, legacy.DefinesSlot(""))
}

func TestApplySlotState(t *testing.T) {
	lot := &ParkingLot{
		TotalSlots:     3,
		AvailableSlots: 3,
		Slots:          NewSlotMap([]string{"A1", "A2", "A3"}),
	}

	slots, available := lot.ApplySlotState("A2", SlotOccupied)
	assert.Equal(t, SlotOccupied, slots["A2"])
	assert.Equal(t, 2, available)
	assert.Equal(t, SlotAvailable, lot.Slots["A2"], "source map must stay untouched")

	slots, available = lot.ApplySlotState("Z9", SlotOccupied)
	assert.Len(t, slots, 3)
	assert.Equal(t, 3, available)

	legacy := &ParkingLot{TotalSlots: 2, AvailableSlots: 0}
	slots, available = legacy.ApplySlotState("A1", SlotOccupied)
	assert.Empty(t, slots)
	assert.Equal(t, 0, available)

	_, available = legacy.ApplySlotState("A1", SlotAvailable)
	assert.Equal(t, 1, available)
}
