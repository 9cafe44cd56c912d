package create_booking

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveWindow(t *testing.T) {
	now := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
	lotID := uuid.New()
	later := now.Add(3 * time.Hour)
	odd := now.Add(90 * time.Minute)
	past := now.Add(-2 * time.Hour)
	pastEnd := now.Add(-time.Hour)

	t.Run("defaults to now plus one hour", func(t *testing.T) {
		w, err := resolveWindow(&Request{LotID: lotID}, now, 24)
		require.NoError(t, err)
		assert.Equal(t, now, w.start)
		assert.Equal(t, now.Add(time.Hour), w.end)
		assert.Equal(t, 1, w.duration)
	})

	t.Run("end time derives rounded up duration", func(t *testing.T) {
		w, err := resolveWindow(&Request{LotID: lotID, EndTime: &odd}, now, 24)
		require.NoError(t, err)
		assert.Equal(t, 2, w.duration)
		assert.Equal(t, odd, w.end)
	})

	t.Run("end time and duration agree", func(t *testing.T) {
		w, err := resolveWindow(&Request{LotID: lotID, EndTime: &later, DurationHours: intPtr(3)}, now, 24)
		require.NoError(t, err)
		assert.Equal(t, 3, w.duration)
	})

	for name, req := range map[string]*Request{
		"disagreeing duration": {LotID: lotID, EndTime: &later, DurationHours: intPtr(2)},
		"end before start":     {LotID: lotID, StartTime: &later, EndTime: &odd},
		"zero duration":        {LotID: lotID, DurationHours: intPtr(0)},
		"too long":             {LotID: lotID, DurationHours: intPtr(25)},
		"window in the past":   {LotID: lotID, StartTime: &past, EndTime: &pastEnd},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := resolveWindow(req, now, 24)
			assert.ErrorIs(t, err, ErrInvalidTimeRange)
		})
	}

	_, err := resolveWindow(&Request{}, now, 24)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestNormalizeSlotKey(t *testing.T) {
	assert.Nil(t, normalizeSlotKey(nil))
	assert.Nil(t, normalizeSlotKey(strPtr("  ")))
	assert.Equal(t, "B4", *normalizeSlotKey(strPtr(" B4 ")))
}
