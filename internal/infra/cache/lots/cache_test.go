package lots

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

func TestGetList_Miss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	mock.ExpectGet(listKey).RedisNil()

	lots, hit, err := NewCache(client, time.Minute).GetList(context.Background())

	require.NoError(t, err)
	assert.False(t, hit)
	assert.Nil(t, lots)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetList_Hit(t *testing.T) {
	client, mock := redismock.NewClientMock()

	lot := &domain.ParkingLot{
		ID:             uuid.New(),
		Name:           "Central",
		TotalSlots:     2,
		AvailableSlots: 1,
		Slots:          map[string]domain.SlotState{"A1": domain.SlotOccupied, "A2": domain.SlotAvailable},
	}
	payload, err := json.Marshal([]*domain.ParkingLot{lot})
	require.NoError(t, err)
	mock.ExpectGet(listKey).SetVal(string(payload))

	lots, hit, err := NewCache(client, time.Minute).GetList(context.Background())

	require.NoError(t, err)
	assert.True(t, hit)
	require.Len(t, lots, 1)
	assert.Equal(t, lot.ID, lots[0].ID)
	assert.Equal(t, domain.SlotOccupied, lots[0].Slots["A1"])
}

func TestGetList_Error(t *testing.T) {
	client, mock := redismock.NewClientMock()
	mock.ExpectGet(listKey).SetErr(errors.New("connection refused"))

	_, _, err := NewCache(client, time.Minute).GetList(context.Background())

	assert.ErrorIs(t, err, ErrCacheRead)
}

func TestSetListAndInvalidate(t *testing.T) {
	client, mock := redismock.NewClientMock()

	lots := []*domain.ParkingLot{{ID: uuid.New(), Name: "North"}}
	payload, err := json.Marshal(lots)
	require.NoError(t, err)

	mock.ExpectSet(listKey, payload, 30*time.Second).SetVal("OK")
	mock.ExpectDel(listKey).SetVal(1)

	cache := NewCache(client, 30*time.Second)
	require.NoError(t, cache.SetList(context.Background(), lots))
	require.NoError(t, cache.Invalidate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
