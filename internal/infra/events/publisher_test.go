package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

type recordingWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error { return nil }

func TestPublish(t *testing.T) {
	writer := &recordingWriter{}
	producer := NewProducerWithWriter(writer, "parking.bookings")

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	booking := &domain.Booking{
		ID:        uuid.New(),
		LotID:     uuid.New(),
		SlotKey:   "A2",
		Status:    domain.StatusPending,
		StartTime: now,
		EndTime:   now.Add(time.Hour),
	}

	err := producer.Publish(context.Background(), domain.NewBookingEvent(domain.EventBookingCreated, booking, now))
	require.NoError(t, err)

	require.Len(t, writer.msgs, 1)
	msg := writer.msgs[0]
	assert.Equal(t, "parking.bookings", msg.Topic)
	assert.Equal(t, booking.LotID.String(), string(msg.Key))

	var decoded domain.BookingEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, domain.EventBookingCreated, decoded.Type)
	assert.Equal(t, booking.ID, decoded.BookingID)
	assert.Equal(t, "A2", decoded.SlotKey)
}

func TestPublish_WriteError(t *testing.T) {
	producer := NewProducerWithWriter(&recordingWriter{err: errors.New("broker down")}, "t")

	err := producer.Publish(context.Background(), domain.BookingEvent{LotID: uuid.New()})

	assert.ErrorIs(t, err, ErrPublish)
}
