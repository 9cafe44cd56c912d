package domain

import (
	"time"

	"github.com/google/uuid"
)

// BookingEventType тип события жизненного цикла брони
type BookingEventType string

const (
	EventBookingCreated   BookingEventType = "booking.created"
	EventBookingConfirmed BookingEventType = "booking.confirmed"
	EventBookingCheckedIn BookingEventType = "booking.checked_in"
	EventBookingCompleted BookingEventType = "booking.completed"
	EventBookingCancelled BookingEventType = "booking.cancelled"
)

// BookingEvent событие, публикуемое после фиксации перехода
type BookingEvent struct {
	Type       BookingEventType `json:"type"`
	BookingID  uuid.UUID        `json:"bookingId"`
	LotID      uuid.UUID        `json:"lotId"`
	SlotKey    string           `json:"slotKey"`
	Status     BookingStatus    `json:"status"`
	StartTime  time.Time        `json:"startTime"`
	EndTime    time.Time        `json:"endTime"`
	OccurredAt time.Time        `json:"occurredAt"`
}

// NewBookingEvent собирает событие из брони
func NewBookingEvent(t BookingEventType, b *Booking, at time.Time) BookingEvent {
	return BookingEvent{
		Type:       t,
		BookingID:  b.ID,
		LotID:      b.LotID,
		SlotKey:    b.SlotKey,
		Status:     b.Status,
		StartTime:  b.StartTime,
		EndTime:    b.EndTime,
		OccurredAt: at,
	}
}
