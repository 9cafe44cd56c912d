package domain

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// BookingStatus статус бронирования
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	// StatusActive единственное каноническое состояние "клиент на месте"
	StatusActive    BookingStatus = "active"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// NonTerminalStatuses статусы, при которых бронь удерживает место
var NonTerminalStatuses = []BookingStatus{StatusPending, StatusConfirmed, StatusActive}

// TerminalStatuses финальные статусы
var TerminalStatuses = []BookingStatus{StatusCompleted, StatusCancelled}

// ParseBookingStatus разбирает статус из строки
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("unknown booking status %q", s)
	}
	return status, nil
}

// IsValid проверяет, что статус из закрытого множества
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusActive, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal true для completed и cancelled
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

func (s BookingStatus) String() string {
	return string(s)
}

// WalkInDetails данные клиента, оформленного оператором на месте
type WalkInDetails struct {
	CustomerName  string
	CustomerPhone string
	CreatedBy     uuid.UUID
}

// Booking бронирование места на интервал [StartTime, EndTime)
type Booking struct {
	ID            uuid.UUID
	UserID        *uuid.UUID // nil для walk-in
	LotID         uuid.UUID
	SlotKey       string
	QRCodeData    string
	StartTime     time.Time
	EndTime       time.Time
	DurationHours int
	TotalCost     float64
	Status        BookingStatus
	VehicleNumber *string
	WalkIn        *WalkInDetails

	CheckedInAt *time.Time
	CompletedAt *time.Time
	CancelledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsWalkIn true для брони без владельца-пользователя
func (b *Booking) IsWalkIn() bool {
	return b.UserID == nil
}

// IsOwnedBy проверяет владельца брони
func (b *Booking) IsOwnedBy(userID uuid.UUID) bool {
	return b.UserID != nil && *b.UserID == userID
}

// Overlaps пересекается ли бронь с интервалом [start, end)
func (b *Booking) Overlaps(start, end time.Time) bool {
	return IntervalsOverlap(b.StartTime, b.EndTime, start, end)
}

// CoversInstant занимает ли бронь место в момент t (start <= t < end)
func (b *Booking) CoversInstant(t time.Time) bool {
	return !t.Before(b.StartTime) && t.Before(b.EndTime)
}

// IntervalsOverlap пересечение полуоткрытых интервалов [aStart, aEnd) и [bStart, bEnd)
func IntervalsOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// SlotToken композитный токен брони "lotId_slotKey", кладётся в QR-код
func SlotToken(lotID uuid.UUID, slotKey string) string {
	return lotID.String() + "_" + slotKey
}

// TotalCost стоимость = тариф × часы, округление до копеек
func TotalCost(hourlyRate float64, durationHours int) float64 {
	return math.Round(hourlyRate*float64(durationHours)*100) / 100
}

// DurationHours длительность интервала в часах с округлением вверх
func DurationHours(start, end time.Time) int {
	return int(math.Ceil(end.Sub(start).Hours()))
}

// LotBookingsFilter фильтр бронирований парковки
type LotBookingsFilter struct {
	LotID           uuid.UUID      // Обязательный параметр
	From            *time.Time     // Брони, заканчивающиеся после From
	To              *time.Time     // Брони, начинающиеся до To
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли завершённые и отменённые
}
