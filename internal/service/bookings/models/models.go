package models

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// GetMyBookingsRequest запрос на получение бронирований текущего пользователя
type GetMyBookingsRequest struct {
	Status *string `json:"status,omitempty"`
}

// GetLotBookingsRequest запрос на получение бронирований парковки
type GetLotBookingsRequest struct {
	LotID           uuid.UUID  `json:"lotId"`
	From            *time.Time `json:"from,omitempty"`            // Начало периода (опционально)
	To              *time.Time `json:"to,omitempty"`              // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить завершённые и отменённые
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetLotBookingsRequest) ToDomainFilter() (domain.LotBookingsFilter, error) {
	filter := domain.LotBookingsFilter{
		LotID:           r.LotID,
		From:            r.From,
		To:              r.To,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// WalkInResponse данные клиента walk-in
type WalkInResponse struct {
	CustomerName  string    `json:"customerName"`
	CustomerPhone string    `json:"customerPhone"`
	CreatedBy     uuid.UUID `json:"createdBy"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID            uuid.UUID       `json:"id"`
	UserID        *uuid.UUID      `json:"userId,omitempty"`
	LotID         uuid.UUID       `json:"lotId"`
	SlotKey       string          `json:"slotKey"`
	QRCodeData    string          `json:"qrCodeData"`
	StartTime     time.Time       `json:"startTime"`
	EndTime       time.Time       `json:"endTime"`
	DurationHours int             `json:"durationHours"`
	TotalCost     float64         `json:"totalCost"`
	Status        string          `json:"status"`
	VehicleNumber *string         `json:"vehicleNumber,omitempty"`
	WalkIn        *WalkInResponse `json:"walkIn,omitempty"`

	CheckedInAt *string `json:"checkedInAt,omitempty"` // ISO 8601 format
	CompletedAt *string `json:"completedAt,omitempty"`
	CancelledAt *string `json:"cancelledAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// CheckInResponse результат проверки брони на въезде
type CheckInResponse struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Booking *BookingResponse `json:"booking,omitempty"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:            b.ID,
		UserID:        b.UserID,
		LotID:         b.LotID,
		SlotKey:       b.SlotKey,
		QRCodeData:    b.QRCodeData,
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		DurationHours: b.DurationHours,
		TotalCost:     b.TotalCost,
		Status:        string(b.Status),
		VehicleNumber: b.VehicleNumber,
		CheckedInAt:   formatTime(b.CheckedInAt),
		CompletedAt:   formatTime(b.CompletedAt),
		CancelledAt:   formatTime(b.CancelledAt),
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}

	if b.WalkIn != nil {
		resp.WalkIn = &WalkInResponse{
			CustomerName:  b.WalkIn.CustomerName,
			CustomerPhone: b.WalkIn.CustomerPhone,
			CreatedBy:     b.WalkIn.CreatedBy,
		}
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s, err := domain.ParseBookingStatus(status)
	if err != nil {
		return "", ErrInvalidStatus
	}
	return s, nil
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
