package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Request модели

// AddLotRequest запрос на создание парковки
type AddLotRequest struct {
	Name       string  `json:"name" validate:"required,max=200"`
	Address    string  `json:"address" validate:"required,max=500"`
	TotalSlots int     `json:"totalSlots" validate:"required,gt=0,lte=10000"`
	HourlyRate float64 `json:"pricePerHour" validate:"gte=0"`
	Latitude   float64 `json:"lat" validate:"gte=-90,lte=90"`
	Longitude  float64 `json:"lng" validate:"gte=-180,lte=180"`
	SlotPrefix string  `json:"slotPrefix,omitempty" validate:"omitempty,max=8,alpha"`
}

// ToDomainLot конвертирует request в domain модель со статической картой мест
func (r *AddLotRequest) ToDomainLot() *domain.ParkingLot {
	keys := domain.GenerateSlotKeys(r.TotalSlots, r.SlotPrefix)
	return &domain.ParkingLot{
		Name:           r.Name,
		Address:        r.Address,
		TotalSlots:     r.TotalSlots,
		AvailableSlots: r.TotalSlots,
		Slots:          domain.NewSlotMap(keys),
		HourlyRate:     r.HourlyRate,
		Location: domain.Location{
			Latitude:  r.Latitude,
			Longitude: r.Longitude,
		},
		SlotPrefix: r.SlotPrefix,
	}
}

// AssignOperatorRequest запрос на назначение оператора
type AssignOperatorRequest struct {
	OperatorID uuid.UUID `json:"operatorId" validate:"required"`
}

// Response модели

// SlotResponse состояние места
type SlotResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// LotResponse ответ с данными парковки
type LotResponse struct {
	ID             uuid.UUID      `json:"id"`
	Name           string         `json:"name"`
	Address        string         `json:"address"`
	TotalSlots     int            `json:"totalSlots"`
	AvailableSlots int            `json:"availableSlots"`
	HourlyRate     float64        `json:"pricePerHour"`
	Latitude       float64        `json:"lat"`
	Longitude      float64        `json:"lng"`
	SlotPrefix     string         `json:"slotPrefix,omitempty"`
	Slots          []SlotResponse `json:"slots"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// LotListResponse ответ со списком парковок
type LotListResponse struct {
	Lots []LotResponse `json:"lots"`
}

// Методы конвертации

// FromDomainLot конвертирует domain модель в DTO, места в естественном порядке
func FromDomainLot(l *domain.ParkingLot) *LotResponse {
	if l == nil {
		return nil
	}

	keys := l.SlotKeys()
	slots := make([]SlotResponse, 0, len(keys))
	for _, k := range keys {
		slots = append(slots, SlotResponse{ID: k, Status: string(l.Slots[k])})
	}

	return &LotResponse{
		ID:             l.ID,
		Name:           l.Name,
		Address:        l.Address,
		TotalSlots:     l.TotalSlots,
		AvailableSlots: l.AvailableSlots,
		HourlyRate:     l.HourlyRate,
		Latitude:       l.Location.Latitude,
		Longitude:      l.Location.Longitude,
		SlotPrefix:     l.SlotPrefix,
		Slots:          slots,
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      l.UpdatedAt,
	}
}

// FromDomainLotList конвертирует список domain моделей в DTO
func FromDomainLotList(lots []*domain.ParkingLot) *LotListResponse {
	resp := &LotListResponse{
		Lots: make([]LotResponse, 0, len(lots)),
	}

	for _, lot := range lots {
		if lotResp := FromDomainLot(lot); lotResp != nil {
			resp.Lots = append(resp.Lots, *lotResp)
		}
	}

	return resp
}
