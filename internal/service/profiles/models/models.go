package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// VehicleRequest данные транспортного средства
type VehicleRequest struct {
	RegistrationNumber string `json:"registrationNumber" validate:"required,max=20"`
	Type               string `json:"type" validate:"required,oneof=TWO_WHEELER FOUR_WHEELER SUV"`
}

// SetupProfileRequest запрос на заполнение профиля
type SetupProfileRequest struct {
	Name    string          `json:"name" validate:"required,max=200"`
	Vehicle *VehicleRequest `json:"vehicle,omitempty" validate:"omitempty"`
}

// VehicleResponse данные транспортного средства
type VehicleResponse struct {
	RegistrationNumber *string `json:"registrationNumber,omitempty"`
	Type               *string `json:"type,omitempty"`
}

// ProfileResponse ответ с данными профиля
type ProfileResponse struct {
	ID        uuid.UUID        `json:"id"`
	Email     string           `json:"email"`
	FullName  *string          `json:"fullName,omitempty"`
	Role      string           `json:"role"`
	Vehicle   *VehicleResponse `json:"vehicle,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
}

// ProfileListResponse ответ со списком профилей
type ProfileListResponse struct {
	Users []ProfileResponse `json:"users"`
}

// AdminStatsResponse сводка для администратора
type AdminStatsResponse struct {
	TotalUsers        int `json:"totalUsers"`
	TotalLots         int `json:"totalLots"`
	ActiveBookings    int `json:"activeBookings"`
	CompletedBookings int `json:"completedBookings"`
}

// FromDomainProfile конвертирует domain модель в DTO
func FromDomainProfile(p *domain.Profile) *ProfileResponse {
	if p == nil {
		return nil
	}

	resp := &ProfileResponse{
		ID:        p.ID,
		Email:     p.Email,
		FullName:  p.FullName,
		Role:      string(p.Role),
		CreatedAt: p.CreatedAt,
	}

	if p.VehiclePlate != nil || p.VehicleType != nil {
		resp.Vehicle = &VehicleResponse{RegistrationNumber: p.VehiclePlate}
		if p.VehicleType != nil {
			t := string(*p.VehicleType)
			resp.Vehicle.Type = &t
		}
	}

	return resp
}

// FromDomainProfileList конвертирует список domain моделей в DTO
func FromDomainProfileList(profiles []*domain.Profile) *ProfileListResponse {
	resp := &ProfileListResponse{Users: make([]ProfileResponse, 0, len(profiles))}
	for _, p := range profiles {
		if pr := FromDomainProfile(p); pr != nil {
			resp.Users = append(resp.Users, *pr)
		}
	}
	return resp
}

// FromDomainStats конвертирует сводку в DTO
func FromDomainStats(s *domain.AdminStats) *AdminStatsResponse {
	return &AdminStatsResponse{
		TotalUsers:        s.TotalUsers,
		TotalLots:         s.TotalLots,
		ActiveBookings:    s.ActiveBookings,
		CompletedBookings: s.CompletedBookings,
	}
}
