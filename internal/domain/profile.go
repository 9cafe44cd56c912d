package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// VehicleType тип транспортного средства
type VehicleType string

const (
	VehicleTwoWheeler  VehicleType = "TWO_WHEELER"
	VehicleFourWheeler VehicleType = "FOUR_WHEELER"
	VehicleSUV         VehicleType = "SUV"
)

// ParseVehicleType разбирает тип ТС
func ParseVehicleType(s string) (VehicleType, error) {
	switch v := VehicleType(s); v {
	case VehicleTwoWheeler, VehicleFourWheeler, VehicleSUV:
		return v, nil
	}
	return "", fmt.Errorf("unknown vehicle type %q", s)
}

// Profile профиль пользователя, id совпадает с id из identity-провайдера
type Profile struct {
	ID           uuid.UUID
	Email        string
	FullName     *string
	VehiclePlate *string
	VehicleType  *VehicleType
	Role         Role

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AdminStats сводка для администратора
type AdminStats struct {
	TotalUsers        int
	TotalLots         int
	ActiveBookings    int
	CompletedBookings int
}

// OperatorAssignment привязка оператора к парковке
type OperatorAssignment struct {
	OperatorID uuid.UUID
	LotID      uuid.UUID
	CreatedAt  time.Time
}
