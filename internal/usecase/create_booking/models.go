package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	Actor         *domain.Actor
	LotID         uuid.UUID
	SlotKey       *string    // Конкретное место (опционально, иначе автоподбор)
	StartTime     *time.Time // По умолчанию - текущее время
	EndTime       *time.Time // По умолчанию - StartTime + DurationHours
	DurationHours *int       // По умолчанию 1 час
	VehicleNumber *string
}

// WalkInRequest модель запроса на бронь для клиента без аккаунта
type WalkInRequest struct {
	Request
	CustomerName  string
	CustomerPhone string
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking *domain.Booking
	// SlotSynthesized место подобрано синтезом ключа (у парковки нет карты мест)
	SlotSynthesized bool
}

// window вычисленное окно брони
type window struct {
	start    time.Time
	end      time.Time
	duration int
}
