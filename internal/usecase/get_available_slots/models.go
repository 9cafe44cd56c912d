package get_available_slots

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса на получение свободных мест
type Request struct {
	LotID     uuid.UUID
	StartTime time.Time
	EndTime   time.Time
}

// Response модель ответа со списком свободных мест
type Response struct {
	LotID     uuid.UUID
	StartTime time.Time
	EndTime   time.Time
	Slots     []string // Ключи свободных мест в естественном порядке
	// Synthesized true, если у парковки нет статической карты и ключи синтезированы
	Synthesized bool
}
