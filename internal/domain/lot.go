package domain

import (
	"time"

	"github.com/google/uuid"
)

// Location координаты парковки
type Location struct {
	Latitude  float64
	Longitude float64
}

// ParkingLot парковка. Slots и AvailableSlots - денормализованный кэш занятости,
// источником истины остаются бронирования
type ParkingLot struct {
	ID             uuid.UUID
	Name           string
	Address        string
	TotalSlots     int
	AvailableSlots int
	Slots          map[string]SlotState
	HourlyRate     float64
	Location       Location
	SlotPrefix     string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasStaticSlotMap true, если у парковки есть статическая карта мест.
// Старые парковки с пустой картой работают через синтез ключей
func (l *ParkingLot) HasStaticSlotMap() bool {
	return len(l.Slots) > 0
}

// HasSlot проверяет, что ключ есть в статической карте
func (l *ParkingLot) HasSlot(key string) bool {
	_, ok := l.Slots[key]
	return ok
}

// DefinesSlot проверяет, что ключ существует на парковке.
// Без статической карты известны только синтезированные ключи с номерами 1..TotalSlots
func (l *ParkingLot) DefinesSlot(key string) bool {
	if l.HasStaticSlotMap() {
		return l.HasSlot(key)
	}
	for n := 1; n <= l.TotalSlots; n++ {
		if SynthesizeSlotKey(n) == key {
			return true
		}
	}
	return false
}

// SlotKeys возвращает ключи статической карты в естественном порядке
func (l *ParkingLot) SlotKeys() []string {
	keys := make([]string, 0, len(l.Slots))
	for k := range l.Slots {
		keys = append(keys, k)
	}
	SortSlotKeys(keys)
	return keys
}

// OccupiedCount количество мест, помеченных занятыми в кэше
func (l *ParkingLot) OccupiedCount() int {
	count := 0
	for _, state := range l.Slots {
		if state == SlotOccupied {
			count++
		}
	}
	return count
}

// OccupiedFromCounter число занятых мест по счётчику available_spots.
// Используется для синтеза ключей, когда карты мест нет
func (l *ParkingLot) OccupiedFromCounter() int {
	return ClampSlots(l.TotalSlots-l.AvailableSlots, l.TotalSlots)
}

// CloneSlots копия карты мест для безопасной модификации
func (l *ParkingLot) CloneSlots() map[string]SlotState {
	slots := make(map[string]SlotState, len(l.Slots)+1)
	for k, v := range l.Slots {
		slots[k] = v
	}
	return slots
}

// RecountAvailable пересчитывает счётчик свободных мест: total - occupied в пределах [0, total]
func RecountAvailable(total int, slots map[string]SlotState) int {
	occupied := 0
	for _, state := range slots {
		if state == SlotOccupied {
			occupied++
		}
	}
	return ClampSlots(total-occupied, total)
}

// ClampSlots ограничивает значение диапазоном [0, total]
func ClampSlots(v, total int) int {
	if v < 0 {
		return 0
	}
	if v > total {
		return total
	}
	return v
}

// NewSlotMap создает карту мест, где все места свободны
func NewSlotMap(keys []string) map[string]SlotState {
	slots := make(map[string]SlotState, len(keys))
	for _, k := range keys {
		slots[k] = SlotAvailable
	}
	return slots
}

// ApplySlotState снимок кэша после смены состояния места key.
// У парковки без карты карта остаётся пустой, а счётчик сдвигается на одно место
func (l *ParkingLot) ApplySlotState(key string, state SlotState) (map[string]SlotState, int) {
	if !l.HasStaticSlotMap() {
		available := l.AvailableSlots
		if state == SlotOccupied {
			available--
		} else {
			available++
		}
		return map[string]SlotState{}, ClampSlots(available, l.TotalSlots)
	}

	slots := l.CloneSlots()
	if _, ok := slots[key]; ok {
		slots[key] = state
	}
	return slots, RecountAvailable(l.TotalSlots, slots)
}
