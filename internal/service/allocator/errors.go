package allocator

import "errors"

var (
	// ErrSlotNotDefined запрошенного места нет в статической карте парковки
	ErrSlotNotDefined = errors.New("allocator: slot is not defined for this lot")

	// ErrSlotUnavailable запрошенное место занято на окне
	ErrSlotUnavailable = errors.New("allocator: slot is not available for the requested time")

	// ErrLotFull на окне нет свободных мест
	ErrLotFull = errors.New("allocator: no slots available for the requested time")

	// ErrInternal ошибка калькулятора доступности
	ErrInternal = errors.New("allocator: internal error")
)
