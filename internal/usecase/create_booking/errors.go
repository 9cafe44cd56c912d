package create_booking

import "errors"

var (
	// ErrUnauthorized возвращается, когда запрос без аутентификации
	ErrUnauthorized = errors.New("create_booking: authentication required")

	// ErrAccessDenied роль не позволяет создать бронь или оператор не назначен на парковку
	ErrAccessDenied = errors.New("create_booking: access denied")

	// ErrLotNotFound возвращается, когда парковка не найдена
	ErrLotNotFound = errors.New("create_booking: lot not found")

	// ErrSlotNotDefined возвращается, когда места нет в карте парковки
	ErrSlotNotDefined = errors.New("create_booking: slot is not defined for this lot")

	// ErrSlotUnavailable возвращается, когда место занято на запрошенное время
	ErrSlotUnavailable = errors.New("create_booking: slot is not available")

	// ErrLotFull возвращается, когда на запрошенное время нет свободных мест
	ErrLotFull = errors.New("create_booking: lot is full")

	// ErrConcurrentModification возвращается, когда бронь проиграла конкурентной транзакции
	ErrConcurrentModification = errors.New("create_booking: concurrent modification, retry")

	// ErrInvalidTimeRange возвращается при некорректном окне брони
	ErrInvalidTimeRange = errors.New("create_booking: invalid time range")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
