package get_available_slots

import "errors"

var (
	// ErrLotNotFound возвращается, когда парковка не найдена
	ErrLotNotFound = errors.New("lot not found")

	// ErrInvalidTimeRange возвращается, когда конец окна не позже начала
	ErrInvalidTimeRange = errors.New("end time must be after start time")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
