package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrSlotTaken вставка нарушила exclusion constraint: место уже занято на пересекающийся интервал
	ErrSlotTaken = errors.New("booking.repository: slot already taken for overlapping interval")

	// ErrSerializationFailure запрос проиграл конкурентной сериализуемой транзакции
	ErrSerializationFailure = errors.New("booking.repository: serialization failure")

	// ErrStatusConflict условный переход статуса не затронул строк: бронь уже в другом статусе
	ErrStatusConflict = errors.New("booking.repository: booking status changed concurrently")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
