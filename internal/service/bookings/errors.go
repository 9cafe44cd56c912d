package bookings

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized возвращается, когда действие выполняется без аутентификации
	ErrUnauthorized = errors.New("bookings: authentication required")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("bookings: booking not found")

	// ErrLotNotFound возвращается, когда парковка не найдена
	ErrLotNotFound = errors.New("bookings: parking lot not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("bookings: access denied")

	// ErrAlreadyTerminal бронь уже в финальном статусе
	ErrAlreadyTerminal = errors.New("bookings: booking is already in a terminal state")

	// ErrAlreadyCancelled бронь уже отменена
	ErrAlreadyCancelled = fmt.Errorf("%w: already cancelled", ErrAlreadyTerminal)

	// ErrAlreadyCompleted бронь уже завершена
	ErrAlreadyCompleted = fmt.Errorf("%w: already completed", ErrAlreadyTerminal)

	// ErrCannotCompleteCancelled завершение отменённой брони
	ErrCannotCompleteCancelled = fmt.Errorf("%w: cannot complete a cancelled booking", ErrAlreadyTerminal)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("bookings: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings: internal error")
)
