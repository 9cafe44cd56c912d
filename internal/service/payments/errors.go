package payments

import "errors"

var (
	// ErrUnauthorized возвращается, когда действие выполняется без аутентификации
	ErrUnauthorized = errors.New("payments: authentication required")

	// ErrAccessDenied возвращается, когда заказ или бронь принадлежат другому пользователю
	ErrAccessDenied = errors.New("payments: access denied")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("payments: booking not found")

	// ErrOrderNotFound возвращается, когда платёжный заказ не найден
	ErrOrderNotFound = errors.New("payments: order not found")

	// ErrBookingNotPending оплатить можно только бронь в статусе pending
	ErrBookingNotPending = errors.New("payments: booking is not awaiting payment")

	// ErrGateway ошибка платёжного шлюза
	ErrGateway = errors.New("payments: payment gateway failure")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("payments: internal error")
)
