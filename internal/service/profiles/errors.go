package profiles

import "errors"

var (
	// ErrUnauthorized возвращается, когда действие выполняется без аутентификации
	ErrUnauthorized = errors.New("profiles: authentication required")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("profiles: access denied")

	// ErrProfileNotFound профиль не найден. Профиль появляется при первом входе пользователя
	ErrProfileNotFound = errors.New("profiles: profile not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("profiles: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("profiles: internal error")
)
