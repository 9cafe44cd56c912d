package lots

import "errors"

var (
	// ErrUnauthorized возвращается, когда действие выполняется без аутентификации
	ErrUnauthorized = errors.New("lots: authentication required")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("lots: access denied")

	// ErrLotNotFound возвращается, когда парковка не найдена
	ErrLotNotFound = errors.New("lots: parking lot not found")

	// ErrOperatorNotFound профиль оператора не найден или не имеет роли operator
	ErrOperatorNotFound = errors.New("lots: operator not found")

	// ErrAlreadyAssigned оператор уже назначен на парковку
	ErrAlreadyAssigned = errors.New("lots: operator already assigned to lot")

	// ErrConcurrentModification кэш парковки изменён конкурентно
	ErrConcurrentModification = errors.New("lots: concurrent modification")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("lots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("lots: internal error")
)
