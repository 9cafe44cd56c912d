package reconciler

import "errors"

var (
	// ErrLotNotFound возвращается, когда парковка не найдена
	ErrLotNotFound = errors.New("reconciler: lot not found")

	// ErrConcurrentModification все попытки условной записи проиграли конкурентным писателям
	ErrConcurrentModification = errors.New("reconciler: concurrent modification of occupancy cache")

	// ErrInternal возвращается при ошибках хранилища
	ErrInternal = errors.New("reconciler: internal error")
)
