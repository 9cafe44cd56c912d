package lot

import "errors"

var (
	// ErrLotNotFound возвращается, когда парковка не найдена
	ErrLotNotFound = errors.New("lot.repository: parking lot not found")

	// ErrConcurrentModification условная запись кэша не затронула строк: счётчик уже изменён другим писателем
	ErrConcurrentModification = errors.New("lot.repository: concurrent modification of occupancy cache")

	// ErrSerializationFailure запрос проиграл конкурентной сериализуемой транзакции
	ErrSerializationFailure = errors.New("lot.repository: serialization failure")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("lot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("lot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("lot.repository: failed to scan row")

	// ErrEncodeSlots возвращается, если карту мест не удалось сериализовать или разобрать
	ErrEncodeSlots = errors.New("lot.repository: failed to encode slots")
)
