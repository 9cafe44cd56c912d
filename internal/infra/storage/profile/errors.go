package profile

import "errors"

var (
	// ErrProfileNotFound профиль не найден
	ErrProfileNotFound = errors.New("profile.repository: profile not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("profile.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("profile.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("profile.repository: failed to scan row")
)
