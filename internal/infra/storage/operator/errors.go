package operator

import "errors"

var (
	// ErrAlreadyAssigned оператор уже назначен на парковку
	ErrAlreadyAssigned = errors.New("operator.repository: operator already assigned to lot")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("operator.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("operator.repository: failed to execute query")
)
