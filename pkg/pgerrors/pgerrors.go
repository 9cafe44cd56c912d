// Package pgerrors классифицирует ошибки PostgreSQL по SQLSTATE кодам
package pgerrors

import (
	"errors"

	"github.com/lib/pq"
)

const (
	CodeUniqueViolation      pq.ErrorCode = "23505"
	CodeExclusionViolation   pq.ErrorCode = "23P01"
	CodeSerializationFailure pq.ErrorCode = "40001"
	CodeDeadlockDetected     pq.ErrorCode = "40P01"
	CodeNoDataFound          pq.ErrorCode = "P0002"
)

// Code возвращает SQLSTATE код ошибки или пустую строку
func Code(err error) pq.ErrorCode {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code
	}
	return ""
}

// IsUniqueViolation нарушение уникального индекса
func IsUniqueViolation(err error) bool {
	return Code(err) == CodeUniqueViolation
}

// IsExclusionViolation нарушение exclusion constraint (пересечение интервалов)
func IsExclusionViolation(err error) bool {
	return Code(err) == CodeExclusionViolation
}

// IsSerializationFailure конфликт сериализуемых транзакций или дедлок, транзакцию можно повторить
func IsSerializationFailure(err error) bool {
	code := Code(err)
	return code == CodeSerializationFailure || code == CodeDeadlockDetected
}
