package identity

import "errors"

var (
	// ErrInvalidToken токен отсутствует, подделан или истёк
	ErrInvalidToken = errors.New("identity: invalid token")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("identity client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе провайдера
	ErrInvalidResponse = errors.New("identity client: invalid response")
)
