package identity

import "github.com/google/uuid"

// Identity пользователь, подтверждённый провайдером
type Identity struct {
	ID    uuid.UUID
	Email string
}

// userResponse ответ провайдера на GET /auth/v1/user
type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
