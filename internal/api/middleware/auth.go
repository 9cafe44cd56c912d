package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/integrations/identity"
)

const bearerPrefix = "Bearer "

// TokenVerifier проверка bearer токена у identity-провайдера
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*identity.Identity, error)
}

// ActorResolver загрузка роли пользователя из профиля
type ActorResolver interface {
	Authenticate(ctx context.Context, id uuid.UUID, email string) (*domain.Actor, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Auth требует заголовок Authorization: Bearer <token>.
// Подтверждённая identity превращается в Actor с ролью из профиля
func Auth(verifier TokenVerifier, resolver ActorResolver, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, bearerPrefix) {
				handlers.RespondUnauthorized(w)
				return
			}

			token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
			if token == "" {
				handlers.RespondUnauthorized(w)
				return
			}

			ident, err := verifier.Verify(r.Context(), token)
			if err != nil {
				if errors.Is(err, identity.ErrInvalidToken) {
					logger.Warn("Auth: %s %s - invalid token: %v", r.Method, r.URL.Path, err)
					handlers.RespondUnauthorized(w)
					return
				}
				logger.Error("Auth: %s %s - identity provider failure: %v", r.Method, r.URL.Path, err)
				handlers.RespondBadGateway(w)
				return
			}

			actor, err := resolver.Authenticate(r.Context(), ident.ID, ident.Email)
			if err != nil {
				logger.Error("Auth: %s %s - failed to load profile id=%s: %v", r.Method, r.URL.Path, ident.ID, err)
				handlers.RespondInternalError(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}
