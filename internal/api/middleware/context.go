package middleware

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

type contextKey struct{}

// WithActor кладёт аутентифицированного пользователя в контекст
func WithActor(ctx context.Context, actor *domain.Actor) context.Context {
	return context.WithValue(ctx, contextKey{}, actor)
}

// GetActor пользователь из контекста запроса, nil для анонимного запроса
func GetActor(ctx context.Context) *domain.Actor {
	actor, _ := ctx.Value(contextKey{}).(*domain.Actor)
	return actor
}
