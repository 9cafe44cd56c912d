package identity

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims полезная нагрузка токена: sub - id пользователя
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// JWTVerifier локальная проверка HS256 токенов общим секретом
type JWTVerifier struct {
	secret []byte
}

// NewJWTVerifier создаёт верификатор
func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

// Verify проверяет подпись и срок действия токена
func (v *JWTVerifier) Verify(_ context.Context, token string) (*Identity, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: subject is not a uuid: %v", ErrInvalidToken, err)
	}
	if claims.Email == "" {
		return nil, fmt.Errorf("%w: email claim is empty", ErrInvalidToken)
	}

	return &Identity{ID: id, Email: claims.Email}, nil
}

// Sign выпускает токен. Используется CLI и тестами
func (v *JWTVerifier) Sign(identity Identity, claims jwt.RegisteredClaims) (string, error) {
	claims.Subject = identity.ID.String()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{Email: identity.Email, RegisteredClaims: claims})
	return token.SignedString(v.secret)
}
