package identity

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestJWTVerifier_RoundTrip(t *testing.T) {
	v := NewJWTVerifier("secret")
	id := uuid.New()

	token, err := v.Sign(Identity{ID: id, Email: "a@b.c"}, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	require.NoError(t, err)

	got, err := v.Verify(context.Background(), token)

	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "a@b.c", got.Email)
}

func TestJWTVerifier_Rejects(t *testing.T) {
	signer := NewJWTVerifier("secret")
	id := uuid.New()

	expired, err := signer.Sign(Identity{ID: id, Email: "a@b.c"}, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	})
	require.NoError(t, err)

	otherKey, err := NewJWTVerifier("other").Sign(Identity{ID: id, Email: "a@b.c"}, jwt.RegisteredClaims{})
	require.NoError(t, err)

	for name, token := range map[string]string{
		"expired":   expired,
		"wrong key": otherKey,
		"garbage":   "not.a.token",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := signer.Verify(context.Background(), token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestClient_Verify(t *testing.T) {
	id := uuid.New()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/user", r.URL.Path)
		assert.Equal(t, "anon", r.Header.Get("apikey"))
		if r.Header.Get("Authorization") != "Bearer good" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"id":%q,"email":"u@x.y"}`, id.String())
	}))
	defer server.Close()

	client := NewClient(server.URL+"/", "anon", time.Second, nopLogger{})

	got, err := client.Verify(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "u@x.y", got.Email)

	_, err = client.Verify(context.Background(), "bad")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestClient_UpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := NewClient(server.URL, "", time.Second, nopLogger{}).Verify(context.Background(), "t")

	assert.ErrorIs(t, err, ErrInvalidResponse)
}
