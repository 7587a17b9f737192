package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rishav-ranjan/healthlocker/internal/config"
	"github.com/rishav-ranjan/healthlocker/internal/records"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func runMiddleware(req *http.Request) (*httptest.ResponseRecorder, records.Actor, bool) {
	var (
		actor records.Actor
		seen  bool
	)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, seen = ActorFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	rr := httptest.NewRecorder()
	AuthMiddleware(next).ServeHTTP(rr, req)
	return rr, actor, seen
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	token := signToken(t, config.Envs.JWTSecret, jwt.MapClaims{
		"userId":   float64(7),
		"username": "alice",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/reports", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})

	rr, actor, seen := runMiddleware(req)
	assert.Equal(t, http.StatusOK, rr.Code)
	require.True(t, seen)
	assert.Equal(t, uint(7), actor.ID)
	assert.Equal(t, "alice", actor.Username)
}

func TestAuthMiddlewareMissingCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/reports", nil)

	rr, _, seen := runMiddleware(req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.False(t, seen)
}

func TestAuthMiddlewareBadSignature(t *testing.T) {
	token := signToken(t, "some-other-secret", jwt.MapClaims{
		"userId":   float64(7),
		"username": "alice",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/reports", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})

	rr, _, seen := runMiddleware(req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.False(t, seen)
}

func TestAuthMiddlewareExpiredToken(t *testing.T) {
	token := signToken(t, config.Envs.JWTSecret, jwt.MapClaims{
		"userId":   float64(7),
		"username": "alice",
		"exp":      time.Now().Add(-time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/reports", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})

	rr, _, seen := runMiddleware(req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.False(t, seen)
}

func TestAuthMiddlewareIncompleteClaims(t *testing.T) {
	token := signToken(t, config.Envs.JWTSecret, jwt.MapClaims{
		"userId": float64(7),
		"exp":    time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/reports", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})

	rr, _, seen := runMiddleware(req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.False(t, seen)
}

func TestAuthMiddlewarePassesPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/reports", nil)

	rr, _, _ := runMiddleware(req)
	assert.Equal(t, http.StatusOK, rr.Code)
}
