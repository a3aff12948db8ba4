package handler

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/GoArmGo/ShopCart/internal/auth"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testJWTSecret = []byte("test-secret")

func authProtected(t *testing.T) (http.Handler, *uuid.UUID) {
	t.Helper()
	var gotUserID uuid.UUID
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := UserIDFromContext(r.Context())
		require.True(t, ok, "user id должен быть в контексте после middleware")
		gotUserID = id
		w.WriteHeader(http.StatusOK)
	})
	return AuthMiddleware(testJWTSecret, slog.Default())(next), &gotUserID
}

func TestAuthMiddlewareNoHeader(t *testing.T) {
	h, _ := authProtected(t)

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"No token, authorization denied"}`, rec.Body.String())
}

func TestAuthMiddlewareWrongScheme(t *testing.T) {
	h, _ := authProtected(t)

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"No token, authorization denied"}`, rec.Body.String())
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	h, _ := authProtected(t)

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"Token is not valid"}`, rec.Body.String())
}

func TestAuthMiddlewareExpiredToken(t *testing.T) {
	h, _ := authProtected(t)

	token, err := auth.GenerateToken(uuid.New(), testJWTSecret, -time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"Token is not valid"}`, rec.Body.String())
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	h, gotUserID := authProtected(t)

	userID := uuid.New()
	token, err := auth.GenerateToken(userID, testJWTSecret, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, *gotUserID)
}
