package handler

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/GoArmGo/ShopCart/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthUseCase struct {
	user  *domain.User
	token string

	registerErr error
	loginErr    error
}

func (f *fakeAuthUseCase) Register(ctx context.Context, email, password, name string) (*domain.User, string, error) {
	if f.registerErr != nil {
		return nil, "", f.registerErr
	}
	return f.user, f.token, nil
}

func (f *fakeAuthUseCase) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	if f.loginErr != nil {
		return nil, "", f.loginErr
	}
	return f.user, f.token, nil
}

func TestRegisterSuccess(t *testing.T) {
	user := &domain.User{ID: uuid.New(), Email: "a@b.com", Name: "Alice"}
	h := NewAuthHandler(&fakeAuthUseCase{user: user, token: "tok123"}, slog.Default())

	body := `{"email":"a@b.com","password":"secret123","name":"Alice"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "User registered successfully")
	assert.Contains(t, rec.Body.String(), "tok123")
	// хэш пароля в ответ не попадает
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestRegisterValidation(t *testing.T) {
	h := NewAuthHandler(&fakeAuthUseCase{}, slog.Default())

	cases := []struct {
		name string
		body string
		msg  string
	}{
		{"missing email", `{"password":"secret123","name":"A"}`, "email is required"},
		{"bad email", `{"email":"nope","password":"secret123","name":"A"}`, "please enter a valid email"},
		{"short password", `{"email":"a@b.com","password":"12345","name":"A"}`, "password must be at least 6 characters"},
		{"missing name", `{"email":"a@b.com","password":"secret123","name":"  "}`, "name is required"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			h.Register(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.msg)
		})
	}
}

func TestRegisterConflict(t *testing.T) {
	h := NewAuthHandler(&fakeAuthUseCase{registerErr: domain.ErrEmailAlreadyExists}, slog.Default())

	body := `{"email":"a@b.com","password":"secret123","name":"Alice"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "User already exists with this email")
}

func TestLoginSuccess(t *testing.T) {
	user := &domain.User{ID: uuid.New(), Email: "a@b.com", Name: "Alice"}
	h := NewAuthHandler(&fakeAuthUseCase{user: user, token: "tok123"}, slog.Default())

	body := `{"email":"a@b.com","password":"secret123"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Login successful")
	assert.Contains(t, rec.Body.String(), "tok123")
}

func TestLoginInvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&fakeAuthUseCase{loginErr: domain.ErrInvalidCredentials}, slog.Default())

	body := `{"email":"a@b.com","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid email or password")
}

func TestLoginValidation(t *testing.T) {
	h := NewAuthHandler(&fakeAuthUseCase{}, slog.Default())

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"a@b.com"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "password is required")
}
