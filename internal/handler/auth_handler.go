package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/GoArmGo/ShopCart/internal/auth"
	"github.com/GoArmGo/ShopCart/internal/domain"
	"github.com/GoArmGo/ShopCart/internal/usecase"
	"github.com/google/uuid"
)

// AuthHandler — обработчик HTTP-запросов регистрации и входа.
type AuthHandler struct {
	authUseCase usecase.AuthUseCase
	logger      *slog.Logger
}

// NewAuthHandler создаёт новый экземпляр AuthHandler.
func NewAuthHandler(uc usecase.AuthUseCase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{authUseCase: uc, logger: logger}
}

// registerRequest — типизированный контракт тела запроса регистрации.
// Валидируется один раз на границе, до входа в usecase.
type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (req *registerRequest) Validate() string {
	if req.Email == "" {
		return "email is required"
	}
	if !strings.Contains(req.Email, "@") {
		return "please enter a valid email"
	}
	if len(req.Password) < auth.MinPasswordLength {
		return "password must be at least 6 characters"
	}
	if strings.TrimSpace(req.Name) == "" {
		return "name is required"
	}
	return ""
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (req *loginRequest) Validate() string {
	if req.Email == "" {
		return "email is required"
	}
	if req.Password == "" {
		return "password is required"
	}
	return ""
}

// userPayload — представление пользователя в ответах аутентификации.
type userPayload struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
}

// Register — регистрирует нового пользователя и сразу выдает токен.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	if msg := req.Validate(); msg != "" {
		respondWithError(w, http.StatusBadRequest, msg, h.logger)
		return
	}

	user, token, err := h.authUseCase.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			respondWithError(w, http.StatusBadRequest, "User already exists with this email", h.logger)
			return
		}
		h.logger.Error("failed to register user", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Server error during registration", h.logger)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User registered successfully",
		"token":   token,
		"user":    userPayload{ID: user.ID, Email: user.Email, Name: user.Name},
	}, h.logger)
}

// Login — проверяет учетные данные и выдает токен.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	if msg := req.Validate(); msg != "" {
		respondWithError(w, http.StatusBadRequest, msg, h.logger)
		return
	}

	user, token, err := h.authUseCase.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			respondWithError(w, http.StatusBadRequest, "Invalid email or password", h.logger)
			return
		}
		h.logger.Error("failed to login user", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Server error during login", h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"token":   token,
		"user":    userPayload{ID: user.ID, Email: user.Email, Name: user.Name},
	}, h.logger)
}
