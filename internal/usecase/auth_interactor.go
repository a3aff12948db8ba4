package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/GoArmGo/ShopCart/internal/auth"
	"github.com/GoArmGo/ShopCart/internal/core/ports"
	"github.com/GoArmGo/ShopCart/internal/domain"
)

// authUseCase implements AuthUseCase
type authUseCase struct {
	userStorage ports.UserStorage
	jwtSecret   []byte
	tokenTTL    time.Duration
	logger      *slog.Logger
}

// NewAuthUseCase создает новый экземпляр AuthUseCase
func NewAuthUseCase(userStorage ports.UserStorage, jwtSecret []byte, tokenTTL time.Duration, logger *slog.Logger) AuthUseCase {
	return &authUseCase{
		userStorage: userStorage,
		jwtSecret:   jwtSecret,
		tokenTTL:    tokenTTL,
		logger:      logger,
	}
}

// normalizeEmail приводит email к каноничному виду: trim + lowercase
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register создает пользователя и выпускает токен.
// Уникальность email проверяет индекс в БД, здесь только нормализация и хэш.
func (uc *authUseCase) Register(ctx context.Context, email, password, name string) (*domain.User, string, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("usecase: ошибка хэширования пароля: %w", err)
	}

	user := &domain.User{
		Email:        normalizeEmail(email),
		PasswordHash: hash,
		Name:         strings.TrimSpace(name),
	}

	if err := uc.userStorage.CreateUser(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			return nil, "", domain.ErrEmailAlreadyExists
		}
		return nil, "", fmt.Errorf("usecase: ошибка создания пользователя: %w", err)
	}

	token, err := auth.GenerateToken(user.ID, uc.jwtSecret, uc.tokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("usecase: ошибка выпуска токена: %w", err)
	}

	uc.logger.Info("user registered", "user_id", user.ID)
	return user, token, nil
}

// Login проверяет учетные данные и выпускает токен.
// Обе ветки отказа возвращают один и тот же domain.ErrInvalidCredentials.
func (uc *authUseCase) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := uc.userStorage.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("usecase: ошибка поиска пользователя: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, uc.jwtSecret, uc.tokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("usecase: ошибка выпуска токена: %w", err)
	}

	uc.logger.Info("user logged in", "user_id", user.ID)
	return user, token, nil
}
