package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/ShopCart/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserStorage реализует интерфейс ports.UserStorage с использованием GORM
type UserStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewUserStorage создает новый экземпляр UserStorage
func NewUserStorage(db *gorm.DB, logger *slog.Logger) *UserStorage {
	return &UserStorage{db: db, logger: logger}
}

// CreateUser сохраняет нового пользователя в бд.
// Уникальность email обеспечивает индекс users_email_key: нарушение
// приходит как gorm.ErrDuplicatedKey и мапится в доменную ошибку.
func (s *UserStorage) CreateUser(ctx context.Context, user *domain.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	result := s.db.WithContext(ctx).Create(user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			s.logger.Warn("duplicate email on user create", "email", user.Email)
			return domain.ErrEmailAlreadyExists
		}
		s.logger.Error("failed to insert user", "error", result.Error)
		return fmt.Errorf("ошибка при создании пользователя: %w", result.Error)
	}

	s.logger.Info("user created", "user_id", user.ID)
	return nil
}

// GetUserByEmail получает пользователя по email
func (s *UserStorage) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	result := s.db.WithContext(ctx).Where("email = ?", email).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		s.logger.Error("failed to select user by email", "error", result.Error)
		return nil, fmt.Errorf("ошибка при получении пользователя по email: %w", result.Error)
	}
	return &user, nil
}
