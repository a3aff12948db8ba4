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
	"gorm.io/gorm/clause"
)

// CartStorage реализует интерфейс ports.CartStorage с использованием GORM
type CartStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewCartStorage создает новый экземпляр CartStorage
func NewCartStorage(db *gorm.DB, logger *slog.Logger) *CartStorage {
	return &CartStorage{db: db, logger: logger}
}

// ListByUser возвращает все позиции корзины пользователя в порядке добавления
func (s *CartStorage) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.CartLine, error) {
	var lines []domain.CartLine
	result := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&lines)
	if result.Error != nil {
		s.logger.Error("failed to list cart lines", "user_id", userID, "error", result.Error)
		return nil, fmt.Errorf("ошибка при получении позиций корзины: %w", result.Error)
	}
	return lines, nil
}

// AddOrIncrement атомарно вставляет позицию или увеличивает quantity
// существующей одной командой INSERT ... ON CONFLICT (user_id, product_id)
// DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity.
// Инкремент выполняет сама БД, поэтому конкурентные добавления одного
// товара не теряют обновления и не создают дубликат строки.
func (s *CartStorage) AddOrIncrement(ctx context.Context, line *domain.CartLine) (bool, error) {
	newID := uuid.New()
	now := time.Now()
	line.ID = newID
	line.CreatedAt = now
	line.UpdatedAt = now

	result := s.db.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity":   gorm.Expr("cart_items.quantity + EXCLUDED.quantity"),
				"updated_at": now,
			}),
		},
		// RETURNING перечитывает строку: при конфликте в line вернутся
		// id существующей строки и накопленный quantity
		clause.Returning{},
	).Create(line)
	if result.Error != nil {
		s.logger.Error("failed to upsert cart line",
			"user_id", line.UserID, "product_id", line.ProductID, "error", result.Error)
		return false, fmt.Errorf("ошибка при добавлении позиции в корзину: %w", result.Error)
	}

	// если id не поменялся — строка была вставлена, а не обновлена
	created := line.ID == newID
	return created, nil
}

// UpdateQuantity выставляет точное значение quantity позиции.
// Фильтр по (id, user_id) сразу в WHERE: чужая строка неотличима
// от несуществующей, обе дают domain.ErrNotFound.
func (s *CartStorage) UpdateQuantity(ctx context.Context, userID, lineID uuid.UUID, quantity int) (*domain.CartLine, error) {
	result := s.db.WithContext(ctx).
		Model(&domain.CartLine{}).
		Where("id = ? AND user_id = ?", lineID, userID).
		Updates(map[string]interface{}{
			"quantity":   quantity,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		s.logger.Error("failed to update cart line", "line_id", lineID, "error", result.Error)
		return nil, fmt.Errorf("ошибка при обновлении позиции корзины: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrNotFound
	}

	var line domain.CartLine
	if err := s.db.WithContext(ctx).First(&line, "id = ? AND user_id = ?", lineID, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка при перечитывании позиции корзины: %w", err)
	}
	return &line, nil
}

// Delete удаляет позицию по (id, user_id) с той же семантикой владения
func (s *CartStorage) Delete(ctx context.Context, userID, lineID uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", lineID, userID).
		Delete(&domain.CartLine{})
	if result.Error != nil {
		s.logger.Error("failed to delete cart line", "line_id", lineID, "error", result.Error)
		return fmt.Errorf("ошибка при удалении позиции корзины: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
