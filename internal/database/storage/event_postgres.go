package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/ShopCart/internal/domain"
	"github.com/jmoiron/sqlx"
)

// EventStorage реализует интерфейс ports.CartEventStorage поверх sqlx.
// Журнал активности пишется только воркером, читается аналитикой напрямую.
type EventStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewEventStorage создает новый экземпляр EventStorage
func NewEventStorage(db *sqlx.DB, logger *slog.Logger) *EventStorage {
	return &EventStorage{db: db, logger: logger}
}

// SaveEvent сохраняет одно событие корзины в журнал
func (s *EventStorage) SaveEvent(ctx context.Context, event *domain.CartEvent) error {
	start := time.Now()

	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	_, err := s.db.NamedExecContext(ctx, `
        INSERT INTO cart_events (user_id, product_id, action, quantity, created_at)
        VALUES (:user_id, :product_id, :action, :quantity, :created_at)
    `, event)
	if err != nil {
		s.logger.Error("failed to insert cart event", "error", err)
		return fmt.Errorf("ошибка при записи события корзины: %w", err)
	}

	s.logger.Info("cart event saved",
		"user_id", event.UserID,
		"action", event.Action,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}
