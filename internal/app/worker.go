package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/ShopCart/internal/core/ports"
	"github.com/GoArmGo/ShopCart/internal/domain"
	"github.com/GoArmGo/ShopCart/internal/messaging/payloads"
	"github.com/google/uuid"
)

// runWorker запускает потребителя RabbitMQ и пишет события корзины
// в журнал активности cart_events
func runWorker(
	ctx context.Context,
	logger *slog.Logger,
	consumer ports.CartEventConsumer,
	eventStorage ports.CartEventStorage,
) error {
	logger.Info("worker started, waiting for cart events")

	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()

	// Обработчик события: парсим payload и сохраняем запись журнала
	messageHandler := func(ctx context.Context, payload payloads.CartEventPayload) error {
		userID, err := uuid.Parse(payload.UserID)
		if err != nil {
			// битый user id не лечится повтором — пишем в лог и пропускаем
			logger.Error("invalid user_id in cart event, skipping", "user_id", payload.UserID, "error", err)
			return nil
		}

		event := &domain.CartEvent{
			UserID:    userID,
			ProductID: payload.ProductID,
			Action:    payload.Action,
			Quantity:  payload.Quantity,
		}
		if err := eventStorage.SaveEvent(ctx, event); err != nil {
			return fmt.Errorf("ошибка записи события корзины: %w", err)
		}

		logger.Info("cart event processed", "user_id", payload.UserID, "action", payload.Action)
		return nil
	}

	if err := consumer.StartConsumingCartEvents(workerCtx, messageHandler); err != nil {
		return fmt.Errorf("ошибка при запуске потребителя RabbitMQ: %w", err)
	}

	// Graceful Shutdown для воркера
	<-ctx.Done()
	logger.Info("shutdown signal received, stopping worker")

	cancelWorker()

	time.Sleep(2 * time.Second) // небольшая задержка, чтобы логи успели выйти
	logger.Info("worker stopped")

	return nil
}
