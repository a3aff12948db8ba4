package ports

import (
	"context"

	"github.com/GoArmGo/ShopCart/internal/messaging/payloads"
)

// CartEventPublisher определяет методы для публикации событий корзины
// Этот интерфейс будет использоваться обработчиком HTTP-запросов
type CartEventPublisher interface {
	PublishCartEvent(ctx context.Context, payload payloads.CartEventPayload) error
}

// CartEventConsumer определяет методы для потребления событий корзины
// будет использоваться воркером для получения событий из очереди
type CartEventConsumer interface {
	// StartConsumingCartEvents начинает прослушивание очереди событий корзины
	// принимает функцию-обработчик, которая будет вызываться для каждого события
	StartConsumingCartEvents(ctx context.Context, handler func(context.Context, payloads.CartEventPayload) error) error
}
