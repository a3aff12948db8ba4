package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/ShopCart/internal/config"
	"github.com/GoArmGo/ShopCart/internal/messaging/payloads"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Client представляет собой клиент RabbitMQ
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   amqp.Queue
	logger  *slog.Logger
}

// NewClient создает и инициализирует новый клиент RabbitMQ
func NewClient(cfg *config.Config, logger *slog.Logger) (*Client, error) {
	client := &Client{logger: logger}

	conn, err := amqp.Dial(cfg.RabbitMQ.RabbitMQURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	client.conn = conn

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}
	client.channel = ch

	// Объявление очереди — идемпотентная операция: очередь будет создана,
	// если ее нет, и ничего не произойдет, если она уже существует.
	q, err := ch.QueueDeclare(
		cfg.RabbitMQ.RabbitMQQueueName, // name
		true,                           // durable - очередь переживает перезапуск RabbitMQ
		false,                          // delete when unused
		false,                          // exclusive
		false,                          // no-wait
		nil,                            // arguments
	)
	if err != nil {
		return nil, fmt.Errorf("failed to declare a queue: %w", err)
	}
	client.queue = q

	logger.Info("RabbitMQ queue declared", "queue", q.Name, "messages", q.Messages)
	return client, nil
}

// Close закрывает соединение и канал RabbitMQ
func (c *Client) Close() error {
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			c.logger.Error("error closing RabbitMQ channel", "error", err)
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			c.logger.Error("error closing RabbitMQ connection", "error", err)
			return err
		}
	}
	return nil
}

// PublishCartEvent публикует событие корзины в очередь RabbitMQ.
// Этот метод соответствует интерфейсу ports.CartEventPublisher.
func (c *Client) PublishCartEvent(ctx context.Context, payload payloads.CartEventPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload to JSON: %w", err)
	}

	publishCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = c.channel.PublishWithContext(
		publishCtx,
		"",           // exchange
		c.queue.Name, // routing key
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish a message: %w", err)
	}

	c.logger.Debug("cart event published", "queue", c.queue.Name, "action", payload.Action)
	return nil
}

// StartConsumingCartEvents начинает потребление событий из очереди.
// Этот метод реализует интерфейс ports.CartEventConsumer.
func (c *Client) StartConsumingCartEvents(ctx context.Context, handler func(context.Context, payloads.CartEventPayload) error) error {
	msgs, err := c.channel.Consume(
		c.queue.Name, // queue
		"",           // consumer
		false,        // auto-ack (подтверждаем вручную)
		false,        // exclusive
		false,        // no-local
		false,        // no-wait
		nil,          // args
	)
	if err != nil {
		return fmt.Errorf("failed to register a consumer: %w", err)
	}

	c.logger.Info("consumer registered, waiting for messages", "queue", c.queue.Name)

	go func() {
		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					c.logger.Info("RabbitMQ channel closed, stopping consumer")
					return
				}

				var payload payloads.CartEventPayload
				if err := json.Unmarshal(msg.Body, &payload); err != nil {
					c.logger.Error("error unmarshalling message", "error", err, "body", string(msg.Body))
					// Плохой формат сообщения: отклоняем без requeue,
					// чтобы не застрять в бесконечном цикле ошибок.
					if err := msg.Nack(false, false); err != nil {
						c.logger.Error("error NACKing message after unmarshal failure", "error", err)
					}
					continue
				}

				if err := handler(ctx, payload); err != nil {
					c.logger.Error("error processing message", "error", err, "payload", payload)
					// Обработка не удалась — возвращаем сообщение в очередь
					if err := msg.Nack(false, true); err != nil {
						c.logger.Error("error NACKing message after processing failure", "error", err)
					}
				} else {
					if err := msg.Ack(false); err != nil {
						c.logger.Error("error ACKing message", "error", err)
					}
				}
			case <-ctx.Done():
				c.logger.Info("context cancelled, stopping RabbitMQ consumer")
				return
			}
		}
	}()

	return nil
}
