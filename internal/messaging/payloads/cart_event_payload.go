package payloads

// CartEventPayload представляет событие изменения корзины,
// которое публикуется в RabbitMQ после успешной мутации.
type CartEventPayload struct {
	UserID    string `json:"user_id"`
	ProductID int64  `json:"product_id"`
	Action    string `json:"action"` // add | update | remove
	Quantity  int    `json:"quantity"`
}
