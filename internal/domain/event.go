package domain

import (
	"time"

	"github.com/google/uuid"
)

// Действия над корзиной, которые публикуются в очередь событий.
const (
	CartActionAdd    = "add"
	CartActionUpdate = "update"
	CartActionRemove = "remove"
)

// CartEvent представляет запись журнала активности корзины,
// соответствует таблице cart_events в бд. Заполняется воркером.
type CartEvent struct {
	ID        int64     `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	ProductID int64     `json:"product_id" db:"product_id"`
	Action    string    `json:"action" db:"action"`
	Quantity  int       `json:"quantity" db:"quantity"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
