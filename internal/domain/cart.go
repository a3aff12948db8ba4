package domain

import (
	"time"

	"github.com/google/uuid"
)

// CartLine представляет одну позицию в корзине пользователя,
// соответствует таблице cart_items в бд.
// На пару (user_id, product_id) в таблице есть составной уникальный индекс:
// повторное добавление того же товара увеличивает quantity, а не создает строку.
type CartLine struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	ProductID int64     `json:"product_id"`
	Title     string    `json:"title"`
	Price     float64   `json:"price"`
	Image     string    `json:"image"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (CartLine) TableName() string {
	return "cart_items"
}

// ProductSummary представляет карточку товара из внешнего каталога.
// Мы ничего не храним о товарах у себя — это pass-through модель.
type ProductSummary struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Thumbnail   string   `json:"thumbnail"`
	Images      []string `json:"images,omitempty"`
}
