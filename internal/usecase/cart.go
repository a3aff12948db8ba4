package usecase

import (
	"context"

	"github.com/GoArmGo/ShopCart/internal/domain"
	"github.com/google/uuid"
)

// AddLineInput — входные данные операции добавления товара в корзину.
// UserID сюда не входит: он всегда берется из контекста запроса после
// прохождения авторизационной middleware, телу запроса не доверяем.
type AddLineInput struct {
	ProductID int64
	Title     string
	Price     float64
	Image     string
	Quantity  int
}

// CartUseCase определяет интерфейс бизнес-логики работы с корзиной.
// Все операции привязаны к userID авторизованного пользователя.
type CartUseCase interface {
	// List возвращает позиции корзины и суммарную стоимость,
	// округленную до 2 знаков.
	List(ctx context.Context, userID uuid.UUID) ([]domain.CartLine, float64, error)

	// Add добавляет товар в корзину. Повторное добавление того же товара
	// увеличивает quantity существующей позиции (накопление, не замена).
	// created == true, если позиция была создана, а не обновлена.
	Add(ctx context.Context, userID uuid.UUID, input AddLineInput) (*domain.CartLine, bool, error)

	// Update выставляет точное значение quantity (не инкремент).
	// Чужая или несуществующая позиция — domain.ErrNotFound.
	Update(ctx context.Context, userID, lineID uuid.UUID, quantity int) (*domain.CartLine, error)

	// Remove удаляет позицию с той же семантикой владения, что и Update.
	Remove(ctx context.Context, userID, lineID uuid.UUID) error
}
