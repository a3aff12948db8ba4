package ports

import (
	"context"

	"github.com/GoArmGo/ShopCart/internal/domain"
	"github.com/google/uuid"
)

// UserStorage определяет методы для взаимодействия с хранилищем пользователей
type UserStorage interface {
	// CreateUser сохраняет нового пользователя.
	// Возвращает domain.ErrEmailAlreadyExists при нарушении уникальности email.
	CreateUser(ctx context.Context, user *domain.User) error

	// GetUserByEmail возвращает пользователя по email (email уже нормализован).
	// Возвращает domain.ErrNotFound, если такого пользователя нет.
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// CartStorage определяет методы для взаимодействия с хранилищем корзины
type CartStorage interface {
	// ListByUser возвращает все позиции корзины пользователя
	// в порядке добавления (created_at ASC).
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.CartLine, error)

	// AddOrIncrement атомарно создает позицию или увеличивает quantity
	// существующей позиции (user_id, product_id). Инкремент выполняется
	// одним запросом на стороне БД, поэтому гонка конкурентных добавлений
	// не может породить вторую строку или потерять обновление.
	// created == true, если была создана новая строка.
	AddOrIncrement(ctx context.Context, line *domain.CartLine) (created bool, err error)

	// UpdateQuantity выставляет точное значение quantity позиции,
	// фильтруя одновременно по id и user_id (владение проверяется фильтром,
	// а не отдельной выборкой). Возвращает domain.ErrNotFound, если строка
	// не найдена или принадлежит другому пользователю.
	UpdateQuantity(ctx context.Context, userID, lineID uuid.UUID, quantity int) (*domain.CartLine, error)

	// Delete удаляет позицию по (id, user_id) с той же семантикой владения.
	Delete(ctx context.Context, userID, lineID uuid.UUID) error
}

// CartEventStorage определяет методы для журнала активности корзины
type CartEventStorage interface {
	SaveEvent(ctx context.Context, event *domain.CartEvent) error
}
