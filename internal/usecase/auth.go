package usecase

import (
	"context"

	"github.com/GoArmGo/ShopCart/internal/domain"
)

// AuthUseCase определяет интерфейс бизнес-логики регистрации и входа.
// Токен выпускается сразу при регистрации, как и при входе.
type AuthUseCase interface {
	// Register создает пользователя и выпускает для него токен.
	// Возвращает domain.ErrEmailAlreadyExists, если email уже занят.
	Register(ctx context.Context, email, password, name string) (*domain.User, string, error)

	// Login проверяет учетные данные и выпускает токен.
	// Неизвестный email и неверный пароль дают одну и ту же ошибку
	// domain.ErrInvalidCredentials — наружу не видно, какая проверка упала.
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
}

// CatalogFetcher определяет интерфейс для получения товаров из внешнего каталога.
// Реализация — adapter/catalog, чистый pass-through без своего состояния.
type CatalogFetcher interface {
	ListProducts(ctx context.Context, limit int) ([]domain.ProductSummary, error)
	GetProduct(ctx context.Context, id int64) (*domain.ProductSummary, error)
}
