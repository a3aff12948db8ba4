package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/GoArmGo/ShopCart/internal/core/ports"
	"github.com/GoArmGo/ShopCart/internal/domain"
	"github.com/google/uuid"
)

// cartUseCase implements CartUseCase
type cartUseCase struct {
	cartStorage ports.CartStorage
	logger      *slog.Logger
}

// NewCartUseCase создает новый экземпляр CartUseCase
func NewCartUseCase(cartStorage ports.CartStorage, logger *slog.Logger) CartUseCase {
	return &cartUseCase{
		cartStorage: cartStorage,
		logger:      logger,
	}
}

// roundTo2 округляет сумму до 2 знаков после запятой
func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}

// List возвращает позиции корзины пользователя и суммарную стоимость
func (uc *cartUseCase) List(ctx context.Context, userID uuid.UUID) ([]domain.CartLine, float64, error) {
	lines, err := uc.cartStorage.ListByUser(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("usecase: ошибка получения корзины: %w", err)
	}

	var total float64
	for _, line := range lines {
		total += line.Price * float64(line.Quantity)
	}
	return lines, roundTo2(total), nil
}

// validateAddInput проверяет входные данные добавления до любых побочных эффектов
func validateAddInput(input AddLineInput) error {
	if input.ProductID <= 0 {
		return fmt.Errorf("%w: productId is required", domain.ErrValidation)
	}
	if strings.TrimSpace(input.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if input.Price < 0 {
		return fmt.Errorf("%w: price must be a non-negative number", domain.ErrValidation)
	}
	if strings.TrimSpace(input.Image) == "" {
		return fmt.Errorf("%w: image is required", domain.ErrValidation)
	}
	if input.Quantity < 1 {
		return fmt.Errorf("%w: quantity must be a positive number", domain.ErrValidation)
	}
	return nil
}

// Add добавляет товар в корзину через атомарный upsert хранилища.
// Валидация выполняется до записи: при ошибке никаких частичных эффектов.
func (uc *cartUseCase) Add(ctx context.Context, userID uuid.UUID, input AddLineInput) (*domain.CartLine, bool, error) {
	if err := validateAddInput(input); err != nil {
		return nil, false, err
	}

	line := &domain.CartLine{
		UserID:    userID,
		ProductID: input.ProductID,
		Title:     input.Title,
		Price:     input.Price,
		Image:     input.Image,
		Quantity:  input.Quantity,
	}

	created, err := uc.cartStorage.AddOrIncrement(ctx, line)
	if err != nil {
		return nil, false, fmt.Errorf("usecase: ошибка добавления в корзину: %w", err)
	}

	uc.logger.Info("cart line upserted",
		"user_id", userID,
		"product_id", input.ProductID,
		"created", created,
		"quantity", line.Quantity,
	)
	return line, created, nil
}

// Update выставляет точное значение quantity позиции
func (uc *cartUseCase) Update(ctx context.Context, userID, lineID uuid.UUID, quantity int) (*domain.CartLine, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", domain.ErrValidation)
	}

	line, err := uc.cartStorage.UpdateQuantity(ctx, userID, lineID, quantity)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("usecase: ошибка обновления позиции: %w", err)
	}

	uc.logger.Info("cart line updated", "user_id", userID, "line_id", lineID, "quantity", quantity)
	return line, nil
}

// Remove удаляет позицию из корзины
func (uc *cartUseCase) Remove(ctx context.Context, userID, lineID uuid.UUID) error {
	if err := uc.cartStorage.Delete(ctx, userID, lineID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("usecase: ошибка удаления позиции: %w", err)
	}

	uc.logger.Info("cart line removed", "user_id", userID, "line_id", lineID)
	return nil
}
