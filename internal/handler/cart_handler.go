package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/GoArmGo/ShopCart/internal/core/ports"
	"github.com/GoArmGo/ShopCart/internal/domain"
	"github.com/GoArmGo/ShopCart/internal/messaging/payloads"
	"github.com/GoArmGo/ShopCart/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// CartHandler — обработчик HTTP-запросов для работы с корзиной.
// Все методы предполагают, что AuthMiddleware уже положила user id в контекст.
type CartHandler struct {
	cartUseCase usecase.CartUseCase
	publisher   ports.CartEventPublisher
	logger      *slog.Logger
}

// NewCartHandler создаёт новый экземпляр CartHandler.
func NewCartHandler(uc usecase.CartUseCase, publisher ports.CartEventPublisher, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		cartUseCase: uc,
		publisher:   publisher,
		logger:      logger,
	}
}

// addLineRequest — типизированный контракт тела запроса добавления товара.
// Имена полей — контракт API, повторяют исходный фронтенд (productId, price).
type addLineRequest struct {
	ProductID int64   `json:"productId"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
}

func (req *addLineRequest) Validate() string {
	if req.ProductID <= 0 {
		return "productId is required"
	}
	if strings.TrimSpace(req.Title) == "" {
		return "title is required"
	}
	if req.Price < 0 {
		return "price is required and must be a number"
	}
	if strings.TrimSpace(req.Image) == "" {
		return "image is required"
	}
	if req.Quantity < 0 {
		return "quantity must be a positive number"
	}
	return ""
}

type updateLineRequest struct {
	Quantity int `json:"quantity"`
}

// publishEvent отправляет событие корзины в очередь. Публикация best-effort:
// сбой брокера не должен ронять уже выполненную мутацию.
func (h *CartHandler) publishEvent(r *http.Request, userID uuid.UUID, productID int64, action string, quantity int) {
	payload := payloads.CartEventPayload{
		UserID:    userID.String(),
		ProductID: productID,
		Action:    action,
		Quantity:  quantity,
	}
	if err := h.publisher.PublishCartEvent(r.Context(), payload); err != nil {
		h.logger.Warn("failed to publish cart event", "action", action, "error", err)
	}
}

// GetCart — возвращает позиции корзины пользователя и суммарную стоимость.
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "No token, authorization denied", h.logger)
		return
	}

	lines, total, err := h.cartUseCase.List(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to fetch cart", "user_id", userID, "error", err)
		respondWithError(w, http.StatusInternalServerError, "Error fetching cart items", h.logger)
		return
	}

	if lines == nil {
		lines = []domain.CartLine{}
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"count":   len(lines),
		"total":   total,
		"items":   lines,
	}, h.logger)
}

// AddItem — добавляет товар в корзину или увеличивает количество,
// если товар там уже есть.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "No token, authorization denied", h.logger)
		return
	}

	var req addLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	if msg := req.Validate(); msg != "" {
		respondWithError(w, http.StatusBadRequest, msg, h.logger)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	line, created, err := h.cartUseCase.Add(r.Context(), userID, usecase.AddLineInput{
		ProductID: req.ProductID,
		Title:     req.Title,
		Price:     req.Price,
		Image:     req.Image,
		Quantity:  req.Quantity,
	})
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			respondWithError(w, http.StatusBadRequest, validationMessage(err), h.logger)
			return
		}
		h.logger.Error("failed to add cart item", "user_id", userID, "error", err)
		respondWithError(w, http.StatusInternalServerError, "Error adding item to cart", h.logger)
		return
	}

	h.publishEvent(r, userID, line.ProductID, domain.CartActionAdd, req.Quantity)

	status := http.StatusOK
	message := "Cart item quantity updated"
	if created {
		status = http.StatusCreated
		message = "Item added to cart"
	}
	respondWithJSON(w, status, map[string]interface{}{
		"success": true,
		"message": message,
		"item":    line,
	}, h.logger)
}

// UpdateItem — выставляет точное количество позиции корзины.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "No token, authorization denied", h.logger)
		return
	}

	var req updateLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	if req.Quantity < 1 {
		respondWithError(w, http.StatusBadRequest, "Quantity must be at least 1", h.logger)
		return
	}

	// невалидный id неотличим от несуществующего: та же семантика, что
	// у фильтра владения
	lineID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Cart item not found", h.logger)
		return
	}

	line, err := h.cartUseCase.Update(r.Context(), userID, lineID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			respondWithError(w, http.StatusNotFound, "Cart item not found", h.logger)
		case errors.Is(err, domain.ErrValidation):
			respondWithError(w, http.StatusBadRequest, validationMessage(err), h.logger)
		default:
			h.logger.Error("failed to update cart item", "line_id", lineID, "error", err)
			respondWithError(w, http.StatusInternalServerError, "Error updating cart item", h.logger)
		}
		return
	}

	h.publishEvent(r, userID, line.ProductID, domain.CartActionUpdate, req.Quantity)

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Cart item updated",
		"item":    line,
	}, h.logger)
}

// RemoveItem — удаляет позицию из корзины.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "No token, authorization denied", h.logger)
		return
	}

	lineID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Cart item not found", h.logger)
		return
	}

	if err := h.cartUseCase.Remove(r.Context(), userID, lineID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Cart item not found", h.logger)
			return
		}
		h.logger.Error("failed to remove cart item", "line_id", lineID, "error", err)
		respondWithError(w, http.StatusInternalServerError, "Error removing item from cart", h.logger)
		return
	}

	h.publishEvent(r, userID, 0, domain.CartActionRemove, 0)

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Item removed from cart",
	}, h.logger)
}
