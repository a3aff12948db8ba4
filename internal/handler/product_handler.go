package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/GoArmGo/ShopCart/internal/domain"
	"github.com/GoArmGo/ShopCart/internal/usecase"
	"github.com/go-chi/chi/v5"
)

// ProductHandler — обработчик HTTP-запросов каталога товаров.
// Чистый прокси над внешним API: никакого своего состояния.
type ProductHandler struct {
	catalog usecase.CatalogFetcher
	logger  *slog.Logger
}

// NewProductHandler создаёт новый экземпляр ProductHandler.
func NewProductHandler(catalog usecase.CatalogFetcher, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{catalog: catalog, logger: logger}
}

// ListProducts — возвращает список товаров из внешнего каталога.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = 20
	}

	products, err := h.catalog.ListProducts(r.Context(), limit)
	if err != nil {
		h.logger.Error("failed to fetch products", "error", err)
		respondWithError(w, http.StatusBadGateway, "Error fetching products from external api", h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"count":    len(products),
		"products": products,
	}, h.logger)
}

// GetProduct — возвращает один товар по id.
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Product not found", h.logger)
		return
	}

	product, err := h.catalog.GetProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Product not found", h.logger)
			return
		}
		h.logger.Error("failed to fetch product", "product_id", id, "error", err)
		respondWithError(w, http.StatusBadGateway, "Error fetching product", h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"product": product,
	}, h.logger)
}
