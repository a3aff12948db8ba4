// internal/adapter/catalog/client.go
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/GoArmGo/ShopCart/internal/config"
	"github.com/GoArmGo/ShopCart/internal/domain"
)

// APIClient представляет клиент для взаимодействия с внешним каталогом товаров
// (dummyjson). Это чистый pass-through: без кэша, ретраев и своих преобразований.
type APIClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewAPIClient создает новый экземпляр APIClient.
func NewAPIClient(cfg *config.Config) *APIClient {
	return &APIClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    cfg.CatalogBaseURL,
	}
}

// ListProducts получает список товаров из внешнего каталога.
// Любой сбой апстрима схлопывается в domain.ErrUpstreamUnavailable.
func (c *APIClient) ListProducts(ctx context.Context, limit int) ([]domain.ProductSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	endpoint := fmt.Sprintf("%s/products?limit=%s", c.baseURL, strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания HTTP-запроса к каталогу: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: каталог вернул статус %d", domain.ErrUpstreamUnavailable, resp.StatusCode)
	}

	var listResp ProductListResponse
	if err := json.NewDecoder(resp.Body).Decode(&listResp); err != nil {
		return nil, fmt.Errorf("%w: ошибка декодирования ответа каталога: %v", domain.ErrUpstreamUnavailable, err)
	}

	products := make([]domain.ProductSummary, 0, len(listResp.Products))
	for _, p := range listResp.Products {
		products = append(products, mapProductToDomain(&p))
	}
	return products, nil
}

// GetProduct получает один товар по его внешнему идентификатору.
// 404 апстрима транслируется в domain.ErrNotFound.
func (c *APIClient) GetProduct(ctx context.Context, id int64) (*domain.ProductSummary, error) {
	endpoint := fmt.Sprintf("%s/products/%d", c.baseURL, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания HTTP-запроса к каталогу: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: каталог вернул статус %d", domain.ErrUpstreamUnavailable, resp.StatusCode)
	}

	var productResp ProductResponse
	if err := json.NewDecoder(resp.Body).Decode(&productResp); err != nil {
		return nil, fmt.Errorf("%w: ошибка декодирования ответа каталога: %v", domain.ErrUpstreamUnavailable, err)
	}

	product := mapProductToDomain(&productResp)
	return &product, nil
}

// mapProductToDomain преобразует ProductResponse в domain.ProductSummary
func mapProductToDomain(p *ProductResponse) domain.ProductSummary {
	return domain.ProductSummary{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Thumbnail:   p.Thumbnail,
		Images:      p.Images,
	}
}
