package catalog

// ProductResponse — карточка товара в формате dummyjson
type ProductResponse struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Thumbnail   string   `json:"thumbnail"`
	Images      []string `json:"images"`
}

// ProductListResponse — ответ dummyjson на запрос списка товаров
type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Total    int               `json:"total"`
	Skip     int               `json:"skip"`
	Limit    int               `json:"limit"`
}
