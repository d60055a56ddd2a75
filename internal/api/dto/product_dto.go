package dto

// CreateProductRequest payload for new products.
type CreateProductRequest struct {
	RestaurantID string   `json:"restaurant_id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Price        float64  `json:"price"`
	Categories   []string `json:"categories"`
}

// UpdateProductRequest payload for product updates; absent fields stay as-is.
type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Categories  []string `json:"categories"`
}
