package dto

// CreateOrderRequest payload for new orders. Products maps product id to
// quantity.
type CreateOrderRequest struct {
	RestaurantID string         `json:"restaurant_id"`
	Products     map[string]int `json:"products"`
}

// UpdateOrderRequest payload for order updates; absent fields stay as-is.
type UpdateOrderRequest struct {
	Products map[string]int `json:"products"`
	Status   *string        `json:"status"`
}
