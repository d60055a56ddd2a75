package dto

// CreateRestaurantRequest payload for new restaurants.
type CreateRestaurantRequest struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	Category string `json:"category"`
}

// UpdateRestaurantRequest payload for restaurant updates; absent fields stay
// as-is.
type UpdateRestaurantRequest struct {
	Name       *string `json:"name"`
	Address    *string `json:"address"`
	Category   *string `json:"category"`
	Popularity *int64  `json:"popularity"`
}
