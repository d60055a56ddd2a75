package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RestaurantCategory enumerates supported restaurant types.
type RestaurantCategory string

const (
	RestaurantCategoryRegular RestaurantCategory = "Regular"
	RestaurantCategoryFast    RestaurantCategory = "Fast"
	RestaurantCategoryGourmet RestaurantCategory = "Gourmet"
)

// ValidRestaurantCategory reports whether the category is a known value.
func ValidRestaurantCategory(c RestaurantCategory) bool {
	switch c {
	case RestaurantCategoryRegular, RestaurantCategoryFast, RestaurantCategoryGourmet:
		return true
	}
	return false
}

// Restaurant is owned by exactly one user; only the owner may mutate it.
// Popularity counts orders placed against the restaurant.
type Restaurant struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID    primitive.ObjectID `bson:"ownerId" json:"owner_id"`
	Name       string             `bson:"name" json:"name"`
	Address    string             `bson:"address" json:"address"`
	Category   RestaurantCategory `bson:"category" json:"category"`
	Popularity int64              `bson:"popularity" json:"popularity"`
	CreatedAt  time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updated_at"`
	DeletedAt  *time.Time         `bson:"deletedAt" json:"deleted_at,omitempty"`
}
