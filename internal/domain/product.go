package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ProductDescriptionMinLen = 10
	ProductDescriptionMaxLen = 150
)

// Product belongs to a restaurant; mutation rights flow transitively through
// the restaurant's owner.
type Product struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RestaurantID primitive.ObjectID `bson:"restaurantId" json:"restaurant_id"`
	Name         string             `bson:"name" json:"name"`
	Description  string             `bson:"description" json:"description"`
	Price        float64            `bson:"price" json:"price"`
	Categories   []string           `bson:"categories" json:"categories"`
	CreatedAt    time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updated_at"`
	DeletedAt    *time.Time         `bson:"deletedAt" json:"deleted_at,omitempty"`
}
