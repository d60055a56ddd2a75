package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatus enumerates order lifecycle states, in progression order.
type OrderStatus string

const (
	OrderStatusCreated   OrderStatus = "Created"
	OrderStatusReceived  OrderStatus = "Received"
	OrderStatusSent      OrderStatus = "Sent"
	OrderStatusDelivered OrderStatus = "Delivered"
)

// statusRank maps each status to its position in the lifecycle.
var statusRank = map[OrderStatus]int{
	OrderStatusCreated:   0,
	OrderStatusReceived:  1,
	OrderStatusSent:      2,
	OrderStatusDelivered: 3,
}

// ValidOrderStatus reports whether the status is a known value.
func ValidOrderStatus(s OrderStatus) bool {
	_, ok := statusRank[s]
	return ok
}

// CanTransition reports whether an order may move from one status to another.
// Statuses only advance; an order never moves backwards.
func CanTransition(from, to OrderStatus) bool {
	fromRank, ok := statusRank[from]
	if !ok {
		return false
	}
	toRank, ok := statusRank[to]
	if !ok {
		return false
	}
	return toRank >= fromRank
}

// Order records a purchase by a user against a restaurant. Ownership is
// direct: the creating user controls mutation.
type Order struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID `bson:"userId" json:"user_id"`
	RestaurantID primitive.ObjectID `bson:"restaurantId" json:"restaurant_id"`
	Products     map[string]int     `bson:"products" json:"products"`
	Total        float64            `bson:"total" json:"total"`
	Status       OrderStatus        `bson:"status" json:"status"`
	CreatedAt    time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updated_at"`
	DeletedAt    *time.Time         `bson:"deletedAt" json:"deleted_at,omitempty"`
	DeliveredAt  *time.Time         `bson:"deliveredAt" json:"delivered_at,omitempty"`
}

// Frozen reports whether the order may no longer be mutated. Orders freeze
// once handed to delivery.
func (o *Order) Frozen() bool {
	return o.Status == OrderStatusSent || o.Status == OrderStatusDelivered
}
