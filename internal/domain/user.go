package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRole represents the account type chosen at registration.
type UserRole string

const (
	// RoleAdmin is the restaurant-admin role; it requires a second factor at login.
	RoleAdmin    UserRole = "admin"
	RoleDelivery UserRole = "delivery"
	RoleClient   UserRole = "client"
)

// ValidRole reports whether the given role is a known account type.
func ValidRole(role UserRole) bool {
	switch role {
	case RoleAdmin, RoleDelivery, RoleClient:
		return true
	}
	return false
}

// User is the domain model for registered identities. Users are soft-deleted,
// never removed: a non-nil DeletedAt hides the record from all reads.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	Phone        string             `bson:"phone" json:"phone"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	Role         UserRole           `bson:"role" json:"role"`
	CreatedAt    time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updated_at"`
	DeletedAt    *time.Time         `bson:"deletedAt" json:"deleted_at,omitempty"`
}
