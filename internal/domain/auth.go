package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TwoFactorSecret binds a TOTP secret to an admin user. The owner is stored
// as a derived key rather than the raw user id. Bearer tokens themselves are
// never persisted; they expire by time and are not revocable.
type TwoFactorSecret struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	OwnerKey string             `bson:"ownerKey" json:"-"`
	Secret   string             `bson:"secret" json:"-"`
}
