package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spec-kit/food-order-service/internal/domain"
)

// TwoFactorRepository stores TOTP secrets for admin users, keyed by the
// derived owner key rather than the raw user id.
type TwoFactorRepository interface {
	Create(ctx context.Context, secret *domain.TwoFactorSecret) error
	GetByOwnerKey(ctx context.Context, ownerKey string) (*domain.TwoFactorSecret, error)
}

type twoFactorRepository struct {
	collection *mongo.Collection
}

// NewTwoFactorRepository returns a Mongo-backed implementation.
func NewTwoFactorRepository(collection *mongo.Collection) TwoFactorRepository {
	return &twoFactorRepository{collection: collection}
}

func (r *twoFactorRepository) Create(ctx context.Context, secret *domain.TwoFactorSecret) error {
	result, err := r.collection.InsertOne(ctx, secret)
	if err != nil {
		return err
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		secret.ID = id
	}
	return nil
}

func (r *twoFactorRepository) GetByOwnerKey(ctx context.Context, ownerKey string) (*domain.TwoFactorSecret, error) {
	var secret domain.TwoFactorSecret
	if err := r.collection.FindOne(ctx, bson.M{"ownerKey": ownerKey}).Decode(&secret); err != nil {
		return nil, err
	}
	return &secret, nil
}
