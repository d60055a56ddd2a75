package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spec-kit/food-order-service/internal/domain"
)

// UserRepository defines persistence access for identities. All finders honor
// the soft-delete filter.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	SoftDelete(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

type userRepository struct {
	collection *mongo.Collection
}

// NewUserRepository returns a Mongo-backed implementation.
func NewUserRepository(collection *mongo.Collection) UserRepository {
	return &userRepository{collection: collection}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	user.DeletedAt = nil

	result, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		return err
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		user.ID = id
	}
	return nil
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	update := bson.M{"$set": bson.M{
		"name":         user.Name,
		"email":        user.Email,
		"phone":        user.Phone,
		"passwordHash": user.PasswordHash,
		"updatedAt":    time.Now(),
	}}

	var updated domain.User
	err := r.collection.FindOneAndUpdate(ctx, liveByID(user.ID), update, returnUpdated()).Decode(&updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *userRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	var user domain.User
	if err := r.collection.FindOne(ctx, liveByID(id)).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	if err := r.collection.FindOne(ctx, live(bson.M{"email": email})).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	var deleted domain.User
	err := r.collection.FindOneAndUpdate(ctx, liveByID(id), tombstone(time.Now()), returnUpdated()).Decode(&deleted)
	if err != nil {
		return nil, err
	}
	return &deleted, nil
}
