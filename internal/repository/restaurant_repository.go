package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/spec-kit/food-order-service/internal/domain"
)

// RestaurantFilter narrows restaurant listings.
type RestaurantFilter struct {
	Name     string
	Category string
}

// RestaurantRepository defines persistence access for restaurants.
type RestaurantRepository interface {
	Create(ctx context.Context, restaurant *domain.Restaurant) error
	Update(ctx context.Context, restaurant *domain.Restaurant) (*domain.Restaurant, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Restaurant, error)
	List(ctx context.Context, filter RestaurantFilter) ([]domain.Restaurant, error)
	IncrementPopularity(ctx context.Context, id primitive.ObjectID) (*domain.Restaurant, error)
	SoftDelete(ctx context.Context, id primitive.ObjectID) (*domain.Restaurant, error)
}

type restaurantRepository struct {
	collection *mongo.Collection
}

// NewRestaurantRepository returns a Mongo-backed implementation.
func NewRestaurantRepository(collection *mongo.Collection) RestaurantRepository {
	return &restaurantRepository{collection: collection}
}

func (r *restaurantRepository) Create(ctx context.Context, restaurant *domain.Restaurant) error {
	now := time.Now()
	restaurant.CreatedAt = now
	restaurant.UpdatedAt = now
	restaurant.DeletedAt = nil

	result, err := r.collection.InsertOne(ctx, restaurant)
	if err != nil {
		return err
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		restaurant.ID = id
	}
	return nil
}

func (r *restaurantRepository) Update(ctx context.Context, restaurant *domain.Restaurant) (*domain.Restaurant, error) {
	update := bson.M{"$set": bson.M{
		"name":       restaurant.Name,
		"address":    restaurant.Address,
		"category":   restaurant.Category,
		"popularity": restaurant.Popularity,
		"updatedAt":  time.Now(),
	}}

	var updated domain.Restaurant
	err := r.collection.FindOneAndUpdate(ctx, liveByID(restaurant.ID), update, returnUpdated()).Decode(&updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *restaurantRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Restaurant, error) {
	var restaurant domain.Restaurant
	if err := r.collection.FindOne(ctx, liveByID(id)).Decode(&restaurant); err != nil {
		return nil, err
	}
	return &restaurant, nil
}

// List returns live restaurants matching the filter, most popular first.
// Name filtering is a case-insensitive substring match.
func (r *restaurantRepository) List(ctx context.Context, filter RestaurantFilter) ([]domain.Restaurant, error) {
	criteria := bson.M{}
	if filter.Name != "" {
		criteria["name"] = bson.M{"$regex": filter.Name, "$options": "i"}
	}
	if filter.Category != "" {
		criteria["category"] = filter.Category
	}

	cursor, err := r.collection.Find(ctx, live(criteria),
		options.Find().SetSort(bson.D{{Key: "popularity", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var restaurants []domain.Restaurant
	if err := cursor.All(ctx, &restaurants); err != nil {
		return nil, err
	}
	return restaurants, nil
}

func (r *restaurantRepository) IncrementPopularity(ctx context.Context, id primitive.ObjectID) (*domain.Restaurant, error) {
	update := bson.M{
		"$inc": bson.M{"popularity": 1},
		"$set": bson.M{"updatedAt": time.Now()},
	}

	var updated domain.Restaurant
	err := r.collection.FindOneAndUpdate(ctx, liveByID(id), update, returnUpdated()).Decode(&updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *restaurantRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) (*domain.Restaurant, error) {
	var deleted domain.Restaurant
	err := r.collection.FindOneAndUpdate(ctx, liveByID(id), tombstone(time.Now()), returnUpdated()).Decode(&deleted)
	if err != nil {
		return nil, err
	}
	return &deleted, nil
}
