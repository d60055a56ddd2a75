package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spec-kit/food-order-service/internal/domain"
)

// OrderFilter narrows order listings. The date range applies to CreatedAt and
// only takes effect when both bounds are set.
type OrderFilter struct {
	UserID       *primitive.ObjectID
	RestaurantID *primitive.ObjectID
	Status       string
	CreatedFrom  *time.Time
	CreatedTo    *time.Time
}

// OrderRepository defines persistence access for orders.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	Update(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]domain.Order, error)
	SoftDelete(ctx context.Context, id primitive.ObjectID) (*domain.Order, error)
}

type orderRepository struct {
	collection *mongo.Collection
}

// NewOrderRepository returns a Mongo-backed implementation.
func NewOrderRepository(collection *mongo.Collection) OrderRepository {
	return &orderRepository{collection: collection}
}

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now
	order.DeletedAt = nil

	result, err := r.collection.InsertOne(ctx, order)
	if err != nil {
		return err
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		order.ID = id
	}
	return nil
}

func (r *orderRepository) Update(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	set := bson.M{
		"products":  order.Products,
		"status":    order.Status,
		"updatedAt": time.Now(),
	}
	if order.DeliveredAt != nil {
		set["deliveredAt"] = order.DeliveredAt
	}

	var updated domain.Order
	err := r.collection.FindOneAndUpdate(ctx, liveByID(order.ID), bson.M{"$set": set}, returnUpdated()).Decode(&updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Order, error) {
	var order domain.Order
	if err := r.collection.FindOne(ctx, liveByID(id)).Decode(&order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) List(ctx context.Context, filter OrderFilter) ([]domain.Order, error) {
	criteria := bson.M{}
	if filter.UserID != nil {
		criteria["userId"] = *filter.UserID
	}
	if filter.RestaurantID != nil {
		criteria["restaurantId"] = *filter.RestaurantID
	}
	if filter.Status != "" {
		criteria["status"] = filter.Status
	}
	if filter.CreatedFrom != nil && filter.CreatedTo != nil {
		criteria["createdAt"] = bson.M{"$gte": *filter.CreatedFrom, "$lte": *filter.CreatedTo}
	}

	cursor, err := r.collection.Find(ctx, live(criteria))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []domain.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) (*domain.Order, error) {
	var deleted domain.Order
	err := r.collection.FindOneAndUpdate(ctx, liveByID(id), tombstone(time.Now()), returnUpdated()).Decode(&deleted)
	if err != nil {
		return nil, err
	}
	return &deleted, nil
}
