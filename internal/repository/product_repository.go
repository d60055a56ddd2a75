package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spec-kit/food-order-service/internal/domain"
)

// ProductFilter narrows product listings.
type ProductFilter struct {
	Category     string
	RestaurantID *primitive.ObjectID
}

// ProductRepository defines persistence access for products.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]domain.Product, error)
	SoftDelete(ctx context.Context, id primitive.ObjectID) (*domain.Product, error)
}

type productRepository struct {
	collection *mongo.Collection
}

// NewProductRepository returns a Mongo-backed implementation.
func NewProductRepository(collection *mongo.Collection) ProductRepository {
	return &productRepository{collection: collection}
}

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now
	product.DeletedAt = nil

	result, err := r.collection.InsertOne(ctx, product)
	if err != nil {
		return err
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		product.ID = id
	}
	return nil
}

func (r *productRepository) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	update := bson.M{"$set": bson.M{
		"name":        product.Name,
		"description": product.Description,
		"price":       product.Price,
		"categories":  product.Categories,
		"updatedAt":   time.Now(),
	}}

	var updated domain.Product
	err := r.collection.FindOneAndUpdate(ctx, liveByID(product.ID), update, returnUpdated()).Decode(&updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *productRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	var product domain.Product
	if err := r.collection.FindOne(ctx, liveByID(id)).Decode(&product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) List(ctx context.Context, filter ProductFilter) ([]domain.Product, error) {
	criteria := bson.M{}
	if filter.Category != "" {
		criteria["categories"] = filter.Category
	}
	if filter.RestaurantID != nil {
		criteria["restaurantId"] = *filter.RestaurantID
	}

	cursor, err := r.collection.Find(ctx, live(criteria))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []domain.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	var deleted domain.Product
	err := r.collection.FindOneAndUpdate(ctx, liveByID(id), tombstone(time.Now()), returnUpdated()).Decode(&deleted)
	if err != nil {
		return nil, err
	}
	return &deleted, nil
}
