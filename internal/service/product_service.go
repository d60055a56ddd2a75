package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/spec-kit/food-order-service/internal/auth"
	"github.com/spec-kit/food-order-service/internal/domain"
	"github.com/spec-kit/food-order-service/internal/repository"
	util "github.com/spec-kit/food-order-service/pkg/util"
)

// ProductService handles product lifecycle. Mutation rights flow through the
// owning restaurant.
type ProductService struct {
	products repository.ProductRepository
	engine   *auth.Engine
}

// NewProductService builds the service.
func NewProductService(products repository.ProductRepository, engine *auth.Engine) *ProductService {
	return &ProductService{products: products, engine: engine}
}

// CreateProductInput carries new-product fields.
type CreateProductInput struct {
	RestaurantID primitive.ObjectID
	Name         string
	Description  string
	Price        float64
	Categories   []string
}

// UpdateProductInput carries optional fields; nil means unchanged.
type UpdateProductInput struct {
	Name        *string
	Description *string
	Price       *float64
	Categories  []string
}

func (in UpdateProductInput) empty() bool {
	return in.Name == nil && in.Description == nil && in.Price == nil && in.Categories == nil
}

func validateDescription(description string) error {
	if len(description) < domain.ProductDescriptionMinLen || len(description) > domain.ProductDescriptionMaxLen {
		return util.NewValidationError("description must be between 10 and 150 characters", nil)
	}
	return nil
}

// Create adds a product to a restaurant the caller owns. A missing or
// deleted restaurant reports as not-found before any ownership denial.
func (s *ProductService) Create(ctx context.Context, callerID primitive.ObjectID, input CreateProductInput) (*domain.Product, error) {
	decision, err := s.engine.AuthorizeOwned(ctx, callerID, auth.ResourceRestaurant, input.RestaurantID)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, decision.Err()
	}

	if input.Name == "" {
		return nil, util.NewValidationError("name is required", nil)
	}
	if err := validateDescription(input.Description); err != nil {
		return nil, err
	}
	if input.Price < 0 {
		return nil, util.NewValidationError("price must be non-negative", nil)
	}
	if len(input.Categories) == 0 {
		return nil, util.NewValidationError("at least one category is required", nil)
	}

	product := &domain.Product{
		RestaurantID: input.RestaurantID,
		Name:         input.Name,
		Description:  input.Description,
		Price:        input.Price,
		Categories:   input.Categories,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, util.MapError(err)
	}
	return product, nil
}

// Get returns a product by id.
func (s *ProductService) Get(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, util.MapError(err)
	}
	return product, nil
}

// List returns products matching the filter.
func (s *ProductService) List(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, error) {
	products, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, util.MapError(err)
	}
	return products, nil
}

// Update modifies a product whose restaurant the caller owns.
func (s *ProductService) Update(ctx context.Context, callerID, id primitive.ObjectID, input UpdateProductInput) (*domain.Product, error) {
	decision, err := s.engine.AuthorizeOwned(ctx, callerID, auth.ResourceProduct, id)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, decision.Err()
	}
	if input.empty() {
		return nil, util.NewValidationError("no fields to update", nil)
	}

	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, util.MapError(err)
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		if err := validateDescription(*input.Description); err != nil {
			return nil, err
		}
		product.Description = *input.Description
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, util.NewValidationError("price must be non-negative", nil)
		}
		product.Price = *input.Price
	}
	if input.Categories != nil {
		if len(input.Categories) == 0 {
			return nil, util.NewValidationError("at least one category is required", nil)
		}
		product.Categories = input.Categories
	}

	updated, err := s.products.Update(ctx, product)
	if err != nil {
		return nil, util.MapError(err)
	}
	return updated, nil
}

// Delete soft-deletes a product whose restaurant the caller owns.
func (s *ProductService) Delete(ctx context.Context, callerID, id primitive.ObjectID) (*domain.Product, error) {
	decision, err := s.engine.AuthorizeOwned(ctx, callerID, auth.ResourceProduct, id)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, decision.Err()
	}

	deleted, err := s.products.SoftDelete(ctx, id)
	if err != nil {
		return nil, util.MapError(err)
	}
	return deleted, nil
}
