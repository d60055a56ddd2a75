package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/spec-kit/food-order-service/internal/auth"
	"github.com/spec-kit/food-order-service/internal/domain"
	"github.com/spec-kit/food-order-service/internal/repository"
	util "github.com/spec-kit/food-order-service/pkg/util"
)

// RestaurantService handles restaurant lifecycle. Reads are open to any
// authenticated caller; mutations are owner-scoped.
type RestaurantService struct {
	restaurants repository.RestaurantRepository
	engine      *auth.Engine
	leaderboard *PopularityLeaderboard
}

// NewRestaurantService builds the service.
func NewRestaurantService(restaurants repository.RestaurantRepository, engine *auth.Engine, leaderboard *PopularityLeaderboard) *RestaurantService {
	return &RestaurantService{restaurants: restaurants, engine: engine, leaderboard: leaderboard}
}

// CreateRestaurantInput carries new-restaurant fields.
type CreateRestaurantInput struct {
	Name     string
	Address  string
	Category domain.RestaurantCategory
}

// UpdateRestaurantInput carries optional fields; nil means unchanged.
type UpdateRestaurantInput struct {
	Name       *string
	Address    *string
	Category   *domain.RestaurantCategory
	Popularity *int64
}

func (in UpdateRestaurantInput) empty() bool {
	return in.Name == nil && in.Address == nil && in.Category == nil && in.Popularity == nil
}

// Create registers a restaurant owned by the caller.
func (s *RestaurantService) Create(ctx context.Context, callerID primitive.ObjectID, input CreateRestaurantInput) (*domain.Restaurant, error) {
	if callerID.IsZero() {
		return nil, util.NewNotAuthenticated("not authenticated")
	}
	if input.Name == "" || input.Address == "" {
		return nil, util.NewValidationError("name and address are required", nil)
	}
	if !domain.ValidRestaurantCategory(input.Category) {
		return nil, util.NewValidationError("unknown category", map[string]any{"category": string(input.Category)})
	}

	restaurant := &domain.Restaurant{
		OwnerID:  callerID,
		Name:     input.Name,
		Address:  input.Address,
		Category: input.Category,
	}
	if err := s.restaurants.Create(ctx, restaurant); err != nil {
		return nil, util.MapError(err)
	}
	return restaurant, nil
}

// Get returns a restaurant by id.
func (s *RestaurantService) Get(ctx context.Context, id primitive.ObjectID) (*domain.Restaurant, error) {
	restaurant, err := s.restaurants.GetByID(ctx, id)
	if err != nil {
		return nil, util.MapError(err)
	}
	return restaurant, nil
}

// List returns restaurants matching the filter, most popular first.
func (s *RestaurantService) List(ctx context.Context, filter repository.RestaurantFilter) ([]domain.Restaurant, error) {
	restaurants, err := s.restaurants.List(ctx, filter)
	if err != nil {
		return nil, util.MapError(err)
	}
	return restaurants, nil
}

// Trending returns the top-n restaurants from the Redis leaderboard, falling
// back to the popularity sort in the document store when the leaderboard is
// unavailable or empty.
func (s *RestaurantService) Trending(ctx context.Context, n int) ([]domain.Restaurant, error) {
	if n <= 0 {
		n = 10
	}

	ids, err := s.leaderboard.TopIDs(ctx, n)
	if err != nil || len(ids) == 0 {
		restaurants, err := s.restaurants.List(ctx, repository.RestaurantFilter{})
		if err != nil {
			return nil, util.MapError(err)
		}
		if len(restaurants) > n {
			restaurants = restaurants[:n]
		}
		return restaurants, nil
	}

	restaurants := make([]domain.Restaurant, 0, len(ids))
	for _, raw := range ids {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			continue
		}
		restaurant, err := s.restaurants.GetByID(ctx, id)
		if err != nil {
			// deleted since it was scored; skip
			continue
		}
		restaurants = append(restaurants, *restaurant)
	}
	return restaurants, nil
}

// Update modifies a restaurant the caller owns.
func (s *RestaurantService) Update(ctx context.Context, callerID, id primitive.ObjectID, input UpdateRestaurantInput) (*domain.Restaurant, error) {
	decision, err := s.engine.AuthorizeOwned(ctx, callerID, auth.ResourceRestaurant, id)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, decision.Err()
	}
	if input.empty() {
		return nil, util.NewValidationError("no fields to update", nil)
	}

	restaurant, err := s.restaurants.GetByID(ctx, id)
	if err != nil {
		return nil, util.MapError(err)
	}

	if input.Name != nil {
		restaurant.Name = *input.Name
	}
	if input.Address != nil {
		restaurant.Address = *input.Address
	}
	if input.Category != nil {
		if !domain.ValidRestaurantCategory(*input.Category) {
			return nil, util.NewValidationError("unknown category", map[string]any{"category": string(*input.Category)})
		}
		restaurant.Category = *input.Category
	}
	if input.Popularity != nil {
		if *input.Popularity < 0 {
			return nil, util.NewValidationError("popularity must be non-negative", nil)
		}
		restaurant.Popularity = *input.Popularity
	}

	updated, err := s.restaurants.Update(ctx, restaurant)
	if err != nil {
		return nil, util.MapError(err)
	}
	return updated, nil
}

// Delete soft-deletes a restaurant the caller owns.
func (s *RestaurantService) Delete(ctx context.Context, callerID, id primitive.ObjectID) (*domain.Restaurant, error) {
	decision, err := s.engine.AuthorizeOwned(ctx, callerID, auth.ResourceRestaurant, id)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, decision.Err()
	}

	deleted, err := s.restaurants.SoftDelete(ctx, id)
	if err != nil {
		return nil, util.MapError(err)
	}
	return deleted, nil
}
