package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/spec-kit/food-order-service/internal/auth"
	"github.com/spec-kit/food-order-service/internal/domain"
	"github.com/spec-kit/food-order-service/internal/repository"
	util "github.com/spec-kit/food-order-service/pkg/util"
)

type restaurantFixture struct {
	svc         *RestaurantService
	restaurants *memRestaurantRepo
	owner       primitive.ObjectID
	stranger    primitive.ObjectID
}

func newRestaurantFixture(t *testing.T) *restaurantFixture {
	t.Helper()
	users := newMemUserRepo()
	restaurants := newMemRestaurantRepo()
	products := newMemProductRepo()
	orders := newMemOrderRepo()

	owner := seedUser(t, users, "Owner", "owner@example.com")
	stranger := seedUser(t, users, "Stranger", "stranger@example.com")

	engine := auth.NewEngine(auth.NewOwnerResolvers(users, restaurants, products, orders))
	leaderboard := NewPopularityLeaderboard(nil, zap.NewNop())
	return &restaurantFixture{
		svc:         NewRestaurantService(restaurants, engine, leaderboard),
		restaurants: restaurants,
		owner:       owner.ID,
		stranger:    stranger.ID,
	}
}

func TestRestaurantCreateSetsOwner(t *testing.T) {
	f := newRestaurantFixture(t)

	restaurant, err := f.svc.Create(context.Background(), f.owner, CreateRestaurantInput{
		Name: "Mama Rosa", Address: "1 Main St", Category: domain.RestaurantCategoryRegular,
	})
	require.NoError(t, err)
	assert.Equal(t, f.owner, restaurant.OwnerID)
	assert.EqualValues(t, 0, restaurant.Popularity)
}

func TestRestaurantCreateValidation(t *testing.T) {
	f := newRestaurantFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, f.owner, CreateRestaurantInput{Address: "1 Main St", Category: domain.RestaurantCategoryRegular})
	assert.Equal(t, util.CodeValidationFailed, domainCode(t, err))

	_, err = f.svc.Create(ctx, f.owner, CreateRestaurantInput{Name: "X", Address: "1 Main St", Category: "FineDining"})
	assert.Equal(t, util.CodeValidationFailed, domainCode(t, err))

	_, err = f.svc.Create(ctx, primitive.NilObjectID, CreateRestaurantInput{Name: "X", Address: "1 Main St", Category: domain.RestaurantCategoryRegular})
	assert.Equal(t, util.CodeNotAuthenticated, domainCode(t, err))
}

func TestRestaurantUpdateOwnerScoped(t *testing.T) {
	f := newRestaurantFixture(t)
	ctx := context.Background()

	restaurant, err := f.svc.Create(ctx, f.owner, CreateRestaurantInput{
		Name: "Mama Rosa", Address: "1 Main St", Category: domain.RestaurantCategoryRegular,
	})
	require.NoError(t, err)

	name := "Mama Rosa II"
	updated, err := f.svc.Update(ctx, f.owner, restaurant.ID, UpdateRestaurantInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Mama Rosa II", updated.Name)

	_, err = f.svc.Update(ctx, f.stranger, restaurant.ID, UpdateRestaurantInput{Name: &name})
	assert.Equal(t, util.CodeNotOwner, domainCode(t, err))
}

func TestRestaurantUpdateMissingResource(t *testing.T) {
	f := newRestaurantFixture(t)

	name := "Ghost Kitchen"
	_, err := f.svc.Update(context.Background(), f.owner, primitive.NewObjectID(), UpdateRestaurantInput{Name: &name})
	assert.Equal(t, util.CodeNotFound, domainCode(t, err))
}

func TestRestaurantDeleteLifecycle(t *testing.T) {
	f := newRestaurantFixture(t)
	ctx := context.Background()

	restaurant, err := f.svc.Create(ctx, f.owner, CreateRestaurantInput{
		Name: "Mama Rosa", Address: "1 Main St", Category: domain.RestaurantCategoryRegular,
	})
	require.NoError(t, err)

	_, err = f.svc.Delete(ctx, f.stranger, restaurant.ID)
	assert.Equal(t, util.CodeNotOwner, domainCode(t, err))

	deleted, err := f.svc.Delete(ctx, f.owner, restaurant.ID)
	require.NoError(t, err)
	assert.NotNil(t, deleted.DeletedAt)

	_, err = f.svc.Get(ctx, restaurant.ID)
	assert.Equal(t, util.CodeNotFound, domainCode(t, err))

	// A later update sees the tombstone as not-found, never as not-owner.
	name := "Back From The Dead"
	_, err = f.svc.Update(ctx, f.stranger, restaurant.ID, UpdateRestaurantInput{Name: &name})
	assert.Equal(t, util.CodeNotFound, domainCode(t, err))

	_, err = f.svc.Delete(ctx, f.owner, restaurant.ID)
	assert.Equal(t, util.CodeNotFound, domainCode(t, err))
}

func TestRestaurantListFilters(t *testing.T) {
	f := newRestaurantFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, f.owner, CreateRestaurantInput{Name: "Burger Barn", Address: "2 Side St", Category: domain.RestaurantCategoryFast})
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, f.owner, CreateRestaurantInput{Name: "Mama Rosa", Address: "1 Main St", Category: domain.RestaurantCategoryRegular})
	require.NoError(t, err)

	byName, err := f.svc.List(ctx, repository.RestaurantFilter{Name: "rosa"})
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Mama Rosa", byName[0].Name)

	byCategory, err := f.svc.List(ctx, repository.RestaurantFilter{Category: string(domain.RestaurantCategoryFast)})
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "Burger Barn", byCategory[0].Name)
}

func TestRestaurantTrendingFallsBackToStore(t *testing.T) {
	f := newRestaurantFixture(t)
	ctx := context.Background()

	quiet, err := f.svc.Create(ctx, f.owner, CreateRestaurantInput{Name: "Quiet Cafe", Address: "3 Back St", Category: domain.RestaurantCategoryRegular})
	require.NoError(t, err)
	busy, err := f.svc.Create(ctx, f.owner, CreateRestaurantInput{Name: "Busy Bistro", Address: "4 High St", Category: domain.RestaurantCategoryGourmet})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := f.restaurants.IncrementPopularity(ctx, busy.ID)
		require.NoError(t, err)
	}
	_, err = f.restaurants.IncrementPopularity(ctx, quiet.ID)
	require.NoError(t, err)

	// No Redis behind the leaderboard, so the popularity sort in the
	// document store decides the order.
	trending, err := f.svc.Trending(ctx, 10)
	require.NoError(t, err)
	require.Len(t, trending, 2)
	assert.Equal(t, "Busy Bistro", trending[0].Name)
	assert.Equal(t, "Quiet Cafe", trending[1].Name)

	top, err := f.svc.Trending(ctx, 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "Busy Bistro", top[0].Name)
}
