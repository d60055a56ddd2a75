package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spec-kit/food-order-service/internal/domain"
	"github.com/spec-kit/food-order-service/internal/events"
	"github.com/spec-kit/food-order-service/internal/repository"
)

// In-memory repository fakes mirroring the Mongo implementations' soft-delete
// semantics: finders skip tombstoned records, SoftDelete through the live
// filter fails the second time.

type memUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[primitive.ObjectID]*domain.User)}
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	user.ID = primitive.NewObjectID()
	user.CreatedAt = now
	user.UpdatedAt = now
	user.DeletedAt = nil
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.users[user.ID]
	if !ok || stored.DeletedAt != nil {
		return nil, mongo.ErrNoDocuments
	}
	stored.Name = user.Name
	stored.Email = user.Email
	stored.Phone = user.Phone
	stored.PasswordHash = user.PasswordHash
	stored.UpdatedAt = time.Now()
	clone := *stored
	return &clone, nil
}

func (r *memUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.users[id]
	if !ok || stored.DeletedAt != nil {
		return nil, mongo.ErrNoDocuments
	}
	clone := *stored
	return &clone, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, stored := range r.users {
		if stored.Email == email && stored.DeletedAt == nil {
			clone := *stored
			return &clone, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *memUserRepo) SoftDelete(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.users[id]
	if !ok || stored.DeletedAt != nil {
		return nil, mongo.ErrNoDocuments
	}
	now := time.Now()
	stored.DeletedAt = &now
	stored.UpdatedAt = now
	clone := *stored
	return &clone, nil
}

type memTwoFactorRepo struct {
	mu      sync.Mutex
	secrets map[string]*domain.TwoFactorSecret
}

func newMemTwoFactorRepo() *memTwoFactorRepo {
	return &memTwoFactorRepo{secrets: make(map[string]*domain.TwoFactorSecret)}
}

func (r *memTwoFactorRepo) Create(_ context.Context, secret *domain.TwoFactorSecret) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	secret.ID = primitive.NewObjectID()
	clone := *secret
	r.secrets[secret.OwnerKey] = &clone
	return nil
}

func (r *memTwoFactorRepo) GetByOwnerKey(_ context.Context, ownerKey string) (*domain.TwoFactorSecret, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.secrets[ownerKey]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	clone := *stored
	return &clone, nil
}

func (r *memTwoFactorRepo) remove(ownerKey string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.secrets, ownerKey)
}

type memRestaurantRepo struct {
	mu          sync.Mutex
	restaurants map[primitive.ObjectID]*domain.Restaurant
}

func newMemRestaurantRepo() *memRestaurantRepo {
	return &memRestaurantRepo{restaurants: make(map[primitive.ObjectID]*domain.Restaurant)}
}

func (r *memRestaurantRepo) Create(_ context.Context, restaurant *domain.Restaurant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	restaurant.ID = primitive.NewObjectID()
	restaurant.CreatedAt = now
	restaurant.UpdatedAt = now
	restaurant.DeletedAt = nil
	clone := *restaurant
	r.restaurants[restaurant.ID] = &clone
	return nil
}

func (r *memRestaurantRepo) Update(_ context.Context, restaurant *domain.Restaurant) (*domain.Restaurant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.restaurants[restaurant.ID]
	if !ok || stored.DeletedAt != nil {
		return nil, mongo.ErrNoDocuments
	}
	stored.Name = restaurant.Name
	stored.Address = restaurant.Address
	stored.Category = restaurant.Category
	stored.Popularity = restaurant.Popularity
	stored.UpdatedAt = time.Now()
	clone := *stored
	return &clone, nil
}

func (r *memRestaurantRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Restaurant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.restaurants[id]
	if !ok || stored.DeletedAt != nil {
		return nil, mongo.ErrNoDocuments
	}
	clone := *stored
	return &clone, nil
}

func (r *memRestaurantRepo) List(_ context.Context, filter repository.RestaurantFilter) ([]domain.Restaurant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Restaurant
	for _, stored := range r.restaurants {
		if stored.DeletedAt != nil {
			continue
		}
		if filter.Name != "" && !strings.Contains(strings.ToLower(stored.Name), strings.ToLower(filter.Name)) {
			continue
		}
		if filter.Category != "" && string(stored.Category) != filter.Category {
			continue
		}
		result = append(result, *stored)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Popularity > result[j].Popularity })
	return result, nil
}

func (r *memRestaurantRepo) IncrementPopularity(_ context.Context, id primitive.ObjectID) (*domain.Restaurant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.restaurants[id]
	if !ok || stored.DeletedAt != nil {
		return nil, mongo.ErrNoDocuments
	}
	stored.Popularity++
	stored.UpdatedAt = time.Now()
	clone := *stored
	return &clone, nil
}

func (r *memRestaurantRepo) SoftDelete(_ context.Context, id primitive.ObjectID) (*domain.Restaurant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.restaurants[id]
	if !ok || stored.DeletedAt != nil {
		return nil, mongo.ErrNoDocuments
	}
	now := time.Now()
	stored.DeletedAt = &now
	stored.UpdatedAt = now
	clone := *stored
	return &clone, nil
}

type memProductRepo struct {
	mu       sync.Mutex
	products map[primitive.ObjectID]*domain.Product
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{products: make(map[primitive.ObjectID]*domain.Product)}
}

func (r *memProductRepo) Create(_ context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	product.ID = primitive.NewObjectID()
	product.CreatedAt = now
	product.UpdatedAt = now
	product.DeletedAt = nil
	clone := *product
	r.products[product.ID] = &clone
	return nil
}

func (r *memProductRepo) Update(_ context.Context, product *domain.Product) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.products[product.ID]
	if !ok || stored.DeletedAt != nil {
		return nil, mongo.ErrNoDocuments
	}
	stored.Name = product.Name
	stored.Description = product.Description
	stored.Price = product.Price
	stored.Categories = product.Categories
	stored.UpdatedAt = time.Now()
	clone := *stored
	return &clone, nil
}

func (r *memProductRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.products[id]
	if !ok || stored.DeletedAt != nil {
		return nil, mongo.ErrNoDocuments
	}
	clone := *stored
	return &clone, nil
}

func (r *memProductRepo) List(_ context.Context, filter repository.ProductFilter) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Product
	for _, stored := range r.products {
		if stored.DeletedAt != nil {
			continue
		}
		if filter.RestaurantID != nil && stored.RestaurantID != *filter.RestaurantID {
			continue
		}
		if filter.Category != "" {
			found := false
			for _, category := range stored.Categories {
				if category == filter.Category {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		result = append(result, *stored)
	}
	return result, nil
}

func (r *memProductRepo) SoftDelete(_ context.Context, id primitive.ObjectID) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.products[id]
	if !ok || stored.DeletedAt != nil {
		return nil, mongo.ErrNoDocuments
	}
	now := time.Now()
	stored.DeletedAt = &now
	stored.UpdatedAt = now
	clone := *stored
	return &clone, nil
}

type memOrderRepo struct {
	mu     sync.Mutex
	orders map[primitive.ObjectID]*domain.Order
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{orders: make(map[primitive.ObjectID]*domain.Order)}
}

func (r *memOrderRepo) Create(_ context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	order.ID = primitive.NewObjectID()
	order.CreatedAt = now
	order.UpdatedAt = now
	order.DeletedAt = nil
	clone := *order
	r.orders[order.ID] = &clone
	return nil
}

func (r *memOrderRepo) Update(_ context.Context, order *domain.Order) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.orders[order.ID]
	if !ok || stored.DeletedAt != nil {
		return nil, mongo.ErrNoDocuments
	}
	stored.Products = order.Products
	stored.Status = order.Status
	if order.DeliveredAt != nil {
		stored.DeliveredAt = order.DeliveredAt
	}
	stored.UpdatedAt = time.Now()
	clone := *stored
	return &clone, nil
}

func (r *memOrderRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.orders[id]
	if !ok || stored.DeletedAt != nil {
		return nil, mongo.ErrNoDocuments
	}
	clone := *stored
	return &clone, nil
}

func (r *memOrderRepo) List(_ context.Context, filter repository.OrderFilter) ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Order
	for _, stored := range r.orders {
		if stored.DeletedAt != nil {
			continue
		}
		if filter.UserID != nil && stored.UserID != *filter.UserID {
			continue
		}
		if filter.RestaurantID != nil && stored.RestaurantID != *filter.RestaurantID {
			continue
		}
		if filter.Status != "" && string(stored.Status) != filter.Status {
			continue
		}
		if filter.CreatedFrom != nil && filter.CreatedTo != nil {
			if stored.CreatedAt.Before(*filter.CreatedFrom) || stored.CreatedAt.After(*filter.CreatedTo) {
				continue
			}
		}
		result = append(result, *stored)
	}
	return result, nil
}

func (r *memOrderRepo) SoftDelete(_ context.Context, id primitive.ObjectID) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.orders[id]
	if !ok || stored.DeletedAt != nil {
		return nil, mongo.ErrNoDocuments
	}
	now := time.Now()
	stored.DeletedAt = &now
	stored.UpdatedAt = now
	clone := *stored
	return &clone, nil
}

// recordingDispatcher captures published events.
type recordingDispatcher struct {
	mu        sync.Mutex
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) events() []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]events.Event{}, d.published...)
}
