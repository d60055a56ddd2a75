package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spec-kit/food-order-service/internal/auth"
	"github.com/spec-kit/food-order-service/internal/domain"
	"github.com/spec-kit/food-order-service/internal/events"
	"github.com/spec-kit/food-order-service/internal/repository"
	util "github.com/spec-kit/food-order-service/pkg/util"
)

// OrderService handles order lifecycle: creation with total computation,
// forward-only status progression, and owner-scoped mutation.
type OrderService struct {
	orders      repository.OrderRepository
	products    repository.ProductRepository
	restaurants repository.RestaurantRepository
	engine      *auth.Engine
	leaderboard *PopularityLeaderboard
	dispatcher  events.Dispatcher
}

// OrderDependencies encapsulates repo requirements for the order service.
type OrderDependencies struct {
	OrderRepo      repository.OrderRepository
	ProductRepo    repository.ProductRepository
	RestaurantRepo repository.RestaurantRepository
}

// NewOrderService builds the service.
func NewOrderService(deps OrderDependencies, engine *auth.Engine, leaderboard *PopularityLeaderboard, dispatcher events.Dispatcher) *OrderService {
	return &OrderService{
		orders:      deps.OrderRepo,
		products:    deps.ProductRepo,
		restaurants: deps.RestaurantRepo,
		engine:      engine,
		leaderboard: leaderboard,
		dispatcher:  dispatcher,
	}
}

// CreateOrderInput carries new-order fields. Products maps product id (hex)
// to quantity.
type CreateOrderInput struct {
	RestaurantID primitive.ObjectID
	Products     map[string]int
}

// UpdateOrderInput carries optional fields; nil means unchanged.
type UpdateOrderInput struct {
	Products map[string]int
	Status   *domain.OrderStatus
}

func (in UpdateOrderInput) empty() bool {
	return in.Products == nil && in.Status == nil
}

// Create places an order for the caller. The total is computed here, from
// current product prices, and never recomputed afterwards. The restaurant's
// popularity is bumped and an order_created event published.
func (s *OrderService) Create(ctx context.Context, callerID primitive.ObjectID, input CreateOrderInput) (*domain.Order, error) {
	if callerID.IsZero() {
		return nil, util.NewNotAuthenticated("not authenticated")
	}
	if len(input.Products) == 0 {
		return nil, util.NewValidationError("order must contain at least one product", nil)
	}

	if _, err := s.restaurants.GetByID(ctx, input.RestaurantID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, util.NewNotFound("restaurant")
		}
		return nil, util.MapError(err)
	}

	total := 0.0
	for rawID, quantity := range input.Products {
		if quantity <= 0 {
			return nil, util.NewValidationError("quantities must be positive", map[string]any{"product": rawID})
		}
		productID, err := primitive.ObjectIDFromHex(rawID)
		if err != nil {
			return nil, util.NewValidationError("malformed product id", map[string]any{"product": rawID})
		}
		product, err := s.products.GetByID(ctx, productID)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, util.NewValidationError("unknown product in order", map[string]any{"product": rawID})
			}
			return nil, util.MapError(err)
		}
		total += product.Price * float64(quantity)
	}

	order := &domain.Order{
		UserID:       callerID,
		RestaurantID: input.RestaurantID,
		Products:     input.Products,
		Total:        total,
		Status:       domain.OrderStatusCreated,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, util.MapError(err)
	}

	if _, err := s.restaurants.IncrementPopularity(ctx, input.RestaurantID); err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, util.MapError(err)
	}
	s.leaderboard.Increment(ctx, input.RestaurantID.Hex())

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventOrderCreated,
		OrderID:   order.ID.Hex(),
		UserID:    callerID.Hex(),
		Timestamp: time.Now(),
		Payload: events.OrderCreatedPayload{
			RestaurantID: input.RestaurantID.Hex(),
			Total:        total,
			ProductCount: len(input.Products),
		},
	})
	return order, nil
}

// Get returns an order by id.
func (s *OrderService) Get(ctx context.Context, id primitive.ObjectID) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, util.MapError(err)
	}
	return order, nil
}

// List returns orders matching the filter.
func (s *OrderService) List(ctx context.Context, filter repository.OrderFilter) ([]domain.Order, error) {
	orders, err := s.orders.List(ctx, filter)
	if err != nil {
		return nil, util.MapError(err)
	}
	return orders, nil
}

// ListCreated returns orders still in the Created state.
func (s *OrderService) ListCreated(ctx context.Context) ([]domain.Order, error) {
	return s.List(ctx, repository.OrderFilter{Status: string(domain.OrderStatusCreated)})
}

// Update modifies an order the caller owns. Frozen orders (Sent, Delivered)
// reject any mutation; the status may only move forward.
func (s *OrderService) Update(ctx context.Context, callerID, id primitive.ObjectID, input UpdateOrderInput) (*domain.Order, error) {
	decision, err := s.engine.AuthorizeOwned(ctx, callerID, auth.ResourceOrder, id)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, decision.Err()
	}
	if input.empty() {
		return nil, util.NewValidationError("no fields to update", nil)
	}

	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, util.MapError(err)
	}
	if order.Frozen() {
		return nil, util.NewValidationError("order can no longer be updated", map[string]any{"status": string(order.Status)})
	}

	oldStatus := order.Status
	if input.Products != nil {
		if len(input.Products) == 0 {
			return nil, util.NewValidationError("order must contain at least one product", nil)
		}
		for rawID, quantity := range input.Products {
			if quantity <= 0 {
				return nil, util.NewValidationError("quantities must be positive", map[string]any{"product": rawID})
			}
		}
		order.Products = input.Products
	}
	if input.Status != nil {
		if !domain.ValidOrderStatus(*input.Status) {
			return nil, util.NewValidationError("unknown status", map[string]any{"status": string(*input.Status)})
		}
		if !domain.CanTransition(order.Status, *input.Status) {
			return nil, util.NewValidationError("status cannot move backwards", map[string]any{
				"from": string(order.Status), "to": string(*input.Status),
			})
		}
		order.Status = *input.Status
		if order.Status == domain.OrderStatusDelivered && order.DeliveredAt == nil {
			now := time.Now()
			order.DeliveredAt = &now
		}
	}

	updated, err := s.orders.Update(ctx, order)
	if err != nil {
		return nil, util.MapError(err)
	}

	if input.Status != nil && *input.Status != oldStatus {
		s.publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventOrderStatusChanged,
			OrderID:   updated.ID.Hex(),
			UserID:    callerID.Hex(),
			Timestamp: time.Now(),
			Payload: events.OrderStatusChangedPayload{
				OldStatus: oldStatus,
				NewStatus: updated.Status,
			},
		})
	}
	return updated, nil
}

// Delete soft-deletes an order the caller owns.
func (s *OrderService) Delete(ctx context.Context, callerID, id primitive.ObjectID) (*domain.Order, error) {
	decision, err := s.engine.AuthorizeOwned(ctx, callerID, auth.ResourceOrder, id)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, decision.Err()
	}

	deleted, err := s.orders.SoftDelete(ctx, id)
	if err != nil {
		return nil, util.MapError(err)
	}
	return deleted, nil
}

func (s *OrderService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}
