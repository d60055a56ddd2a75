package auth

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spec-kit/food-order-service/internal/repository"
	util "github.com/spec-kit/food-order-service/pkg/util"
)

// ResourceKind names the resource types the engine can authorize against.
type ResourceKind string

const (
	ResourceUser       ResourceKind = "user"
	ResourceRestaurant ResourceKind = "restaurant"
	ResourceProduct    ResourceKind = "product"
	ResourceOrder      ResourceKind = "order"
)

// DenyReason explains a denied decision.
type DenyReason string

const (
	DenyNotAuthenticated DenyReason = "NotAuthenticated"
	DenyTokenExpired     DenyReason = "TokenExpired"
	DenyNotOwner         DenyReason = "NotOwner"
	DenyResourceNotFound DenyReason = "ResourceNotFound"
	DenyResourceDeleted  DenyReason = "ResourceDeleted"
)

// Decision is the outcome of an authorization check.
type Decision struct {
	Allowed bool
	Reason  DenyReason
}

// Allow returns a permitting decision.
func Allow() Decision {
	return Decision{Allowed: true}
}

// Deny returns a denying decision with a reason.
func Deny(reason DenyReason) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// Err maps a denied decision onto the error taxonomy. Soft-deleted resources
// are reported as not-found so callers cannot probe deletion history.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	switch d.Reason {
	case DenyNotAuthenticated:
		return util.NewNotAuthenticated("not authenticated")
	case DenyTokenExpired:
		return util.NewExpiredToken()
	case DenyNotOwner:
		return util.NewNotOwner()
	case DenyResourceNotFound, DenyResourceDeleted:
		return util.NewNotFound("resource")
	}
	return util.NewNotAuthenticated("not authenticated")
}

// OwnerResolver resolves the identity that controls mutation rights over a
// resource. It must honor the soft-delete filter: a deleted resource resolves
// the same as a missing one.
type OwnerResolver func(ctx context.Context, resourceID primitive.ObjectID) (primitive.ObjectID, error)

// Engine is the single authorization decision point, parameterized by
// resource kind. Decisions are pure aside from the resolver's reads.
type Engine struct {
	resolvers map[ResourceKind]OwnerResolver
}

// NewEngine builds an engine with the given per-kind resolvers.
func NewEngine(resolvers map[ResourceKind]OwnerResolver) *Engine {
	if resolvers == nil {
		resolvers = make(map[ResourceKind]OwnerResolver)
	}
	return &Engine{resolvers: resolvers}
}

// AuthorizeSelf permits operations a user performs on their own identity.
func (e *Engine) AuthorizeSelf(callerID, targetID primitive.ObjectID) Decision {
	if callerID.IsZero() {
		return Deny(DenyNotAuthenticated)
	}
	if callerID != targetID {
		return Deny(DenyNotOwner)
	}
	return Allow()
}

// AuthorizeOwned permits mutations on a resource the caller owns, resolving
// the ownership chain for the resource kind. Existence is checked before
// ownership: a mutation against a missing resource denies as not-found, never
// as not-owner.
func (e *Engine) AuthorizeOwned(ctx context.Context, callerID primitive.ObjectID, kind ResourceKind, resourceID primitive.ObjectID) (Decision, error) {
	if callerID.IsZero() {
		return Deny(DenyNotAuthenticated), nil
	}

	resolver, ok := e.resolvers[kind]
	if !ok {
		return Decision{}, util.NewInternalError(errors.New("no owner resolver for kind " + string(kind)))
	}

	ownerID, err := resolver(ctx, resourceID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Deny(DenyResourceNotFound), nil
		}
		return Decision{}, util.NewInternalError(err)
	}

	if ownerID != callerID {
		return Deny(DenyNotOwner), nil
	}
	return Allow(), nil
}

// NewOwnerResolvers wires the standard ownership chains: a restaurant is
// owned by its OwnerID, a product transitively by its restaurant's owner, an
// order directly by the user who created it, and a user by itself.
func NewOwnerResolvers(
	users repository.UserRepository,
	restaurants repository.RestaurantRepository,
	products repository.ProductRepository,
	orders repository.OrderRepository,
) map[ResourceKind]OwnerResolver {
	return map[ResourceKind]OwnerResolver{
		ResourceUser: func(ctx context.Context, id primitive.ObjectID) (primitive.ObjectID, error) {
			user, err := users.GetByID(ctx, id)
			if err != nil {
				return primitive.NilObjectID, err
			}
			return user.ID, nil
		},
		ResourceRestaurant: func(ctx context.Context, id primitive.ObjectID) (primitive.ObjectID, error) {
			restaurant, err := restaurants.GetByID(ctx, id)
			if err != nil {
				return primitive.NilObjectID, err
			}
			return restaurant.OwnerID, nil
		},
		ResourceProduct: func(ctx context.Context, id primitive.ObjectID) (primitive.ObjectID, error) {
			product, err := products.GetByID(ctx, id)
			if err != nil {
				return primitive.NilObjectID, err
			}
			restaurant, err := restaurants.GetByID(ctx, product.RestaurantID)
			if err != nil {
				return primitive.NilObjectID, err
			}
			return restaurant.OwnerID, nil
		},
		ResourceOrder: func(ctx context.Context, id primitive.ObjectID) (primitive.ObjectID, error) {
			order, err := orders.GetByID(ctx, id)
			if err != nil {
				return primitive.NilObjectID, err
			}
			return order.UserID, nil
		},
	}
}
