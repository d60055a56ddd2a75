package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/spec-kit/food-order-service/internal/auth"
	"github.com/spec-kit/food-order-service/internal/domain"
	"github.com/spec-kit/food-order-service/internal/repository"
	util "github.com/spec-kit/food-order-service/pkg/util"
)

// UserService handles self-scoped identity operations: a user may only read,
// update or delete their own record.
type UserService struct {
	users      repository.UserRepository
	engine     *auth.Engine
	bcryptCost int
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository, engine *auth.Engine, bcryptCost int) *UserService {
	return &UserService{users: users, engine: engine, bcryptCost: bcryptCost}
}

// UpdateUserInput carries optional profile fields; nil means unchanged.
type UpdateUserInput struct {
	Name     *string
	Email    *string
	Phone    *string
	Password *string
}

func (in UpdateUserInput) empty() bool {
	return in.Name == nil && in.Email == nil && in.Phone == nil && in.Password == nil
}

// Get returns the caller's own identity.
func (s *UserService) Get(ctx context.Context, callerID, targetID primitive.ObjectID) (*domain.User, error) {
	if decision := s.engine.AuthorizeSelf(callerID, targetID); !decision.Allowed {
		return nil, decision.Err()
	}
	user, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		return nil, util.MapError(err)
	}
	return user, nil
}

// Update modifies the caller's own identity. The password is rehashed only
// when a new value is supplied.
func (s *UserService) Update(ctx context.Context, callerID, targetID primitive.ObjectID, input UpdateUserInput) (*domain.User, error) {
	if decision := s.engine.AuthorizeSelf(callerID, targetID); !decision.Allowed {
		return nil, decision.Err()
	}
	if input.empty() {
		return nil, util.NewValidationError("no fields to update", nil)
	}

	user, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		return nil, util.MapError(err)
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.Password != nil {
		hash, err := auth.HashPassword(*input.Password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	updated, err := s.users.Update(ctx, user)
	if err != nil {
		return nil, util.MapError(err)
	}
	return updated, nil
}

// Delete soft-deletes the caller's own identity. Issued tokens stop working
// at the next request since the middleware re-resolves the subject.
func (s *UserService) Delete(ctx context.Context, callerID, targetID primitive.ObjectID) (*domain.User, error) {
	if decision := s.engine.AuthorizeSelf(callerID, targetID); !decision.Allowed {
		return nil, decision.Err()
	}
	deleted, err := s.users.SoftDelete(ctx, targetID)
	if err != nil {
		return nil, util.MapError(err)
	}
	return deleted, nil
}
