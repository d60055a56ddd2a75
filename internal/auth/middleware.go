package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spec-kit/food-order-service/internal/domain"
	"github.com/spec-kit/food-order-service/internal/repository"
	util "github.com/spec-kit/food-order-service/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller.
type Principal struct {
	User *domain.User
}

// ID returns the caller's identity id.
func (p *Principal) ID() primitive.ObjectID {
	if p == nil || p.User == nil {
		return primitive.NilObjectID
	}
	return p.User.ID
}

// Middleware validates bearer tokens and loads the subject identity. Parsing
// is pure; the store is consulted afterwards so tokens for deleted identities
// stop working immediately.
type Middleware struct {
	tokens *TokenManager
	users  repository.UserRepository
}

// NewMiddleware constructs middleware.
func NewMiddleware(tokens *TokenManager, users repository.UserRepository) *Middleware {
	return &Middleware{tokens: tokens, users: users}
}

// Handle enforces authentication for protected routes.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return util.NewNotAuthenticated("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return util.NewNotAuthenticated("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return err
	}

	subjectID, err := primitive.ObjectIDFromHex(claims.SubjectID)
	if err != nil {
		return util.NewInvalidToken("malformed subject id")
	}

	user, err := m.users.GetByID(c.Context(), subjectID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return util.NewNotAuthenticated("unknown subject")
		}
		return util.MapError(err)
	}

	c.Locals(principalKey, &Principal{User: user})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated caller.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
