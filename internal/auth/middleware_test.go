package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/spec-kit/food-order-service/internal/domain"
	util "github.com/spec-kit/food-order-service/pkg/util"
)

func newAuthTestApp(m *Middleware) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := util.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"code": de.Code})
		},
	})
	app.Get("/protected", m.Handle, func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return util.NewInternalError(nil)
		}
		return c.JSON(fiber.Map{"subject": principal.ID().Hex()})
	})
	return app
}

func TestMiddlewareAcceptsValidToken(t *testing.T) {
	tokens := NewTokenManager("test-secret", time.Hour)
	userID := primitive.NewObjectID()
	users := &stubUserRepo{users: map[primitive.ObjectID]*domain.User{
		userID: {ID: userID, Name: "Alice", Role: domain.RoleClient},
	}}
	app := newAuthTestApp(NewMiddleware(tokens, users))

	token, _, err := tokens.IssueToken(userID.Hex())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMiddlewareRejectsMissingHeader(t *testing.T) {
	tokens := NewTokenManager("test-secret", time.Hour)
	app := newAuthTestApp(NewMiddleware(tokens, &stubUserRepo{users: map[primitive.ObjectID]*domain.User{}}))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMiddlewareRejectsNonBearerScheme(t *testing.T) {
	tokens := NewTokenManager("test-secret", time.Hour)
	app := newAuthTestApp(NewMiddleware(tokens, &stubUserRepo{users: map[primitive.ObjectID]*domain.User{}}))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMiddlewareRejectsTamperedToken(t *testing.T) {
	tokens := NewTokenManager("test-secret", time.Hour)
	userID := primitive.NewObjectID()
	users := &stubUserRepo{users: map[primitive.ObjectID]*domain.User{
		userID: {ID: userID},
	}}
	app := newAuthTestApp(NewMiddleware(tokens, users))

	other := NewTokenManager("different-secret", time.Hour)
	token, _, err := other.IssueToken(userID.Hex())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMiddlewareRejectsDeletedSubject(t *testing.T) {
	tokens := NewTokenManager("test-secret", time.Hour)
	userID := primitive.NewObjectID()
	now := time.Now()
	users := &stubUserRepo{users: map[primitive.ObjectID]*domain.User{
		userID: {ID: userID, DeletedAt: &now},
	}}
	app := newAuthTestApp(NewMiddleware(tokens, users))

	// Token issued before the account was deleted must stop working.
	token, _, err := tokens.IssueToken(userID.Hex())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
