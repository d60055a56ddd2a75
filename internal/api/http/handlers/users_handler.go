package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/spec-kit/food-order-service/internal/api/dto"
	"github.com/spec-kit/food-order-service/internal/auth"
	"github.com/spec-kit/food-order-service/internal/domain"
	"github.com/spec-kit/food-order-service/internal/service"
	util "github.com/spec-kit/food-order-service/pkg/util"
)

// UsersHandler exposes registration, login and self-scoped profile endpoints.
type UsersHandler struct {
	auth  *service.AuthService
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService, userService *service.UserService) *UsersHandler {
	return &UsersHandler{auth: authService, users: userService}
}

// Register handles POST /api/users/register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}

	user, secret, err := h.auth.Register(c.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		Role:     domain.UserRole(req.Role),
	})
	if err != nil {
		return err
	}

	data := fiber.Map{"user": user}
	if secret != "" {
		// one-time disclosure for authenticator enrollment
		data["two_factor_secret"] = secret
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": data})
}

// Login handles POST /api/users/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return util.NewValidationError("email and password required", nil)
	}

	user, token, expiresAt, err := h.auth.Login(c.Context(), req.Email, req.Password, req.Code)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": user,
			"auth": dto.AuthResponse{Token: token, ExpiresAt: expiresAt},
		},
	})
}

// Get handles GET /api/users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	caller, targetID, err := callerAndTarget(c)
	if err != nil {
		return err
	}
	user, err := h.users.Get(c.Context(), caller.ID(), targetID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": user})
}

// Update handles PATCH /api/users/:id.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	caller, targetID, err := callerAndTarget(c)
	if err != nil {
		return err
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}

	user, err := h.users.Update(c.Context(), caller.ID(), targetID, service.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": user})
}

// Delete handles DELETE /api/users/:id.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	caller, targetID, err := callerAndTarget(c)
	if err != nil {
		return err
	}
	user, err := h.users.Delete(c.Context(), caller.ID(), targetID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": user})
}

func callerAndTarget(c *fiber.Ctx) (*auth.Principal, primitive.ObjectID, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return nil, primitive.NilObjectID, util.NewNotAuthenticated("not authenticated")
	}
	targetID, err := parseIDParam(c)
	if err != nil {
		return nil, primitive.NilObjectID, err
	}
	return principal, targetID, nil
}

// parseIDParam reads the :id path parameter. A malformed id can never match a
// record, so it reports as not-found.
func parseIDParam(c *fiber.Ctx) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return primitive.NilObjectID, util.NewNotFound("resource")
	}
	return id, nil
}
