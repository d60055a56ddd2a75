package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/food-order-service/internal/api/dto"
	"github.com/spec-kit/food-order-service/internal/auth"
	"github.com/spec-kit/food-order-service/internal/domain"
	"github.com/spec-kit/food-order-service/internal/repository"
	"github.com/spec-kit/food-order-service/internal/service"
	util "github.com/spec-kit/food-order-service/pkg/util"
)

// RestaurantsHandler exposes restaurant CRUD endpoints.
type RestaurantsHandler struct {
	restaurants *service.RestaurantService
}

// NewRestaurantsHandler constructs handler.
func NewRestaurantsHandler(restaurantService *service.RestaurantService) *RestaurantsHandler {
	return &RestaurantsHandler{restaurants: restaurantService}
}

// List handles GET /api/restaurants.
func (h *RestaurantsHandler) List(c *fiber.Ctx) error {
	restaurants, err := h.restaurants.List(c.Context(), repository.RestaurantFilter{
		Name:     c.Query("name"),
		Category: c.Query("category"),
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": restaurants})
}

// Trending handles GET /api/restaurants/trending.
func (h *RestaurantsHandler) Trending(c *fiber.Ctx) error {
	limit, err := strconv.Atoi(c.Query("limit", "10"))
	if err != nil || limit <= 0 {
		limit = 10
	}
	restaurants, err := h.restaurants.Trending(c.Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": restaurants})
}

// Get handles GET /api/restaurants/:id.
func (h *RestaurantsHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	restaurant, err := h.restaurants.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": restaurant})
}

// Create handles POST /api/restaurants.
func (h *RestaurantsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return util.NewNotAuthenticated("not authenticated")
	}

	var req dto.CreateRestaurantRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}

	restaurant, err := h.restaurants.Create(c.Context(), principal.ID(), service.CreateRestaurantInput{
		Name:     req.Name,
		Address:  req.Address,
		Category: domain.RestaurantCategory(req.Category),
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": restaurant})
}

// Update handles PATCH /api/restaurants/:id.
func (h *RestaurantsHandler) Update(c *fiber.Ctx) error {
	principal, id, err := callerAndTarget(c)
	if err != nil {
		return err
	}

	var req dto.UpdateRestaurantRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}

	input := service.UpdateRestaurantInput{
		Name:       req.Name,
		Address:    req.Address,
		Popularity: req.Popularity,
	}
	if req.Category != nil {
		category := domain.RestaurantCategory(*req.Category)
		input.Category = &category
	}

	restaurant, err := h.restaurants.Update(c.Context(), principal.ID(), id, input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": restaurant})
}

// Delete handles DELETE /api/restaurants/:id.
func (h *RestaurantsHandler) Delete(c *fiber.Ctx) error {
	principal, id, err := callerAndTarget(c)
	if err != nil {
		return err
	}
	restaurant, err := h.restaurants.Delete(c.Context(), principal.ID(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": restaurant})
}
