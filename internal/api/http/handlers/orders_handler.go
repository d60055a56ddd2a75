package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/spec-kit/food-order-service/internal/api/dto"
	"github.com/spec-kit/food-order-service/internal/auth"
	"github.com/spec-kit/food-order-service/internal/domain"
	"github.com/spec-kit/food-order-service/internal/repository"
	"github.com/spec-kit/food-order-service/internal/service"
	util "github.com/spec-kit/food-order-service/pkg/util"
)

// OrdersHandler exposes order CRUD endpoints.
type OrdersHandler struct {
	orders *service.OrderService
}

// NewOrdersHandler constructs handler.
func NewOrdersHandler(orderService *service.OrderService) *OrdersHandler {
	return &OrdersHandler{orders: orderService}
}

// Create handles POST /api/orders.
func (h *OrdersHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return util.NewNotAuthenticated("not authenticated")
	}

	var req dto.CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	restaurantID, err := primitive.ObjectIDFromHex(req.RestaurantID)
	if err != nil {
		return util.NewNotFound("restaurant")
	}

	order, err := h.orders.Create(c.Context(), principal.ID(), service.CreateOrderInput{
		RestaurantID: restaurantID,
		Products:     req.Products,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": order})
}

// ListCreated handles GET /api/orders/created.
func (h *OrdersHandler) ListCreated(c *fiber.Ctx) error {
	orders, err := h.orders.ListCreated(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": orders})
}

// List handles GET /api/orders.
func (h *OrdersHandler) List(c *fiber.Ctx) error {
	filter := repository.OrderFilter{Status: c.Query("status")}

	if raw := c.Query("user"); raw != "" {
		userID, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return util.NewValidationError("malformed user id", nil)
		}
		filter.UserID = &userID
	}
	if raw := c.Query("restaurant"); raw != "" {
		restaurantID, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return util.NewValidationError("malformed restaurant id", nil)
		}
		filter.RestaurantID = &restaurantID
	}
	if start, finish := c.Query("startDate"), c.Query("finishDate"); start != "" && finish != "" {
		from, err := time.Parse(time.RFC3339, start)
		if err != nil {
			return util.NewValidationError("malformed startDate", nil)
		}
		to, err := time.Parse(time.RFC3339, finish)
		if err != nil {
			return util.NewValidationError("malformed finishDate", nil)
		}
		filter.CreatedFrom = &from
		filter.CreatedTo = &to
	}

	orders, err := h.orders.List(c.Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": orders})
}

// Get handles GET /api/orders/:id.
func (h *OrdersHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	order, err := h.orders.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": order})
}

// Update handles PATCH /api/orders/:id.
func (h *OrdersHandler) Update(c *fiber.Ctx) error {
	principal, id, err := callerAndTarget(c)
	if err != nil {
		return err
	}

	var req dto.UpdateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}

	input := service.UpdateOrderInput{Products: req.Products}
	if req.Status != nil {
		status := domain.OrderStatus(*req.Status)
		input.Status = &status
	}

	order, err := h.orders.Update(c.Context(), principal.ID(), id, input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": order})
}

// Delete handles DELETE /api/orders/:id.
func (h *OrdersHandler) Delete(c *fiber.Ctx) error {
	principal, id, err := callerAndTarget(c)
	if err != nil {
		return err
	}
	order, err := h.orders.Delete(c.Context(), principal.ID(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": order})
}
