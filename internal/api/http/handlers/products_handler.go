package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/spec-kit/food-order-service/internal/api/dto"
	"github.com/spec-kit/food-order-service/internal/auth"
	"github.com/spec-kit/food-order-service/internal/repository"
	"github.com/spec-kit/food-order-service/internal/service"
	util "github.com/spec-kit/food-order-service/pkg/util"
)

// ProductsHandler exposes product CRUD endpoints.
type ProductsHandler struct {
	products *service.ProductService
}

// NewProductsHandler constructs handler.
func NewProductsHandler(productService *service.ProductService) *ProductsHandler {
	return &ProductsHandler{products: productService}
}

// List handles GET /api/products.
func (h *ProductsHandler) List(c *fiber.Ctx) error {
	filter := repository.ProductFilter{Category: c.Query("category")}
	if raw := c.Query("restaurant"); raw != "" {
		restaurantID, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return util.NewValidationError("malformed restaurant id", nil)
		}
		filter.RestaurantID = &restaurantID
	}

	products, err := h.products.List(c.Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": products})
}

// Get handles GET /api/products/:id.
func (h *ProductsHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	product, err := h.products.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": product})
}

// Create handles POST /api/products.
func (h *ProductsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return util.NewNotAuthenticated("not authenticated")
	}

	var req dto.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	restaurantID, err := primitive.ObjectIDFromHex(req.RestaurantID)
	if err != nil {
		return util.NewNotFound("restaurant")
	}

	product, err := h.products.Create(c.Context(), principal.ID(), service.CreateProductInput{
		RestaurantID: restaurantID,
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		Categories:   req.Categories,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": product})
}

// Update handles PATCH /api/products/:id.
func (h *ProductsHandler) Update(c *fiber.Ctx) error {
	principal, id, err := callerAndTarget(c)
	if err != nil {
		return err
	}

	var req dto.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}

	product, err := h.products.Update(c.Context(), principal.ID(), id, service.UpdateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Categories:  req.Categories,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": product})
}

// Delete handles DELETE /api/products/:id.
func (h *ProductsHandler) Delete(c *fiber.Ctx) error {
	principal, id, err := callerAndTarget(c)
	if err != nil {
		return err
	}
	product, err := h.products.Delete(c.Context(), principal.ID(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": product})
}
