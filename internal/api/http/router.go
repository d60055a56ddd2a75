package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/food-order-service/internal/api/http/handlers"
	"github.com/spec-kit/food-order-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Restaurants    *handlers.RestaurantsHandler
	Products       *handlers.ProductsHandler
	Orders         *handlers.OrdersHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes. Registration, login and health probes are
// public; everything else requires a bearer token.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	users := api.Group("/users")
	users.Post("/register", cfg.Users.Register)
	users.Post("/login", cfg.Users.Login)
	users.Get("/:id", cfg.AuthMiddleware.Handle, cfg.Users.Get)
	users.Patch("/:id", cfg.AuthMiddleware.Handle, cfg.Users.Update)
	users.Delete("/:id", cfg.AuthMiddleware.Handle, cfg.Users.Delete)

	restaurants := api.Group("/restaurants", cfg.AuthMiddleware.Handle)
	restaurants.Get("/", cfg.Restaurants.List)
	restaurants.Get("/trending", cfg.Restaurants.Trending)
	restaurants.Get("/:id", cfg.Restaurants.Get)
	restaurants.Post("/", cfg.Restaurants.Create)
	restaurants.Patch("/:id", cfg.Restaurants.Update)
	restaurants.Delete("/:id", cfg.Restaurants.Delete)

	products := api.Group("/products", cfg.AuthMiddleware.Handle)
	products.Get("/", cfg.Products.List)
	products.Get("/:id", cfg.Products.Get)
	products.Post("/", cfg.Products.Create)
	products.Patch("/:id", cfg.Products.Update)
	products.Delete("/:id", cfg.Products.Delete)

	orders := api.Group("/orders", cfg.AuthMiddleware.Handle)
	orders.Post("/", cfg.Orders.Create)
	orders.Get("/created", cfg.Orders.ListCreated)
	orders.Get("/", cfg.Orders.List)
	orders.Get("/:id", cfg.Orders.Get)
	orders.Patch("/:id", cfg.Orders.Update)
	orders.Delete("/:id", cfg.Orders.Delete)
}
