package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/food-order-service/internal/api/http"
	"github.com/spec-kit/food-order-service/internal/api/http/handlers"
	"github.com/spec-kit/food-order-service/internal/auth"
	"github.com/spec-kit/food-order-service/internal/config"
	"github.com/spec-kit/food-order-service/internal/events"
	"github.com/spec-kit/food-order-service/internal/observability"
	"github.com/spec-kit/food-order-service/internal/persistence"
	"github.com/spec-kit/food-order-service/internal/repository"
	"github.com/spec-kit/food-order-service/internal/service"
	"github.com/spec-kit/food-order-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mongo, err := persistence.NewMongo(ctx, cfg.Mongo, logger)
	if err != nil {
		logger.Fatal("failed to connect mongodb", zap.Error(err))
	}
	defer mongo.Close(ctx)

	if cfg.Mongo.EnsureIndexes {
		if err := persistence.EnsureIndexes(ctx, mongo, logger); err != nil {
			logger.Fatal("failed to ensure indexes", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	userRepo := repository.NewUserRepository(mongo.Collection(persistence.CollectionUsers))
	twoFactorRepo := repository.NewTwoFactorRepository(mongo.Collection(persistence.CollectionTwoFactorSecrets))
	restaurantRepo := repository.NewRestaurantRepository(mongo.Collection(persistence.CollectionRestaurants))
	productRepo := repository.NewProductRepository(mongo.Collection(persistence.CollectionProducts))
	orderRepo := repository.NewOrderRepository(mongo.Collection(persistence.CollectionOrders))

	engine := auth.NewEngine(auth.NewOwnerResolvers(userRepo, restaurantRepo, productRepo, orderRepo))
	leaderboard := service.NewPopularityLeaderboard(redis, logger)
	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:      userRepo,
		TwoFactorRepo: twoFactorRepo,
	})
	userService := service.NewUserService(userRepo, engine, cfg.Auth.BcryptCost)
	restaurantService := service.NewRestaurantService(restaurantRepo, engine, leaderboard)
	productService := service.NewProductService(productRepo, engine)
	orderService := service.NewOrderService(service.OrderDependencies{
		OrderRepo:      orderRepo,
		ProductRepo:    productRepo,
		RestaurantRepo: restaurantRepo,
	}, engine, leaderboard, dispatcher)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewMiddleware(authService.TokenManager(), userRepo)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, mongo, redis),
		Users:          handlers.NewUsersHandler(authService, userService),
		Restaurants:    handlers.NewRestaurantsHandler(restaurantService),
		Products:       handlers.NewProductsHandler(productService),
		Orders:         handlers.NewOrdersHandler(orderService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
