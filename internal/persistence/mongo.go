package persistence

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/spec-kit/food-order-service/internal/config"
)

// Collection names used across repositories.
const (
	CollectionUsers            = "users"
	CollectionTwoFactorSecrets = "twofactor_secrets"
	CollectionRestaurants      = "restaurants"
	CollectionProducts         = "products"
	CollectionOrders           = "orders"
)

// Mongo wraps access to the document store.
type Mongo struct {
	Client   *mongo.Client
	database string
}

// NewMongo establishes a client connection when a URI is provided.
func NewMongo(ctx context.Context, cfg config.MongoConfig, logger *zap.Logger) (*Mongo, error) {
	if cfg.URI == "" {
		logger.Warn("MONGO_URI not provided; skipping database connection")
		return &Mongo{Client: nil, database: cfg.Database}, nil
	}

	connectCtx := ctx
	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		connectCtx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	logger.Info("connected to mongodb", zap.String("database", cfg.Database))
	return &Mongo{Client: client, database: cfg.Database}, nil
}

// Close releases client resources.
func (m *Mongo) Close(ctx context.Context) {
	if m != nil && m.Client != nil {
		_ = m.Client.Disconnect(ctx)
	}
}

// Database returns the configured database handle.
func (m *Mongo) Database() *mongo.Database {
	if m == nil || m.Client == nil {
		return nil
	}
	return m.Client.Database(m.database)
}

// Collection returns a named collection handle.
func (m *Mongo) Collection(name string) *mongo.Collection {
	db := m.Database()
	if db == nil {
		return nil
	}
	return db.Collection(name)
}

// Ping verifies connectivity.
func (m *Mongo) Ping(ctx context.Context) error {
	if m == nil || m.Client == nil {
		return mongo.ErrClientDisconnected
	}
	return m.Client.Ping(ctx, nil)
}
