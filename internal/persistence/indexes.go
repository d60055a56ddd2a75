package persistence

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// EnsureIndexes creates the indexes the repositories rely on. Safe to run at
// every boot; Mongo treats existing identical indexes as a no-op.
func EnsureIndexes(ctx context.Context, m *Mongo, logger *zap.Logger) error {
	if m == nil || m.Client == nil {
		logger.Warn("no mongo client available; skipping index creation")
		return nil
	}

	defs := map[string][]mongo.IndexModel{
		CollectionUsers: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		CollectionTwoFactorSecrets: {
			{
				Keys:    bson.D{{Key: "ownerKey", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		CollectionRestaurants: {
			{Keys: bson.D{{Key: "popularity", Value: -1}}},
			{Keys: bson.D{{Key: "ownerId", Value: 1}}},
		},
		CollectionProducts: {
			{Keys: bson.D{{Key: "restaurantId", Value: 1}}},
		},
		CollectionOrders: {
			{Keys: bson.D{{Key: "userId", Value: 1}}},
			{Keys: bson.D{{Key: "restaurantId", Value: 1}}},
			{Keys: bson.D{{Key: "status", Value: 1}}},
		},
	}

	total := 0
	for collection, models := range defs {
		logger.Info("ensuring indexes", zap.String("collection", collection))
		if _, err := m.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("ensure indexes on %s: %w", collection, err)
		}
		total += len(models)
	}

	logger.Info("indexes ensured", zap.Int("count", total))
	return nil
}
