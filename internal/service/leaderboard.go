package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/food-order-service/internal/persistence"
)

const leaderboardKey = "restaurants:popularity"

// PopularityLeaderboard mirrors restaurant popularity into a Redis sorted
// set. The document store stays authoritative; the leaderboard is a cache and
// every failure here is non-fatal.
type PopularityLeaderboard struct {
	redis  *persistence.Redis
	logger *zap.Logger
}

// NewPopularityLeaderboard builds the leaderboard.
func NewPopularityLeaderboard(redis *persistence.Redis, logger *zap.Logger) *PopularityLeaderboard {
	return &PopularityLeaderboard{redis: redis, logger: logger}
}

// Increment bumps a restaurant's score by one.
func (l *PopularityLeaderboard) Increment(ctx context.Context, restaurantID string) {
	if l == nil || l.redis == nil || l.redis.Client == nil {
		return
	}
	if err := l.redis.Client.ZIncrBy(ctx, leaderboardKey, 1, restaurantID).Err(); err != nil {
		l.logger.Warn("leaderboard increment failed", zap.String("restaurant_id", restaurantID), zap.Error(err))
	}
}

// TopIDs returns the n highest-scoring restaurant ids, best first. A nil
// slice with no error means the leaderboard is unavailable and the caller
// should fall back to the document store.
func (l *PopularityLeaderboard) TopIDs(ctx context.Context, n int) ([]string, error) {
	if l == nil || l.redis == nil || l.redis.Client == nil {
		return nil, nil
	}
	ids, err := l.redis.Client.ZRevRange(ctx, leaderboardKey, 0, int64(n-1)).Result()
	if err != nil {
		l.logger.Warn("leaderboard read failed", zap.Error(err))
		return nil, nil
	}
	return ids, nil
}
