package services

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/yukikurage/habit-board-api/internal/cache"
	"github.com/yukikurage/habit-board-api/internal/constants"
	"github.com/yukikurage/habit-board-api/internal/models"
	"github.com/yukikurage/habit-board-api/internal/repository"
)

// LeaderboardService ranks users by completed-goal count, with a short-lived
// Redis cache in front of the query. A nil Redis client disables caching.
type LeaderboardService struct {
	userRepo repository.UserRepository
	rdb      *redis.Client
}

// NewLeaderboardService creates a new LeaderboardService.
func NewLeaderboardService(userRepo repository.UserRepository, rdb *redis.Client) *LeaderboardService {
	return &LeaderboardService{
		userRepo: userRepo,
		rdb:      rdb,
	}
}

// Get returns users ordered by completion count, highest first. Cache
// failures fall through to the database; ranking must not depend on Redis
// being up.
func (s *LeaderboardService) Get(ctx context.Context) ([]models.User, error) {
	if s.rdb != nil {
		var cached []models.User
		hit, err := cache.Get(ctx, s.rdb, constants.LeaderboardCacheKey, &cached)
		if err != nil {
			logrus.WithError(err).Warn("leaderboard cache read failed")
		} else if hit {
			return cached, nil
		}
	}

	users, err := s.userRepo.ListByCompletedCount(constants.LeaderboardLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}

	if s.rdb != nil {
		if err := cache.Set(ctx, s.rdb, constants.LeaderboardCacheKey, users, constants.LeaderboardCacheTTL); err != nil {
			logrus.WithError(err).Warn("leaderboard cache write failed")
		}
	}

	return users, nil
}

// Invalidate drops the cached ranking, typically after an approval credit.
func (s *LeaderboardService) Invalidate(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := cache.Delete(ctx, s.rdb, constants.LeaderboardCacheKey); err != nil {
		logrus.WithError(err).Warn("leaderboard cache invalidation failed")
	}
}
