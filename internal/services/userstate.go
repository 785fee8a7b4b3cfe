package services

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"shop-tg-bot/internal/constants"
	"shop-tg-bot/internal/models"
)

// StateDB is the subset of the Redis API the state service needs.
// Declared here so tests can run without a server.
type StateDB interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// UserStateService manages user conversation states. The state token is
// persisted in Redis keyed by chat ID. The catalog page cursor is kept in
// a local cache only: it is deliberately transient and resets on restart,
// since a stale cursor could point past the end after catalog edits.
type UserStateService struct {
	db     StateDB
	pages  *cache.Cache
	logger *logrus.Logger
}

// NewUserStateService creates a new user state service
func NewUserStateService(db StateDB, logger *logrus.Logger) *UserStateService {
	return &UserStateService{
		db:     db,
		pages:  cache.New(constants.PageCursorExpiration*time.Minute, constants.CacheCleanupInterval*time.Minute),
		logger: logger,
	}
}

func stateKey(userID int64) string {
	return fmt.Sprintf("conv_state:%d", userID)
}

// GetState gets a user's conversation state. A missing or unknown entry
// yields Start so a user is never stuck.
func (s *UserStateService) GetState(ctx context.Context, userID int64) (models.ConversationState, error) {
	token, err := s.db.Get(ctx, stateKey(userID)).Result()
	if err == redis.Nil {
		return models.Start, nil
	}
	if err != nil {
		return models.Start, fmt.Errorf("failed to read state for user %d: %w", userID, err)
	}

	return models.ParseConversationState(token), nil
}

// SetState sets a user's conversation state
func (s *UserStateService) SetState(ctx context.Context, userID int64, state models.ConversationState) error {
	if err := s.db.Set(ctx, stateKey(userID), state.String(), 0).Err(); err != nil {
		return fmt.Errorf("failed to persist state for user %d: %w", userID, err)
	}
	s.logger.Debugf("Set state for user %d: %s", userID, state)
	return nil
}

// GetPage gets a user's catalog page cursor, zero when unset.
func (s *UserStateService) GetPage(userID int64) int {
	key := fmt.Sprintf("page_%d", userID)
	if data, found := s.pages.Get(key); found {
		if page, ok := data.(int); ok {
			return page
		}
	}
	return 0
}

// SetPage sets a user's catalog page cursor.
func (s *UserStateService) SetPage(userID int64, page int) {
	key := fmt.Sprintf("page_%d", userID)
	s.pages.Set(key, page, cache.DefaultExpiration)
}
