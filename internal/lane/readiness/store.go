// internal/lane/readiness/store.go
package readiness

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"lane-workers/internal/common/database"
	"lane-workers/internal/models"
)

// Store persists per-conversation collection status in Redis so the four
// feeds, each running on its own worker, share one view of the conversation.
type Store struct {
	redis *database.RedisClient
	ttl   time.Duration
}

func NewStore(redisClient *database.RedisClient, ttl time.Duration) *Store {
	return &Store{redis: redisClient, ttl: ttl}
}

func statusKey(conversationID string) string {
	return "readiness:" + conversationID
}

// Load returns the conversation's status. An unknown conversation yields the
// zero status (all slots unavailable), not an error.
func (s *Store) Load(ctx context.Context, conversationID string) (models.DataCollectionStatus, error) {
	var status models.DataCollectionStatus
	err := s.redis.GetJSON(ctx, statusKey(conversationID), &status)
	if err == redis.Nil {
		return models.DataCollectionStatus{}, nil
	}
	if err != nil {
		return models.DataCollectionStatus{}, err
	}
	return status, nil
}

// Save overwrites the conversation's status.
func (s *Store) Save(ctx context.Context, conversationID string, status models.DataCollectionStatus) error {
	return s.redis.SetJSON(ctx, statusKey(conversationID), status, s.ttl)
}

// Clear removes the conversation's status, the persisted form of Reset.
func (s *Store) Clear(ctx context.Context, conversationID string) error {
	return s.redis.Del(ctx, statusKey(conversationID))
}
