// internal/lane/prefs/store.go

// Package prefs persists the single user preference that outlives the
// process: the preferred knowledge-base id. It is an opaque string here.
package prefs

import (
	"context"

	"github.com/redis/go-redis/v9"

	apperrors "lane-workers/internal/common/errors"
	"lane-workers/internal/common/database"
)

const preferredKBKey = "prefs:preferred_knowledge_base_id"

type Store struct {
	redis *database.RedisClient
}

func NewStore(redisClient *database.RedisClient) *Store {
	return &Store{redis: redisClient}
}

// GetPreferredKnowledgeBaseID returns the stored id, or "" when none is set.
func (s *Store) GetPreferredKnowledgeBaseID(ctx context.Context) (string, error) {
	id, err := s.redis.Get(ctx, preferredKBKey)
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", apperrors.NewPreferenceStoreError(err)
	}
	return id, nil
}

// SetPreferredKnowledgeBaseID stores the id without expiry.
func (s *Store) SetPreferredKnowledgeBaseID(ctx context.Context, id string) error {
	if err := s.redis.Set(ctx, preferredKBKey, id, 0); err != nil {
		return apperrors.NewPreferenceStoreError(err)
	}
	return nil
}

// ClearPreferredKnowledgeBaseID removes the preference.
func (s *Store) ClearPreferredKnowledgeBaseID(ctx context.Context) error {
	if err := s.redis.Del(ctx, preferredKBKey); err != nil {
		return apperrors.NewPreferenceStoreError(err)
	}
	return nil
}
