// internal/lane/prefs/store_test.go
package prefs

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	redismock "github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "lane-workers/internal/common/errors"
	"lane-workers/internal/common/database"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewStore(&database.RedisClient{Client: client})
}

func TestPreferredKnowledgeBaseIDRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.GetPreferredKnowledgeBaseID(ctx)
	require.NoError(t, err)
	assert.Empty(t, id, "unset preference reads as empty, not as an error")

	require.NoError(t, store.SetPreferredKnowledgeBaseID(ctx, "kb-42"))

	id, err = store.GetPreferredKnowledgeBaseID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "kb-42", id)

	require.NoError(t, store.ClearPreferredKnowledgeBaseID(ctx))

	id, err = store.GetPreferredKnowledgeBaseID(ctx)
	require.NoError(t, err)
	assert.Empty(t, id)
}

func TestPreferredKnowledgeBaseIDOverwrite(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetPreferredKnowledgeBaseID(ctx, "kb-1"))
	require.NoError(t, store.SetPreferredKnowledgeBaseID(ctx, "kb-2"))

	id, err := store.GetPreferredKnowledgeBaseID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "kb-2", id)
}

func TestGetPreferredKnowledgeBaseIDStoreError(t *testing.T) {
	client, mock := redismock.NewClientMock()
	mock.ExpectGet(preferredKBKey).SetErr(errors.New("connection lost"))

	store := NewStore(&database.RedisClient{Client: client})
	_, err := store.GetPreferredKnowledgeBaseID(context.Background())
	require.Error(t, err)

	stdErr, ok := err.(*apperrors.StandardError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodePreferenceStoreFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
	require.NoError(t, mock.ExpectationsWereMet())
}
