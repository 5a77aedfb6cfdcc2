// internal/lane/readiness/store_test.go
package readiness

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lane-workers/internal/common/database"
	"lane-workers/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewStore(&database.RedisClient{Client: client}, time.Hour)
}

func TestStoreLoadUnknownConversation(t *testing.T) {
	store := newTestStore(t)

	status, err := store.Load(context.Background(), "conv-unknown")
	require.NoError(t, err)
	assert.Equal(t, 0, status.AvailableCount())
	assert.Equal(t, models.TierAwaiting, status.Tier())
}

func TestStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	var status models.DataCollectionStatus
	status.SetSlot(models.SourceRateQuotes, models.SlotStatus{
		Available: true,
		Payload:   json.RawMessage(`{"cheapest":250}`),
	})
	status.SetSlot(models.SourceChatInsights, models.SlotStatus{Available: true})

	require.NoError(t, store.Save(ctx, "conv-1", status))

	loaded, err := store.Load(ctx, "conv-1")
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.AvailableCount())
	assert.Equal(t, models.TierReady, loaded.Tier())

	slot, ok := loaded.Slot(models.SourceRateQuotes)
	require.True(t, ok)
	assert.JSONEq(t, `{"cheapest":250}`, string(slot.Payload))
}

func TestStoreClear(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	var status models.DataCollectionStatus
	status.SetSlot(models.SourceSpotMarket, models.SlotStatus{Available: true})
	require.NoError(t, store.Save(ctx, "conv-1", status))

	require.NoError(t, store.Clear(ctx, "conv-1"))

	loaded, err := store.Load(ctx, "conv-1")
	require.NoError(t, err)
	assert.Equal(t, models.TierAwaiting, loaded.Tier())
}

func TestStoreConversationsAreIndependent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	var a models.DataCollectionStatus
	a.SetSlot(models.SourceRateQuotes, models.SlotStatus{Available: true})
	require.NoError(t, store.Save(ctx, "conv-a", a))

	loaded, err := store.Load(ctx, "conv-b")
	require.NoError(t, err)
	assert.Equal(t, models.TierAwaiting, loaded.Tier())
}
