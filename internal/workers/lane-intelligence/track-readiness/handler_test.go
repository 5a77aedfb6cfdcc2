// internal/workers/lane-intelligence/track-readiness/handler_test.go
package trackreadiness

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
	"lane-workers/internal/common/logger"
	"lane-workers/internal/lane/readiness"
	"lane-workers/internal/models"
)

type recordingNotifier struct {
	events []string
}

func (n *recordingNotifier) PublishTierChange(_ context.Context, conversationID string, previous, current models.ReadinessTier) error {
	n.events = append(n.events, conversationID+":"+string(previous)+">"+string(current))
	return nil
}

func newTestHandler(t *testing.T) (*Handler, *recordingNotifier) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := readiness.NewStore(&database.RedisClient{Client: client}, time.Hour)
	notifier := &recordingNotifier{}
	return NewHandler(LoadConfig(), store, notifier, logger.NewTestLogger(t)), notifier
}

func TestExecuteFirstReportReachesLimited(t *testing.T) {
	h, notifier := newTestHandler(t)

	output, err := h.Execute(context.Background(), &Input{
		ConversationID: "conv-1",
		Source:         string(models.SourceRateQuotes),
		Payload:        json.RawMessage(`{"cheapest":250}`),
		HasData:        true,
	})
	require.NoError(t, err)

	assert.Equal(t, models.TierLimited, output.Tier)
	assert.Equal(t, 1, output.AvailableCount)
	assert.True(t, output.RecommendationVisible)
	assert.Equal(t, []string{"conv-1:awaiting>limited"}, notifier.events)
}

func TestExecuteSecondSourceReachesReady(t *testing.T) {
	h, notifier := newTestHandler(t)
	ctx := context.Background()

	_, err := h.Execute(ctx, &Input{
		ConversationID: "conv-1",
		Source:         string(models.SourceRateQuotes),
		HasData:        true,
	})
	require.NoError(t, err)

	output, err := h.Execute(ctx, &Input{
		ConversationID: "conv-1",
		Source:         string(models.SourceSpotMarket),
		HasData:        true,
	})
	require.NoError(t, err)

	assert.Equal(t, models.TierReady, output.Tier)
	assert.Equal(t, 2, output.AvailableCount)
	assert.Len(t, notifier.events, 2)
}

func TestExecuteRepeatedReportDoesNotNotifyAgain(t *testing.T) {
	h, notifier := newTestHandler(t)
	ctx := context.Background()

	input := &Input{
		ConversationID: "conv-1",
		Source:         string(models.SourceChatInsights),
		HasData:        true,
	}
	_, err := h.Execute(ctx, input)
	require.NoError(t, err)
	_, err = h.Execute(ctx, input)
	require.NoError(t, err)

	assert.Len(t, notifier.events, 1)
}

func TestExecuteUnReportDropsTier(t *testing.T) {
	h, notifier := newTestHandler(t)
	ctx := context.Background()

	_, err := h.Execute(ctx, &Input{
		ConversationID: "conv-1",
		Source:         string(models.SourceHistoricalLane),
		HasData:        true,
	})
	require.NoError(t, err)

	output, err := h.Execute(ctx, &Input{
		ConversationID: "conv-1",
		Source:         string(models.SourceHistoricalLane),
		HasData:        false,
	})
	require.NoError(t, err)

	assert.Equal(t, models.TierAwaiting, output.Tier)
	assert.False(t, output.RecommendationVisible)
	assert.Equal(t, []string{
		"conv-1:awaiting>limited",
		"conv-1:limited>awaiting",
	}, notifier.events)
}

func TestExecuteUnknownSourceIgnored(t *testing.T) {
	h, _ := newTestHandler(t)

	output, err := h.Execute(context.Background(), &Input{
		ConversationID: "conv-1",
		Source:         "weatherFeed",
		HasData:        true,
	})
	require.NoError(t, err)
	assert.Equal(t, models.TierAwaiting, output.Tier)
	assert.Equal(t, 0, output.AvailableCount)
}

func TestExecuteReset(t *testing.T) {
	h, _ := newTestHandler(t)
	ctx := context.Background()

	for _, source := range []models.DataSource{models.SourceRateQuotes, models.SourceSpotMarket} {
		_, err := h.Execute(ctx, &Input{
			ConversationID: "conv-1",
			Source:         string(source),
			HasData:        true,
		})
		require.NoError(t, err)
	}

	output, err := h.Execute(ctx, &Input{ConversationID: "conv-1", Reset: true})
	require.NoError(t, err)
	assert.Equal(t, models.TierAwaiting, output.Tier)

	// reset also clears the persisted status
	loaded, err := h.Execute(ctx, &Input{
		ConversationID: "conv-1",
		Source:         string(models.SourceChatInsights),
		HasData:        true,
	})
	require.NoError(t, err)
	assert.Equal(t, models.TierLimited, loaded.Tier)
	assert.Equal(t, 1, loaded.AvailableCount)
}

func TestExecuteStatusIsPersistedPerConversation(t *testing.T) {
	h, _ := newTestHandler(t)
	ctx := context.Background()

	_, err := h.Execute(ctx, &Input{
		ConversationID: "conv-a",
		Source:         string(models.SourceRateQuotes),
		HasData:        true,
	})
	require.NoError(t, err)

	output, err := h.Execute(ctx, &Input{
		ConversationID: "conv-b",
		Source:         string(models.SourceSpotMarket),
		HasData:        true,
	})
	require.NoError(t, err)
	assert.Equal(t, models.TierLimited, output.Tier)
	assert.Equal(t, 1, output.AvailableCount)
}

func TestExecuteRequiresConversationID(t *testing.T) {
	h, _ := newTestHandler(t)

	_, err := h.Execute(context.Background(), &Input{Source: string(models.SourceRateQuotes)})
	require.Error(t, err)
}
