// internal/workers/lane-intelligence/generate-recommendation/handler_test.go
package generaterecommendation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "lane-workers/internal/common/errors"
	"lane-workers/internal/common/database"
	commonhttp "lane-workers/internal/common/http"
	"lane-workers/internal/common/logger"
	"lane-workers/internal/lane/prefs"
	"lane-workers/internal/lane/readiness"
	"lane-workers/internal/lane/recommend"
	"lane-workers/internal/models"
)

func newTestHandler(t *testing.T, serverURL string) (*Handler, *readiness.Store, *prefs.Store) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	redisClient := &database.RedisClient{Client: client}
	store := readiness.NewStore(redisClient, time.Hour)
	prefStore := prefs.NewStore(redisClient)

	recClient := recommend.NewClient(commonhttp.NewClient(5*time.Second), serverURL, logger.NewTestLogger(t))
	return NewHandler(LoadConfig(), store, prefStore, recClient, logger.NewTestLogger(t)), store, prefStore
}

func testLane() models.LaneInfo {
	return models.LaneInfo{
		SourceCity:      models.StringPtr("Chicago"),
		DestinationCity: models.StringPtr("Miami"),
		LaneName:        models.StringPtr("Chicago to Miami"),
		CarrierName:     models.StringPtr("ODFL"),
	}
}

func TestExecuteGeneratesRecommendation(t *testing.T) {
	var captured models.RecommendationRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/recommendations", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_ = json.NewEncoder(w).Encode(models.RecommendationResponse{
			Confidence: 0.82,
			Narrative:  "Book XPO for the cheapest option; ODFL for reliability.",
		})
	}))
	defer server.Close()

	h, store, _ := newTestHandler(t, server.URL)
	ctx := context.Background()

	var status models.DataCollectionStatus
	status.SetSlot(models.SourceRateQuotes, models.SlotStatus{Available: true})
	status.SetSlot(models.SourceSpotMarket, models.SlotStatus{Available: true})
	require.NoError(t, store.Save(ctx, "conv-1", status))

	output, err := h.Execute(ctx, &Input{ConversationID: "conv-1", Lane: testLane()})
	require.NoError(t, err)

	assert.Equal(t, 0.82, output.Confidence)
	assert.Contains(t, output.Narrative, "XPO")
	assert.Equal(t, models.TierReady, output.Tier)

	assert.Equal(t, "conv-1", captured.ConversationID)
	assert.Equal(t, "Chicago to Miami", captured.Lane.LaneName)
	assert.Equal(t, "ODFL", captured.Lane.PreferredCarrier)
	assert.Equal(t, models.TierReady, captured.Tier)
}

func TestExecuteLimitedTierPassesGate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(models.RecommendationResponse{Confidence: 0.4, Narrative: "partial data"})
	}))
	defer server.Close()

	h, store, _ := newTestHandler(t, server.URL)
	ctx := context.Background()

	var status models.DataCollectionStatus
	status.SetSlot(models.SourceChatInsights, models.SlotStatus{Available: true})
	require.NoError(t, store.Save(ctx, "conv-1", status))

	output, err := h.Execute(ctx, &Input{ConversationID: "conv-1", Lane: testLane()})
	require.NoError(t, err)
	assert.Equal(t, models.TierLimited, output.Tier)
}

func TestExecuteAwaitingTierRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("service must not be called for an awaiting conversation")
	}))
	defer server.Close()

	h, _, _ := newTestHandler(t, server.URL)

	_, err := h.Execute(context.Background(), &Input{ConversationID: "conv-1", Lane: testLane()})
	require.Error(t, err)

	stdErr, ok := err.(*apperrors.StandardError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeRecommendationFailed, stdErr.Code)
}

func TestExecuteMissingCityPairRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("service must not be called without a city pair")
	}))
	defer server.Close()

	h, store, _ := newTestHandler(t, server.URL)
	ctx := context.Background()

	var status models.DataCollectionStatus
	status.SetSlot(models.SourceRateQuotes, models.SlotStatus{Available: true})
	require.NoError(t, store.Save(ctx, "conv-1", status))

	_, err := h.Execute(ctx, &Input{
		ConversationID: "conv-1",
		Lane:           models.LaneInfo{SourceCity: models.StringPtr("Chicago")},
	})
	require.Error(t, err)

	stdErr, ok := err.(*apperrors.StandardError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeLaneValidationFailed, stdErr.Code)
}

func TestExecuteAttachesPreferredKnowledgeBase(t *testing.T) {
	var captured models.RecommendationRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_ = json.NewEncoder(w).Encode(models.RecommendationResponse{Confidence: 0.7, Narrative: "ok"})
	}))
	defer server.Close()

	h, store, prefStore := newTestHandler(t, server.URL)
	ctx := context.Background()

	require.NoError(t, prefStore.SetPreferredKnowledgeBaseID(ctx, "kb-42"))

	var status models.DataCollectionStatus
	status.SetSlot(models.SourceRateQuotes, models.SlotStatus{Available: true})
	require.NoError(t, store.Save(ctx, "conv-1", status))

	_, err := h.Execute(ctx, &Input{ConversationID: "conv-1", Lane: testLane()})
	require.NoError(t, err)
	assert.Equal(t, "kb-42", captured.KnowledgeBaseID)
}

func TestExecuteServiceFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	h, store, _ := newTestHandler(t, server.URL)
	ctx := context.Background()

	var status models.DataCollectionStatus
	status.SetSlot(models.SourceRateQuotes, models.SlotStatus{Available: true})
	require.NoError(t, store.Save(ctx, "conv-1", status))

	_, err := h.Execute(ctx, &Input{ConversationID: "conv-1", Lane: testLane()})
	require.Error(t, err)

	stdErr, ok := err.(*apperrors.StandardError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeRecommendationFailed, stdErr.Code)
}
