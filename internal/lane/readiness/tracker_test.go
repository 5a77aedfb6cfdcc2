// internal/lane/readiness/tracker_test.go
package readiness

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"lane-workers/internal/models"
)

func TestTrackerTierProgression(t *testing.T) {
	tracker := NewTracker()

	_, tier := tracker.Snapshot()
	assert.Equal(t, models.TierAwaiting, tier)
	assert.False(t, tracker.RecommendationVisible())

	tier = tracker.Report(models.SourceRateQuotes, json.RawMessage(`{"cheapest":250}`), true)
	assert.Equal(t, models.TierLimited, tier)
	assert.True(t, tracker.RecommendationVisible())

	tier = tracker.Report(models.SourceSpotMarket, json.RawMessage(`{}`), true)
	assert.Equal(t, models.TierReady, tier)

	// Two of four slots is already ready; more only keeps it there.
	tier = tracker.Report(models.SourceChatInsights, json.RawMessage(`{}`), true)
	assert.Equal(t, models.TierReady, tier)
}

func TestTrackerUnreportDropsTier(t *testing.T) {
	tracker := NewTracker()
	tracker.Report(models.SourceRateQuotes, json.RawMessage(`{}`), true)
	tracker.Report(models.SourceHistoricalLane, json.RawMessage(`{}`), true)

	_, tier := tracker.Snapshot()
	assert.Equal(t, models.TierReady, tier)

	tier = tracker.Report(models.SourceHistoricalLane, nil, false)
	assert.Equal(t, models.TierLimited, tier)
}

func TestTrackerReportIsIdempotentPerSlot(t *testing.T) {
	tracker := NewTracker()
	payload := json.RawMessage(`{"rows":3}`)

	tracker.Report(models.SourceHistoricalLane, payload, true)
	before, tierBefore := tracker.Snapshot()

	tracker.Report(models.SourceHistoricalLane, payload, true)
	after, tierAfter := tracker.Snapshot()

	assert.Equal(t, before, after)
	assert.Equal(t, tierBefore, tierAfter)
}

func TestTrackerLastWriteWins(t *testing.T) {
	tracker := NewTracker()
	tracker.Report(models.SourceSpotMarket, json.RawMessage(`{"v":1}`), true)
	tracker.Report(models.SourceSpotMarket, json.RawMessage(`{"v":2}`), true)

	status, _ := tracker.Snapshot()
	slot, ok := status.Slot(models.SourceSpotMarket)
	assert.True(t, ok)
	assert.JSONEq(t, `{"v":2}`, string(slot.Payload))
}

func TestTrackerResetAlwaysAwaiting(t *testing.T) {
	tracker := NewTracker()
	for _, src := range models.DataSources {
		tracker.Report(src, json.RawMessage(`{}`), true)
	}

	tracker.Reset()

	status, tier := tracker.Snapshot()
	assert.Equal(t, models.TierAwaiting, tier)
	assert.Equal(t, 0, status.AvailableCount())
	assert.False(t, tracker.RecommendationVisible())
}

func TestTrackerIgnoresUnknownSource(t *testing.T) {
	tracker := NewTracker()
	tier := tracker.Report(models.DataSource("weather"), json.RawMessage(`{}`), true)

	assert.Equal(t, models.TierAwaiting, tier)
	status, _ := tracker.Snapshot()
	assert.Equal(t, 0, status.AvailableCount())
}

func TestTrackerSeededFromStatusResumesTier(t *testing.T) {
	var seed models.DataCollectionStatus
	seed.SetSlot(models.SourceRateQuotes, models.SlotStatus{Available: true})

	tracker := NewTrackerFromStatus(seed)

	_, tier := tracker.Snapshot()
	assert.Equal(t, models.TierLimited, tier)
	assert.True(t, tracker.RecommendationVisible())

	var transitions [][2]models.ReadinessTier
	tracker.OnTierChange(func(prev, cur models.ReadinessTier) {
		transitions = append(transitions, [2]models.ReadinessTier{prev, cur})
	})

	tracker.Report(models.SourceSpotMarket, json.RawMessage(`{}`), true)

	// seeding itself is not a transition; only the new report is
	assert.Equal(t, [][2]models.ReadinessTier{
		{models.TierLimited, models.TierReady},
	}, transitions)
}

func TestTrackerObserversFireOnTransitionOnly(t *testing.T) {
	tracker := NewTracker()

	var transitions [][2]models.ReadinessTier
	tracker.OnTierChange(func(prev, cur models.ReadinessTier) {
		transitions = append(transitions, [2]models.ReadinessTier{prev, cur})
	})

	tracker.Report(models.SourceRateQuotes, json.RawMessage(`{}`), true)   // awaiting -> limited
	tracker.Report(models.SourceRateQuotes, json.RawMessage(`{}`), true)   // no transition
	tracker.Report(models.SourceChatInsights, json.RawMessage(`{}`), true) // limited -> ready
	tracker.Reset()                                                        // ready -> awaiting

	assert.Equal(t, [][2]models.ReadinessTier{
		{models.TierAwaiting, models.TierLimited},
		{models.TierLimited, models.TierReady},
		{models.TierReady, models.TierAwaiting},
	}, transitions)
}
