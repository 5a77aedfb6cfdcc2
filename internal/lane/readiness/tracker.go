// internal/lane/readiness/tracker.go

// Package readiness aggregates the four independent data feeds of a
// conversation and computes the tier gating the recommendation action.
package readiness

import (
	"encoding/json"
	"sync"

	"lane-workers/internal/models"
)

// Observer is notified after a tier transition, outside the tracker lock.
type Observer func(previous, current models.ReadinessTier)

// Tracker holds one conversation's collection status. Reports from the four
// feeds arrive on worker goroutines, so updates are serialized with a mutex.
type Tracker struct {
	mu        sync.Mutex
	status    models.DataCollectionStatus
	tier      models.ReadinessTier
	observers []Observer
}

func NewTracker() *Tracker {
	return &Tracker{tier: models.TierAwaiting}
}

// NewTrackerFromStatus seeds a tracker from an existing collection status,
// e.g. one loaded from the per-conversation store. The tier is recomputed
// from the seeded slots, so observers only see transitions caused by
// subsequent reports.
func NewTrackerFromStatus(status models.DataCollectionStatus) *Tracker {
	return &Tracker{status: status, tier: status.Tier()}
}

// OnTierChange registers an observer for tier transitions. Registration is
// explicit; nothing in the pipeline rewrites another component's entry points.
func (t *Tracker) OnTierChange(obs Observer) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.observers = append(t.observers, obs)
}

// Report sets exactly one slot and recomputes the tier. Reports for unknown
// sources are ignored. Reporting is idempotent per slot: repeating the same
// arguments leaves state unchanged, differing arguments overwrite (last write
// wins). Report never fails; a feed that errored simply reports hasData=false
// or not at all.
func (t *Tracker) Report(source models.DataSource, payload json.RawMessage, hasData bool) models.ReadinessTier {
	t.mu.Lock()

	slot := models.SlotStatus{Available: hasData}
	if hasData {
		slot.Payload = payload
	}
	if !t.status.SetSlot(source, slot) {
		tier := t.tier
		t.mu.Unlock()
		return tier
	}

	previous := t.tier
	t.tier = t.status.Tier()
	current := t.tier
	observers := t.observers
	t.mu.Unlock()

	if current != previous {
		for _, obs := range observers {
			obs(previous, current)
		}
	}
	return current
}

// Reset clears all four slots atomically. The tier is always awaiting
// afterwards.
func (t *Tracker) Reset() {
	t.mu.Lock()

	t.status = models.DataCollectionStatus{}
	previous := t.tier
	t.tier = models.TierAwaiting
	observers := t.observers
	t.mu.Unlock()

	if previous != models.TierAwaiting {
		for _, obs := range observers {
			obs(previous, models.TierAwaiting)
		}
	}
}

// Snapshot returns a copy of the current status and tier.
func (t *Tracker) Snapshot() (models.DataCollectionStatus, models.ReadinessTier) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status, t.tier
}

// RecommendationVisible reports whether the recommendation action should be
// exposed: hidden at awaiting, shown at limited and ready.
func (t *Tracker) RecommendationVisible() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.tier != models.TierAwaiting
}
