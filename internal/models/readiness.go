// internal/models/readiness.go
package models

import "encoding/json"

// DataSource names one of the four independent asynchronous feeds that gate
// the recommendation action. The slot set is fixed; Report calls for any other
// name are rejected.
type DataSource string

const (
	SourceRateQuotes     DataSource = "rateQuotes"
	SourceSpotMarket     DataSource = "spotMarket"
	SourceHistoricalLane DataSource = "historicalLane"
	SourceChatInsights   DataSource = "chatInsights"
)

// DataSources lists the four slots in a fixed order.
var DataSources = []DataSource{
	SourceRateQuotes,
	SourceSpotMarket,
	SourceHistoricalLane,
	SourceChatInsights,
}

// ReadinessTier is the three-level gate controlling whether the recommendation
// action is exposed. Two low-value sources count the same as one high-value
// source; slots carry no priority.
type ReadinessTier string

const (
	TierAwaiting ReadinessTier = "awaiting"
	TierLimited  ReadinessTier = "limited"
	TierReady    ReadinessTier = "ready"
)

// SlotStatus is one slot of the collection status.
type SlotStatus struct {
	Available bool            `json:"available"`
	Payload   json.RawMessage `json:"payload"`
}

// DataCollectionStatus aggregates the four slots. Clearing resets all four
// atomically.
type DataCollectionStatus struct {
	RateQuotes     SlotStatus `json:"rateQuotes"`
	SpotMarket     SlotStatus `json:"spotMarket"`
	HistoricalLane SlotStatus `json:"historicalLane"`
	ChatInsights   SlotStatus `json:"chatInsights"`
}

// Slot returns the named slot; ok is false for unknown names.
func (s *DataCollectionStatus) Slot(source DataSource) (SlotStatus, bool) {
	switch source {
	case SourceRateQuotes:
		return s.RateQuotes, true
	case SourceSpotMarket:
		return s.SpotMarket, true
	case SourceHistoricalLane:
		return s.HistoricalLane, true
	case SourceChatInsights:
		return s.ChatInsights, true
	}
	return SlotStatus{}, false
}

// SetSlot overwrites the named slot; ok is false for unknown names.
func (s *DataCollectionStatus) SetSlot(source DataSource, slot SlotStatus) bool {
	switch source {
	case SourceRateQuotes:
		s.RateQuotes = slot
	case SourceSpotMarket:
		s.SpotMarket = slot
	case SourceHistoricalLane:
		s.HistoricalLane = slot
	case SourceChatInsights:
		s.ChatInsights = slot
	default:
		return false
	}
	return true
}

// AvailableCount counts slots with data.
func (s *DataCollectionStatus) AvailableCount() int {
	count := 0
	for _, src := range DataSources {
		if slot, _ := s.Slot(src); slot.Available {
			count++
		}
	}
	return count
}

// Tier computes the readiness tier from the available-slot count.
func (s *DataCollectionStatus) Tier() ReadinessTier {
	switch count := s.AvailableCount(); {
	case count == 0:
		return TierAwaiting
	case count == 1:
		return TierLimited
	default:
		return TierReady
	}
}
