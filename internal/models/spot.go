// internal/models/spot.go
package models

// SpotMatrixEntry is one carrier's row in the carrier×date spot-rate grid.
// PerDateCost is sparse: a carrier with no sample for a date simply has no key.
type SpotMatrixEntry struct {
	Carrier     string             `json:"carrier"`
	PerDateCost map[string]float64 `json:"perDateCost"`
}

// SpotCell identifies a single (carrier, date, cost) sample.
type SpotCell struct {
	Carrier string  `json:"carrier"`
	Date    string  `json:"date"`
	Cost    float64 `json:"cost"`
}

// CarrierAverage is a carrier's row average over the dates it actually has.
type CarrierAverage struct {
	Carrier     string  `json:"carrier"`
	AverageCost float64 `json:"averageCost"`
	SampleCount int     `json:"sampleCount"`
}

// SpotMatrixSummary is the aggregate view of a spot matrix.
// Dates is the sorted union of every date appearing in any entry.
type SpotMatrixSummary struct {
	Dates                    []string         `json:"dates"`
	MinCostEntry             *SpotCell        `json:"minCostEntry"`
	MaxCostEntry             *SpotCell        `json:"maxCostEntry"`
	MeanCost                 float64          `json:"meanCost"`
	CarrierAverages          []CarrierAverage `json:"carrierAverages"`
	PreferredCarrierBestCost *SpotCell        `json:"preferredCarrierBestCost,omitempty"`
}
