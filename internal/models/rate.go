// internal/models/rate.go
package models

// RateRecord is one carrier's one rate option, flattened from the
// comprehensive rate document. Cost may be absent; such records are excluded
// from min/max reductions but still surfaced to the caller.
type RateRecord struct {
	Carrier          string   `json:"carrier"`
	TransportMode    string   `json:"transportMode"`
	Cost             *float64 `json:"cost"`
	Currency         string   `json:"currency"`
	Distance         *float64 `json:"distance"`
	DistanceUnit     string   `json:"distanceUnit"`
	TransitTimeHours *float64 `json:"transitTimeHours"`
	TransitTimeUnit  string   `json:"transitTimeUnit"`
	IsOptimal        bool     `json:"isOptimal"`
}

// HasValidCost reports whether the record participates in cost reductions.
func (r RateRecord) HasValidCost() bool {
	return r.Cost != nil && *r.Cost > 0
}

// RateQueryMetadata describes one orchestrated rate query.
type RateQueryMetadata struct {
	QueryID      string `json:"queryId"`
	TotalOptions int    `json:"totalOptions"`
	ElapsedMS    int64  `json:"elapsedMs"`
}

// RateQueryOutcome is the decision-ready result of a rate query.
//
// Error may be set alongside populated result fields: a missing preferred
// carrier is a partial success, not a failure, and Cheapest is still returned.
type RateQueryOutcome struct {
	Cheapest         *RateRecord       `json:"cheapest"`
	PreferredCarrier *RateRecord       `json:"preferredCarrier"`
	Error            string            `json:"error,omitempty"`
	AllRecords       []RateRecord      `json:"allRecords"`
	Metadata         RateQueryMetadata `json:"metadata"`
}
