// internal/models/query_types.go
package models

// HistoryQueryType selects a lane-history query in the postgres registry.
type HistoryQueryType string

const (
	HistoryQueryLaneStats    HistoryQueryType = "lane_stats"
	HistoryQueryLaneVolume   HistoryQueryType = "lane_volume"
	HistoryQueryCarrierPerf  HistoryQueryType = "carrier_performance"
	HistoryQueryRecentQuotes HistoryQueryType = "recent_quotes"
)

// LaneHistoryStats is the aggregate row returned by the lane_stats query.
type LaneHistoryStats struct {
	LaneName        string   `json:"laneName"`
	ShipmentCount   int      `json:"shipmentCount"`
	AvgCost         *float64 `json:"avgCost"`
	MinCost         *float64 `json:"minCost"`
	MaxCost         *float64 `json:"maxCost"`
	OnTimePct       *float64 `json:"onTimePct"`
	DistinctCarrier int      `json:"distinctCarriers"`
}

// CarrierPerformanceRow is one carrier's historical performance on a lane.
type CarrierPerformanceRow struct {
	Carrier       string   `json:"carrier"`
	ShipmentCount int      `json:"shipmentCount"`
	AvgCost       *float64 `json:"avgCost"`
	OnTimePct     *float64 `json:"onTimePct"`
}
