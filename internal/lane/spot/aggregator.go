// internal/lane/spot/aggregator.go

// Package spot builds and summarizes the sparse carrier×date spot-rate grid.
package spot

import (
	"sort"

	"lane-workers/internal/lane/match"
	"lane-workers/internal/models"
)

// Summarize reduces a set of carrier rows to the aggregate view. Dates is the
// sorted union of every date key across all rows. A missing cell counts as
// unavailable: it is excluded from its carrier's average and from the global
// scans, while the date itself stays in the union because another carrier has
// it. PreferredCarrierBestCost is filled only when preferredCarrier is
// non-empty, using the same matching rule as the rate reduction.
func Summarize(entries []models.SpotMatrixEntry, preferredCarrier string) models.SpotMatrixSummary {
	summary := models.SpotMatrixSummary{
		Dates:           dateUnion(entries),
		CarrierAverages: make([]models.CarrierAverage, 0, len(entries)),
	}

	var totalCost float64
	var totalSamples int

	for _, entry := range entries {
		var rowSum float64
		rowCount := 0

		for date, cost := range entry.PerDateCost {
			rowSum += cost
			rowCount++
			totalCost += cost
			totalSamples++

			cell := models.SpotCell{Carrier: entry.Carrier, Date: date, Cost: cost}
			if summary.MinCostEntry == nil || cost < summary.MinCostEntry.Cost {
				c := cell
				summary.MinCostEntry = &c
			}
			if summary.MaxCostEntry == nil || cost > summary.MaxCostEntry.Cost {
				c := cell
				summary.MaxCostEntry = &c
			}

			if preferredCarrier != "" && match.Carrier(preferredCarrier, entry.Carrier) {
				if summary.PreferredCarrierBestCost == nil || cost < summary.PreferredCarrierBestCost.Cost {
					c := cell
					summary.PreferredCarrierBestCost = &c
				}
			}
		}

		if rowCount > 0 {
			summary.CarrierAverages = append(summary.CarrierAverages, models.CarrierAverage{
				Carrier:     entry.Carrier,
				AverageCost: rowSum / float64(rowCount),
				SampleCount: rowCount,
			})
		}
	}

	if totalSamples > 0 {
		summary.MeanCost = totalCost / float64(totalSamples)
	}
	return summary
}

func dateUnion(entries []models.SpotMatrixEntry) []string {
	seen := map[string]bool{}
	for _, entry := range entries {
		for date := range entry.PerDateCost {
			seen[date] = true
		}
	}

	dates := make([]string, 0, len(seen))
	for date := range seen {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates
}
