// internal/lane/rates/reduction.go
package rates

import (
	apperrors "lane-workers/internal/common/errors"
	"lane-workers/internal/lane/match"
	"lane-workers/internal/models"
)

// Reduce derives the two decision-ready outcomes from a flat record set.
// Cheapest is the record with the globally minimum valid cost (present and
// > 0). When preferredCarrier is non-empty it is matched against each record's
// carrier with the shared containment rule; the minimum-cost valid match wins.
// A preferred carrier with no valid-cost match yields a soft CarrierNotFound
// error; cheapest is still returned (partial success).
func Reduce(records []models.RateRecord, preferredCarrier string) (cheapest, preferred *models.RateRecord, softErr *apperrors.StandardError) {
	for i := range records {
		if !records[i].HasValidCost() {
			continue
		}
		if cheapest == nil || *records[i].Cost < *cheapest.Cost {
			cheapest = &records[i]
		}
		if preferredCarrier != "" && match.Carrier(preferredCarrier, records[i].Carrier) {
			if preferred == nil || *records[i].Cost < *preferred.Cost {
				preferred = &records[i]
			}
		}
	}

	if preferredCarrier != "" && preferred == nil {
		softErr = apperrors.NewCarrierNotFoundError(preferredCarrier)
	}
	return cheapest, preferred, softErr
}
