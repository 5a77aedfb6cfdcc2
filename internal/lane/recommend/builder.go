// internal/lane/recommend/builder.go

// Package recommend composes and delivers the recommendation request once the
// readiness gate opens.
package recommend

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	apperrors "lane-workers/internal/common/errors"
	"lane-workers/internal/models"
)

// requestSchema guards the payload shape before it leaves the process. The
// recommendation service rejects malformed payloads with opaque 400s, so
// validating here keeps the failure diagnosable.
const requestSchema = `{
  "type": "object",
  "required": ["conversationId", "lane", "collection", "tier"],
  "properties": {
    "conversationId": {"type": "string", "minLength": 1},
    "lane": {
      "type": "object",
      "required": ["laneName", "sourceCity", "destinationCity"],
      "properties": {
        "laneName": {"type": "string", "minLength": 1},
        "sourceCity": {"type": "string", "minLength": 1},
        "destinationCity": {"type": "string", "minLength": 1}
      }
    },
    "collection": {"type": "object"},
    "tier": {"type": "string", "enum": ["limited", "ready"]}
  }
}`

// BuildRequest composes the collection status and lane summary into the
// request payload. The tier must have cleared the gate: awaiting lanes cannot
// request a recommendation.
func BuildRequest(
	conversationID string,
	lane models.LaneInfo,
	collection models.DataCollectionStatus,
) (*models.RecommendationRequest, error) {
	if !lane.HasCityPair() {
		return nil, apperrors.NewLaneValidationError("city pair required for a recommendation request")
	}

	tier := collection.Tier()
	if tier == models.TierAwaiting {
		return nil, apperrors.NewRecommendationError(
			fmt.Errorf("no data source available yet for %q", laneName(lane)))
	}

	req := &models.RecommendationRequest{
		ConversationID: conversationID,
		Lane: models.LaneSummary{
			LaneName:         laneName(lane),
			SourceCity:       lane.Source(),
			DestinationCity:  lane.Destination(),
			EquipmentType:    deref(lane.EquipmentType),
			ServiceType:      deref(lane.ServiceType),
			PreferredCarrier: lane.PreferredCarrier(),
		},
		Collection: collection,
		Tier:       tier,
	}

	if err := validateRequest(req); err != nil {
		return nil, apperrors.NewRecommendationError(err)
	}
	return req, nil
}

func validateRequest(req *models.RecommendationRequest) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal recommendation request: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(requestSchema),
		gojsonschema.NewBytesLoader(payload),
	)
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	if !result.Valid() {
		return fmt.Errorf("invalid recommendation request: %v", result.Errors())
	}
	return nil
}

func laneName(lane models.LaneInfo) string {
	if lane.LaneName != nil {
		return *lane.LaneName
	}
	return lane.Source() + " to " + lane.Destination()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
