// internal/workers/lane-intelligence/track-readiness/models.go
package trackreadiness

import (
	"encoding/json"

	"lane-workers/internal/models"
)

type Input struct {
	ConversationID string          `json:"conversationId"`
	Source         string          `json:"source"`
	Payload        json.RawMessage `json:"payload"`
	HasData        bool            `json:"hasData"`
	Reset          bool            `json:"reset"`
}

type Output struct {
	Tier                  models.ReadinessTier        `json:"tier"`
	AvailableCount        int                         `json:"availableCount"`
	RecommendationVisible bool                        `json:"recommendationVisible"`
	Collection            models.DataCollectionStatus `json:"collection"`
}
