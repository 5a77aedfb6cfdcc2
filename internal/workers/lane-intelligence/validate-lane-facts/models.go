// internal/workers/lane-intelligence/validate-lane-facts/models.go
package validatelanefacts

import "lane-workers/internal/models"

type Input struct {
	ConversationID string          `json:"conversationId"`
	Lane           models.LaneInfo `json:"lane"`
}

type Output struct {
	Valid    bool   `json:"valid"`
	LaneName string `json:"laneName"`
}
