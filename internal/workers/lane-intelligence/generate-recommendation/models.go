// internal/workers/lane-intelligence/generate-recommendation/models.go
package generaterecommendation

import "lane-workers/internal/models"

type Input struct {
	ConversationID string          `json:"conversationId"`
	Lane           models.LaneInfo `json:"lane"`
}

type Output struct {
	Confidence float64              `json:"confidence"`
	Narrative  string               `json:"narrative"`
	Tier       models.ReadinessTier `json:"tier"`
}
