// internal/workers/rate-intelligence/build-spot-matrix/models.go
package buildspotmatrix

import "lane-workers/internal/models"

type Input struct {
	ConversationID string          `json:"conversationId"`
	Lane           models.LaneInfo `json:"lane"`
	StartDate      string          `json:"startDate"`
}

type Output struct {
	Summary models.SpotMatrixSummary `json:"summary"`
	HasData bool                     `json:"hasData"`
}
