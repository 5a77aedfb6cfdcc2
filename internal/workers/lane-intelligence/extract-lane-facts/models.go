// internal/workers/lane-intelligence/extract-lane-facts/models.go
package extractlanefacts

import "lane-workers/internal/models"

type Input struct {
	ConversationID string `json:"conversationId"`
	AnswerText     string `json:"answerText"`
}

type Output struct {
	Lane        models.LaneInfo `json:"lane"`
	HasCityPair bool            `json:"hasCityPair"`
}
