// internal/workers/rate-intelligence/fetch-rate-quotes/models.go
package fetchratequotes

import "lane-workers/internal/models"

type Input struct {
	ConversationID string          `json:"conversationId"`
	Lane           models.LaneInfo `json:"lane"`
	UseLegacyPath  bool            `json:"useLegacyPath"`
}

type Output struct {
	Outcome models.RateQueryOutcome `json:"outcome"`
	HasData bool                    `json:"hasData"`
}
