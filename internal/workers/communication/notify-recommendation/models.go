// internal/workers/communication/notify-recommendation/models.go
package notifyrecommendation

import "time"

type Input struct {
	ConversationID string  `json:"conversationId"`
	To             string  `json:"to"`
	PhoneNumber    string  `json:"phoneNumber"`
	LaneName       string  `json:"laneName"`
	Narrative      string  `json:"narrative"`
	Confidence     float64 `json:"confidence"`
	Tier           string  `json:"tier"`
}

type Output struct {
	Success        bool      `json:"success"`
	MessageID      string    `json:"messageId"`
	Channels       []string  `json:"channels"`
	PartialFailure string    `json:"partialFailure,omitempty"`
	SentAt         time.Time `json:"sentAt"`
}
