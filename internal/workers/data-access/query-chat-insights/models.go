// internal/workers/data-access/query-chat-insights/models.go
package querychatinsights

type Input struct {
	ConversationID  string `json:"conversationId"`
	LaneName        string `json:"laneName"`
	SourceCity      string `json:"sourceCity"`
	DestinationCity string `json:"destinationCity"`
	Carrier         string `json:"carrier"`
	Limit           int    `json:"limit"`
}

type Output struct {
	Insights  []map[string]interface{} `json:"insights"`
	TotalHits int64                    `json:"totalHits"`
	MaxScore  float64                  `json:"maxScore"`
	Took      int64                    `json:"took"`
	HasData   bool                     `json:"hasData"`
}
