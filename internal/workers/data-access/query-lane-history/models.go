// internal/workers/data-access/query-lane-history/models.go
package querylanehistory

type Input struct {
	ConversationID string `json:"conversationId"`
	QueryType      string `json:"queryType"`
	LaneName       string `json:"laneName"`
	Months         int    `json:"months"`
	Limit          int    `json:"limit"`
}

type Output struct {
	Data               interface{} `json:"data"`
	RowCount           int         `json:"rowCount"`
	QueryExecutionTime int64       `json:"queryExecutionTime"`
	HasData            bool        `json:"hasData"`
}
