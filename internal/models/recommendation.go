// internal/models/recommendation.go
package models

// LaneSummary is the condensed lane view attached to a recommendation request.
type LaneSummary struct {
	LaneName         string `json:"laneName"`
	SourceCity       string `json:"sourceCity"`
	DestinationCity  string `json:"destinationCity"`
	EquipmentType    string `json:"equipmentType,omitempty"`
	ServiceType      string `json:"serviceType,omitempty"`
	PreferredCarrier string `json:"preferredCarrier,omitempty"`
}

// RecommendationRequest is the payload sent to the recommendation service:
// the full collection status plus the lane summary it was gathered for.
type RecommendationRequest struct {
	ConversationID string               `json:"conversationId"`
	Lane           LaneSummary          `json:"lane"`
	Collection     DataCollectionStatus `json:"collection"`
	Tier           ReadinessTier        `json:"tier"`
	// KnowledgeBaseID is the user's preferred knowledge base, passed through
	// as an opaque string when set.
	KnowledgeBaseID string `json:"knowledgeBaseId,omitempty"`
}

// RecommendationResponse is the service's answer. Rendering is out of scope;
// the narrative is passed through untouched.
type RecommendationResponse struct {
	Confidence float64 `json:"confidence"`
	Narrative  string  `json:"narrative"`
}
