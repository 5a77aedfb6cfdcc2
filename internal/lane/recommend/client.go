// internal/lane/recommend/client.go
package recommend

import (
	"context"

	apperrors "lane-workers/internal/common/errors"
	commonhttp "lane-workers/internal/common/http"
	"lane-workers/internal/common/logger"
	"lane-workers/internal/models"
)

// Client calls the recommendation-generation service.
type Client struct {
	http    *commonhttp.Client
	baseURL string
	logger  logger.Logger
}

func NewClient(httpClient *commonhttp.Client, baseURL string, log logger.Logger) *Client {
	return &Client{http: httpClient, baseURL: baseURL, logger: log}
}

// Generate sends a built request and returns the confidence score and
// narrative. Rendering the narrative is the caller's concern.
func (c *Client) Generate(ctx context.Context, req *models.RecommendationRequest) (*models.RecommendationResponse, error) {
	var resp models.RecommendationResponse
	if err := c.http.PostJSON(ctx, c.baseURL+"/recommendations", req, &resp); err != nil {
		c.logger.Error("recommendation generation failed", map[string]interface{}{
			"conversationId": req.ConversationID,
			"error":          err.Error(),
		})
		return nil, apperrors.NewRecommendationError(err)
	}

	c.logger.Info("recommendation generated", map[string]interface{}{
		"conversationId": req.ConversationID,
		"confidence":     resp.Confidence,
	})
	return &resp, nil
}
