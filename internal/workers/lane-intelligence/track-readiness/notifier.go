// internal/workers/lane-intelligence/track-readiness/notifier.go
package trackreadiness

import (
	"context"
	"encoding/json"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"lane-workers/internal/common/aws"
	"lane-workers/internal/models"
)

// SNSTierNotifier publishes tier transitions to an SNS topic so ops dashboards
// and the chat frontend can react without polling.
type SNSTierNotifier struct {
	client   *aws.SNSClient
	topicARN string
}

func NewSNSTierNotifier(client *aws.SNSClient, topicARN string) *SNSTierNotifier {
	return &SNSTierNotifier{client: client, topicARN: topicARN}
}

type tierChangeEvent struct {
	ConversationID string `json:"conversationId"`
	PreviousTier   string `json:"previousTier"`
	CurrentTier    string `json:"currentTier"`
	Timestamp      string `json:"timestamp"`
}

func (n *SNSTierNotifier) PublishTierChange(ctx context.Context, conversationID string, previous, current models.ReadinessTier) error {
	event := tierChangeEvent{
		ConversationID: conversationID,
		PreviousTier:   string(previous),
		CurrentTier:    string(current),
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	_, err = n.client.Publish(ctx, &sns.PublishInput{
		TopicArn: awssdk.String(n.topicARN),
		Subject:  awssdk.String("readiness-tier-change"),
		Message:  awssdk.String(string(payload)),
	})
	return err
}
