// internal/workers/communication/notify-recommendation/service.go
package notifyrecommendation

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/google/uuid"

	apperrors "lane-workers/internal/common/errors"
	"lane-workers/internal/common/logger"
)

// EmailSender is the slice of the SES client this worker needs.
type EmailSender interface {
	SendEmail(ctx context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error)
}

// SMSSender is the slice of the SNS client this worker needs.
type SMSSender interface {
	Publish(ctx context.Context, input *sns.PublishInput) (*sns.PublishOutput, error)
}

type Service struct {
	config *Config
	email  EmailSender
	sms    SMSSender
	logger logger.Logger
}

func NewService(config *Config, email EmailSender, sms SMSSender, log logger.Logger) *Service {
	return &Service{
		config: config,
		email:  email,
		sms:    sms,
		logger: log,
	}
}

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func (s *Service) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input.To == "" && input.PhoneNumber == "" {
		return nil, apperrors.NewLaneValidationError("at least one of to or phoneNumber is required")
	}

	output := &Output{
		MessageID: uuid.New().String(),
		SentAt:    time.Now().UTC(),
	}

	if input.To != "" {
		if !emailRe.MatchString(strings.TrimSpace(input.To)) {
			return nil, apperrors.NewLaneValidationError(
				fmt.Sprintf("invalid recipient address: %s", input.To))
		}
		if err := s.sendEmail(ctx, input); err != nil {
			return nil, apperrors.NewNotificationSendFailedError("email", err)
		}
		output.Channels = append(output.Channels, "email")
	}

	if input.PhoneNumber != "" {
		if err := s.sendSMS(ctx, input); err != nil {
			// email already went out; an SMS failure downgrades to partial
			if len(output.Channels) > 0 {
				s.logger.Warn("sms delivery failed after email succeeded", map[string]interface{}{
					"conversationId": input.ConversationID,
					"error":          err.Error(),
				})
				output.PartialFailure = fmt.Sprintf("sms: %v", err)
			} else {
				return nil, apperrors.NewNotificationSendFailedError("sms", err)
			}
		} else {
			output.Channels = append(output.Channels, "sms")
		}
	}

	output.Success = true
	s.logger.Info("recommendation notification sent", map[string]interface{}{
		"conversationId": input.ConversationID,
		"messageId":      output.MessageID,
		"channels":       output.Channels,
	})
	return output, nil
}

func (s *Service) sendEmail(ctx context.Context, input *Input) error {
	subject := fmt.Sprintf("Lane recommendation: %s", input.LaneName)
	body := s.renderEmailBody(input)

	_, err := s.email.SendEmail(ctx, &ses.SendEmailInput{
		Source: awssdk.String(s.config.FromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{input.To},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: awssdk.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: awssdk.String(body)},
			},
		},
	})
	return err
}

func (s *Service) sendSMS(ctx context.Context, input *Input) error {
	message := fmt.Sprintf("Lane recommendation for %s (confidence %.0f%%): %s",
		input.LaneName, input.Confidence*100, truncate(input.Narrative, 120))

	_, err := s.sms.Publish(ctx, &sns.PublishInput{
		PhoneNumber: awssdk.String(input.PhoneNumber),
		Message:     awssdk.String(message),
	})
	return err
}

func (s *Service) renderEmailBody(input *Input) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Lane: %s\n", input.LaneName)
	fmt.Fprintf(&b, "Data tier: %s\n", input.Tier)
	fmt.Fprintf(&b, "Confidence: %.0f%%\n\n", input.Confidence*100)
	b.WriteString(input.Narrative)
	b.WriteString("\n")
	return b.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
