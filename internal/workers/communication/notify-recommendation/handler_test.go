// internal/workers/communication/notify-recommendation/handler_test.go
package notifyrecommendation

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "lane-workers/internal/common/errors"
	"lane-workers/internal/common/logger"
)

type fakeEmailSender struct {
	inputs []*ses.SendEmailInput
	err    error
}

func (f *fakeEmailSender) SendEmail(_ context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.inputs = append(f.inputs, input)
	return &ses.SendEmailOutput{}, nil
}

type fakeSMSSender struct {
	inputs []*sns.PublishInput
	err    error
}

func (f *fakeSMSSender) Publish(_ context.Context, input *sns.PublishInput) (*sns.PublishOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.inputs = append(f.inputs, input)
	return &sns.PublishOutput{}, nil
}

func newTestHandler(t *testing.T, email *fakeEmailSender, sms *fakeSMSSender) *Handler {
	t.Helper()
	config := LoadConfig()
	service := NewService(config, email, sms, logger.NewTestLogger(t))
	return NewHandler(config, service, logger.NewTestLogger(t))
}

func testInput() *Input {
	return &Input{
		ConversationID: "conv-1",
		To:             "broker@example.com",
		LaneName:       "Chicago to Miami",
		Narrative:      "Book XPO at $250; ODFL is the reliability pick at $300.",
		Confidence:     0.82,
		Tier:           "ready",
	}
}

func TestExecuteSendsEmail(t *testing.T) {
	email := &fakeEmailSender{}
	sms := &fakeSMSSender{}
	h := newTestHandler(t, email, sms)

	output, err := h.Execute(context.Background(), testInput())
	require.NoError(t, err)

	assert.True(t, output.Success)
	assert.Equal(t, []string{"email"}, output.Channels)
	assert.NotEmpty(t, output.MessageID)

	require.Len(t, email.inputs, 1)
	sent := email.inputs[0]
	assert.Equal(t, []string{"broker@example.com"}, sent.Destination.ToAddresses)
	assert.Contains(t, *sent.Message.Subject.Data, "Chicago to Miami")
	assert.Contains(t, *sent.Message.Body.Text.Data, "Book XPO")
	assert.Contains(t, *sent.Message.Body.Text.Data, "82%")
	assert.Empty(t, sms.inputs)
}

func TestExecuteSendsBothChannels(t *testing.T) {
	email := &fakeEmailSender{}
	sms := &fakeSMSSender{}
	h := newTestHandler(t, email, sms)

	input := testInput()
	input.PhoneNumber = "+13125550100"

	output, err := h.Execute(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, []string{"email", "sms"}, output.Channels)
	require.Len(t, sms.inputs, 1)
	assert.Equal(t, "+13125550100", *sms.inputs[0].PhoneNumber)
	assert.Contains(t, *sms.inputs[0].Message, "Chicago to Miami")
}

func TestExecuteSMSOnly(t *testing.T) {
	email := &fakeEmailSender{}
	sms := &fakeSMSSender{}
	h := newTestHandler(t, email, sms)

	input := testInput()
	input.To = ""
	input.PhoneNumber = "+13125550100"

	output, err := h.Execute(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, []string{"sms"}, output.Channels)
	assert.Empty(t, email.inputs)
}

func TestExecuteNoRecipientRejected(t *testing.T) {
	h := newTestHandler(t, &fakeEmailSender{}, &fakeSMSSender{})

	input := testInput()
	input.To = ""

	_, err := h.Execute(context.Background(), input)
	require.Error(t, err)
}

func TestExecuteInvalidEmailRejected(t *testing.T) {
	email := &fakeEmailSender{}
	h := newTestHandler(t, email, &fakeSMSSender{})

	input := testInput()
	input.To = "not-an-address"

	_, err := h.Execute(context.Background(), input)
	require.Error(t, err)
	assert.Empty(t, email.inputs)
}

func TestExecuteEmailFailure(t *testing.T) {
	email := &fakeEmailSender{err: errors.New("ses throttled")}
	h := newTestHandler(t, email, &fakeSMSSender{})

	_, err := h.Execute(context.Background(), testInput())
	require.Error(t, err)

	stdErr, ok := err.(*apperrors.StandardError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeNotificationSendFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}

func TestExecuteSMSFailureAfterEmailIsPartial(t *testing.T) {
	email := &fakeEmailSender{}
	sms := &fakeSMSSender{err: errors.New("sns unavailable")}
	h := newTestHandler(t, email, sms)

	input := testInput()
	input.PhoneNumber = "+13125550100"

	output, err := h.Execute(context.Background(), input)
	require.NoError(t, err, "email went out; sms failure must not fail the job")

	assert.True(t, output.Success)
	assert.Equal(t, []string{"email"}, output.Channels)
	assert.Contains(t, output.PartialFailure, "sns unavailable")
}
