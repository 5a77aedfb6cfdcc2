// internal/common/camunda/client_test.go
package camunda

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "lane-workers/internal/common/errors"
)

func testClient() *Client {
	return &Client{
		config: &ClientConfig{
			ConnectionTimeout: time.Second,
			RetryConfig: &RetryConfig{
				MaxRetries: 2,
				BaseDelay:  time.Millisecond,
				MaxDelay:   5 * time.Millisecond,
			},
		},
	}
}

func TestExecuteWithRetryRecoversFromTransientError(t *testing.T) {
	calls := 0
	result, err := testClient().ExecuteWithRetry(context.Background(),
		func(ctx context.Context) (interface{}, error) {
			calls++
			if calls < 3 {
				return nil, errors.New("connection refused")
			}
			return "ok", nil
		}, "deploy")

	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 3, calls)
}

func TestExecuteWithRetryStopsOnPermanentError(t *testing.T) {
	calls := 0
	_, err := testClient().ExecuteWithRetry(context.Background(),
		func(ctx context.Context) (interface{}, error) {
			calls++
			return nil, errors.New("job not found")
		}, "complete-job")

	require.Error(t, err)
	assert.Equal(t, 1, calls, "permanent errors must not be retried")

	stdErr, ok := err.(*apperrors.StandardError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorCode("EXTERNAL_SERVICE_ERROR"), stdErr.Code)
}

func TestExecuteWithRetryMapsExhaustedTimeout(t *testing.T) {
	calls := 0
	_, err := testClient().ExecuteWithRetry(context.Background(),
		func(ctx context.Context) (interface{}, error) {
			calls++
			return nil, errors.New("deadline exceeded")
		}, "topology")

	require.Error(t, err)
	assert.Equal(t, 3, calls)

	stdErr, ok := err.(*apperrors.StandardError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorCode("TIMEOUT_ERROR"), stdErr.Code)
}

func TestExecuteWithRetryHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := testClient().ExecuteWithRetry(ctx,
		func(ctx context.Context) (interface{}, error) {
			return nil, errors.New("unavailable")
		}, "deploy")

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsRetryableZeebeError(t *testing.T) {
	tests := []struct {
		msg       string
		retryable bool
	}{
		{"connection refused", true},
		{"rpc error: code = Unavailable", true},
		{"context deadline exceeded", true},
		{"broken pipe", true},
		{"job not found", false},
		{"invalid argument", false},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			assert.Equal(t, tt.retryable, isRetryableZeebeError(errors.New(tt.msg)))
		})
	}
}
