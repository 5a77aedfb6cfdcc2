// internal/workers/lane-intelligence/validate-lane-facts/handler.go
package validatelanefacts

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	apperrors "lane-workers/internal/common/errors"
	"lane-workers/internal/common/logger"
	"lane-workers/internal/common/metrics"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "validate-lane-facts"
)

// Handler is the hard gate between extraction and the downstream fan-out:
// a lane without a city pair throws LANE_VALIDATION_FAILED to the workflow,
// which surfaces one user-facing message with a retry action.
type Handler struct {
	config *Config
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		code := "VALIDATION_ERROR"
		if stdErr, ok := err.(*apperrors.StandardError); ok {
			code = string(stdErr.Code)
		}
		h.failJob(client, job, code, err.Error())
		return
	}

	h.completeJob(client, job, output)
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	var missing []string
	if input.Lane.SourceCity == nil {
		missing = append(missing, "sourceCity")
	}
	if input.Lane.DestinationCity == nil {
		missing = append(missing, "destinationCity")
	}
	if len(missing) > 0 {
		return nil, apperrors.NewLaneValidationError(fmt.Sprintf("missing fields: %v", missing))
	}

	h.logger.Info("lane validated", map[string]interface{}{
		"conversationId": input.ConversationID,
		"lane":           input.Lane.LaneName,
	})

	return &Output{
		Valid:    true,
		LaneName: laneName(input),
	}, nil
}

func laneName(input *Input) string {
	if input.Lane.LaneName != nil {
		return *input.Lane.LaneName
	}
	return input.Lane.Source() + " to " + input.Lane.Destination()
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	if _, err = cmd.Send(context.Background()); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
	})
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, errorCode).Inc()

	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
