// internal/workers/rate-intelligence/build-spot-matrix/handler.go
package buildspotmatrix

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"lane-workers/internal/common/logger"
	"lane-workers/internal/common/metrics"
	"lane-workers/internal/lane/location"
	"lane-workers/internal/lane/spot"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	apperrors "lane-workers/internal/common/errors"
)

const (
	TaskType = "build-spot-matrix"

	shipDateLayout = "2006-01-02"
)

type Handler struct {
	config *Config
	client *spot.Client
	logger logger.Logger
	now    func() time.Time
}

func NewHandler(config *Config, client *spot.Client, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		client: client,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
		now:    time.Now,
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
		code := "SPOT_MATRIX_FAILED"
		if stdErr, ok := err.(*apperrors.StandardError); ok {
			code = string(stdErr.Code)
		}
		h.failJob(client, job, code, err.Error())
		return
	}

	h.completeJob(client, job, output)
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	origin := location.Resolve(input.Lane.Source())
	if origin == nil {
		return nil, apperrors.NewLocationResolutionError(input.Lane.Source(),
			"origin city could not be resolved for the spot matrix")
	}
	dest := location.Resolve(input.Lane.Destination())
	if dest == nil {
		return nil, apperrors.NewLocationResolutionError(input.Lane.Destination(),
			"destination city could not be resolved for the spot matrix")
	}

	startDate := input.StartDate
	if startDate == "" {
		startDate = h.now().UTC().Format(shipDateLayout)
	}

	entries, err := h.client.FetchMatrix(ctx, *origin, *dest, startDate)
	if err != nil {
		return nil, err
	}

	summary := spot.Summarize(entries, input.Lane.PreferredCarrier())

	h.logger.Info("spot matrix built", map[string]interface{}{
		"conversationId": input.ConversationID,
		"carriers":       len(entries),
		"dates":          len(summary.Dates),
	})

	return &Output{
		Summary: summary,
		HasData: summary.MinCostEntry != nil,
	}, nil
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
