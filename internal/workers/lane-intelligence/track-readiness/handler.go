// internal/workers/lane-intelligence/track-readiness/handler.go
package trackreadiness

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"lane-workers/internal/common/logger"
	"lane-workers/internal/common/metrics"
	"lane-workers/internal/lane/readiness"
	"lane-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "track-readiness"
)

// TierNotifier publishes tier transitions for interested listeners. A nil
// notifier disables publication; a failed publish never fails the job.
type TierNotifier interface {
	PublishTierChange(ctx context.Context, conversationID string, previous, current models.ReadinessTier) error
}

type Handler struct {
	config   *Config
	store    *readiness.Store
	notifier TierNotifier
	logger   logger.Logger
}

func NewHandler(config *Config, store *readiness.Store, notifier TierNotifier, log logger.Logger) *Handler {
	return &Handler{
		config:   config,
		store:    store,
		notifier: notifier,
		logger:   log.WithFields(map[string]interface{}{"taskType": TaskType}),
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
		h.failJob(client, job, "READINESS_TRACKING_FAILED", err.Error())
		return
	}

	h.completeJob(client, job, output)
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
}

// execute loads the conversation's persisted status, replays it into a
// tracker, applies one report (or a reset) and saves the snapshot back.
// Tier transitions reach the notifier through the tracker's observer hook.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.ConversationID == "" {
		return nil, fmt.Errorf("conversationId is required")
	}

	loaded, err := h.store.Load(ctx, input.ConversationID)
	if err != nil {
		return nil, fmt.Errorf("load readiness status: %w", err)
	}

	tracker := readiness.NewTrackerFromStatus(loaded)
	tracker.OnTierChange(func(previous, current models.ReadinessTier) {
		metrics.ReadinessTierTransitions.WithLabelValues(string(current)).Inc()
		h.publishTierChange(ctx, input.ConversationID, previous, current)
	})

	if input.Reset {
		tracker.Reset()
		if err := h.store.Clear(ctx, input.ConversationID); err != nil {
			return nil, fmt.Errorf("clear readiness status: %w", err)
		}
	} else if _, known := loaded.Slot(models.DataSource(input.Source)); known {
		tracker.Report(models.DataSource(input.Source), input.Payload, input.HasData)
		snapshot, _ := tracker.Snapshot()
		if err := h.store.Save(ctx, input.ConversationID, snapshot); err != nil {
			return nil, fmt.Errorf("save readiness status: %w", err)
		}
	} else {
		h.logger.Warn("report for unknown source ignored", map[string]interface{}{
			"conversationId": input.ConversationID,
			"source":         input.Source,
		})
	}

	status, current := tracker.Snapshot()
	h.logger.Info("readiness updated", map[string]interface{}{
		"conversationId": input.ConversationID,
		"source":         input.Source,
		"tier":           current,
		"available":      status.AvailableCount(),
	})

	return &Output{
		Tier:                  current,
		AvailableCount:        status.AvailableCount(),
		RecommendationVisible: tracker.RecommendationVisible(),
		Collection:            status,
	}, nil
}

func (h *Handler) publishTierChange(ctx context.Context, conversationID string, previous, current models.ReadinessTier) {
	if h.notifier == nil {
		return
	}
	if err := h.notifier.PublishTierChange(ctx, conversationID, previous, current); err != nil {
		h.logger.Warn("tier change publication failed", map[string]interface{}{
			"conversationId": conversationID,
			"error":          err.Error(),
		})
	}
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
