// internal/workers/lane-intelligence/generate-recommendation/handler.go
package generaterecommendation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"lane-workers/internal/common/logger"
	"lane-workers/internal/common/metrics"
	"lane-workers/internal/lane/prefs"
	"lane-workers/internal/lane/readiness"
	"lane-workers/internal/lane/recommend"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	apperrors "lane-workers/internal/common/errors"
)

const (
	TaskType = "generate-recommendation"
)

type Handler struct {
	config *Config
	store  *readiness.Store
	prefs  *prefs.Store
	client *recommend.Client
	logger logger.Logger
}

// NewHandler builds the worker. prefStore may be nil; the preferred knowledge
// base is advisory and the request goes out without it.
func NewHandler(config *Config, store *readiness.Store, prefStore *prefs.Store, client *recommend.Client, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		store:  store,
		prefs:  prefStore,
		client: client,
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
		code := "RECOMMENDATION_FAILED"
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
	if input.ConversationID == "" {
		return nil, fmt.Errorf("conversationId is required")
	}

	collection, err := h.store.Load(ctx, input.ConversationID)
	if err != nil {
		return nil, fmt.Errorf("load readiness status: %w", err)
	}

	req, err := recommend.BuildRequest(input.ConversationID, input.Lane, collection)
	if err != nil {
		return nil, err
	}

	if h.prefs != nil {
		kbID, err := h.prefs.GetPreferredKnowledgeBaseID(ctx)
		if err != nil {
			h.logger.Warn("preferred knowledge base lookup failed", map[string]interface{}{
				"conversationId": input.ConversationID,
				"error":          err.Error(),
			})
		} else {
			req.KnowledgeBaseID = kbID
		}
	}

	resp, err := h.client.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	return &Output{
		Confidence: resp.Confidence,
		Narrative:  resp.Narrative,
		Tier:       req.Tier,
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
