// internal/workers/search/execute-property-search/handler.go
package executepropertysearch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"property-workers/internal/common/logger"
	"property-workers/internal/common/metrics"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "execute-property-search"

var (
	ErrSearchDispatchFailed = errors.New("SEARCH_DISPATCH_FAILED")
)

type Handler struct {
	config   *Config
	store    PropertyStore
	enricher *Enricher
	logger   logger.Logger
}

// NewHandler wires the search pipeline. A nil rng gets a time-seeded source;
// tests pass a fixed seed to pin down the owner-name filler.
func NewHandler(config *Config, st PropertyStore, rng *rand.Rand, log logger.Logger) *Handler {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Handler{
		config:   config,
		store:    st,
		enricher: NewEnricher(rng),
		logger:   log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	startTime := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

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
		h.failJob(client, job, "SEARCH_DISPATCH_FAILED", err.Error())
		return
	}

	h.completeJob(client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	page, limit, offset := normalizeOptions(input.Options, h.config.DefaultLimit)

	minPrice, maxPrice := priceBoundsFor(input.Filters)
	warnings := ValidateSearchParams(limit, offset, h.config.MaxLimit, minPrice, maxPrice, bedroomsFor(input.Filters), nil)
	for _, w := range warnings {
		h.logger.Warn("search parameter warning", map[string]interface{}{"warning": w})
	}

	rows, total, err := h.search(ctx, input.Filters, input.Options)
	if err != nil {
		return nil, err
	}

	results := h.enricher.Enrich(TransformRows(rows))

	h.logger.Info("search completed", map[string]interface{}{
		"results":    len(results),
		"totalCount": total,
		"page":       page,
	})

	return &Output{
		Results:    results,
		TotalCount: total,
		Page:       page,
		Limit:      limit,
		Warnings:   warnings,
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
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string) {
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, errorCode).Inc()

	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
	})

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
