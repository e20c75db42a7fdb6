// internal/workers/search/parse-search-filters/handler.go
package parsesearchfilters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"property-workers/internal/common/logger"
	"property-workers/internal/common/metrics"
	"property-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "parse-search-filters"

var (
	ErrInvalidFilterFormat = errors.New("INVALID_FILTER_FORMAT")
)

var validActions = map[string]bool{
	ActionUpdateFilter:    true,
	ActionClearFilter:     true,
	ActionClearAllFilters: true,
}

var validFields = map[string]bool{
	FieldSearchQuery:  true,
	FieldLocation:     true,
	FieldActionType:   true,
	FieldPropertyType: true,
	FieldSubType:      true,
	FieldBHK:          true,
	FieldPriceRange:   true,
}

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
		h.failJob(client, job, "INVALID_FILTER_FORMAT", err.Error())
		return
	}

	h.completeJob(client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	state := models.DefaultFilters()
	if input.CurrentFilters != nil {
		state = *input.CurrentFilters
	}

	if !validActions[input.Action] {
		return nil, fmt.Errorf("%w: unknown action '%s'", ErrInvalidFilterFormat, input.Action)
	}
	if input.Action != ActionClearAllFilters && !validFields[input.Field] {
		return nil, fmt.Errorf("%w: unknown field '%s'", ErrInvalidFilterFormat, input.Field)
	}

	state = Apply(state, FilterEvent{
		Action: input.Action,
		Field:  input.Field,
		Value:  input.Value,
	})

	output := &Output{
		Filters:                state,
		IsEmpty:                state.IsEmpty(),
		AvailablePropertyTypes: AvailablePropertyTypes(state.ActionType),
		AvailableSubtypes:      SubtypesForProperty(state.SelectedPropertyType, state.ActionType, input.IsCoworking),
		ShowBHK:                ShouldShowBHK(state.SelectedPropertyType),
		PropertyCode:           models.ExtractCodeFromQuery(state.SearchQuery),
	}

	h.logger.Info("filters updated", map[string]interface{}{
		"action":       input.Action,
		"field":        input.Field,
		"isEmpty":      output.IsEmpty,
		"propertyCode": output.PropertyCode,
	})

	return output, nil
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
