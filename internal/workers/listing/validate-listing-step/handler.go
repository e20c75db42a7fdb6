// internal/workers/listing/validate-listing-step/handler.go
package validatelistingstep

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"property-workers/internal/common/logger"
	"property-workers/internal/common/metrics"
	"property-workers/internal/common/validation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "validate-listing-step"

var (
	ErrUnknownListingStep = errors.New("UNKNOWN_LISTING_STEP")
)

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
		h.failJob(client, job, "UNKNOWN_LISTING_STEP", err.Error())
		return
	}

	h.completeJob(client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
}

// execute validates one wizard step. An invalid document is a normal
// completion with Valid=false; only an unknown flow/step pair fails the job.
func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	schema, ok := StepSchema(input.FlowType, input.Step)
	if !ok {
		return nil, fmt.Errorf("%w: flow '%s' step '%s'", ErrUnknownListingStep, input.FlowType, input.Step)
	}

	if input.Data == nil {
		input.Data = map[string]interface{}{}
	}

	result, err := validation.ValidateAgainstSchema(input.Data, schema)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownListingStep, err)
	}

	errs := append(result.Errors, crossFieldRules(input.FlowType, input.Step, input.Data)...)

	output := &Output{
		Valid:         len(errs) == 0,
		Errors:        errs,
		MissingFields: result.MissingFields,
	}

	h.logger.Info("step validated", map[string]interface{}{
		"flowType":      input.FlowType,
		"step":          input.Step,
		"valid":         output.Valid,
		"errorCount":    len(output.Errors),
		"missingFields": output.MissingFields,
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
