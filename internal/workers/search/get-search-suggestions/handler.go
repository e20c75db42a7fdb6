// internal/workers/search/get-search-suggestions/handler.go
package getsearchsuggestions

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"property-workers/internal/common/logger"
	"property-workers/internal/common/metrics"
	"property-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "get-search-suggestions"

// SuggestionStore is the Postgres fallback for suggestion lookups.
type SuggestionStore interface {
	GetTitleSuggestions(ctx context.Context, prefix string, max int) ([]string, error)
	GetLocationSuggestions(ctx context.Context, prefix string, max int) ([]string, error)
}

// Handler resolves autocomplete suggestions. Every lookup failure is
// swallowed into an empty contribution; suggestions must never surface an
// error to the user.
type Handler struct {
	config    *Config
	cache     *SuggestionCache
	suggester TitleSuggester
	store     SuggestionStore
	logger    logger.Logger
}

// NewHandler wires the suggestion pipeline. Cache and suggester may be nil;
// the handler degrades to store-only lookups.
func NewHandler(config *Config, cache *SuggestionCache, suggester TitleSuggester, st SuggestionStore, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		cache:     cache,
		suggester: suggester,
		store:     st,
		logger:    log.WithFields(map[string]interface{}{"taskType": TaskType}),
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

	// execute never returns an error; lookup failures degrade to empty.
	output, _ := h.execute(ctx, &input)
	h.completeJob(client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	query := strings.TrimSpace(input.Query)
	output := &Output{Suggestions: []Suggestion{}}

	if len(query) < h.config.MinQueryLen {
		return output, nil
	}

	if code := models.ExtractCodeFromQuery(query); code != "" {
		output.PropertyCode = code
		output.Suggestions = append(output.Suggestions, Suggestion{Text: code, Type: "code"})
	}

	if h.cache != nil {
		if cached, ok := h.cache.Get(ctx, query); ok {
			output.Suggestions = cached
			output.FromCache = true
			return output, nil
		}
	}

	for _, title := range h.titleSuggestions(ctx, query) {
		output.Suggestions = append(output.Suggestions, Suggestion{Text: title, Type: "title"})
	}

	if h.store != nil {
		locations, err := h.store.GetLocationSuggestions(ctx, query, h.config.MaxResults)
		if err != nil {
			h.logger.Warn("location suggestions failed", map[string]interface{}{"error": err.Error()})
		}
		for _, loc := range locations {
			output.Suggestions = append(output.Suggestions, Suggestion{Text: loc, Type: "location"})
		}
	}

	if len(output.Suggestions) > h.config.MaxResults {
		output.Suggestions = output.Suggestions[:h.config.MaxResults]
	}

	if h.cache != nil && len(output.Suggestions) > 0 {
		if err := h.cache.Set(ctx, query, output.Suggestions); err != nil {
			h.logger.Warn("failed to cache suggestions", map[string]interface{}{"error": err.Error()})
		}
	}

	return output, nil
}

// titleSuggestions prefers Elasticsearch and falls back to the store when
// the index is unavailable or empty-handed.
func (h *Handler) titleSuggestions(ctx context.Context, query string) []string {
	if h.suggester != nil {
		titles, err := h.suggester.Suggest(ctx, query, h.config.MaxResults)
		if err != nil {
			h.logger.Warn("elasticsearch suggestions failed, using store fallback", map[string]interface{}{
				"error": err.Error(),
			})
		} else if len(titles) > 0 {
			return titles
		}
	}

	if h.store == nil {
		return nil
	}
	titles, err := h.store.GetTitleSuggestions(ctx, query, h.config.MaxResults)
	if err != nil {
		h.logger.Warn("title suggestions failed", map[string]interface{}{"error": err.Error()})
		return nil
	}
	return titles
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
