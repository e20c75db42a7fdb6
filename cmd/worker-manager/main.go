// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"property-workers/internal/common/camunda"
	"property-workers/internal/common/config"
	"property-workers/internal/common/database"
	"property-workers/internal/common/logger"
	"property-workers/internal/common/observability"
	"property-workers/internal/store"

	// Listing Workers (2)
	sin "property-workers/internal/workers/listing/send-inquiry-notification"
	vls "property-workers/internal/workers/listing/validate-listing-step"

	// Search Workers (3)
	eps "property-workers/internal/workers/search/execute-property-search"
	gss "property-workers/internal/workers/search/get-search-suggestions"
	psf "property-workers/internal/workers/search/parse-search-filters"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("worker-manager")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Zeebe Client with retry ---
	var camundaClient *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		camundaClient, err = camunda.NewClient(cfg.Camunda.BrokerAddress)
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")

	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zeebeClient := camundaClient.GetClient()
	zapLog.Info("Zeebe client connected successfully")

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		// Test the connection with context
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Elasticsearch with retry ---
	// Elasticsearch only backs autocomplete; the suggestion worker falls back
	// to Postgres lookups when the index is unreachable, so failure here is
	// not fatal.
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		// Test the connection
		return esClient.Ping()
	}, 5, 2*time.Second, zapLog, "Elasticsearch connection")

	if err != nil {
		zapLog.Warn("elasticsearch unavailable, suggestions will use postgres only", zap.Error(err))
		esClient = nil
	} else {
		zapLog.Info("Elasticsearch connected successfully")
	}

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		// Test the connection with context
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	propertyStore := store.NewPropertyStore(pg.DB)

	// --- START: Register ALL 5 Workers ---

	// --- 1. Search Workers (3) ---
	if cfg.Workers[psf.TaskType].Enabled {
		handler := psf.NewHandler(
			&psf.Config{
				Timeout: config.GetDuration(cfg.Workers[psf.TaskType].Timeout),
			},
			log,
		)
		startWorker(zeebeClient, psf.TaskType, cfg.Workers[psf.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[eps.TaskType].Enabled {
		handler := eps.NewHandler(
			&eps.Config{
				Timeout:      config.GetDuration(cfg.Workers[eps.TaskType].Timeout),
				DefaultLimit: cfg.Search.DefaultLimit,
				MaxLimit:     cfg.Search.MaxLimit,
				LatestLimit:  cfg.Search.LatestLimit,
			},
			propertyStore, nil, log,
		)
		startWorker(zeebeClient, eps.TaskType, cfg.Workers[eps.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[gss.TaskType].Enabled {
		suggestionCache := gss.NewSuggestionCache(redis.Client, config.GetDuration(cfg.Suggestions.CacheTTL))

		var suggester gss.TitleSuggester
		if esClient != nil && cfg.Suggestions.TitleIndex != "" {
			suggester = gss.NewESSuggester(esClient.Client, cfg.Suggestions.TitleIndex)
		}

		handler := gss.NewHandler(
			&gss.Config{
				Timeout:     config.GetDuration(cfg.Workers[gss.TaskType].Timeout),
				CacheTTL:    config.GetDuration(cfg.Suggestions.CacheTTL),
				MaxResults:  cfg.Suggestions.MaxResults,
				TitleIndex:  cfg.Suggestions.TitleIndex,
				MinQueryLen: 2,
			},
			suggestionCache, suggester, propertyStore, log,
		)
		startWorker(zeebeClient, gss.TaskType, cfg.Workers[gss.TaskType], handler.Handle, zapLog)
	}

	// --- 2. Listing Workers (2) ---
	if cfg.Workers[vls.TaskType].Enabled {
		handler := vls.NewHandler(
			&vls.Config{
				Timeout: config.GetDuration(cfg.Workers[vls.TaskType].Timeout),
			},
			log,
		)
		startWorker(zeebeClient, vls.TaskType, cfg.Workers[vls.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[sin.TaskType].Enabled {
		handler, err := sin.NewHandler(
			&sin.Config{
				EmailEnabled: cfg.Notifications.Email.Enabled,
				SMSEnabled:   cfg.Notifications.SMS.Enabled,
				FromEmail:    cfg.Notifications.Email.FromEmail,
				AWSRegion:    cfg.Notifications.AWS.Region,
				Timeout:      config.GetDuration(cfg.Workers[sin.TaskType].Timeout),
			},
			propertyStore, log,
		)
		if err != nil {
			zapLog.Fatal("failed to create send-inquiry-notification handler", zap.Error(err))
		}
		startWorker(zeebeClient, sin.TaskType, cfg.Workers[sin.TaskType], handler.Handle, zapLog)
	}

	zapLog.Info("All 5 workers registered successfully")

	// --- Health & Metrics Server ---
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "healthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if err := camundaClient.HealthCheck(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				json.NewEncoder(w).Encode(map[string]string{
					"status": "not ready",
					"error":  err.Error(),
				})
				return
			}
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "ready",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Health/Metrics server listening on :8080")
		if err := http.ListenAndServe(":8080", nil); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")

	if err := camundaClient.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func startWorker(client zbc.Client, taskType string, wcfg config.WorkerConfig, handlerFunc func(worker.JobClient, entities.Job), log *zap.Logger) {
	if !wcfg.Enabled {
		log.Info("worker disabled", zap.String("taskType", taskType))
		return
	}

	client.NewJobWorker().
		JobType(taskType).
		Handler(handlerFunc).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(time.Duration(wcfg.Timeout) * time.Millisecond).
		Open()

	log.Info("worker started",
		zap.String("taskType", taskType),
		zap.Int("maxJobsActive", wcfg.MaxJobsActive),
		zap.Int("timeout_ms", wcfg.Timeout),
	)
}
