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

	"lane-workers/internal/common/aws"
	"lane-workers/internal/common/camunda"
	"lane-workers/internal/common/config"
	"lane-workers/internal/common/database"
	commonhttp "lane-workers/internal/common/http"
	"lane-workers/internal/common/logger"
	"lane-workers/internal/common/observability"
	"lane-workers/internal/lane/prefs"
	"lane-workers/internal/lane/rates"
	"lane-workers/internal/lane/readiness"
	"lane-workers/internal/lane/recommend"
	"lane-workers/internal/lane/spot"

	// Lane Intelligence Workers (4)
	elf "lane-workers/internal/workers/lane-intelligence/extract-lane-facts"
	gr "lane-workers/internal/workers/lane-intelligence/generate-recommendation"
	tr "lane-workers/internal/workers/lane-intelligence/track-readiness"
	vlf "lane-workers/internal/workers/lane-intelligence/validate-lane-facts"

	// Rate Intelligence Workers (2)
	bsm "lane-workers/internal/workers/rate-intelligence/build-spot-matrix"
	frq "lane-workers/internal/workers/rate-intelligence/fetch-rate-quotes"

	// Data Access Workers (2)
	qci "lane-workers/internal/workers/data-access/query-chat-insights"
	qlh "lane-workers/internal/workers/data-access/query-lane-history"

	// Communication Workers (1)
	nr "lane-workers/internal/workers/communication/notify-recommendation"
)

const (
	readinessTTL    = 24 * time.Hour
	locationIDTTL   = 12 * time.Hour
	shutdownTimeout = 30 * time.Second
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
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
	)

	obs := observability.New("worker-manager")
	defer obs.Shutdown()

	tracing, err := observability.NewTracing("worker-manager", cfg.Tracing.CollectorURL)
	if err != nil {
		zapLog.Warn("tracing init failed, continuing without export", zap.Error(err))
	} else {
		defer tracing.Shutdown()
	}

	ctx := context.Background()

	// --- Init Zeebe Client with retry ---
	var camundaClient *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		camundaClient, err = camunda.NewClientWithConfig(&camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
			ConnectionTimeout:      time.Duration(cfg.Camunda.RequestTimeout) * time.Millisecond,
			RequestTimeout:         time.Duration(cfg.Camunda.Timeout) * time.Millisecond,
		})
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
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Elasticsearch with retry ---
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		return esClient.Ping()
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Init External Service Clients ---
	rateHTTP := newServiceHTTPClient(cfg.Services.RateQuote)
	rateClient := rates.NewClient(
		rateHTTP,
		cfg.Services.LocationLookup.BaseURL,
		cfg.Services.RateQuote.BaseURL,
		cfg.Services.LegacyRate.BaseURL,
		log,
	)
	locationCache := rates.NewRedisLocationCache(redis, locationIDTTL)

	spotClient := spot.NewClient(newServiceHTTPClient(cfg.Services.SpotMatrix), cfg.Services.SpotMatrix.BaseURL, log)
	recClient := recommend.NewClient(newServiceHTTPClient(cfg.Services.Recommendation), cfg.Services.Recommendation.BaseURL, log)

	readinessStore := readiness.NewStore(redis, readinessTTL)
	prefStore := prefs.NewStore(redis)

	var tierNotifier tr.TierNotifier
	if cfg.Notifications.SMS.Enabled && cfg.Notifications.AWS.TopicARN != "" {
		snsClient, err := aws.NewSNSClient(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			zapLog.Fatal("sns client failed", zap.Error(err))
		}
		tierNotifier = tr.NewSNSTierNotifier(snsClient, cfg.Notifications.AWS.TopicARN)
	}

	zapLog.Info("All external service clients initialized")

	// --- START: Register ALL 9 Workers ---

	// --- 1. Lane Intelligence Workers (4) ---
	if cfg.Workers[elf.TaskType].Enabled {
		handler := elf.NewHandler(
			&elf.Config{
				Timeout: time.Duration(cfg.Workers[elf.TaskType].Timeout) * time.Millisecond,
			},
			log,
		)
		startWorker(zeebeClient, elf.TaskType, cfg.Workers[elf.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[vlf.TaskType].Enabled {
		handler := vlf.NewHandler(
			&vlf.Config{
				Timeout: time.Duration(cfg.Workers[vlf.TaskType].Timeout) * time.Millisecond,
			},
			log,
		)
		startWorker(zeebeClient, vlf.TaskType, cfg.Workers[vlf.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[tr.TaskType].Enabled {
		handler := tr.NewHandler(
			&tr.Config{
				Timeout: time.Duration(cfg.Workers[tr.TaskType].Timeout) * time.Millisecond,
			},
			readinessStore, tierNotifier, log,
		)
		startWorker(zeebeClient, tr.TaskType, cfg.Workers[tr.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[gr.TaskType].Enabled {
		handler := gr.NewHandler(
			&gr.Config{
				Timeout: time.Duration(cfg.Workers[gr.TaskType].Timeout) * time.Millisecond,
			},
			readinessStore, prefStore, recClient, log,
		)
		startWorker(zeebeClient, gr.TaskType, cfg.Workers[gr.TaskType], handler.Handle, zapLog)
	}

	// --- 2. Rate Intelligence Workers (2) ---
	if cfg.Workers[frq.TaskType].Enabled {
		wcfg := cfg.Workers[frq.TaskType]
		orchestrator := rates.NewOrchestrator(
			rateClient, locationCache, tracing, log,
			time.Duration(cfg.Services.RateQuote.Timeout)*time.Millisecond,
		)
		handler := frq.NewHandler(
			&frq.Config{
				Timeout: time.Duration(wcfg.Timeout) * time.Millisecond,
			},
			orchestrator, log,
		)
		startWorker(zeebeClient, frq.TaskType, wcfg, handler.Handle, zapLog)
	}

	if cfg.Workers[bsm.TaskType].Enabled {
		handler := bsm.NewHandler(
			&bsm.Config{
				Timeout: time.Duration(cfg.Workers[bsm.TaskType].Timeout) * time.Millisecond,
			},
			spotClient, log,
		)
		startWorker(zeebeClient, bsm.TaskType, cfg.Workers[bsm.TaskType], handler.Handle, zapLog)
	}

	// --- 3. Data Access Workers (2) ---
	if cfg.Workers[qlh.TaskType].Enabled {
		handler := qlh.NewHandler(
			&qlh.Config{
				Timeout: time.Duration(cfg.Workers[qlh.TaskType].Timeout) * time.Millisecond,
			},
			pg.DB, log,
		)
		startWorker(zeebeClient, qlh.TaskType, cfg.Workers[qlh.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[qci.TaskType].Enabled {
		handler := qci.NewHandler(
			&qci.Config{
				Timeout: time.Duration(cfg.Workers[qci.TaskType].Timeout) * time.Millisecond,
				Index:   cfg.Database.Elasticsearch.Index,
			},
			esClient.Client, log,
		)
		startWorker(zeebeClient, qci.TaskType, cfg.Workers[qci.TaskType], handler.Handle, zapLog)
	}

	// --- 4. Communication Workers (1) ---
	if cfg.Workers[nr.TaskType].Enabled {
		sesClient, err := aws.NewSESClient(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			zapLog.Fatal("ses client failed", zap.Error(err))
		}
		snsClient, err := aws.NewSNSClient(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			zapLog.Fatal("sns client failed", zap.Error(err))
		}

		nrConfig := &nr.Config{
			Timeout:     time.Duration(cfg.Workers[nr.TaskType].Timeout) * time.Millisecond,
			FromAddress: cfg.Notifications.Email.FromEmail,
		}
		service := nr.NewService(nrConfig, sesClient, snsClient, log)
		handler := nr.NewHandler(nrConfig, service, log)
		startWorker(zeebeClient, nr.TaskType, cfg.Workers[nr.TaskType], handler.Handle, zapLog)
	}

	zapLog.Info("All 9 workers registered successfully")

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
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for _, w := range jobWorkers {
			w.Close()
		}
		if err := camundaClient.Close(); err != nil {
			zapLog.Error("Error closing Zeebe client", zap.Error(err))
		}
	}()

	select {
	case <-done:
		zapLog.Info("Worker manager stopped gracefully")
	case <-shutdownCtx.Done():
		zapLog.Warn("Shutdown timed out, exiting")
	}
}

func newServiceHTTPClient(ep config.ServiceEndpoint) *commonhttp.Client {
	client := commonhttp.NewClient(time.Duration(ep.Timeout) * time.Millisecond)
	if ep.APIKey != "" {
		client.SetHeader("X-API-Key", ep.APIKey)
	}
	return client
}

// jobWorkers collects every open subscription so shutdown can close them
// before the gRPC connection goes away.
var jobWorkers []*camunda.Worker

func startWorker(client zbc.Client, taskType string, wcfg config.WorkerConfig, handlerFunc func(worker.JobClient, entities.Job), log *zap.Logger) {
	if !wcfg.Enabled {
		log.Info("worker disabled", zap.String("taskType", taskType))
		return
	}

	w := camunda.NewWorker(client, taskType, wcfg.MaxJobsActive,
		time.Duration(wcfg.Timeout)*time.Millisecond, handlerFunc, log)
	jobWorkers = append(jobWorkers, w)
}
