package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/DetroitRed03/chatnil-engine/internal/adapters/events"
	"github.com/DetroitRed03/chatnil-engine/internal/adapters/http/api"
	"github.com/DetroitRed03/chatnil-engine/internal/adapters/repository"
	"github.com/DetroitRed03/chatnil-engine/internal/app"
	"github.com/DetroitRed03/chatnil-engine/internal/config"
	"github.com/DetroitRed03/chatnil-engine/internal/domain/dedupe"
	"github.com/DetroitRed03/chatnil-engine/internal/domain/staterules"
	"github.com/DetroitRed03/chatnil-engine/pkg/logger"
	"github.com/DetroitRed03/chatnil-engine/pkg/metrics"

	"github.com/joho/godotenv"
)

// HTTP server timeout constants.
const (
	readTimeout           = 10 * time.Second
	writeTimeout          = 10 * time.Second
	idleTimeout           = 60 * time.Second
	readHeaderTimeout     = 5 * time.Second
	systemMetricsInterval = 10 * time.Second
)

func main() {
	// Optional .env file for local development; env vars still win.
	_ = godotenv.Load()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		// Use stderr for initialization errors since the logger isn't available yet
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Initialize logging
	if err := logger.Init(cfg.LogFormat); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			os.Stderr.WriteString("failed to sync logger: " + err.Error() + "\n")
		}
	}()

	loggerInstance := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	store, stateRules, err := buildStore(ctx, cfg)
	if err != nil {
		loggerInstance.Error(ctx, "failed to open match store", logger.Error(err))
		return
	}

	publisher := buildPublisher(ctx, cfg)
	defer func() {
		if err := publisher.Close(); err != nil {
			loggerInstance.Warn(ctx, "failed to close event publisher", logger.Error(err))
		}
	}()

	deduper := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(cfg.DedupeSize))

	// Create the service with configuration options. Database rule rows,
	// when present, replace the built-in jurisdiction seed.
	svc, err := app.NewService(
		staterules.NewInMemoryRegistry(staterules.WithRules(stateRules)),
		app.WithStore(store),
		app.WithPublisher(publisher),
		app.WithDeduper(deduper),
		app.WithWeights(cfg.Weights),
		app.WithBatchLimits(cfg.BatchMaxItems, cfg.BatchSubBatchSize),
	)
	if err != nil {
		loggerInstance.Error(ctx, "failed to create service", logger.Error(err))
		return
	}

	// Start system metrics updater
	go startSystemMetricsUpdater(ctx)

	// HTTP mux and routes.
	mux := http.NewServeMux()

	// Register business API routes with the service dependency.
	apiServer := api.NewServer(svc, svc, api.WithMaxTopLimit(cfg.MaxTopLimit))
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	// Start the HTTP server
	go func() {
		loggerInstance.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			loggerInstance.Error(ctx, "HTTP server failed", logger.Error(err))
			stop()
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	loggerInstance.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeoutMS)*time.Millisecond)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	loggerInstance.Info(ctx, "server stopped")
}

// buildStore selects the persistence backend from configuration. A
// PostgreSQL DSN enables the durable store and, when the rules table is
// populated, database-managed jurisdiction rules; otherwise matches and
// scores live in memory for the lifetime of the process.
func buildStore(ctx context.Context, cfg *config.Config) (repository.Store, []staterules.StateNILRules, error) {
	if cfg.PostgresDSN != "" {
		gs, err := repository.NewGormStore(cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}

		rules, err := gs.LoadStateRules(ctx)
		if err != nil {
			logger.Get().Warn(ctx, "failed to load state rules; using built-in seed", logger.Error(err))
			rules = nil
		}

		logger.Get().Info(ctx, "using PostgreSQL match store", logger.Int("stateRules", len(rules)))
		return gs, rules, nil
	}

	mem := repository.NewMemStore()
	mem.Start(ctx)
	logger.Get().Info(ctx, "using in-memory match store")
	return mem, nil, nil
}

// buildPublisher selects the event sink from configuration. Without
// brokers the service runs standalone and events are dropped.
func buildPublisher(ctx context.Context, cfg *config.Config) events.Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Get().Info(ctx, "event publishing disabled; no kafka brokers configured")
		return events.NopPublisher{}
	}

	opts := []events.Option{}
	if cfg.DealTopic != "" {
		opts = append(opts, events.WithDealTopic(cfg.DealTopic))
	}
	if cfg.MatchTopic != "" {
		opts = append(opts, events.WithMatchTopic(cfg.MatchTopic))
	}

	logger.Get().Info(ctx, "publishing events to kafka", logger.Int("brokers", len(cfg.KafkaBrokers)))
	return events.NewKafkaPublisher(cfg.KafkaBrokers, opts...)
}

// startSystemMetricsUpdater starts a background goroutine that updates system metrics.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
}
