package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ahrie-ai/platform/internal/api/router"
	"github.com/ahrie-ai/platform/internal/app/bootstrap"
	"github.com/ahrie-ai/platform/internal/catalog"
	appconfig "github.com/ahrie-ai/platform/internal/config"
	"github.com/ahrie-ai/platform/internal/conversation"
	"github.com/ahrie-ai/platform/internal/http/handlers"
	"github.com/ahrie-ai/platform/internal/i18n"
	"github.com/ahrie-ai/platform/internal/knowledge"
	"github.com/ahrie-ai/platform/internal/observability/metrics"
	"github.com/ahrie-ai/platform/internal/reviews"
	"github.com/ahrie-ai/platform/pkg/logging"
)

func main() {
	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting ahrie platform API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	redisClient := bootstrap.BuildRedisClient(ctx, cfg, logger, true)
	pool, err := bootstrap.BuildPgxPool(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}
	sqlDB, err := bootstrap.BuildSQLDB(cfg)
	if err != nil {
		logger.Error("failed to open sql db", "error", err)
		os.Exit(1)
	}

	llmClient, embedder, err := bootstrap.BuildLLMClient(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to build LLM client", "error", err)
		os.Exit(1)
	}
	knowledgeRepo, knowledgeIndex := bootstrap.BuildKnowledge(ctx, cfg, redisClient, embedder, logger)

	var retriever knowledge.Retriever
	if knowledgeIndex != nil {
		retriever = knowledgeIndex
	}

	catalogStore := catalog.NewStore(pool)
	videos, err := bootstrap.BuildYouTubeClient(cfg, logger)
	if err != nil {
		logger.Error("failed to build youtube client", "error", err)
		os.Exit(1)
	}

	m := metrics.New(nil)

	orchestrator, err := bootstrap.BuildOrchestrator(cfg, llmClient, catalogStore, retriever, videos, reviews.NewStore(pool), m, logger)
	if err != nil {
		logger.Error("failed to build agent pool", "error", err)
		os.Exit(1)
	}
	engine, history, audit, err := bootstrap.BuildEngine(cfg, orchestrator, redisClient, pool, sqlDB, m, logger)
	if err != nil {
		logger.Error("failed to build conversation engine", "error", err)
		os.Exit(1)
	}

	queue, err := bootstrap.BuildQueue(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to build conversation queue", "error", err)
		os.Exit(1)
	}
	publisher := conversation.NewPublisher(queue, logger)
	jobStore := bootstrap.BuildJobStore(pool)

	botClient, err := bootstrap.BuildTelegramClient(cfg, logger)
	if err != nil {
		logger.Error("failed to build telegram client", "error", err)
		os.Exit(1)
	}

	// Handlers degrade gracefully: routes whose dependencies are missing
	// are simply not mounted.
	var telegramHandler *handlers.TelegramHandler
	if botClient != nil {
		hcfg := handlers.TelegramHandlerConfig{
			WebhookSecret:   cfg.TelegramWebhookSecret,
			DefaultLanguage: i18n.Normalize(cfg.DefaultLanguage),
			Service:         engine,
			History:         history,
			Users:           conversation.NewStore(pool),
			Publisher:       publisher,
			Bot:             botClient,
			Audit:           audit,
			Metrics:         m,
			Logger:          logger,
		}
		if jobStore != nil {
			hcfg.Jobs = jobStore
		}
		if catalogStore != nil {
			hcfg.Clinics = catalogStore
		}
		telegramHandler = handlers.NewTelegramHandler(hcfg)
	} else {
		logger.Warn("telegram bot token not set, webhook intake disabled")
	}

	var dbPinger handlers.Pinger
	if pool != nil {
		dbPinger = pool
	}
	healthHandler := handlers.NewHealthHandler(dbPinger, redisClient, logger)

	var knowledgeHandler *handlers.KnowledgeHandler
	if knowledgeRepo != nil {
		var indexer handlers.KnowledgeIndexer
		if knowledgeIndex != nil {
			indexer = knowledgeIndex
		}
		knowledgeHandler = handlers.NewKnowledgeHandler(knowledgeRepo, indexer, audit, logger)
	}

	var webhookAdmin *handlers.WebhookAdminHandler
	if botClient != nil {
		webhookAdmin = handlers.NewWebhookAdminHandler(botClient, cfg.PublicBaseURL, cfg.TelegramWebhookSecret, logger)
	}

	var jobsHandler *handlers.JobsHandler
	if jobStore != nil {
		jobsHandler = handlers.NewJobsHandler(jobStore, logger)
	}

	r := router.New(&router.Config{
		Logger:             logger,
		TelegramWebhook:    telegramHandler,
		Health:             healthHandler,
		AdminAuthSecret:    cfg.AdminJWTSecret,
		Knowledge:          knowledgeHandler,
		Catalog:            handlers.NewCatalogHandler(catalogStore, logger),
		WebhookAdmin:       webhookAdmin,
		Jobs:               jobsHandler,
		MetricsHandler:     promhttp.Handler(),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	// With the in-memory queue the worker has to run inside this process,
	// otherwise enqueued jobs would never be consumed.
	workerCtx, workerCancel := context.WithCancel(ctx)
	defer workerCancel()

	var worker *conversation.Worker
	if _, ok := queue.(*conversation.MemoryQueue); ok {
		if botClient == nil {
			logger.Warn("in-process worker not started, no telegram client to deliver replies")
		} else {
			opts := []conversation.WorkerOption{
				conversation.WithWorkerCount(cfg.WorkerCount),
				conversation.WithWorkerMetrics(m),
			}
			if jobStore != nil {
				opts = append(opts, conversation.WithJobUpdater(jobStore))
			}
			worker = conversation.NewWorker(engine, queue, botClient, logger, opts...)
			worker.Start(workerCtx)
			logger.Info("in-process conversation worker started", "workers", cfg.WorkerCount)
		}
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	if worker != nil {
		workerCancel()
		waitCh := make(chan struct{})
		go func() {
			worker.Wait()
			close(waitCh)
		}()
		select {
		case <-waitCh:
			logger.Info("in-process worker stopped")
		case <-shutdownCtx.Done():
			logger.Error("worker shutdown timed out", "error", shutdownCtx.Err())
		}
	}

	if pool != nil {
		pool.Close()
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if sqlDB != nil {
		_ = sqlDB.Close()
	}
	// The Gemini client holds a gRPC connection; the OpenAI client has
	// nothing to release.
	if closer, ok := llmClient.(interface{ Close() error }); ok {
		_ = closer.Close()
	}

	logger.Info("server stopped")
}
