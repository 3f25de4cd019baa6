package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ahrie-ai/platform/internal/app/bootstrap"
	"github.com/ahrie-ai/platform/internal/catalog"
	appconfig "github.com/ahrie-ai/platform/internal/config"
	"github.com/ahrie-ai/platform/internal/conversation"
	"github.com/ahrie-ai/platform/internal/knowledge"
	"github.com/ahrie-ai/platform/internal/observability/metrics"
	"github.com/ahrie-ai/platform/internal/reviews"
	"github.com/ahrie-ai/platform/pkg/logging"
)

func main() {
	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting ahrie conversation worker", "env", cfg.Env)

	if cfg.UseMemoryQueue || cfg.ConversationQueueURL == "" {
		logger.Error("the dedicated worker needs an SQS queue, set CONVERSATION_QUEUE_URL and disable USE_MEMORY_QUEUE")
		os.Exit(1)
	}

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
	_, knowledgeIndex := bootstrap.BuildKnowledge(ctx, cfg, redisClient, embedder, logger)

	var retriever knowledge.Retriever
	if knowledgeIndex != nil {
		retriever = knowledgeIndex
	}

	videos, err := bootstrap.BuildYouTubeClient(cfg, logger)
	if err != nil {
		logger.Error("failed to build youtube client", "error", err)
		os.Exit(1)
	}

	m := metrics.New(nil)

	orchestrator, err := bootstrap.BuildOrchestrator(cfg, llmClient, catalog.NewStore(pool), retriever, videos, reviews.NewStore(pool), m, logger)
	if err != nil {
		logger.Error("failed to build agent pool", "error", err)
		os.Exit(1)
	}
	engine, _, _, err := bootstrap.BuildEngine(cfg, orchestrator, redisClient, pool, sqlDB, m, logger)
	if err != nil {
		logger.Error("failed to build conversation engine", "error", err)
		os.Exit(1)
	}

	queue, err := bootstrap.BuildQueue(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to build conversation queue", "error", err)
		os.Exit(1)
	}

	botClient, err := bootstrap.BuildTelegramClient(cfg, logger)
	if err != nil {
		logger.Error("failed to build telegram client", "error", err)
		os.Exit(1)
	}
	if botClient == nil {
		logger.Error("TELEGRAM_BOT_TOKEN is required, the worker delivers replies through the Bot API")
		os.Exit(1)
	}

	opts := []conversation.WorkerOption{
		conversation.WithWorkerCount(cfg.WorkerCount),
		conversation.WithWorkerMetrics(m),
	}
	if jobStore := bootstrap.BuildJobStore(pool); jobStore != nil {
		opts = append(opts, conversation.WithJobUpdater(jobStore))
	}
	worker := conversation.NewWorker(engine, queue, botClient, logger, opts...)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	worker.Start(runCtx)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down conversation worker...")
	cancel()

	doneCtx, doneCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer doneCancel()

	waitCh := make(chan struct{})
	go func() {
		worker.Wait()
		close(waitCh)
	}()

	select {
	case <-waitCh:
		logger.Info("conversation worker stopped")
	case <-doneCtx.Done():
		logger.Error("conversation worker shutdown timed out", "error", doneCtx.Err())
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
	if closer, ok := llmClient.(interface{ Close() error }); ok {
		_ = closer.Close()
	}
}
