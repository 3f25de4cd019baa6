package bootstrap

import (
	"fmt"

	"github.com/ahrie-ai/platform/internal/agents"
	"github.com/ahrie-ai/platform/internal/catalog"
	appconfig "github.com/ahrie-ai/platform/internal/config"
	"github.com/ahrie-ai/platform/internal/knowledge"
	"github.com/ahrie-ai/platform/internal/llm"
	"github.com/ahrie-ai/platform/internal/observability/metrics"
	"github.com/ahrie-ai/platform/internal/reviews"
	"github.com/ahrie-ai/platform/pkg/logging"
)

// BuildOrchestrator assembles the agent pool. The catalog store, video
// client, review archive, and retriever are optional; agents degrade to
// persona-only answers without them.
func BuildOrchestrator(
	cfg *appconfig.Config,
	client llm.Client,
	catalogStore *catalog.Store,
	retriever knowledge.Retriever,
	videos *reviews.Client,
	archive *reviews.Store,
	m *metrics.Metrics,
	logger *logging.Logger,
) (*agents.Orchestrator, error) {
	if cfg == nil {
		return nil, fmt.Errorf("bootstrap: config is required")
	}
	if client == nil {
		return nil, fmt.Errorf("bootstrap: llm client is required")
	}
	if logger == nil {
		logger = logging.Default()
	}

	tuning := []agents.AgentOption{
		agents.WithMaxTokens(cfg.LLMMaxTokens),
		agents.WithTemperature(cfg.LLMTemperature),
		agents.WithKnowledgeTopK(cfg.KnowledgeTopK),
		agents.WithMaxVideoResults(cfg.YouTubeMaxResults),
	}

	pool := []agents.Agent{agents.NewCoordinatorAgent(client, logger, tuning...)}

	if catalogStore != nil {
		pool = append(pool,
			agents.NewMedicalAgent(client, catalogStore, retriever, logger, tuning...),
			agents.NewCulturalAgent(client, catalogStore, retriever, logger, tuning...),
		)
	} else {
		pool = append(pool,
			agents.NewMedicalAgent(client, nil, retriever, logger, tuning...),
			agents.NewCulturalAgent(client, nil, retriever, logger, tuning...),
		)
		logger.Warn("catalog store unavailable, agents answer without clinic facts")
	}

	switch {
	case videos != nil && archive != nil:
		pool = append(pool, agents.NewReviewAgent(client, videos, archive, logger, tuning...))
	case videos != nil:
		pool = append(pool, agents.NewReviewAgent(client, videos, nil, logger, tuning...))
		logger.Warn("postgres unavailable, review videos are not archived")
	default:
		pool = append(pool, agents.NewReviewAgent(client, nil, nil, logger, tuning...))
		logger.Warn("youtube client unavailable, review agent answers without video citations")
	}

	opts := []agents.OrchestratorOption{agents.WithAgentTimeout(cfg.AgentTimeout)}
	if m != nil {
		opts = append(opts, agents.WithLatencyObserver(m))
	}
	return agents.NewOrchestrator(pool, logger, opts...), nil
}

// BuildYouTubeClient creates the review video client, or nil when no
// API key is configured.
func BuildYouTubeClient(cfg *appconfig.Config, logger *logging.Logger) (*reviews.Client, error) {
	if cfg == nil || cfg.YouTubeAPIKey == "" {
		return nil, nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	return reviews.New(reviews.Config{
		BaseURL: cfg.YouTubeBaseURL,
		APIKey:  cfg.YouTubeAPIKey,
		Logger:  logger.Logger,
	})
}
