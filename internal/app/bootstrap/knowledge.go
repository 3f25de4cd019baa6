package bootstrap

import (
	"context"

	"github.com/redis/go-redis/v9"

	appconfig "github.com/ahrie-ai/platform/internal/config"
	"github.com/ahrie-ai/platform/internal/knowledge"
	"github.com/ahrie-ai/platform/internal/llm"
	"github.com/ahrie-ai/platform/pkg/logging"
)

// BuildKnowledge wires the Redis document repository and, when an
// embedder is available, the in-memory retrieval index hydrated from
// it. Either return value may be nil when its backing service is
// missing.
func BuildKnowledge(
	ctx context.Context,
	cfg *appconfig.Config,
	redisClient *redis.Client,
	embedder llm.Embedder,
	logger *logging.Logger,
) (knowledge.Repository, *knowledge.MemoryStore) {
	if logger == nil {
		logger = logging.Default()
	}
	if redisClient == nil {
		logger.Warn("redis unavailable, knowledge base disabled")
		return nil, nil
	}

	repo := knowledge.NewRedisRepository(redisClient)
	if cfg != nil && cfg.KnowledgePrefill {
		if err := knowledge.Prefill(ctx, repo); err != nil {
			logger.Warn("failed to seed starter knowledge", "error", err)
		}
	}

	if embedder == nil {
		logger.Warn("no embedder configured, knowledge retrieval disabled")
		return repo, nil
	}

	store := knowledge.NewMemoryStore(embedder, logger)
	if err := store.Hydrate(ctx, repo); err != nil {
		logger.Warn("failed to hydrate knowledge index", "error", err)
	}
	return repo, store
}
