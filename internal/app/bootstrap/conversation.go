package bootstrap

import (
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/ahrie-ai/platform/internal/agents"
	"github.com/ahrie-ai/platform/internal/compliance"
	appconfig "github.com/ahrie-ai/platform/internal/config"
	"github.com/ahrie-ai/platform/internal/conversation"
	"github.com/ahrie-ai/platform/internal/observability/metrics"
	"github.com/ahrie-ai/platform/pkg/logging"
)

// BuildEngine assembles the conversation engine around the agent
// orchestrator. Postgres is optional; without it conversations live
// only in Redis and compliance auditing is skipped.
func BuildEngine(
	cfg *appconfig.Config,
	orchestrator *agents.Orchestrator,
	redisClient *redis.Client,
	pool *pgxpool.Pool,
	sqlDB *sql.DB,
	m *metrics.Metrics,
	logger *logging.Logger,
) (*conversation.Engine, *conversation.HistoryStore, *compliance.AuditService, error) {
	if cfg == nil {
		return nil, nil, nil, fmt.Errorf("bootstrap: config is required")
	}
	if orchestrator == nil {
		return nil, nil, nil, fmt.Errorf("bootstrap: orchestrator is required")
	}
	if redisClient == nil {
		return nil, nil, nil, fmt.Errorf("bootstrap: redis is required for conversation history")
	}
	if logger == nil {
		logger = logging.Default()
	}

	history := conversation.NewHistoryStore(redisClient, nil)
	audit := compliance.NewAuditService(sqlDB)
	disclaimers := compliance.NewDisclaimerService(audit, compliance.DisclaimerConfig{
		Level:            compliance.ParseDisclaimerLevel(cfg.DisclaimerLevel),
		Enabled:          true,
		FirstMessageOnly: cfg.DisclaimerFirst,
	})

	opts := []conversation.EngineOption{
		conversation.WithDisclaimers(disclaimers),
		conversation.WithMetrics(m),
	}
	if pool != nil {
		opts = append(opts, conversation.WithStore(conversation.NewStore(pool)))
	} else {
		logger.Warn("postgres unavailable, conversation transcripts are not persisted")
	}

	engine := conversation.NewEngine(orchestrator, history, logger, opts...)
	return engine, history, audit, nil
}

// BuildJobStore returns the Postgres job tracker, or nil without a
// database.
func BuildJobStore(pool *pgxpool.Pool) *conversation.PGJobStore {
	if pool == nil {
		return nil
	}
	return conversation.NewPGJobStore(pool)
}
