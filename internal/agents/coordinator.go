package agents

import (
	"context"

	"github.com/ahrie-ai/platform/internal/llm"
	"github.com/ahrie-ai/platform/pkg/logging"
)

// CoordinatorAgent handles greetings, trip planning, and anything the
// specialists do not cover.
type CoordinatorAgent struct {
	client llm.Client
	tuning tuning
	logger *logging.Logger
}

func NewCoordinatorAgent(client llm.Client, logger *logging.Logger, opts ...AgentOption) *CoordinatorAgent {
	if client == nil {
		panic("agents: llm client cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &CoordinatorAgent{client: client, tuning: newTuning(opts), logger: logger}
}

func (a *CoordinatorAgent) Role() Role { return RoleCoordinator }

func (a *CoordinatorAgent) Respond(ctx context.Context, q Query) (Reply, error) {
	return complete(ctx, a.client, RoleCoordinator, q, nil, a.tuning)
}
