package agents

import (
	"context"

	"github.com/ahrie-ai/platform/internal/i18n"
	"github.com/ahrie-ai/platform/internal/llm"
)

// Role identifies a specialist in the pool.
type Role string

const (
	RoleCoordinator Role = "coordinator"
	RoleMedical     Role = "medical"
	RoleCultural    Role = "cultural"
	RoleReview      Role = "review"
)

// Query is one user turn with its conversational context.
type Query struct {
	Text     string
	Language i18n.Language
	History  []llm.ChatMessage
}

// Reply is a single agent's answer.
type Reply struct {
	Role  Role
	Text  string
	Usage llm.TokenUsage
}

// Agent answers a query from its specialist perspective.
type Agent interface {
	Role() Role
	Respond(ctx context.Context, q Query) (Reply, error)
}

const (
	defaultMaxTokens       = 700
	defaultTemperature     = 0.4
	defaultKnowledgeTopK   = 3
	defaultMaxVideoResults = 10
	historyLimit           = 12
)

// tuning holds the model and retrieval knobs shared across the pool.
type tuning struct {
	maxTokens   int
	temperature float64
	topK        int
	maxVideos   int
}

// AgentOption adjusts an agent's tuning at construction.
type AgentOption func(*tuning)

// WithMaxTokens caps the model's reply length.
func WithMaxTokens(n int) AgentOption {
	return func(t *tuning) {
		if n > 0 {
			t.maxTokens = n
		}
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(temp float64) AgentOption {
	return func(t *tuning) {
		if temp >= 0 {
			t.temperature = temp
		}
	}
}

// WithKnowledgeTopK sets how many knowledge snippets ground a reply.
func WithKnowledgeTopK(k int) AgentOption {
	return func(t *tuning) {
		if k > 0 {
			t.topK = k
		}
	}
}

// WithMaxVideoResults sets how many videos the review search fetches.
func WithMaxVideoResults(n int) AgentOption {
	return func(t *tuning) {
		if n > 0 {
			t.maxVideos = n
		}
	}
}

func newTuning(opts []AgentOption) tuning {
	t := tuning{
		maxTokens:   defaultMaxTokens,
		temperature: defaultTemperature,
		topK:        defaultKnowledgeTopK,
		maxVideos:   defaultMaxVideoResults,
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

// complete assembles the request an agent sends to the model: persona
// instructions, any grounding context, trimmed history, then the user
// turn.
func complete(ctx context.Context, client llm.Client, role Role, q Query, groundingContext []string, t tuning) (Reply, error) {
	system := instructionsFor(role, q.Language)
	system = append(system, groundingContext...)

	history := q.History
	if len(history) > historyLimit {
		history = history[len(history)-historyLimit:]
	}
	messages := make([]llm.ChatMessage, 0, len(history)+1)
	messages = append(messages, history...)
	messages = append(messages, llm.ChatMessage{Role: llm.ChatRoleUser, Content: q.Text})

	resp, err := client.Complete(ctx, llm.Request{
		System:      system,
		Messages:    messages,
		MaxTokens:   int32(t.maxTokens),
		Temperature: float32(t.temperature),
	})
	if err != nil {
		return Reply{}, err
	}
	return Reply{Role: role, Text: resp.Text, Usage: resp.Usage}, nil
}
