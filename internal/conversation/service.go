// Package conversation ties the platform together: it keeps chat
// history, routes each visitor message through the agent pool, records
// the exchange, and works queued jobs off into Telegram replies.
package conversation

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ahrie-ai/platform/internal/agents"
	"github.com/ahrie-ai/platform/internal/compliance"
	"github.com/ahrie-ai/platform/internal/i18n"
	"github.com/ahrie-ai/platform/internal/llm"
	"github.com/ahrie-ai/platform/internal/observability/metrics"
	"github.com/ahrie-ai/platform/pkg/logging"
)

// StartRequest opens a conversation for a Telegram user.
type StartRequest struct {
	ChatID       int64  `json:"chat_id"`
	TelegramID   int64  `json:"telegram_id"`
	Username     string `json:"username,omitempty"`
	FirstName    string `json:"first_name,omitempty"`
	LastName     string `json:"last_name,omitempty"`
	LanguageCode string `json:"language_code,omitempty"`
}

// MessageRequest carries one visitor message into the engine.
type MessageRequest struct {
	ConversationID string `json:"conversation_id,omitempty"`
	ChatID         int64  `json:"chat_id"`
	TelegramID     int64  `json:"telegram_id"`
	Text           string `json:"text"`
	LanguageCode   string `json:"language_code,omitempty"`
}

// Response is the engine's reply for one turn.
type Response struct {
	ConversationID string        `json:"conversation_id"`
	Text           string        `json:"text"`
	Language       i18n.Language `json:"language"`
	ResponseType   string        `json:"response_type"`
	Intents        []string      `json:"intents,omitempty"`
	TokensUsed     int32         `json:"tokens_used,omitempty"`
}

// Service is the conversation engine surface the worker and handlers use.
type Service interface {
	StartConversation(ctx context.Context, req StartRequest) (*Response, error)
	ProcessMessage(ctx context.Context, req MessageRequest) (*Response, error)
}

// queryProcessor is the slice of the orchestrator the engine needs.
type queryProcessor interface {
	Process(ctx context.Context, q agents.Query) (agents.Result, error)
}

// Engine implements Service on top of the agent orchestrator, Redis
// history, and the Postgres conversation store.
type Engine struct {
	orchestrator queryProcessor
	history      *HistoryStore
	store        *Store
	disclaimers  *compliance.DisclaimerService
	metrics      *metrics.Metrics
	logger       *logging.Logger
}

// EngineOption customizes the engine.
type EngineOption func(*Engine)

// WithStore enables Postgres persistence of users and transcripts.
func WithStore(store *Store) EngineOption {
	return func(e *Engine) { e.store = store }
}

// WithDisclaimers appends compliance disclaimers to replies.
func WithDisclaimers(svc *compliance.DisclaimerService) EngineOption {
	return func(e *Engine) { e.disclaimers = svc }
}

// WithMetrics records agent reply counts and token usage.
func WithMetrics(m *metrics.Metrics) EngineOption {
	return func(e *Engine) { e.metrics = m }
}

// NewEngine wires the conversation engine.
func NewEngine(orchestrator queryProcessor, history *HistoryStore, logger *logging.Logger, opts ...EngineOption) *Engine {
	if orchestrator == nil {
		panic("conversation: orchestrator cannot be nil")
	}
	if history == nil {
		panic("conversation: history store cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	e := &Engine{
		orchestrator: orchestrator,
		history:      history,
		logger:       logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// StartConversation registers the user, opens a conversation, and
// returns the localized welcome message.
func (e *Engine) StartConversation(ctx context.Context, req StartRequest) (*Response, error) {
	if req.ChatID == 0 {
		return nil, fmt.Errorf("conversation: chat id is required")
	}

	lang := i18n.Normalize(req.LanguageCode)
	conversationID := uuid.NewString()

	if e.store != nil {
		userID, err := e.store.UpsertUser(ctx, UserRecord{
			TelegramID:   req.TelegramID,
			Username:     req.Username,
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			LanguageCode: string(lang),
		})
		if err != nil {
			e.logger.Warn("user upsert failed", "telegram_id", req.TelegramID, "error", err)
		} else if err := e.store.CreateConversation(ctx, conversationID, userID, req.ChatID, lang); err != nil {
			e.logger.Warn("conversation insert failed", "conversation_id", conversationID, "error", err)
		}
	}

	if err := e.history.SaveLanguage(ctx, req.ChatID, lang); err != nil {
		e.logger.Warn("language save failed", "chat_id", req.ChatID, "error", err)
	}
	if err := e.history.Save(ctx, conversationID, nil); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.FirstName)
	if name == "" {
		name = i18n.T("guest_name", lang)
	}
	text := i18n.T("welcome_message", lang, name)

	e.logger.Info("conversation started",
		"conversation_id", conversationID,
		"chat_id", req.ChatID,
		"language", string(lang),
	)
	return &Response{
		ConversationID: conversationID,
		Text:           text,
		Language:       lang,
		ResponseType:   string(agents.RoleCoordinator),
	}, nil
}

// ProcessMessage routes one message through the agent pool and appends
// the exchange to history.
func (e *Engine) ProcessMessage(ctx context.Context, req MessageRequest) (*Response, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, fmt.Errorf("conversation: message text is required")
	}

	conversationID := req.ConversationID
	var history []llm.ChatMessage
	isFirst := false
	if conversationID == "" {
		conversationID = uuid.NewString()
		isFirst = true
	} else {
		loaded, err := e.history.Load(ctx, conversationID)
		if err != nil {
			e.logger.Warn("history load failed, starting fresh", "conversation_id", conversationID, "error", err)
			isFirst = true
		} else {
			history = loaded
			isFirst = len(loaded) == 0
		}
	}

	lang := e.resolveLanguage(ctx, req)

	result, err := e.orchestrator.Process(ctx, agents.Query{
		Text:     req.Text,
		Language: lang,
		History:  history,
	})
	if err != nil {
		return nil, fmt.Errorf("conversation: orchestrator failed: %w", err)
	}

	if e.metrics != nil {
		e.metrics.ObserveTokens(float64(result.Usage.TotalTokens))
		for _, r := range result.Replies {
			e.metrics.IncAgentReply(string(r.Role))
		}
		for _, role := range result.FailedRole {
			e.metrics.IncAgentFailure(string(role))
		}
	}

	text := result.Text
	if e.disclaimers != nil && needsDisclaimer(result) {
		text = e.disclaimers.AddDisclaimer(ctx, text, compliance.DisclaimerOptions{
			ConversationID: conversationID,
			ChatID:         req.ChatID,
			Language:       result.Language,
			IsFirstMessage: isFirst,
		})
	}

	history = append(history,
		llm.ChatMessage{Role: llm.ChatRoleUser, Content: req.Text},
		llm.ChatMessage{Role: llm.ChatRoleAssistant, Content: text},
	)
	if err := e.history.Save(ctx, conversationID, history); err != nil {
		e.logger.Warn("history save failed", "conversation_id", conversationID, "error", err)
	}

	intents := make([]string, 0, len(result.Analysis.Intents))
	for _, intent := range result.Analysis.Intents {
		intents = append(intents, string(intent))
	}
	if e.store != nil {
		e.store.RecordExchange(ctx, conversationID, req.Text, text, intents, result.Usage.TotalTokens, e.logger)
	}

	return &Response{
		ConversationID: conversationID,
		Text:           text,
		Language:       result.Language,
		ResponseType:   responseType(result),
		Intents:        intents,
		TokensUsed:     result.Usage.TotalTokens,
	}, nil
}

// resolveLanguage prefers the user's saved choice, then the Telegram
// client hint. Script detection inside the orchestrator covers the rest.
func (e *Engine) resolveLanguage(ctx context.Context, req MessageRequest) i18n.Language {
	if req.ChatID != 0 {
		if saved, err := e.history.LoadLanguage(ctx, req.ChatID); err == nil && saved != "" {
			return saved
		}
	}
	if req.LanguageCode != "" {
		return i18n.Normalize(req.LanguageCode)
	}
	return ""
}

// responseType is the role whose reply leads the merged text, used to
// pick the follow-up keyboard.
func responseType(result agents.Result) string {
	if len(result.Replies) == 0 {
		return string(agents.RoleCoordinator)
	}
	return string(result.Replies[0].Role)
}

// needsDisclaimer reports whether the reply touched medical ground.
func needsDisclaimer(result agents.Result) bool {
	for _, r := range result.Replies {
		if r.Role == agents.RoleMedical {
			return true
		}
	}
	return false
}
