package conversation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/ahrie-ai/platform/internal/i18n"
	"github.com/ahrie-ai/platform/internal/llm"
)

const (
	conversationTTL = 24 * time.Hour
	// Language choices outlive individual conversations.
	languageTTL = 90 * 24 * time.Hour
)

// HistoryStore keeps rolling chat history and per-chat language
// preferences in Redis.
type HistoryStore struct {
	redis  *redis.Client
	tracer trace.Tracer
}

// NewHistoryStore creates a Redis-backed history store.
func NewHistoryStore(client *redis.Client, tracer trace.Tracer) *HistoryStore {
	if client == nil {
		panic("conversation: redis client cannot be nil")
	}
	if tracer == nil {
		tracer = otel.Tracer("ahrie.internal.conversation.history")
	}
	return &HistoryStore{
		redis:  client,
		tracer: tracer,
	}
}

// Save persists the conversation history with a rolling TTL.
func (s *HistoryStore) Save(ctx context.Context, conversationID string, history []llm.ChatMessage) error {
	ctx, span := s.tracer.Start(ctx, "conversation.save_history")
	defer span.End()

	data, err := json.Marshal(history)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("conversation: failed to marshal history: %w", err)
	}
	if err := s.redis.Set(ctx, conversationKey(conversationID), data, conversationTTL).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("conversation: failed to persist history: %w", err)
	}
	return nil
}

// Load retrieves the conversation history.
func (s *HistoryStore) Load(ctx context.Context, conversationID string) ([]llm.ChatMessage, error) {
	ctx, span := s.tracer.Start(ctx, "conversation.load_history")
	defer span.End()

	data, err := s.redis.Get(ctx, conversationKey(conversationID)).Bytes()
	if err != nil {
		span.RecordError(err)
		if err == redis.Nil {
			return nil, fmt.Errorf("conversation: unknown conversation %s", conversationID)
		}
		return nil, fmt.Errorf("conversation: failed to load history: %w", err)
	}

	var history []llm.ChatMessage
	if err := json.Unmarshal(data, &history); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("conversation: failed to decode history: %w", err)
	}
	return history, nil
}

// SaveLanguage records the user's language choice for the chat.
func (s *HistoryStore) SaveLanguage(ctx context.Context, chatID int64, lang i18n.Language) error {
	if err := s.redis.Set(ctx, languageKey(chatID), string(lang), languageTTL).Err(); err != nil {
		return fmt.Errorf("conversation: failed to persist language: %w", err)
	}
	return nil
}

// LoadLanguage retrieves the saved language for the chat, "" when none
// was saved.
func (s *HistoryStore) LoadLanguage(ctx context.Context, chatID int64) (i18n.Language, error) {
	val, err := s.redis.Get(ctx, languageKey(chatID)).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil
		}
		return "", fmt.Errorf("conversation: failed to load language: %w", err)
	}
	return i18n.Language(val), nil
}

// ActiveConversation maps a chat to its current conversation so
// successive messages share history.
func (s *HistoryStore) ActiveConversation(ctx context.Context, chatID int64) (string, error) {
	val, err := s.redis.Get(ctx, activeConversationKey(chatID)).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil
		}
		return "", fmt.Errorf("conversation: failed to load active conversation: %w", err)
	}
	return val, nil
}

// SetActiveConversation records the chat's current conversation.
func (s *HistoryStore) SetActiveConversation(ctx context.Context, chatID int64, conversationID string) error {
	if err := s.redis.Set(ctx, activeConversationKey(chatID), conversationID, conversationTTL).Err(); err != nil {
		return fmt.Errorf("conversation: failed to persist active conversation: %w", err)
	}
	return nil
}

func conversationKey(id string) string {
	return fmt.Sprintf("conversation:%s", id)
}

func languageKey(chatID int64) string {
	return fmt.Sprintf("chat_lang:%d", chatID)
}

func activeConversationKey(chatID int64) string {
	return fmt.Sprintf("chat_conversation:%d", chatID)
}
