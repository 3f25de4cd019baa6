package compliance

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AuditEventType represents the type of compliance event.
type AuditEventType string

const (
	// EventDisclaimerSent is logged when a disclaimer is added to a reply.
	EventDisclaimerSent AuditEventType = "compliance.disclaimer_sent"
	// EventKnowledgeUpdated is logged when curated knowledge changes.
	EventKnowledgeUpdated AuditEventType = "compliance.knowledge_updated"
	// EventWebhookRejected is logged when a webhook fails secret verification.
	EventWebhookRejected AuditEventType = "security.webhook_rejected"
)

// AuditEvent represents an immutable compliance audit record.
type AuditEvent struct {
	ID             string          `json:"id"`
	EventType      AuditEventType  `json:"event_type"`
	ConversationID string          `json:"conversation_id,omitempty"`
	ChatID         int64           `json:"chat_id,omitempty"`
	UserMessage    string          `json:"user_message,omitempty"`
	BotResponse    string          `json:"bot_response,omitempty"`
	Details        json.RawMessage `json:"details,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// AuditDetails contains event-specific details.
type AuditDetails struct {
	DisclaimerLevel string `json:"disclaimer_level,omitempty"`
	Language        string `json:"language,omitempty"`
	KnowledgeTopic  string `json:"knowledge_topic,omitempty"`
	RemoteAddr      string `json:"remote_addr,omitempty"`
}

// AuditService writes compliance audit events to Postgres.
type AuditService struct {
	db *sql.DB
}

// NewAuditService creates a new audit service.
func NewAuditService(db *sql.DB) *AuditService {
	return &AuditService{db: db}
}

// LogEvent records a compliance audit event.
func (s *AuditService) LogEvent(ctx context.Context, event AuditEvent) error {
	if s == nil || s.db == nil {
		return nil
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO compliance_audit_events (
			id, event_type, conversation_id, chat_id,
			user_message, bot_response, details, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(ctx, query,
		event.ID,
		event.EventType,
		event.ConversationID,
		event.ChatID,
		event.UserMessage,
		event.BotResponse,
		event.Details,
		event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("compliance: failed to log audit event: %w", err)
	}
	return nil
}

// LogDisclaimerSent logs when a disclaimer is added to a reply.
func (s *AuditService) LogDisclaimerSent(ctx context.Context, conversationID string, chatID int64, level, language string) error {
	details, _ := json.Marshal(AuditDetails{DisclaimerLevel: level, Language: language})
	return s.LogEvent(ctx, AuditEvent{
		EventType:      EventDisclaimerSent,
		ConversationID: conversationID,
		ChatID:         chatID,
		Details:        details,
	})
}

// LogKnowledgeUpdated logs an admin change to the curated knowledge base.
func (s *AuditService) LogKnowledgeUpdated(ctx context.Context, topic string, docCount int) error {
	details, _ := json.Marshal(AuditDetails{KnowledgeTopic: topic})
	return s.LogEvent(ctx, AuditEvent{
		EventType:   EventKnowledgeUpdated,
		UserMessage: fmt.Sprintf("%d documents", docCount),
		Details:     details,
	})
}

// LogWebhookRejected logs a webhook delivery that failed verification.
func (s *AuditService) LogWebhookRejected(ctx context.Context, remoteAddr string) error {
	details, _ := json.Marshal(AuditDetails{RemoteAddr: remoteAddr})
	return s.LogEvent(ctx, AuditEvent{
		EventType: EventWebhookRejected,
		Details:   details,
	})
}
