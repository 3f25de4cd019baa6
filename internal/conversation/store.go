package conversation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ahrie-ai/platform/internal/i18n"
	"github.com/ahrie-ai/platform/pkg/logging"
)

// PgxPool is the subset of pgxpool.Pool the store needs.
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store persists users, conversations, and message transcripts.
type Store struct {
	pool PgxPool
}

// NewStore creates the Postgres-backed conversation store. Returns nil
// when no pool is configured so persistence stays optional.
func NewStore(pool PgxPool) *Store {
	if pool == nil {
		return nil
	}
	return &Store{pool: pool}
}

// UserRecord is a Telegram user as persisted.
type UserRecord struct {
	ID           uuid.UUID
	TelegramID   int64
	Username     string
	FirstName    string
	LastName     string
	LanguageCode string
	Country      string
}

// UpsertUser inserts or refreshes a user keyed by Telegram ID.
func (s *Store) UpsertUser(ctx context.Context, rec UserRecord) (uuid.UUID, error) {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	query := `
		INSERT INTO users (id, telegram_id, username, first_name, last_name, language_code, country)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (telegram_id) DO UPDATE
		SET username = EXCLUDED.username,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			language_code = EXCLUDED.language_code,
			updated_at = now()
		RETURNING id
	`
	var id uuid.UUID
	err := s.pool.QueryRow(ctx, query,
		rec.ID, rec.TelegramID, rec.Username, rec.FirstName, rec.LastName, rec.LanguageCode, rec.Country,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("conversation: upsert user: %w", err)
	}
	return id, nil
}

// SetUserLanguage updates the persisted language preference.
func (s *Store) SetUserLanguage(ctx context.Context, telegramID int64, lang i18n.Language) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE users SET language_code = $2, updated_at = now() WHERE telegram_id = $1
	`, telegramID, string(lang))
	if err != nil {
		return fmt.Errorf("conversation: set user language: %w", err)
	}
	return nil
}

// CreateConversation opens a conversation row for the chat.
func (s *Store) CreateConversation(ctx context.Context, conversationID string, userID uuid.UUID, chatID int64, lang i18n.Language) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO conversations (conversation_id, user_id, chat_id, language_code)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (conversation_id) DO NOTHING
	`, conversationID, nullUUID(userID), chatID, string(lang))
	if err != nil {
		return fmt.Errorf("conversation: create conversation: %w", err)
	}
	return nil
}

// EndConversation marks a conversation closed.
func (s *Store) EndConversation(ctx context.Context, conversationID string) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE conversations
		SET status = 'ended', ended_at = now()
		WHERE conversation_id = $1
	`, conversationID)
	if err != nil {
		return fmt.Errorf("conversation: end conversation: %w", err)
	}
	return nil
}

// AppendMessage stores one transcript row and bumps the conversation
// counters.
func (s *Store) AppendMessage(ctx context.Context, conversationID, role, content string, intents []string, tokens int32) error {
	if intents == nil {
		intents = []string{}
	}
	if _, err := s.pool.Exec(ctx, `
		INSERT INTO messages (conversation_id, role, content, intents, tokens_used)
		VALUES ($1,$2,$3,$4,$5)
	`, conversationID, role, content, intents, tokens); err != nil {
		return fmt.Errorf("conversation: append message: %w", err)
	}
	if _, err := s.pool.Exec(ctx, `
		UPDATE conversations
		SET message_count = message_count + 1, last_message_at = now()
		WHERE conversation_id = $1
	`, conversationID); err != nil {
		return fmt.Errorf("conversation: bump conversation: %w", err)
	}
	return nil
}

// RecordExchange persists a user turn and the bot reply. Persistence is
// best effort; failures are logged, never surfaced to the visitor.
func (s *Store) RecordExchange(ctx context.Context, conversationID, userText, botText string, intents []string, tokens int32, logger *logging.Logger) {
	if err := s.AppendMessage(ctx, conversationID, "user", userText, intents, 0); err != nil {
		logger.Warn("transcript write failed", "conversation_id", conversationID, "error", err)
		return
	}
	if err := s.AppendMessage(ctx, conversationID, "assistant", botText, nil, tokens); err != nil {
		logger.Warn("transcript write failed", "conversation_id", conversationID, "error", err)
	}
}

// TranscriptMessage is one stored transcript row.
type TranscriptMessage struct {
	Role      string
	Content   string
	Intents   []string
	Tokens    int32
	CreatedAt time.Time
}

// Transcript returns the stored messages for a conversation, oldest
// first.
func (s *Store) Transcript(ctx context.Context, conversationID string, limit int) ([]TranscriptMessage, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.pool.Query(ctx, `
		SELECT role, content, intents, tokens_used, created_at
		FROM messages
		WHERE conversation_id = $1
		ORDER BY created_at
		LIMIT $2
	`, conversationID, limit)
	if err != nil {
		return nil, fmt.Errorf("conversation: load transcript: %w", err)
	}
	defer rows.Close()

	var out []TranscriptMessage
	for rows.Next() {
		var m TranscriptMessage
		if err := rows.Scan(&m.Role, &m.Content, &m.Intents, &m.Tokens, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("conversation: scan transcript: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func nullUUID(id uuid.UUID) any {
	if id == uuid.Nil {
		return nil
	}
	return id
}
