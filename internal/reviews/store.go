package reviews

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PgxPool is the subset of pgxpool.Pool the store needs.
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store persists analyzed reviews in Postgres.
type Store struct {
	pool PgxPool
}

func NewStore(pool PgxPool) *Store {
	if pool == nil {
		return nil
	}
	return &Store{pool: pool}
}

// Record is a stored review, either a direct user review or an
// imported YouTube video.
type Record struct {
	ID             uuid.UUID
	ClinicID       uuid.NullUUID
	ProcedureID    uuid.NullUUID
	Rating         float64
	Title          string
	Content        string
	YouTubeVideoID string
	YouTubeChannel string
	Source         string
	Language       string
	SentimentScore float64
}

// UpsertVideoReview stores an imported YouTube review, keyed by video ID.
func (s *Store) UpsertVideoReview(ctx context.Context, rec Record) (uuid.UUID, error) {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.Source == "" {
		rec.Source = "youtube"
	}
	if rec.Language == "" {
		rec.Language = "en"
	}
	query := `
		INSERT INTO reviews (
			id, clinic_id, procedure_id, rating, title, content,
			youtube_video_id, youtube_channel, source, language, sentiment_score
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		ON CONFLICT (youtube_video_id) WHERE youtube_video_id <> '' DO UPDATE
		SET title = EXCLUDED.title,
			content = EXCLUDED.content,
			sentiment_score = EXCLUDED.sentiment_score,
			clinic_id = COALESCE(EXCLUDED.clinic_id, reviews.clinic_id),
			procedure_id = COALESCE(EXCLUDED.procedure_id, reviews.procedure_id)
	`
	_, err := s.pool.Exec(ctx, query,
		rec.ID, rec.ClinicID, rec.ProcedureID, rec.Rating, rec.Title, rec.Content,
		rec.YouTubeVideoID, rec.YouTubeChannel, rec.Source, rec.Language, rec.SentimentScore,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("reviews: upsert video review: %w", err)
	}
	return rec.ID, nil
}

const reviewColumns = `id, clinic_id, procedure_id, rating, title, content,
		youtube_video_id, youtube_channel, source, language, sentiment_score`

// ListForProcedure returns stored reviews for a procedure, newest first.
func (s *Store) ListForProcedure(ctx context.Context, procedureID uuid.UUID, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 5
	}
	query := `SELECT ` + reviewColumns + `
		FROM reviews
		WHERE procedure_id = $1
		ORDER BY created_at DESC
		LIMIT $2`
	return s.list(ctx, query, procedureID, limit)
}

// ListForClinic returns stored reviews for a clinic, newest first.
func (s *Store) ListForClinic(ctx context.Context, clinicID uuid.UUID, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 5
	}
	query := `SELECT ` + reviewColumns + `
		FROM reviews
		WHERE clinic_id = $1
		ORDER BY created_at DESC
		LIMIT $2`
	return s.list(ctx, query, clinicID, limit)
}

func (s *Store) list(ctx context.Context, query string, args ...any) ([]Record, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("reviews: list reviews: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(
			&rec.ID, &rec.ClinicID, &rec.ProcedureID, &rec.Rating, &rec.Title, &rec.Content,
			&rec.YouTubeVideoID, &rec.YouTubeChannel, &rec.Source, &rec.Language, &rec.SentimentScore,
		); err != nil {
			return nil, fmt.Errorf("reviews: scan review: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// SentimentSummary aggregates stored sentiment for a procedure.
type SentimentSummary struct {
	ReviewCount  int
	AverageScore float64
	Positive     int
	Neutral      int
	Negative     int
}

// SummarizeForProcedure computes the sentiment distribution across
// stored reviews of a procedure.
func (s *Store) SummarizeForProcedure(ctx context.Context, procedureID uuid.UUID) (*SentimentSummary, error) {
	query := `
		SELECT count(*),
			COALESCE(avg(sentiment_score), 0),
			count(*) FILTER (WHERE sentiment_score > 0.2),
			count(*) FILTER (WHERE sentiment_score BETWEEN -0.2 AND 0.2),
			count(*) FILTER (WHERE sentiment_score < -0.2)
		FROM reviews
		WHERE procedure_id = $1
	`
	var out SentimentSummary
	if err := s.pool.QueryRow(ctx, query, procedureID).Scan(
		&out.ReviewCount, &out.AverageScore, &out.Positive, &out.Neutral, &out.Negative,
	); err != nil {
		return nil, fmt.Errorf("reviews: summarize procedure sentiment: %w", err)
	}
	return &out, nil
}
