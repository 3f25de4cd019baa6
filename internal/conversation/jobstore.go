package conversation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

const jobTTL = 24 * time.Hour

// JobStatus represents the lifecycle of a conversation job.
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
)

// ErrJobNotFound indicates the requested job ID does not exist.
var ErrJobNotFound = errors.New("conversation: job not found")

// JobRecord captures the persisted state of a queued request.
type JobRecord struct {
	JobID          string    `json:"job_id"`
	Status         JobStatus `json:"status"`
	ChatID         int64     `json:"chat_id,omitempty"`
	ConversationID string    `json:"conversation_id,omitempty"`
	Response       string    `json:"response,omitempty"`
	ErrorMessage   string    `json:"error_message,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// JobRecorder persists new jobs and serves status lookups.
type JobRecorder interface {
	PutPending(ctx context.Context, job *JobRecord) error
	GetJob(ctx context.Context, jobID string) (*JobRecord, error)
}

// JobUpdater moves jobs through their lifecycle.
type JobUpdater interface {
	MarkCompleted(ctx context.Context, jobID string, resp *Response) error
	MarkFailed(ctx context.Context, jobID string, errMsg string) error
}

// PGJobStore persists job records to PostgreSQL.
type PGJobStore struct {
	pool PgxPool
}

// NewPGJobStore builds a Postgres-backed job store.
func NewPGJobStore(pool PgxPool) *PGJobStore {
	if pool == nil {
		panic("conversation: pgx pool cannot be nil")
	}
	return &PGJobStore{pool: pool}
}

var _ JobRecorder = (*PGJobStore)(nil)
var _ JobUpdater = (*PGJobStore)(nil)

// PutPending inserts a pending job record.
func (s *PGJobStore) PutPending(ctx context.Context, job *JobRecord) error {
	if job == nil {
		return errors.New("conversation: job cannot be nil")
	}
	now := time.Now().UTC()
	job.Status = JobStatusPending
	job.CreatedAt = now
	job.UpdatedAt = now

	if _, err := s.pool.Exec(ctx, `
		INSERT INTO conversation_jobs (job_id, status, chat_id, created_at, updated_at, expires_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`, job.JobID, job.Status, job.ChatID, now, now, now.Add(jobTTL)); err != nil {
		return fmt.Errorf("conversation: failed to persist job: %w", err)
	}
	return nil
}

// MarkCompleted stores the final reply on the job.
func (s *PGJobStore) MarkCompleted(ctx context.Context, jobID string, resp *Response) error {
	if jobID == "" {
		return errors.New("conversation: jobID required")
	}
	if resp == nil {
		resp = &Response{}
	}
	result, err := s.pool.Exec(ctx, `
		UPDATE conversation_jobs
		SET status = $2,
			conversation_id = $3,
			response = $4,
			error = '',
			updated_at = $5
		WHERE job_id = $1
	`, jobID, JobStatusCompleted, resp.ConversationID, resp.Text, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("conversation: failed to update job: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrJobNotFound
	}
	return nil
}

// MarkFailed marks the job as failed with an error message.
func (s *PGJobStore) MarkFailed(ctx context.Context, jobID string, errMsg string) error {
	if jobID == "" {
		return errors.New("conversation: jobID required")
	}
	result, err := s.pool.Exec(ctx, `
		UPDATE conversation_jobs
		SET status = $2,
			response = '',
			error = $3,
			updated_at = $4
		WHERE job_id = $1
	`, jobID, JobStatusFailed, errMsg, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("conversation: failed to update job: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrJobNotFound
	}
	return nil
}

// GetJob loads a job by ID.
func (s *PGJobStore) GetJob(ctx context.Context, jobID string) (*JobRecord, error) {
	if jobID == "" {
		return nil, errors.New("conversation: jobID required")
	}
	var job JobRecord
	err := s.pool.QueryRow(ctx, `
		SELECT job_id, status, chat_id, conversation_id, response, error, created_at, updated_at
		FROM conversation_jobs
		WHERE job_id = $1
	`, jobID).Scan(&job.JobID, &job.Status, &job.ChatID, &job.ConversationID,
		&job.Response, &job.ErrorMessage, &job.CreatedAt, &job.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("conversation: failed to fetch job: %w", err)
	}
	return &job, nil
}
