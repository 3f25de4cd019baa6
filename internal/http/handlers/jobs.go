package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ahrie-ai/platform/internal/conversation"
	"github.com/ahrie-ai/platform/pkg/logging"
)

// JobsHandler exposes the status of queued conversation jobs.
type JobsHandler struct {
	jobs   conversation.JobRecorder
	logger *logging.Logger
}

func NewJobsHandler(jobs conversation.JobRecorder, logger *logging.Logger) *JobsHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &JobsHandler{jobs: jobs, logger: logger.Component("admin_jobs")}
}

// GetJob returns a job's current status and, once processed, the reply
// or failure reason.
// GET /admin/jobs/{jobID}
func (h *JobsHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	jobID := strings.TrimSpace(chi.URLParam(r, "jobID"))
	if jobID == "" {
		jsonError(w, "missing jobID", http.StatusBadRequest)
		return
	}
	if h.jobs == nil {
		jsonError(w, "job tracking disabled", http.StatusServiceUnavailable)
		return
	}

	job, err := h.jobs.GetJob(r.Context(), jobID)
	if err != nil {
		if errors.Is(err, conversation.ErrJobNotFound) {
			jsonError(w, "job not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to fetch job", "job_id", jobID, "error", err)
		jsonError(w, "internal error", http.StatusInternalServerError)
		return
	}

	payload := map[string]any{
		"job_id":     job.JobID,
		"status":     string(job.Status),
		"created_at": job.CreatedAt,
		"updated_at": job.UpdatedAt,
	}
	if job.ConversationID != "" {
		payload["conversation_id"] = job.ConversationID
	}
	if job.Response != "" {
		payload["response"] = job.Response
	}
	if job.ErrorMessage != "" {
		payload["error"] = job.ErrorMessage
	}
	writeJSON(w, http.StatusOK, payload)
}
