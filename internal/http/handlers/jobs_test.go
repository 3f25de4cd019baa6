package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ahrie-ai/platform/internal/conversation"
	"github.com/ahrie-ai/platform/pkg/logging"
)

func jobRequest(jobID string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/admin/jobs/"+jobID, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("jobID", jobID)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestGetJobCompleted(t *testing.T) {
	jobs := &stubJobRecorder{job: &conversation.JobRecord{
		JobID:          "job-1",
		Status:         conversation.JobStatusCompleted,
		ChatID:         42,
		ConversationID: "conv-1",
		Response:       "🏥 all the details",
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}}
	handler := NewJobsHandler(jobs, logging.Default())

	rec := httptest.NewRecorder()
	handler.GetJob(rec, jobRequest("job-1"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["status"] != "completed" || resp["response"] != "🏥 all the details" {
		t.Errorf("unexpected response: %#v", resp)
	}
	if _, ok := resp["error"]; ok {
		t.Error("completed job should not carry an error field")
	}
}

func TestGetJobNotFound(t *testing.T) {
	jobs := &stubJobRecorder{err: conversation.ErrJobNotFound}
	handler := NewJobsHandler(jobs, logging.Default())

	rec := httptest.NewRecorder()
	handler.GetJob(rec, jobRequest("missing"))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestGetJobMissingID(t *testing.T) {
	handler := NewJobsHandler(&stubJobRecorder{}, logging.Default())

	rec := httptest.NewRecorder()
	handler.GetJob(rec, jobRequest(""))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
