package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ahrie-ai/platform/internal/conversation"
	"github.com/ahrie-ai/platform/internal/http/handlers"
	"github.com/ahrie-ai/platform/pkg/logging"
)

type stubJobStore struct{}

func (stubJobStore) PutPending(ctx context.Context, job *conversation.JobRecord) error {
	return nil
}

func (stubJobStore) GetJob(ctx context.Context, jobID string) (*conversation.JobRecord, error) {
	return nil, conversation.ErrJobNotFound
}

func newTestRouter() http.Handler {
	return New(&Config{
		Logger:          logging.Default(),
		Health:          handlers.NewHealthHandler(nil, nil, logging.Default()),
		AdminAuthSecret: "admin-secret",
		Jobs:            handlers.NewJobsHandler(stubJobStore{}, logging.Default()),
		MetricsHandler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}),
	})
}

func adminToken(t *testing.T, secret string) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   "ops",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestHealthRoute(t *testing.T) {
	r := newTestRouter()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestMetricsRoute(t *testing.T) {
	r := newTestRouter()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAdminRequiresToken(t *testing.T) {
	r := newTestRouter()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/jobs/job-1", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAdminWithValidToken(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/admin/jobs/job-1", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t, "admin-secret"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	// Auth passes; the stub store has no such job.
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAdminWithWrongSecret(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/admin/jobs/job-1", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t, "other-secret"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
