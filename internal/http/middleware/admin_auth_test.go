package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func adminRequest(token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/admin/jobs/abc", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func runAdminJWT(t *testing.T, secret string, req *http.Request) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	called := false
	rec := httptest.NewRecorder()
	AdminJWT(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if _, ok := AdminClaimsFromContext(r.Context()); !ok {
			t.Fatal("expected admin claims in context")
		}
		w.WriteHeader(http.StatusOK)
	})).ServeHTTP(rec, req)
	return rec, called
}

func TestAdminJWTRejectsWhenDisabled(t *testing.T) {
	rec, called := runAdminJWT(t, "", adminRequest(signAdminToken(t, "anything")))
	if called {
		t.Fatal("handler must not run with auth disabled")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "admin auth disabled") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAdminJWTRejectsMissingHeader(t *testing.T) {
	rec, called := runAdminJWT(t, "secret", adminRequest(""))
	if called || rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d (called=%v)", rec.Code, called)
	}
}

func TestAdminJWTRejectsWrongSecret(t *testing.T) {
	rec, called := runAdminJWT(t, "secret", adminRequest(signAdminToken(t, "other-secret")))
	if called || rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with wrong secret, got %d (called=%v)", rec.Code, called)
	}
}

func TestAdminJWTAcceptsValidToken(t *testing.T) {
	rec, called := runAdminJWT(t, "secret", adminRequest(signAdminToken(t, "secret")))
	if !called {
		t.Fatal("expected handler to run")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAdminJWTRejectsExpiredToken(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Subject:   "admin",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	rec, called := runAdminJWT(t, "secret", adminRequest(expired))
	if called || rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired token, got %d (called=%v)", rec.Code, called)
	}
}

func signAdminToken(t *testing.T, secret string) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   "admin",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(5 * time.Minute)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}
