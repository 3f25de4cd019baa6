package agents

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/ahrie-ai/platform/internal/i18n"
	"github.com/ahrie-ai/platform/internal/llm"
	"github.com/ahrie-ai/platform/pkg/logging"
)

// stubAgent returns a fixed reply or error for its role.
type stubAgent struct {
	role Role
	text string
	err  error
}

func (s *stubAgent) Role() Role { return s.role }

func (s *stubAgent) Respond(ctx context.Context, q Query) (Reply, error) {
	if s.err != nil {
		return Reply{}, s.err
	}
	return Reply{Role: s.role, Text: s.text, Usage: llm.TokenUsage{InputTokens: 10, OutputTokens: 20, TotalTokens: 30}}, nil
}

func newTestOrchestrator(t *testing.T, pool ...Agent) *Orchestrator {
	t.Helper()
	hasCoordinator := false
	for _, a := range pool {
		if a.Role() == RoleCoordinator {
			hasCoordinator = true
		}
	}
	if !hasCoordinator {
		pool = append(pool, &stubAgent{role: RoleCoordinator, text: "coordinator reply"})
	}
	return NewOrchestrator(pool, logging.Default())
}

func TestProcessSingleAgentPassthrough(t *testing.T) {
	o := newTestOrchestrator(t)
	res, err := o.Process(context.Background(), Query{Text: "Hello, I am planning a trip"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Text != "coordinator reply" {
		t.Errorf("unexpected text: %q", res.Text)
	}
	if strings.Contains(res.Text, "**") {
		t.Error("single reply should not carry a section header")
	}
	if res.Language != i18n.English {
		t.Errorf("expected detected English, got %q", res.Language)
	}
}

func TestProcessMergesSectionsInOrder(t *testing.T) {
	o := newTestOrchestrator(t,
		&stubAgent{role: RoleMedical, text: "medical answer"},
		&stubAgent{role: RoleCultural, text: "cultural answer"},
		&stubAgent{role: RoleReview, text: "review answer"},
	)

	res, err := o.Process(context.Background(), Query{
		Text: "What does eyelid surgery cost in Gangnam, are there halal restaurants, and can I see reviews?",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sections := strings.Split(res.Text, "\n\n")
	if len(sections) != 3 {
		t.Fatalf("expected 3 sections, got %d: %q", len(sections), res.Text)
	}
	if !strings.HasPrefix(sections[0], "🏥 **Medical Information:**") {
		t.Errorf("medical section not first: %q", sections[0])
	}
	if !strings.HasPrefix(sections[1], "📹 **Reviews & Experiences:**") {
		t.Errorf("review section not second: %q", sections[1])
	}
	if !strings.HasPrefix(sections[2], "🕌 **Cultural Guidance:**") {
		t.Errorf("cultural section not third: %q", sections[2])
	}
	if res.Usage.TotalTokens != 90 {
		t.Errorf("expected summed usage 90, got %d", res.Usage.TotalTokens)
	}
}

func TestProcessArabicHeaders(t *testing.T) {
	o := newTestOrchestrator(t,
		&stubAgent{role: RoleMedical, text: "إجابة طبية"},
		&stubAgent{role: RoleCultural, text: "إجابة ثقافية"},
	)

	res, err := o.Process(context.Background(), Query{Text: "كم تكلفة العملية وهل يوجد طعام حلال؟"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Language != i18n.Arabic {
		t.Fatalf("expected Arabic, got %q", res.Language)
	}
	if !strings.Contains(res.Text, "🏥 **معلومات طبية:**") {
		t.Errorf("missing Arabic medical header: %q", res.Text)
	}
	if !strings.Contains(res.Text, "🕌 **إرشادات ثقافية:**") {
		t.Errorf("missing Arabic cultural header: %q", res.Text)
	}
}

func TestProcessPartialFailure(t *testing.T) {
	o := newTestOrchestrator(t,
		&stubAgent{role: RoleMedical, text: "medical answer"},
		&stubAgent{role: RoleReview, err: errors.New("quota exceeded")},
	)

	res, err := o.Process(context.Background(), Query{Text: "surgery cost and reviews please"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(res.Text, "medical answer") {
		t.Errorf("surviving section missing: %q", res.Text)
	}
	if strings.Contains(res.Text, "Reviews") {
		t.Errorf("failed section should be absent: %q", res.Text)
	}
	if len(res.FailedRole) != 1 || res.FailedRole[0] != RoleReview {
		t.Errorf("expected review failure recorded, got %v", res.FailedRole)
	}
}

func TestProcessTotalFailureApologizes(t *testing.T) {
	o := newTestOrchestrator(t,
		&stubAgent{role: RoleCoordinator, err: errors.New("model down")},
	)

	res, err := o.Process(context.Background(), Query{Text: "مرحبا", Language: i18n.Arabic})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Text != i18n.T("error_message", i18n.Arabic) {
		t.Errorf("expected Arabic apology, got %q", res.Text)
	}
}

type recordingObserver struct {
	mu    sync.Mutex
	roles []string
}

func (r *recordingObserver) ObserveAgentLatency(role string, seconds float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.roles = append(r.roles, role)
}

func TestProcessReportsAgentLatency(t *testing.T) {
	obs := &recordingObserver{}
	o := NewOrchestrator([]Agent{
		&stubAgent{role: RoleCoordinator, text: "ok"},
		&stubAgent{role: RoleMedical, text: "medical answer"},
		&stubAgent{role: RoleReview, err: errors.New("quota exceeded")},
	}, logging.Default(), WithLatencyObserver(obs))

	if _, err := o.Process(context.Background(), Query{Text: "surgery cost and reviews please"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sort.Strings(obs.roles)
	want := []string{string(RoleMedical), string(RoleReview)}
	if len(obs.roles) != len(want) || obs.roles[0] != want[0] || obs.roles[1] != want[1] {
		t.Errorf("observed roles = %v, want %v", obs.roles, want)
	}
}

func TestNewOrchestratorRequiresCoordinator(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic without coordinator")
		}
	}()
	NewOrchestrator([]Agent{&stubAgent{role: RoleMedical}}, logging.Default())
}
