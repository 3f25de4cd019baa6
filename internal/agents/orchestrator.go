package agents

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ahrie-ai/platform/internal/i18n"
	"github.com/ahrie-ai/platform/internal/llm"
	"github.com/ahrie-ai/platform/pkg/logging"
)

const defaultAgentTimeout = 25 * time.Second

// Section headers in the aggregated reply, localized per language.
var sectionHeaders = map[Role]map[i18n.Language]string{
	RoleMedical: {
		i18n.English: "🏥 **Medical Information:**",
		i18n.Arabic:  "🏥 **معلومات طبية:**",
		i18n.Korean:  "🏥 **의료 정보:**",
	},
	RoleReview: {
		i18n.English: "📹 **Reviews & Experiences:**",
		i18n.Arabic:  "📹 **التقييمات والتجارب:**",
		i18n.Korean:  "📹 **리뷰 & 경험:**",
	},
	RoleCultural: {
		i18n.English: "🕌 **Cultural Guidance:**",
		i18n.Arabic:  "🕌 **إرشادات ثقافية:**",
		i18n.Korean:  "🕌 **문화 안내:**",
	},
}

// sectionOrder fixes the ordering of sections in a multi-agent reply.
var sectionOrder = map[Role]int{
	RoleMedical:     0,
	RoleReview:      1,
	RoleCultural:    2,
	RoleCoordinator: 3,
}

// Result is the merged outcome of a routed query.
type Result struct {
	Text       string
	Language   i18n.Language
	Analysis   Analysis
	Replies    []Reply
	Usage      llm.TokenUsage
	FailedRole []Role
}

// LatencyObserver receives the wall-clock duration of each agent call,
// successful or not.
type LatencyObserver interface {
	ObserveAgentLatency(role string, seconds float64)
}

// Orchestrator routes queries to the agent pool and merges replies.
type Orchestrator struct {
	agents       map[Role]Agent
	agentTimeout time.Duration
	latency      LatencyObserver
	logger       *logging.Logger
}

// OrchestratorOption customizes the orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithAgentTimeout bounds each agent's model call.
func WithAgentTimeout(d time.Duration) OrchestratorOption {
	return func(o *Orchestrator) {
		if d > 0 {
			o.agentTimeout = d
		}
	}
}

// WithLatencyObserver reports per-agent call latency.
func WithLatencyObserver(obs LatencyObserver) OrchestratorOption {
	return func(o *Orchestrator) { o.latency = obs }
}

// NewOrchestrator wires the agent pool. The coordinator is mandatory
// because it is the fallback for unclassified queries.
func NewOrchestrator(pool []Agent, logger *logging.Logger, opts ...OrchestratorOption) *Orchestrator {
	if logger == nil {
		logger = logging.Default()
	}
	byRole := make(map[Role]Agent, len(pool))
	for _, a := range pool {
		byRole[a.Role()] = a
	}
	if byRole[RoleCoordinator] == nil {
		panic("agents: coordinator agent is required")
	}
	o := &Orchestrator{
		agents:       byRole,
		agentTimeout: defaultAgentTimeout,
		logger:       logger,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Process classifies the query, fans it out to the selected agents in
// parallel, and merges their replies. Individual agent failures degrade
// the reply; only a total failure produces the localized apology.
func (o *Orchestrator) Process(ctx context.Context, q Query) (Result, error) {
	if q.Language == "" {
		q.Language = i18n.Detect(q.Text)
	}

	analysis := Classify(q.Text)
	result := Result{Language: q.Language, Analysis: analysis}

	roles := make([]Role, 0, len(analysis.Roles))
	for _, role := range analysis.Roles {
		if o.agents[role] != nil {
			roles = append(roles, role)
		}
	}
	if len(roles) == 0 {
		roles = []Role{RoleCoordinator}
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for _, role := range roles {
		agent := o.agents[role]
		g.Go(func() error {
			actx, cancel := context.WithTimeout(gctx, o.agentTimeout)
			defer cancel()

			started := time.Now()
			reply, err := agent.Respond(actx, q)
			if o.latency != nil {
				o.latency.ObserveAgentLatency(string(agent.Role()), time.Since(started).Seconds())
			}
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				o.logger.Error("agent failed", "role", string(agent.Role()), "error", err,
					"elapsed", time.Since(started).String())
				result.FailedRole = append(result.FailedRole, agent.Role())
				return nil
			}
			result.Replies = append(result.Replies, reply)
			return nil
		})
	}
	// Agent errors are collected, not propagated, so Wait cannot fail.
	_ = g.Wait()

	if len(result.Replies) == 0 {
		result.Text = i18n.T("error_message", q.Language)
		return result, nil
	}

	sort.Slice(result.Replies, func(i, j int) bool {
		return sectionOrder[result.Replies[i].Role] < sectionOrder[result.Replies[j].Role]
	})
	for _, r := range result.Replies {
		result.Usage.InputTokens += r.Usage.InputTokens
		result.Usage.OutputTokens += r.Usage.OutputTokens
		result.Usage.TotalTokens += r.Usage.TotalTokens
	}
	result.Text = o.merge(result.Replies, q.Language)
	return result, nil
}

// merge joins agent replies. A single reply passes through untouched;
// multiple replies get their emoji section headers.
func (o *Orchestrator) merge(replies []Reply, lang i18n.Language) string {
	if len(replies) == 1 {
		return strings.TrimSpace(replies[0].Text)
	}
	sections := make([]string, 0, len(replies))
	for _, r := range replies {
		text := strings.TrimSpace(r.Text)
		if text == "" {
			continue
		}
		if headers, ok := sectionHeaders[r.Role]; ok {
			header := headers[lang]
			if header == "" {
				header = headers[i18n.English]
			}
			text = header + "\n" + text
		}
		sections = append(sections, text)
	}
	return strings.Join(sections, "\n\n")
}
