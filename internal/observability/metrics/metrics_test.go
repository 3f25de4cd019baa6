package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsRegisterAndCount(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveWebhook("message", "accepted")
	m.ObserveWebhook("message", "accepted")
	m.ObserveWebhook("callback_query", "rejected")
	m.IncAgentReply("medical")
	m.IncAgentFailure("review")
	m.ObserveTokens(420)
	m.IncReplySent("ar")

	if got := testutil.ToFloat64(m.webhookTotal.WithLabelValues("message", "accepted")); got != 2 {
		t.Errorf("webhook counter = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.agentReplies.WithLabelValues("medical")); got != 1 {
		t.Errorf("agent replies = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.repliesSent.WithLabelValues("ar")); got != 1 {
		t.Errorf("replies sent = %v, want 1", got)
	}
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	m.ObserveWebhook("message", "accepted")
	m.ObserveWebhookLatency("message", 0.1)
	m.IncAgentReply("medical")
	m.IncAgentFailure("medical")
	m.ObserveAgentLatency("medical", 1.2)
	m.ObserveTokens(100)
	m.IncReplySent("en")
}
