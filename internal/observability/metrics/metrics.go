// Package metrics exposes Prometheus instrumentation for the bot's
// webhook intake, agent pool, and model usage.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics exposes counters/histograms for the conversation pipeline.
type Metrics struct {
	webhookTotal   *prometheus.CounterVec
	webhookLatency *prometheus.HistogramVec
	agentReplies   *prometheus.CounterVec
	agentFailures  *prometheus.CounterVec
	agentLatency   *prometheus.HistogramVec
	tokensUsed     prometheus.Histogram
	repliesSent    *prometheus.CounterVec
}

// New registers the pipeline metrics on the given registerer, or the
// default one when nil.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		webhookTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ahrie",
			Subsystem: "telegram",
			Name:      "inbound_webhook_total",
			Help:      "Total inbound Telegram webhook deliveries",
		}, []string{"update_type", "status"}),
		webhookLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ahrie",
			Subsystem: "telegram",
			Name:      "webhook_latency_seconds",
			Help:      "Latency of Telegram webhook processing",
			Buckets:   prometheus.DefBuckets,
		}, []string{"update_type"}),
		agentReplies: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ahrie",
			Subsystem: "agents",
			Name:      "replies_total",
			Help:      "Total agent replies merged into responses",
		}, []string{"role"}),
		agentFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ahrie",
			Subsystem: "agents",
			Name:      "failures_total",
			Help:      "Total agent invocations that failed",
		}, []string{"role"}),
		agentLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ahrie",
			Subsystem: "agents",
			Name:      "latency_seconds",
			Help:      "Latency of individual agent model calls",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 45},
		}, []string{"role"}),
		tokensUsed: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "ahrie",
			Subsystem: "llm",
			Name:      "tokens_per_response",
			Help:      "Total tokens consumed per merged response",
			Buckets:   []float64{100, 250, 500, 1000, 2000, 4000, 8000},
		}),
		repliesSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ahrie",
			Subsystem: "telegram",
			Name:      "replies_sent_total",
			Help:      "Total replies delivered to Telegram",
		}, []string{"language"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(
		m.webhookTotal, m.webhookLatency,
		m.agentReplies, m.agentFailures, m.agentLatency,
		m.tokensUsed, m.repliesSent,
	)
	return m
}

func (m *Metrics) ObserveWebhook(updateType, status string) {
	if m == nil {
		return
	}
	m.webhookTotal.WithLabelValues(updateType, status).Inc()
}

func (m *Metrics) ObserveWebhookLatency(updateType string, seconds float64) {
	if m == nil {
		return
	}
	m.webhookLatency.WithLabelValues(updateType).Observe(seconds)
}

func (m *Metrics) IncAgentReply(role string) {
	if m == nil {
		return
	}
	m.agentReplies.WithLabelValues(role).Inc()
}

func (m *Metrics) IncAgentFailure(role string) {
	if m == nil {
		return
	}
	m.agentFailures.WithLabelValues(role).Inc()
}

func (m *Metrics) ObserveAgentLatency(role string, seconds float64) {
	if m == nil {
		return
	}
	m.agentLatency.WithLabelValues(role).Observe(seconds)
}

func (m *Metrics) ObserveTokens(total float64) {
	if m == nil {
		return
	}
	m.tokensUsed.Observe(total)
}

func (m *Metrics) IncReplySent(language string) {
	if m == nil {
		return
	}
	m.repliesSent.WithLabelValues(language).Inc()
}
