// Package telemetry exposes Prometheus collectors for the audit pipeline.
package telemetry

import (
	"net/http"
	"strconv"
	"time"

	"github.com/povarna/generative-ai-agents/audit-agent/internal/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "audit_agent"

type Metrics struct {
	registry *prometheus.Registry

	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	stageDuration *prometheus.HistogramVec
	stageFailures *prometheus.CounterVec
	judgeScores   *prometheus.HistogramVec
	tokens        *prometheus.CounterVec
	estimatedCost prometheus.Counter
	analysesTotal *prometheus.CounterVec
}

// New registers the collectors on a fresh registry, so several instances can
// coexist in one process.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		stageDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of analysis stages.",
			Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"stage"}),
		stageFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stage_failures_total",
			Help:      "Failed analysis stages.",
		}, []string{"stage"}),
		judgeScores: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "judge_score",
			Help:      "Numeric judge scores.",
			Buckets:   []float64{0, 25, 50, 75, 100},
		}, []string{"judge"}),
		tokens: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "estimated_tokens_total",
			Help:      "Estimated tokens of audited exchanges.",
		}, []string{"direction"}),
		estimatedCost: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "estimated_cost_usd_total",
			Help:      "Estimated cost of audited exchanges in USD.",
		}),
		analysesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_total",
			Help:      "Completed analyses by status.",
		}, []string{"status"}),
	}
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveStage(stage string, duration time.Duration, err error) {
	m.stageDuration.WithLabelValues(stage).Observe(duration.Seconds())
	if err != nil {
		m.stageFailures.WithLabelValues(stage).Inc()
	}
}

// ObserveAnalysis records a finished analysis. Non-numeric judge scores are
// not observed.
func (m *Metrics) ObserveAnalysis(result models.AnalysisResult, err error) {
	if err != nil {
		m.analysesTotal.WithLabelValues("error").Inc()
		return
	}
	m.analysesTotal.WithLabelValues(result.Status).Inc()

	m.observeScore("relevance", result.Scores.Relevance.Score)
	m.observeScore("faithfulness", result.Scores.Faithfulness.Score)

	if result.Metrics.InputTokens != nil {
		m.tokens.WithLabelValues("input").Add(float64(*result.Metrics.InputTokens))
	}
	if result.Metrics.OutputTokens != nil {
		m.tokens.WithLabelValues("output").Add(float64(*result.Metrics.OutputTokens))
	}
	m.estimatedCost.Add(result.Metrics.CostUSD)
}

func (m *Metrics) ObserveJudge(judge string, score models.Score) {
	m.observeScore(judge, score)
}

func (m *Metrics) ObserveRequest(route string, status int, duration time.Duration) {
	m.httpRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route).Observe(duration.Seconds())
}

func (m *Metrics) observeScore(judge string, score models.Score) {
	if v, ok := score.Float(); ok {
		m.judgeScores.WithLabelValues(judge).Observe(v)
	}
}
