package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeProvider = "provider"
	OutcomeFallback = "fallback"
)

// Metrics owns a private registry so tests and multiple servers in one
// process do not collide.
type Metrics struct {
	registry *prometheus.Registry

	RequestCount    *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	ChatAnswers     *prometheus.CounterVec
	ProviderLatency *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RequestCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portfolio_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "portfolio_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		ChatAnswers: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portfolio_chat_answers_total",
				Help: "Chat answers by provider and whether the fallback was used",
			},
			[]string{"provider", "outcome"},
		),
		ProviderLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "portfolio_provider_latency_seconds",
				Help:    "Latency of calls to the language-model provider",
				Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 16},
			},
			[]string{"provider"},
		),
	}
	m.registry.MustRegister(
		m.RequestCount,
		m.RequestDuration,
		m.ChatAnswers,
		m.ProviderLatency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) ObserveRequest(method, route, status string, d time.Duration) {
	m.RequestCount.WithLabelValues(method, route, status).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (m *Metrics) ObserveAnswer(provider string, fallback bool) {
	outcome := OutcomeProvider
	if fallback {
		outcome = OutcomeFallback
	}
	m.ChatAnswers.WithLabelValues(provider, outcome).Inc()
}

func (m *Metrics) ObserveProviderCall(provider string, d time.Duration) {
	m.ProviderLatency.WithLabelValues(provider).Observe(d.Seconds())
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
