package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// APIMetrics gerencia métricas relacionadas à API
type APIMetrics struct {
	requestCounter  *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	activeRequests  *prometheus.GaugeVec
	errorsTotal     *prometheus.CounterVec
}

// NewAPIMetrics cria e registra métricas do prometheus
func NewAPIMetrics() *APIMetrics {
	return &APIMetrics{
		requestCounter: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "microblog_requests_total",
				Help: "Total number of HTTP requests by path, method, and status code",
			},
			[]string{"path", "method", "status"},
		),

		requestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "microblog_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path", "method"},
		),

		activeRequests: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "microblog_active_requests",
				Help: "Number of in-flight requests being processed",
			},
			[]string{"path", "method"},
		),

		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "microblog_errors_total",
				Help: "Total number of error responses by type",
			},
			[]string{"path", "method", "error_type"},
		),
	}
}

// RecordRequest registra uma requisição concluída
func (m *APIMetrics) RecordRequest(path, method, status string, duration time.Duration) {
	m.requestCounter.WithLabelValues(path, method, status).Inc()
	m.requestDuration.WithLabelValues(path, method).Observe(duration.Seconds())
}

// RecordError registra uma resposta de erro
func (m *APIMetrics) RecordError(path, method, errorType string) {
	m.errorsTotal.WithLabelValues(path, method, errorType).Inc()
}

// IncActiveRequests incrementa o contador de requisições em andamento
func (m *APIMetrics) IncActiveRequests(path, method string) {
	m.activeRequests.WithLabelValues(path, method).Inc()
}

// DecActiveRequests decrementa o contador de requisições em andamento
func (m *APIMetrics) DecActiveRequests(path, method string) {
	m.activeRequests.WithLabelValues(path, method).Dec()
}
