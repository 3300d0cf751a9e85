package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tainadev/microblog-go/internal/infra/metrics"
	"go.uber.org/zap"
)

// MetricsMiddleware fornece middleware para coletar métricas
type MetricsMiddleware struct {
	metrics *metrics.APIMetrics
	logger  *zap.Logger
}

// NewMetricsMiddleware cria um novo middleware de métricas
func NewMetricsMiddleware(metrics *metrics.APIMetrics, logger *zap.Logger) *MetricsMiddleware {
	return &MetricsMiddleware{
		metrics: metrics,
		logger:  logger,
	}
}

// Middleware registra métricas para cada requisição
func (m *MetricsMiddleware) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			path = "unknown"
		}
		method := c.Request.Method

		m.metrics.IncActiveRequests(path, method)
		start := time.Now()

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()

		m.metrics.DecActiveRequests(path, method)
		m.metrics.RecordRequest(path, method, strconv.Itoa(status), duration)

		if status >= 400 {
			errorType := "client_error"
			if status >= 500 {
				errorType = "server_error"
			}
			m.metrics.RecordError(path, method, errorType)
		}
	}
}
