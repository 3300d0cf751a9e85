package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tainadev/microblog-go/internal/infra/metrics"
	"github.com/tainadev/microblog-go/pkg/security"
	"go.uber.org/zap"
)

// Middleware contém todos os middlewares da aplicação
type Middleware struct {
	logger             *zap.Logger
	authMiddleware     *AuthMiddleware
	recoveryMiddleware *RecoveryMiddleware
	tracingMiddleware  *TracingMiddleware
	metricsMiddleware  *MetricsMiddleware
}

// NewMiddleware cria um novo conjunto de middlewares
func NewMiddleware(logger *zap.Logger, keyManager *security.KeyManager, apiMetrics *metrics.APIMetrics) *Middleware {
	return &Middleware{
		logger:             logger,
		authMiddleware:     NewAuthMiddleware(keyManager, logger),
		recoveryMiddleware: NewRecoveryMiddleware(logger),
		tracingMiddleware:  NewTracingMiddleware(logger),
		metricsMiddleware:  NewMetricsMiddleware(apiMetrics, logger),
	}
}

// Authenticate middleware para autenticação de usuários
func (m *Middleware) Authenticate(c *gin.Context) {
	m.authMiddleware.Authenticate(c)
}

// RequireAdmin middleware para rotas que exigem o scope ADMIN
func (m *Middleware) RequireAdmin(c *gin.Context) {
	m.authMiddleware.RequireAdmin(c)
}

// Recovery middleware para recuperação de pânicos
func (m *Middleware) Recovery() gin.HandlerFunc {
	return m.recoveryMiddleware.Recovery()
}

// Tracing retorna o middleware de tracing
func (m *Middleware) Tracing() gin.HandlerFunc {
	return m.tracingMiddleware.Middleware()
}

// Metrics retorna o middleware de métricas
func (m *Middleware) Metrics() gin.HandlerFunc {
	return m.metricsMiddleware.Middleware()
}

// Logger middleware para logging de requisições
func (m *Middleware) Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		// Processar requisição
		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		clientIP := c.ClientIP()
		method := c.Request.Method

		m.logger.Info("request completed",
			zap.String("path", path),
			zap.String("method", method),
			zap.Int("status", status),
			zap.Duration("latency", latency),
			zap.String("ip", clientIP),
		)
	}
}
