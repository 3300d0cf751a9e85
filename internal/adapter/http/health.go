package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tainadev/microblog-go/internal/adapter/database"
	"go.uber.org/zap"
)

// HealthHandler expõe as verificações de saúde do serviço
type HealthHandler struct {
	db     *database.Database
	logger *zap.Logger
}

// NewHealthHandler cria um novo handler de health check
func NewHealthHandler(db *database.Database, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{db: db, logger: logger}
}

// HealthCheck responde 200 enquanto o processo está vivo
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// ReadinessCheck verifica a conexão com o banco de dados
func (h *HealthHandler) ReadinessCheck(c *gin.Context) {
	if err := h.db.Ping(c.Request.Context()); err != nil {
		h.logger.Error("banco de dados indisponível", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
