package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	pkgerrors "github.com/tainadev/microblog-go/pkg/errors"
	"go.uber.org/zap"
)

// respondError mapeia um erro de domínio para a resposta HTTP. Falhas não
// classificadas viram 500 com mensagem genérica para não vazar detalhes do
// armazenamento.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	status := pkgerrors.StatusFor(err)

	if status == http.StatusInternalServerError {
		logger.Error("falha interna ao processar requisição",
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.Error(err))
		c.JSON(status, gin.H{"error": "Erro interno do servidor"})
		return
	}

	c.JSON(status, gin.H{"error": err.Error()})
}
