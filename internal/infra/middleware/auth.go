package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tainadev/microblog-go/internal/app/auth"
	"github.com/tainadev/microblog-go/internal/domain/model"
	"github.com/tainadev/microblog-go/pkg/security"
	"go.uber.org/zap"
)

// Chaves usadas para expor as claims do token aos handlers
const (
	ContextUserID = "userID"
	ContextScope  = "scope"
)

// AuthMiddleware valida o token de cada requisição protegida. A validação é
// pura e em memória: nenhum estado de sessão é criado ou consultado, cada
// requisição é autenticada de forma independente.
type AuthMiddleware struct {
	keyManager *security.KeyManager
	logger     *zap.Logger
}

// NewAuthMiddleware cria uma nova instância do middleware de autenticação
func NewAuthMiddleware(keyManager *security.KeyManager, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		keyManager: keyManager,
		logger:     logger,
	}
}

// Authenticate exige um token Bearer válido, verificado e não expirado.
// Em caso de sucesso, o subject (ID do usuário) e o scope ficam disponíveis
// no contexto para as verificações de posse e de role dos handlers.
func (m *AuthMiddleware) Authenticate(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header não fornecido"})
		return
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Formato inválido do token"})
		return
	}

	claims, err := m.keyManager.VerifyToken(tokenString)
	if err != nil {
		m.logger.Debug("token rejeitado", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token inválido ou expirado"})
		return
	}

	c.Set(ContextUserID, claims.Subject)
	c.Set(ContextScope, claims.Scope)
	c.Next()
}

// RequireAdmin exige que o scope do token contenha a role ADMIN. A falta de
// permissão é uma falha de autorização (403), distinta da falha de
// autenticação (401).
func (m *AuthMiddleware) RequireAdmin(c *gin.Context) {
	scope := c.GetString(ContextScope)

	if !auth.HasScope(scope, model.RoleAdmin) {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Acesso negado: permissão de administrador necessária"})
		return
	}

	c.Next()
}
