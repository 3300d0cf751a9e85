package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tainadev/microblog-go/internal/app/auth"
	"github.com/tainadev/microblog-go/internal/app/user"
	"go.uber.org/zap"
)

// UserHandler expõe as rotas de registro, login e listagem de usuários
type UserHandler struct {
	userService *user.Service
	authService *auth.Service
	logger      *zap.Logger
}

// NewUserHandler cria um novo handler de usuários
func NewUserHandler(userService *user.Service, authService *auth.Service, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		authService: authService,
		logger:      logger,
	}
}

// RegisterRequest é o corpo de POST /users
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterUser cria um novo usuário com a role BASIC. Username já existente
// retorna 422.
func (h *UserHandler) RegisterUser(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos: " + err.Error()})
		return
	}

	if err := h.userService.Register(c.Request.Context(), req.Username, req.Password); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Status(http.StatusOK)
}

// LoginRequest é o corpo de POST /login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse é a resposta de POST /login
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expiresIn"`
}

// Login verifica as credenciais e retorna um token assinado com sua validade
// em segundos. Credenciais inválidas retornam 401.
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos: " + err.Error()})
		return
	}

	token, expiresIn, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token:     token,
		ExpiresIn: expiresIn,
	})
}

// ListUsers retorna todos os usuários cadastrados. A rota é protegida pelo
// middleware que exige o scope ADMIN.
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, users)
}
