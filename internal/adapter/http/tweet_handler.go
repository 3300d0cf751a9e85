package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tainadev/microblog-go/internal/app/tweet"
	"github.com/tainadev/microblog-go/internal/infra/middleware"
	"go.uber.org/zap"
)

// TweetHandler expõe as rotas de criação, remoção e feed de tweets
type TweetHandler struct {
	tweetService *tweet.Service
	logger       *zap.Logger
}

// NewTweetHandler cria um novo handler de tweets
func NewTweetHandler(tweetService *tweet.Service, logger *zap.Logger) *TweetHandler {
	return &TweetHandler{
		tweetService: tweetService,
		logger:       logger,
	}
}

// CreateTweetRequest é o corpo de POST /tweets
type CreateTweetRequest struct {
	Content string `json:"content" binding:"required"`
}

// CreateTweet persiste um tweet cujo autor é o subject do token
func (h *TweetHandler) CreateTweet(c *gin.Context) {
	var req CreateTweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos: " + err.Error()})
		return
	}

	authorID := c.GetString(middleware.ContextUserID)

	if err := h.tweetService.Create(c.Request.Context(), authorID, req.Content); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Status(http.StatusOK)
}

// DeleteTweet remove um tweet. Tweet inexistente retorna 404; solicitante
// que não é dono nem admin recebe 403.
func (h *TweetHandler) DeleteTweet(c *gin.Context) {
	tweetID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID de tweet inválido"})
		return
	}

	requesterID := c.GetString(middleware.ContextUserID)

	if err := h.tweetService.Delete(c.Request.Context(), requesterID, tweetID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Status(http.StatusOK)
}

// Feed retorna uma página do feed global. Sem parâmetros, page=0 e
// pageSize=10.
func (h *TweetHandler) Feed(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Parâmetro page inválido"})
		return
	}

	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", "10"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Parâmetro pageSize inválido"})
		return
	}

	feed, err := h.tweetService.Feed(c.Request.Context(), page, pageSize)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, feed)
}
