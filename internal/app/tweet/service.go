package tweet

import (
	"context"
	"errors"

	"github.com/tainadev/microblog-go/internal/domain/model"
	"github.com/tainadev/microblog-go/internal/domain/repository"
	pkgerrors "github.com/tainadev/microblog-go/pkg/errors"
	"go.uber.org/zap"
)

// Valores padrão da paginação do feed
const (
	DefaultPage     = 0
	DefaultPageSize = 10
)

// Service gerencia a criação, remoção e listagem de tweets
type Service struct {
	tweetRepo repository.TweetRepository
	userRepo  repository.UserRepository
	logger    *zap.Logger
}

// NewService cria um novo serviço de tweets
func NewService(tweetRepo repository.TweetRepository, userRepo repository.UserRepository, logger *zap.Logger) *Service {
	return &Service{
		tweetRepo: tweetRepo,
		userRepo:  userRepo,
		logger:    logger,
	}
}

// Create persiste um tweet em nome do usuário autenticado. O autor vem do
// subject de um token já validado, então a ausência do usuário indica um
// token emitido para uma conta removida.
func (s *Service) Create(ctx context.Context, authorID, content string) error {
	author, err := s.userRepo.FindByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return pkgerrors.ErrNotFound
		}
		return err
	}

	entity := &model.TweetEntity{
		Content: content,
		UserID:  author.ID,
	}

	if err := s.tweetRepo.Save(ctx, entity); err != nil {
		return err
	}

	s.logger.Info("tweet criado",
		zap.Int64("tweet_id", entity.ID),
		zap.String("user_id", author.ID))
	return nil
}

// Delete remove um tweet. A existência é verificada antes da autorização:
// um tweet ausente retorna ErrNotFound para qualquer solicitante, e só
// depois a regra dono-ou-admin decide entre remoção e ErrForbidden.
func (s *Service) Delete(ctx context.Context, requesterID string, tweetID int64) error {
	found, err := s.tweetRepo.FindByID(ctx, tweetID)
	if err != nil {
		if errors.Is(err, repository.ErrTweetNotFound) {
			return pkgerrors.ErrNotFound
		}
		return err
	}

	requester, err := s.userRepo.FindByID(ctx, requesterID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return pkgerrors.ErrForbidden
		}
		return err
	}

	if !requester.HasRole(model.RoleAdmin) && found.AuthorID != requester.ID {
		s.logger.Warn("remoção de tweet negada",
			zap.Int64("tweet_id", tweetID),
			zap.String("requester_id", requesterID))
		return pkgerrors.ErrForbidden
	}

	if err := s.tweetRepo.DeleteByID(ctx, tweetID); err != nil {
		if errors.Is(err, repository.ErrTweetNotFound) {
			return pkgerrors.ErrNotFound
		}
		return err
	}

	s.logger.Info("tweet removido",
		zap.Int64("tweet_id", tweetID),
		zap.String("requester_id", requesterID))
	return nil
}

// Feed retorna uma página do feed global, ordenada do tweet mais recente
// para o mais antigo, com totais calculados sobre a coleção inteira.
// Valores de paginação fora do intervalo caem nos padrões.
func (s *Service) Feed(ctx context.Context, page, pageSize int) (*model.FeedPage, error) {
	if page < 0 {
		page = DefaultPage
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	tweets, total, err := s.tweetRepo.FindPage(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}

	items := make([]model.FeedItem, 0, len(tweets))
	for _, t := range tweets {
		items = append(items, model.FeedItem{
			ID:       t.ID,
			Content:  t.Content,
			Username: t.AuthorUsername,
		})
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return &model.FeedPage{
		FeedItens:     items,
		Page:          page,
		PageSize:      pageSize,
		TotalPages:    totalPages,
		TotalElements: total,
	}, nil
}
