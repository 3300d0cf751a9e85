package auth

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/tainadev/microblog-go/internal/domain/model"
	"github.com/tainadev/microblog-go/internal/domain/repository"
	pkgerrors "github.com/tainadev/microblog-go/pkg/errors"
	"github.com/tainadev/microblog-go/pkg/security"
	"go.uber.org/zap"
)

// Service autentica usuários e emite tokens de acesso
type Service struct {
	keyManager *security.KeyManager
	hasher     *security.PasswordHasher
	userRepo   repository.UserRepository
	logger     *zap.Logger
}

// NewService cria um novo serviço de autenticação
func NewService(keyManager *security.KeyManager, hasher *security.PasswordHasher, userRepo repository.UserRepository, logger *zap.Logger) *Service {
	return &Service{
		keyManager: keyManager,
		hasher:     hasher,
		userRepo:   userRepo,
		logger:     logger,
	}
}

// Login verifica as credenciais e emite um token assinado. Usuário
// inexistente e senha incorreta produzem o mesmo erro, sem canal lateral
// que permita enumerar usernames. Retorna o token serializado e a validade
// em segundos.
func (s *Service) Login(ctx context.Context, username, password string) (string, int64, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.logger.Warn("falha na autenticação", zap.String("username", username))
			return "", 0, pkgerrors.ErrInvalidCredentials
		}
		return "", 0, err
	}

	if !s.hasher.Matches(password, user.PasswordHash) {
		s.logger.Warn("falha na autenticação", zap.String("username", username))
		return "", 0, pkgerrors.ErrInvalidCredentials
	}

	token, err := s.keyManager.SignToken(user.ID, ScopeFor(user))
	if err != nil {
		s.logger.Error("falha ao emitir token", zap.String("user_id", user.ID), zap.Error(err))
		return "", 0, err
	}

	s.logger.Info("login bem-sucedido", zap.String("user_id", user.ID))
	return token, s.keyManager.TTLSeconds(), nil
}

// ScopeFor monta a claim scope do usuário: nomes das roles em ordem
// alfabética, separados por espaço. A ordenação torna a claim determinística
// já que o conjunto de roles não tem ordem garantida.
func ScopeFor(user *model.User) string {
	names := make([]string, len(user.Roles))
	copy(names, user.Roles)
	sort.Strings(names)
	return strings.Join(names, " ")
}

// HasScope verifica se uma claim scope contém a role informada
func HasScope(scope, role string) bool {
	for _, s := range strings.Fields(scope) {
		if s == role {
			return true
		}
	}
	return false
}
