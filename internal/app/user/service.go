package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/tainadev/microblog-go/internal/domain/model"
	"github.com/tainadev/microblog-go/internal/domain/repository"
	"github.com/tainadev/microblog-go/pkg/cache"
	pkgerrors "github.com/tainadev/microblog-go/pkg/errors"
	"github.com/tainadev/microblog-go/pkg/security"
	"go.uber.org/zap"
)

// TTL do cache de roles. Roles são dados de referência semeados uma única
// vez, então o TTL serve apenas como proteção contra cache velho após uma
// intervenção manual no banco.
const roleCacheTTL = 10 * time.Minute

// Service gerencia o registro e a listagem de usuários
type Service struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
	hasher   *security.PasswordHasher
	cache    cache.Cache
	logger   *zap.Logger
}

// NewService cria um novo serviço de usuários
func NewService(userRepo repository.UserRepository, roleRepo repository.RoleRepository, hasher *security.PasswordHasher, c cache.Cache, logger *zap.Logger) *Service {
	return &Service{
		userRepo: userRepo,
		roleRepo: roleRepo,
		hasher:   hasher,
		cache:    c,
		logger:   logger,
	}
}

// Register cria um novo usuário com exatamente a role BASIC. A senha nunca
// é armazenada nem logada em texto plano. Um username já existente resulta
// em ErrDuplicateUsername; a garantia final é a restrição de unicidade do
// banco, então duas requisições simultâneas não criam duas linhas.
func (s *Service) Register(ctx context.Context, username, password string) error {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error("falha ao gerar hash da senha", zap.Error(err))
		return err
	}

	basicRole, err := s.findRole(ctx, model.RoleBasic)
	if err != nil {
		return err
	}

	entity := &model.UserEntity{
		ID:       uuid.NewString(),
		Username: username,
		Password: hash,
		Roles:    []model.RoleEntity{*basicRole},
	}

	if err := s.userRepo.Save(ctx, entity); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			s.logger.Warn("tentativa de registro com username existente", zap.String("username", username))
			return pkgerrors.ErrDuplicateUsername
		}
		return err
	}

	s.logger.Info("usuário registrado", zap.String("user_id", entity.ID), zap.String("username", username))
	return nil
}

// ListUsers retorna todos os usuários cadastrados (operação administrativa)
func (s *Service) ListUsers(ctx context.Context) ([]*model.User, error) {
	return s.userRepo.ListAll(ctx)
}

// findRole busca uma role pelo nome, passando pelo cache de referência
func (s *Service) findRole(ctx context.Context, name string) (*model.RoleEntity, error) {
	cacheKey := "role:" + name

	var role model.RoleEntity
	found, err := s.cache.Get(ctx, cacheKey, &role)
	if err != nil {
		s.logger.Warn("falha ao consultar cache de roles", zap.Error(err))
	} else if found {
		return &role, nil
	}

	fromDB, err := s.roleRepo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cacheKey, fromDB, roleCacheTTL); err != nil {
		s.logger.Warn("falha ao armazenar role no cache", zap.Error(err))
	}

	return fromDB, nil
}
