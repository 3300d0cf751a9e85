package initialization

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/tainadev/microblog-go/internal/domain/model"
	"github.com/tainadev/microblog-go/internal/domain/repository"
	"github.com/tainadev/microblog-go/pkg/config"
	"github.com/tainadev/microblog-go/pkg/security"
	"go.uber.org/zap"
)

// Seeder garante os dados mínimos do sistema no startup: o conjunto fixo de
// roles e um usuário administrador.
type Seeder struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
	hasher   *security.PasswordHasher
	cfg      config.SeedConfig
	logger   *zap.Logger
}

// NewSeeder cria um novo seeder de bootstrap
func NewSeeder(userRepo repository.UserRepository, roleRepo repository.RoleRepository, hasher *security.PasswordHasher, cfg config.SeedConfig, logger *zap.Logger) *Seeder {
	return &Seeder{
		userRepo: userRepo,
		roleRepo: roleRepo,
		hasher:   hasher,
		cfg:      cfg,
		logger:   logger,
	}
}

// Run aplica o seed completo: roles e usuário administrador
func (s *Seeder) Run(ctx context.Context) error {
	if err := s.ensureRoles(ctx); err != nil {
		return fmt.Errorf("falha ao semear roles: %w", err)
	}

	if err := s.ensureAdminUser(ctx); err != nil {
		return fmt.Errorf("falha ao semear usuário administrador: %w", err)
	}

	return nil
}

// ensureRoles cria as roles ADMIN e BASIC caso ainda não existam
func (s *Seeder) ensureRoles(ctx context.Context) error {
	roles := []model.RoleEntity{
		{ID: model.RoleAdminID, Name: model.RoleAdmin},
		{ID: model.RoleBasicID, Name: model.RoleBasic},
	}

	for _, role := range roles {
		_, err := s.roleRepo.FindByName(ctx, role.Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, repository.ErrRoleNotFound) {
			return err
		}

		if err := s.roleRepo.Save(ctx, &role); err != nil {
			return err
		}
		s.logger.Info("role criada", zap.String("name", role.Name))
	}

	return nil
}

// ensureAdminUser cria o usuário administrador com a senha inicial
// configurada, apenas se ele ainda não existir
func (s *Seeder) ensureAdminUser(ctx context.Context) error {
	_, err := s.userRepo.FindByUsername(ctx, s.cfg.AdminUsername)
	if err == nil {
		s.logger.Info("usuário administrador já existe", zap.String("username", s.cfg.AdminUsername))
		return nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return err
	}

	adminRole, err := s.roleRepo.FindByName(ctx, model.RoleAdmin)
	if err != nil {
		return err
	}

	hash, err := s.hasher.Hash(s.cfg.AdminPassword)
	if err != nil {
		return err
	}

	admin := &model.UserEntity{
		ID:       uuid.NewString(),
		Username: s.cfg.AdminUsername,
		Password: hash,
		Roles:    []model.RoleEntity{*adminRole},
	}

	if err := s.userRepo.Save(ctx, admin); err != nil {
		// Outra instância pode ter criado o admin entre a verificação e o
		// insert; a restrição de unicidade resolve a corrida.
		if errors.Is(err, repository.ErrDuplicateUsername) {
			s.logger.Info("usuário administrador criado por outra instância")
			return nil
		}
		return err
	}

	s.logger.Info("usuário administrador criado",
		zap.String("user_id", admin.ID),
		zap.String("username", admin.Username))
	return nil
}
