package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/tainadev/microblog-go/internal/domain/model"
	"github.com/tainadev/microblog-go/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UserRepository implementa repository.UserRepository sobre GORM
type UserRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewUserRepository cria um novo repositório de usuários
func NewUserRepository(db *gorm.DB, logger *zap.Logger) repository.UserRepository {
	return &UserRepository{db: db, logger: logger}
}

// FindByUsername busca um usuário pelo username, com as roles carregadas
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var entity model.UserEntity

	err := r.db.WithContext(ctx).
		Preload("Roles").
		Where("username = ?", username).
		First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}
		r.logger.Error("falha ao buscar usuário por username", zap.Error(err))
		return nil, fmt.Errorf("falha ao buscar usuário: %w", err)
	}

	return entity.ToModel(), nil
}

// FindByID busca um usuário pelo ID, com as roles carregadas
func (r *UserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	var entity model.UserEntity

	err := r.db.WithContext(ctx).
		Preload("Roles").
		Where("user_id = ?", id).
		First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}
		r.logger.Error("falha ao buscar usuário por id", zap.String("user_id", id), zap.Error(err))
		return nil, fmt.Errorf("falha ao buscar usuário: %w", err)
	}

	return entity.ToModel(), nil
}

// Save persiste um novo usuário. A unicidade do username é garantida pelo
// índice único; a violação da restrição vira ErrDuplicateUsername para que
// uma corrida entre dois registros simultâneos não produza uma segunda linha.
func (r *UserRepository) Save(ctx context.Context, user *model.UserEntity) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return repository.ErrDuplicateUsername
		}
		r.logger.Error("falha ao salvar usuário", zap.String("username", user.Username), zap.Error(err))
		return fmt.Errorf("falha ao salvar usuário: %w", err)
	}
	return nil
}

// ListAll retorna todos os usuários cadastrados, com as roles carregadas
func (r *UserRepository) ListAll(ctx context.Context) ([]*model.User, error) {
	var entities []model.UserEntity

	if err := r.db.WithContext(ctx).Preload("Roles").Find(&entities).Error; err != nil {
		r.logger.Error("falha ao listar usuários", zap.Error(err))
		return nil, fmt.Errorf("falha ao listar usuários: %w", err)
	}

	users := make([]*model.User, 0, len(entities))
	for i := range entities {
		users = append(users, entities[i].ToModel())
	}
	return users, nil
}

// RoleRepository implementa repository.RoleRepository sobre GORM
type RoleRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewRoleRepository cria um novo repositório de roles
func NewRoleRepository(db *gorm.DB, logger *zap.Logger) repository.RoleRepository {
	return &RoleRepository{db: db, logger: logger}
}

// FindByName busca uma role pelo nome
func (r *RoleRepository) FindByName(ctx context.Context, name string) (*model.RoleEntity, error) {
	var entity model.RoleEntity

	err := r.db.WithContext(ctx).Where("name = ?", name).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRoleNotFound
		}
		r.logger.Error("falha ao buscar role", zap.String("name", name), zap.Error(err))
		return nil, fmt.Errorf("falha ao buscar role: %w", err)
	}

	return &entity, nil
}

// Save persiste uma role
func (r *RoleRepository) Save(ctx context.Context, role *model.RoleEntity) error {
	if err := r.db.WithContext(ctx).Create(role).Error; err != nil {
		r.logger.Error("falha ao salvar role", zap.String("name", role.Name), zap.Error(err))
		return fmt.Errorf("falha ao salvar role: %w", err)
	}
	return nil
}
