package repository

import (
	"context"
	"errors"

	"github.com/tainadev/microblog-go/internal/domain/model"
)

// Erros sentinela da camada de persistência
var (
	ErrUserNotFound      = errors.New("usuário não encontrado")
	ErrRoleNotFound      = errors.New("role não encontrada")
	ErrTweetNotFound     = errors.New("tweet não encontrado")
	ErrDuplicateUsername = errors.New("nome de usuário já existe")
)

// UserRepository define o acesso a dados de usuários
type UserRepository interface {
	// FindByUsername busca um usuário pelo username, com as roles carregadas
	FindByUsername(ctx context.Context, username string) (*model.User, error)

	// FindByID busca um usuário pelo ID, com as roles carregadas
	FindByID(ctx context.Context, id string) (*model.User, error)

	// Save persiste um novo usuário. Uma violação da restrição de unicidade
	// do username retorna ErrDuplicateUsername.
	Save(ctx context.Context, user *model.UserEntity) error

	// ListAll retorna todos os usuários cadastrados
	ListAll(ctx context.Context) ([]*model.User, error)
}

// RoleRepository define o acesso a dados de roles
type RoleRepository interface {
	// FindByName busca uma role pelo nome
	FindByName(ctx context.Context, name string) (*model.RoleEntity, error)

	// Save persiste uma role (usado apenas no bootstrap)
	Save(ctx context.Context, role *model.RoleEntity) error
}

// TweetRepository define o acesso a dados de tweets
type TweetRepository interface {
	// Save persiste um novo tweet
	Save(ctx context.Context, tweet *model.TweetEntity) error

	// FindByID busca um tweet pelo ID, com o autor carregado
	FindByID(ctx context.Context, id int64) (*model.Tweet, error)

	// DeleteByID remove um tweet pelo ID
	DeleteByID(ctx context.Context, id int64) error

	// FindPage retorna uma página de tweets ordenada pelo timestamp de
	// criação em ordem decrescente, junto com o total de tweets da coleção
	FindPage(ctx context.Context, page, pageSize int) ([]*model.Tweet, int64, error)
}
