package user_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tainadev/microblog-go/internal/app/user"
	"github.com/tainadev/microblog-go/internal/domain/model"
	"github.com/tainadev/microblog-go/internal/domain/repository"
	"github.com/tainadev/microblog-go/internal/mocks"
	"github.com/tainadev/microblog-go/internal/testutils"
	"github.com/tainadev/microblog-go/pkg/cache"
	pkgerrors "github.com/tainadev/microblog-go/pkg/errors"
	"github.com/tainadev/microblog-go/pkg/security"
	"golang.org/x/crypto/bcrypt"
)

func setupUserService(t *testing.T) (*user.Service, *mocks.MockUserRepository, *mocks.MockRoleRepository) {
	t.Helper()

	logger := testutils.TestLogger(t)
	userRepo := new(mocks.MockUserRepository)
	roleRepo := new(mocks.MockRoleRepository)
	memCache := cache.NewMemoryCache(time.Minute, time.Minute, logger)

	service := user.NewService(userRepo, roleRepo, security.NewPasswordHasher(), memCache, logger)
	return service, userRepo, roleRepo
}

func TestRegister_Success(t *testing.T) {
	service, userRepo, roleRepo := setupUserService(t)

	basicRole := &model.RoleEntity{ID: model.RoleBasicID, Name: model.RoleBasic}
	roleRepo.On("FindByName", mock.Anything, model.RoleBasic).Return(basicRole, nil)

	var saved *model.UserEntity
	userRepo.On("Save", mock.Anything, mock.AnythingOfType("*model.UserEntity")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(*model.UserEntity)
		}).
		Return(nil)

	ctx, cancel := testutils.ContextWithTimeout(t)
	defer cancel()

	err := service.Register(ctx, "bob", "senha123")
	require.NoError(t, err)

	require.NotNil(t, saved)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, "bob", saved.Username)

	// A senha é persistida como hash bcrypt, nunca em texto plano
	assert.NotEqual(t, "senha123", saved.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.Password), []byte("senha123")))

	// Registro atribui exatamente a role BASIC
	require.Len(t, saved.Roles, 1)
	assert.Equal(t, model.RoleBasic, saved.Roles[0].Name)

	userRepo.AssertExpectations(t)
	roleRepo.AssertExpectations(t)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	service, userRepo, roleRepo := setupUserService(t)

	basicRole := &model.RoleEntity{ID: model.RoleBasicID, Name: model.RoleBasic}
	roleRepo.On("FindByName", mock.Anything, model.RoleBasic).Return(basicRole, nil)
	userRepo.On("Save", mock.Anything, mock.AnythingOfType("*model.UserEntity")).
		Return(repository.ErrDuplicateUsername)

	ctx, cancel := testutils.ContextWithTimeout(t)
	defer cancel()

	err := service.Register(ctx, "bob", "senha123")
	assert.ErrorIs(t, err, pkgerrors.ErrDuplicateUsername)
}

func TestRegister_RoleCache(t *testing.T) {
	service, userRepo, roleRepo := setupUserService(t)

	basicRole := &model.RoleEntity{ID: model.RoleBasicID, Name: model.RoleBasic}

	// O banco só é consultado no primeiro registro; o segundo usa o cache
	roleRepo.On("FindByName", mock.Anything, model.RoleBasic).Return(basicRole, nil).Once()
	userRepo.On("Save", mock.Anything, mock.AnythingOfType("*model.UserEntity")).Return(nil)

	ctx, cancel := testutils.ContextWithTimeout(t)
	defer cancel()

	require.NoError(t, service.Register(ctx, "bob", "senha123"))
	require.NoError(t, service.Register(ctx, "carol", "senha456"))

	roleRepo.AssertExpectations(t)
}

func TestListUsers(t *testing.T) {
	service, userRepo, _ := setupUserService(t)

	users := []*model.User{
		{ID: "u1", Username: "admin", Roles: []string{model.RoleAdmin}},
		{ID: "u2", Username: "bob", Roles: []string{model.RoleBasic}},
	}
	userRepo.On("ListAll", mock.Anything).Return(users, nil)

	ctx, cancel := testutils.ContextWithTimeout(t)
	defer cancel()

	got, err := service.ListUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, users, got)
}
