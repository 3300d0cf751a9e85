package initialization_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tainadev/microblog-go/initialization"
	"github.com/tainadev/microblog-go/internal/domain/model"
	"github.com/tainadev/microblog-go/internal/domain/repository"
	"github.com/tainadev/microblog-go/internal/mocks"
	"github.com/tainadev/microblog-go/internal/testutils"
	"github.com/tainadev/microblog-go/pkg/config"
	"github.com/tainadev/microblog-go/pkg/security"
	"golang.org/x/crypto/bcrypt"
)

func newSeeder(t *testing.T, userRepo *mocks.MockUserRepository, roleRepo *mocks.MockRoleRepository) *initialization.Seeder {
	t.Helper()

	cfg := config.SeedConfig{AdminUsername: "admin", AdminPassword: "123"}
	return initialization.NewSeeder(userRepo, roleRepo, security.NewPasswordHasher(), cfg, testutils.TestLogger(t))
}

func TestSeeder_FreshDatabase(t *testing.T) {
	userRepo := new(mocks.MockUserRepository)
	roleRepo := new(mocks.MockRoleRepository)

	// Banco vazio: nada existe ainda
	roleRepo.On("FindByName", mock.Anything, model.RoleAdmin).
		Return(nil, repository.ErrRoleNotFound).Once()
	roleRepo.On("FindByName", mock.Anything, model.RoleBasic).
		Return(nil, repository.ErrRoleNotFound).Once()
	roleRepo.On("Save", mock.Anything, mock.AnythingOfType("*model.RoleEntity")).Return(nil)

	userRepo.On("FindByUsername", mock.Anything, "admin").
		Return(nil, repository.ErrUserNotFound)

	adminRole := &model.RoleEntity{ID: model.RoleAdminID, Name: model.RoleAdmin}
	roleRepo.On("FindByName", mock.Anything, model.RoleAdmin).Return(adminRole, nil)

	var savedAdmin *model.UserEntity
	userRepo.On("Save", mock.Anything, mock.AnythingOfType("*model.UserEntity")).
		Run(func(args mock.Arguments) {
			savedAdmin = args.Get(1).(*model.UserEntity)
		}).
		Return(nil)

	ctx, cancel := testutils.ContextWithTimeout(t)
	defer cancel()

	require.NoError(t, newSeeder(t, userRepo, roleRepo).Run(ctx))

	require.NotNil(t, savedAdmin)
	assert.Equal(t, "admin", savedAdmin.Username)
	require.Len(t, savedAdmin.Roles, 1)
	assert.Equal(t, model.RoleAdmin, savedAdmin.Roles[0].Name)

	// A senha inicial é persistida como hash bcrypt
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(savedAdmin.Password), []byte("123")))

	roleRepo.AssertExpectations(t)
	userRepo.AssertExpectations(t)
}

func TestSeeder_Idempotent(t *testing.T) {
	userRepo := new(mocks.MockUserRepository)
	roleRepo := new(mocks.MockRoleRepository)

	// Tudo já existe: nada é criado de novo
	roleRepo.On("FindByName", mock.Anything, model.RoleAdmin).
		Return(&model.RoleEntity{ID: model.RoleAdminID, Name: model.RoleAdmin}, nil)
	roleRepo.On("FindByName", mock.Anything, model.RoleBasic).
		Return(&model.RoleEntity{ID: model.RoleBasicID, Name: model.RoleBasic}, nil)
	userRepo.On("FindByUsername", mock.Anything, "admin").
		Return(&model.User{ID: "admin-id", Username: "admin", Roles: []string{model.RoleAdmin}}, nil)

	ctx, cancel := testutils.ContextWithTimeout(t)
	defer cancel()

	require.NoError(t, newSeeder(t, userRepo, roleRepo).Run(ctx))

	roleRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestSeeder_AdminRaceResolvedByUniqueConstraint(t *testing.T) {
	userRepo := new(mocks.MockUserRepository)
	roleRepo := new(mocks.MockRoleRepository)

	roleRepo.On("FindByName", mock.Anything, model.RoleAdmin).
		Return(&model.RoleEntity{ID: model.RoleAdminID, Name: model.RoleAdmin}, nil)
	roleRepo.On("FindByName", mock.Anything, model.RoleBasic).
		Return(&model.RoleEntity{ID: model.RoleBasicID, Name: model.RoleBasic}, nil)

	userRepo.On("FindByUsername", mock.Anything, "admin").
		Return(nil, repository.ErrUserNotFound)

	// Outra instância criou o admin entre a verificação e o insert
	userRepo.On("Save", mock.Anything, mock.AnythingOfType("*model.UserEntity")).
		Return(repository.ErrDuplicateUsername)

	ctx, cancel := testutils.ContextWithTimeout(t)
	defer cancel()

	assert.NoError(t, newSeeder(t, userRepo, roleRepo).Run(ctx))
}
