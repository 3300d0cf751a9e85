package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/tainadev/microblog-go/internal/domain/model"
)

// MockUserRepository é um mock para repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *model.UserEntity) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) ListAll(ctx context.Context) ([]*model.User, error) {
	args := m.Called(ctx)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.User), args.Error(1)
}

// MockRoleRepository é um mock para repository.RoleRepository
type MockRoleRepository struct {
	mock.Mock
}

func (m *MockRoleRepository) FindByName(ctx context.Context, name string) (*model.RoleEntity, error) {
	args := m.Called(ctx, name)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RoleEntity), args.Error(1)
}

func (m *MockRoleRepository) Save(ctx context.Context, role *model.RoleEntity) error {
	args := m.Called(ctx, role)
	return args.Error(0)
}

// MockTweetRepository é um mock para repository.TweetRepository
type MockTweetRepository struct {
	mock.Mock
}

func (m *MockTweetRepository) Save(ctx context.Context, tweet *model.TweetEntity) error {
	args := m.Called(ctx, tweet)
	return args.Error(0)
}

func (m *MockTweetRepository) FindByID(ctx context.Context, id int64) (*model.Tweet, error) {
	args := m.Called(ctx, id)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Tweet), args.Error(1)
}

func (m *MockTweetRepository) DeleteByID(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTweetRepository) FindPage(ctx context.Context, page, pageSize int) ([]*model.Tweet, int64, error) {
	args := m.Called(ctx, page, pageSize)

	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*model.Tweet), args.Get(1).(int64), args.Error(2)
}
