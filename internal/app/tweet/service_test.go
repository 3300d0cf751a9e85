package tweet_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tainadev/microblog-go/internal/app/tweet"
	"github.com/tainadev/microblog-go/internal/domain/model"
	"github.com/tainadev/microblog-go/internal/domain/repository"
	"github.com/tainadev/microblog-go/internal/mocks"
	"github.com/tainadev/microblog-go/internal/testutils"
	pkgerrors "github.com/tainadev/microblog-go/pkg/errors"
)

func setupTweetService(t *testing.T) (*tweet.Service, *mocks.MockTweetRepository, *mocks.MockUserRepository) {
	t.Helper()

	tweetRepo := new(mocks.MockTweetRepository)
	userRepo := new(mocks.MockUserRepository)
	service := tweet.NewService(tweetRepo, userRepo, testutils.TestLogger(t))

	return service, tweetRepo, userRepo
}

func basicUser(id string) *model.User {
	return &model.User{ID: id, Username: "user-" + id, Roles: []string{model.RoleBasic}}
}

func adminUser(id string) *model.User {
	return &model.User{ID: id, Username: "admin-" + id, Roles: []string{model.RoleAdmin}}
}

func TestCreate_Success(t *testing.T) {
	service, tweetRepo, userRepo := setupTweetService(t)

	userRepo.On("FindByID", mock.Anything, "author-1").Return(basicUser("author-1"), nil)

	var saved *model.TweetEntity
	tweetRepo.On("Save", mock.Anything, mock.AnythingOfType("*model.TweetEntity")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(*model.TweetEntity)
		}).
		Return(nil)

	ctx, cancel := testutils.ContextWithTimeout(t)
	defer cancel()

	err := service.Create(ctx, "author-1", "olá mundo")
	require.NoError(t, err)

	require.NotNil(t, saved)
	assert.Equal(t, "author-1", saved.UserID)
	assert.Equal(t, "olá mundo", saved.Content)
}

func TestCreate_AuthorMissing(t *testing.T) {
	service, tweetRepo, userRepo := setupTweetService(t)

	userRepo.On("FindByID", mock.Anything, "fantasma").
		Return(nil, repository.ErrUserNotFound)

	ctx, cancel := testutils.ContextWithTimeout(t)
	defer cancel()

	err := service.Create(ctx, "fantasma", "conteúdo")
	assert.ErrorIs(t, err, pkgerrors.ErrNotFound)

	tweetRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestDelete(t *testing.T) {
	existing := &model.Tweet{ID: 7, Content: "texto", AuthorID: "owner-1"}

	t.Run("tweet inexistente retorna not found antes da autorização", func(t *testing.T) {
		service, tweetRepo, userRepo := setupTweetService(t)

		tweetRepo.On("FindByID", mock.Anything, int64(99)).
			Return(nil, repository.ErrTweetNotFound)

		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		err := service.Delete(ctx, "intruso-1", 99)
		assert.ErrorIs(t, err, pkgerrors.ErrNotFound)

		// A existência decide primeiro: nem o usuário é consultado
		userRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
		tweetRepo.AssertNotCalled(t, "DeleteByID", mock.Anything, mock.Anything)
	})

	t.Run("não-dono sem role admin é proibido", func(t *testing.T) {
		service, tweetRepo, userRepo := setupTweetService(t)

		tweetRepo.On("FindByID", mock.Anything, int64(7)).Return(existing, nil)
		userRepo.On("FindByID", mock.Anything, "intruso-1").Return(basicUser("intruso-1"), nil)

		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		err := service.Delete(ctx, "intruso-1", 7)
		assert.ErrorIs(t, err, pkgerrors.ErrForbidden)

		tweetRepo.AssertNotCalled(t, "DeleteByID", mock.Anything, mock.Anything)
	})

	t.Run("dono remove o próprio tweet", func(t *testing.T) {
		service, tweetRepo, userRepo := setupTweetService(t)

		tweetRepo.On("FindByID", mock.Anything, int64(7)).Return(existing, nil)
		userRepo.On("FindByID", mock.Anything, "owner-1").Return(basicUser("owner-1"), nil)
		tweetRepo.On("DeleteByID", mock.Anything, int64(7)).Return(nil)

		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		assert.NoError(t, service.Delete(ctx, "owner-1", 7))
		tweetRepo.AssertExpectations(t)
	})

	t.Run("admin remove tweet de qualquer usuário", func(t *testing.T) {
		service, tweetRepo, userRepo := setupTweetService(t)

		tweetRepo.On("FindByID", mock.Anything, int64(7)).Return(existing, nil)
		userRepo.On("FindByID", mock.Anything, "admin-1").Return(adminUser("admin-1"), nil)
		tweetRepo.On("DeleteByID", mock.Anything, int64(7)).Return(nil)

		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		assert.NoError(t, service.Delete(ctx, "admin-1", 7))
		tweetRepo.AssertExpectations(t)
	})
}

func TestFeed_Pagination(t *testing.T) {
	service, tweetRepo, _ := setupTweetService(t)

	tweets := make([]*model.Tweet, 10)
	for i := range tweets {
		tweets[i] = &model.Tweet{
			ID:             int64(25 - i),
			Content:        "conteúdo",
			AuthorID:       "u1",
			AuthorUsername: "alice",
		}
	}
	tweetRepo.On("FindPage", mock.Anything, 0, 10).Return(tweets, int64(25), nil)

	ctx, cancel := testutils.ContextWithTimeout(t)
	defer cancel()

	page, err := service.Feed(ctx, 0, 10)
	require.NoError(t, err)

	assert.Equal(t, 0, page.Page)
	assert.Equal(t, 10, page.PageSize)
	assert.Equal(t, int64(25), page.TotalElements)

	// 25 elementos em páginas de 10: arredonda para cima
	assert.Equal(t, 3, page.TotalPages)

	require.Len(t, page.FeedItens, 10)
	assert.Equal(t, int64(25), page.FeedItens[0].ID)
	assert.Equal(t, "alice", page.FeedItens[0].Username)
}

func TestFeed_LastPartialPage(t *testing.T) {
	service, tweetRepo, _ := setupTweetService(t)

	tweets := []*model.Tweet{
		{ID: 5, Content: "a", AuthorID: "u1", AuthorUsername: "alice"},
		{ID: 4, Content: "b", AuthorID: "u1", AuthorUsername: "alice"},
		{ID: 3, Content: "c", AuthorID: "u2", AuthorUsername: "bob"},
		{ID: 2, Content: "d", AuthorID: "u2", AuthorUsername: "bob"},
		{ID: 1, Content: "e", AuthorID: "u2", AuthorUsername: "bob"},
	}
	tweetRepo.On("FindPage", mock.Anything, 2, 10).Return(tweets, int64(25), nil)

	ctx, cancel := testutils.ContextWithTimeout(t)
	defer cancel()

	page, err := service.Feed(ctx, 2, 10)
	require.NoError(t, err)
	assert.Len(t, page.FeedItens, 5)
	assert.Equal(t, 3, page.TotalPages)
}

func TestFeed_NormalizesPagination(t *testing.T) {
	service, tweetRepo, _ := setupTweetService(t)

	// Valores fora do intervalo caem nos padrões (0, 10)
	tweetRepo.On("FindPage", mock.Anything, 0, 10).Return([]*model.Tweet{}, int64(0), nil)

	ctx, cancel := testutils.ContextWithTimeout(t)
	defer cancel()

	page, err := service.Feed(ctx, -1, 0)
	require.NoError(t, err)

	assert.Equal(t, 0, page.Page)
	assert.Equal(t, 10, page.PageSize)
	assert.Equal(t, 0, page.TotalPages)
	assert.NotNil(t, page.FeedItens)
	assert.Empty(t, page.FeedItens)

	tweetRepo.AssertExpectations(t)
}
