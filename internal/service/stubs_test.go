package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"labook/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userRepoStub struct {
	createFn           func(context.Context, *models.User) error
	getByIDFn          func(context.Context, string) (*models.User, error)
	getByEmailFn       func(context.Context, string) (*models.User, error)
	getFriendshipFn    func(context.Context, models.Friendship) (*models.Friendship, error)
	toggleFriendshipFn func(context.Context, models.Friendship) (bool, error)
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetFriendship(ctx context.Context, pair models.Friendship) (*models.Friendship, error) {
	return s.getFriendshipFn(ctx, pair)
}
func (s *userRepoStub) ToggleFriendship(ctx context.Context, pair models.Friendship) (bool, error) {
	return s.toggleFriendshipFn(ctx, pair)
}

// noopUserRepo returns a stub whose methods fail loudly unless overridden.
func noopUserRepo() *userRepoStub {
	unexpected := errors.New("unexpected user repository call")
	return &userRepoStub{
		createFn: func(context.Context, *models.User) error { return unexpected },
		getByIDFn: func(_ context.Context, id string) (*models.User, error) {
			return &models.User{ID: id}, nil
		},
		getByEmailFn: func(context.Context, string) (*models.User, error) { return nil, unexpected },
		getFriendshipFn: func(context.Context, models.Friendship) (*models.Friendship, error) {
			return nil, unexpected
		},
		toggleFriendshipFn: func(context.Context, models.Friendship) (bool, error) { return false, unexpected },
	}
}

type postRepoStub struct {
	createFn        func(context.Context, *models.Post) error
	getByIDFn       func(context.Context, string) (*models.Post, error)
	getFeedFn       func(context.Context, string, int, int) ([]models.Post, error)
	listByTypeFn    func(context.Context, models.PostType, int, int) ([]models.Post, error)
	getLikeFn       func(context.Context, string, string) (*models.Like, error)
	toggleLikeFn    func(context.Context, string, string) (bool, error)
	createCommentFn func(context.Context, *models.Comment) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id string) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) GetFeed(ctx context.Context, viewerID string, limit, offset int) ([]models.Post, error) {
	return s.getFeedFn(ctx, viewerID, limit, offset)
}
func (s *postRepoStub) ListByType(ctx context.Context, postType models.PostType, limit, offset int) ([]models.Post, error) {
	return s.listByTypeFn(ctx, postType, limit, offset)
}
func (s *postRepoStub) GetLike(ctx context.Context, postID, userID string) (*models.Like, error) {
	return s.getLikeFn(ctx, postID, userID)
}
func (s *postRepoStub) ToggleLike(ctx context.Context, postID, userID string) (bool, error) {
	return s.toggleLikeFn(ctx, postID, userID)
}
func (s *postRepoStub) CreateComment(ctx context.Context, comment *models.Comment) error {
	return s.createCommentFn(ctx, comment)
}

func noopPostRepo() *postRepoStub {
	unexpected := errors.New("unexpected post repository call")
	return &postRepoStub{
		createFn: func(context.Context, *models.Post) error { return unexpected },
		getByIDFn: func(_ context.Context, id string) (*models.Post, error) {
			return &models.Post{ID: id}, nil
		},
		getFeedFn: func(context.Context, string, int, int) ([]models.Post, error) {
			return nil, unexpected
		},
		listByTypeFn: func(context.Context, models.PostType, int, int) ([]models.Post, error) {
			return nil, unexpected
		},
		getLikeFn:       func(context.Context, string, string) (*models.Like, error) { return nil, unexpected },
		toggleLikeFn:    func(context.Context, string, string) (bool, error) { return false, unexpected },
		createCommentFn: func(context.Context, *models.Comment) error { return unexpected },
	}
}

// plainHasher stores passwords as "hashed:<plaintext>".
type plainHasher struct {
	err error
}

func (h plainHasher) Hash(plaintext string) (string, error) {
	if h.err != nil {
		return "", h.err
	}
	return "hashed:" + plaintext, nil
}

func (plainHasher) Compare(plaintext, digest string) bool {
	return digest == "hashed:"+plaintext
}

// subjectTokens issues "token-for:<id>".
type subjectTokens struct{}

func (subjectTokens) GenerateToken(subjectID string) (string, error) {
	return "token-for:" + subjectID, nil
}

// sequentialIDs yields id-1, id-2, ...
type sequentialIDs struct {
	n int
}

func (g *sequentialIDs) Generate() string {
	g.n++
	return fmt.Sprintf("id-%d", g.n)
}

func requireAppErrorCode(t *testing.T, err error, code string) *models.AppError {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
	return appErr
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	requireAppErrorCode(t, err, models.CodeValidation)
}
