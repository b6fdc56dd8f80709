package server

import (
	"context"
	"testing"
	"time"

	"labook/internal/config"
	"labook/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockUserRepository is a mock of the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetFriendship(ctx context.Context, pair models.Friendship) (*models.Friendship, error) {
	args := m.Called(ctx, pair)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Friendship), args.Error(1)
}

func (m *MockUserRepository) ToggleFriendship(ctx context.Context, pair models.Friendship) (bool, error) {
	args := m.Called(ctx, pair)
	return args.Bool(0), args.Error(1)
}

// MockPostRepository is a mock of the PostRepository interface
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) GetFeed(ctx context.Context, viewerID string, limit, offset int) ([]models.Post, error) {
	args := m.Called(ctx, viewerID, limit, offset)
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostRepository) ListByType(ctx context.Context, postType models.PostType, limit, offset int) ([]models.Post, error) {
	args := m.Called(ctx, postType, limit, offset)
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostRepository) GetLike(ctx context.Context, postID, userID string) (*models.Like, error) {
	args := m.Called(ctx, postID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Like), args.Error(1)
}

func (m *MockPostRepository) ToggleLike(ctx context.Context, postID, userID string) (bool, error) {
	args := m.Called(ctx, postID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPostRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func testConfig() *config.Config {
	return &config.Config{
		Env:          "test",
		Port:         "0",
		JWTSecret:    "test-secret-that-is-at-least-32-chars",
		JWTExpiresIn: time.Hour,
		BcryptCost:   4,
	}
}

// newTestApp wires the full middleware and route stack over mocked repositories.
func newTestApp(t *testing.T, db *gorm.DB, userRepo *MockUserRepository, postRepo *MockPostRepository) (*Server, *fiber.App) {
	t.Helper()
	s := newServer(testConfig(), db, nil, userRepo, postRepo)
	return s, s.NewApp()
}

// bearer issues a valid Authorization header value for userID.
func bearer(t *testing.T, s *Server, userID string) string {
	t.Helper()
	token, err := s.tokens.GenerateToken(userID)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return "Bearer " + token
}
