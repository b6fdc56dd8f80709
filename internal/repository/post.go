package repository

import (
	"context"
	"errors"

	"labook/internal/models"
	"labook/internal/observability"

	"gorm.io/gorm"
)

// PostRepository defines persistence operations for posts, likes and comments.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id string) (*models.Post, error)
	GetFeed(ctx context.Context, viewerID string, limit, offset int) ([]models.Post, error)
	ListByType(ctx context.Context, postType models.PostType, limit, offset int) ([]models.Post, error)
	GetLike(ctx context.Context, postID, userID string) (*models.Like, error)
	ToggleLike(ctx context.Context, postID, userID string) (bool, error)
	CreateComment(ctx context.Context, comment *models.Comment) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

const postWithAuthorColumns = "posts.*, users.name AS author_name"

// feedQuery selects posts authored by friends of the viewer. A friendship row
// holds the viewer in either column, so both join directions are unioned.
const feedQuery = `SELECT posts.*, users.name AS author_name
FROM posts
JOIN users_friends ON users_friends.user_two_id = posts.author_id
JOIN users ON users.id = posts.author_id
WHERE users_friends.user_one_id = ?
UNION
SELECT posts.*, users.name AS author_name
FROM posts
JOIN users_friends ON users_friends.user_one_id = posts.author_id
JOIN users ON users.id = posts.author_id
WHERE users_friends.user_two_id = ?
ORDER BY created_at DESC
LIMIT ? OFFSET ?`

func (r *postRepository) withAuthor(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Post{}).
		Select(postWithAuthorColumns).
		Joins("JOIN users ON users.id = posts.author_id")
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	if err := r.withAuthor(ctx).Where("posts.id = ?", id).Take(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post not found")
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) GetFeed(ctx context.Context, viewerID string, limit, offset int) ([]models.Post, error) {
	span, ctx := observability.NewRepositorySpan(ctx, "feed", "posts")
	defer span.End()

	posts := []models.Post{}
	if err := r.db.WithContext(ctx).Raw(feedQuery, viewerID, viewerID, limit, offset).Scan(&posts).Error; err != nil {
		span.SetError(err)
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) ListByType(ctx context.Context, postType models.PostType, limit, offset int) ([]models.Post, error) {
	posts := []models.Post{}
	if err := r.withAuthor(ctx).
		Where("posts.type = ?", postType).
		Order("posts.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) GetLike(ctx context.Context, postID, userID string) (*models.Like, error) {
	var like models.Like
	if err := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Take(&like).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &like, nil
}

// ToggleLike removes the like of userID on postID if present, otherwise creates it.
func (r *postRepository) ToggleLike(ctx context.Context, postID, userID string) (bool, error) {
	liked, err := toggle(ctx, r.db, "posts_likes", &models.Like{}, map[string]interface{}{
		"post_id": postID,
		"user_id": userID,
	}, &models.Like{PostID: postID, UserID: userID})
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return liked, nil
}

func (r *postRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
