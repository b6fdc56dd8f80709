package service

import (
	"context"
	"strings"

	"labook/internal/idgen"
	"labook/internal/models"
	"labook/internal/observability"
	"labook/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

const feedPageSize = 5

type PostService struct {
	postRepo repository.PostRepository
	ids      idgen.Generator
}

type CreatePostInput struct {
	Photo       string
	Description string
	Type        string
	AuthorID    string
}

type FeedInput struct {
	ViewerID string
	Page     int
}

type FeedByTypeInput struct {
	Type string
	Page int
}

type CommentInput struct {
	UserID  string
	PostID  string
	Message string
}

func NewPostService(postRepo repository.PostRepository, ids idgen.Generator) *PostService {
	return &PostService{
		postRepo: postRepo,
		ids:      ids,
	}
}

// normalizePage collapses non-positive pages to the first one.
func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func pageOffset(page int) int {
	return (normalizePage(page) - 1) * feedPageSize
}

// CreatePost stores a new post. An absent type means NORMAL.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (post *models.Post, err error) {
	span, ctx := observability.NewSpan(ctx, "PostService.CreatePost",
		attribute.String("user.id", in.AuthorID),
	)
	defer func() {
		span.SetError(err)
		span.End()
	}()

	if in.Photo == "" || in.Description == "" {
		return nil, models.NewValidationError("'photo' and 'description' must be provided")
	}

	postType := models.PostTypeNormal
	if strings.TrimSpace(in.Type) != "" {
		parsed, err := models.ParsePostType(in.Type)
		if err != nil {
			return nil, err
		}
		postType = parsed
	}

	post = models.NewPost(s.ids.Generate(), in.Photo, in.Description, postType, in.AuthorID)
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, models.AsAppError(err)
	}
	return post, nil
}

func (s *PostService) GetPostByID(ctx context.Context, id string) (post *models.Post, err error) {
	span, ctx := observability.NewSpan(ctx, "PostService.GetPostByID",
		attribute.String("post.id", id),
	)
	defer func() {
		span.SetError(err)
		span.End()
	}()

	post, err = s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, models.AsAppError(err)
	}
	return post, nil
}

// GetFeed returns one page of posts written by the viewer's friends, newest first.
func (s *PostService) GetFeed(ctx context.Context, in FeedInput) (posts []models.Post, err error) {
	span, ctx := observability.NewSpan(ctx, "PostService.GetFeed",
		attribute.String("user.id", in.ViewerID),
		attribute.Int("page", normalizePage(in.Page)),
	)
	defer func() {
		span.SetError(err)
		span.End()
	}()

	posts, err = s.postRepo.GetFeed(ctx, in.ViewerID, feedPageSize, pageOffset(in.Page))
	if err != nil {
		return nil, models.AsAppError(err)
	}
	return posts, nil
}

// GetPostsByType returns one page of posts of the given type, newest first.
func (s *PostService) GetPostsByType(ctx context.Context, in FeedByTypeInput) (posts []models.Post, err error) {
	span, ctx := observability.NewSpan(ctx, "PostService.GetPostsByType",
		attribute.String("post.type", in.Type),
		attribute.Int("page", normalizePage(in.Page)),
	)
	defer func() {
		span.SetError(err)
		span.End()
	}()

	postType, err := models.ParsePostType(in.Type)
	if err != nil {
		return nil, err
	}

	posts, err = s.postRepo.ListByType(ctx, postType, feedPageSize, pageOffset(in.Page))
	if err != nil {
		return nil, models.AsAppError(err)
	}
	return posts, nil
}

// ToggleLike flips the like of userID on postID and reports whether the post
// is liked afterwards.
func (s *PostService) ToggleLike(ctx context.Context, userID, postID string) (liked bool, err error) {
	span, ctx := observability.NewSpan(ctx, "PostService.ToggleLike",
		attribute.String("user.id", userID),
		attribute.String("post.id", postID),
	)
	defer func() {
		span.SetError(err)
		span.End()
	}()

	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return false, models.AsAppError(err)
	}

	liked, err = s.postRepo.ToggleLike(ctx, postID, userID)
	if err != nil {
		return false, models.AsAppError(err)
	}
	observability.RecordToggle("like", liked)
	return liked, nil
}

// CommentPost appends a comment by in.UserID to an existing post.
func (s *PostService) CommentPost(ctx context.Context, in CommentInput) (comment *models.Comment, err error) {
	span, ctx := observability.NewSpan(ctx, "PostService.CommentPost",
		attribute.String("user.id", in.UserID),
		attribute.String("post.id", in.PostID),
	)
	defer func() {
		span.SetError(err)
		span.End()
	}()

	if in.Message == "" {
		return nil, models.NewValidationError("'message' must be provided")
	}

	if _, err := s.postRepo.GetByID(ctx, in.PostID); err != nil {
		return nil, models.AsAppError(err)
	}

	comment = models.NewComment(s.ids.Generate(), in.PostID, in.UserID, in.Message)
	if err := s.postRepo.CreateComment(ctx, comment); err != nil {
		return nil, models.AsAppError(err)
	}
	return comment, nil
}
