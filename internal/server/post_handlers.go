package server

import (
	"labook/internal/middleware"
	"labook/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /post/create
// @Summary Create a post
// @Description Publish a post; type is NORMAL or EVENT and defaults to NORMAL
// @Tags post
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{photo=string,description=string,type=string} true "Post"
// @Success 201 {object} object{message=string,post=models.Post}
// @Failure 401 {object} models.ErrorResponse
// @Failure 406 {object} models.ErrorResponse
// @Router /post/create [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Photo       string `json:"photo"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}
	if err := s.parseBody(c, &req); err != nil {
		return nil
	}

	post, err := s.postService.CreatePost(c.UserContext(), service.CreatePostInput{
		Photo:       req.Photo,
		Description: req.Description,
		Type:        req.Type,
		AuthorID:    middleware.UserID(c),
	})
	if err != nil {
		return s.respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": successMessage,
		"post":    post,
	})
}

// GetPostByID handles GET /post/:id
// @Summary Get a post
// @Description Get a post with its author's name
// @Tags post
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} object{message=string,post=models.Post}
// @Failure 404 {object} models.ErrorResponse
// @Router /post/{id} [get]
func (s *Server) GetPostByID(c *fiber.Ctx) error {
	post, err := s.postService.GetPostByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": successMessage,
		"post":    post,
	})
}

// GetFeed handles GET /post/feed
// @Summary Friends feed
// @Description Posts written by the caller's friends, newest first, five per page
// @Tags post
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page (1-based)"
// @Success 200 {object} object{message=string,posts=[]models.Post}
// @Failure 401 {object} models.ErrorResponse
// @Router /post/feed [get]
func (s *Server) GetFeed(c *fiber.Ctx) error {
	posts, err := s.postService.GetFeed(c.UserContext(), service.FeedInput{
		ViewerID: middleware.UserID(c),
		Page:     pageParam(c),
	})
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": successMessage,
		"posts":   posts,
	})
}

// GetPostsByType handles GET /post/feed/:type
// @Summary Posts by type
// @Description Posts of type NORMAL or EVENT, newest first, five per page
// @Tags post
// @Produce json
// @Security BearerAuth
// @Param type path string true "Post type" Enums(NORMAL, EVENT)
// @Param page query int false "Page (1-based)"
// @Success 200 {object} object{message=string,posts=[]models.Post}
// @Failure 401 {object} models.ErrorResponse
// @Failure 406 {object} models.ErrorResponse
// @Router /post/feed/{type} [get]
func (s *Server) GetPostsByType(c *fiber.Ctx) error {
	posts, err := s.postService.GetPostsByType(c.UserContext(), service.FeedByTypeInput{
		Type: c.Params("type"),
		Page: pageParam(c),
	})
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": successMessage,
		"posts":   posts,
	})
}

// ToggleLike handles POST /post/like/:id
// @Summary Toggle like
// @Description Like the post, or remove the caller's like if already present
// @Tags post
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} object{message=string,liked=bool}
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /post/like/{id} [post]
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	liked, err := s.postService.ToggleLike(c.UserContext(), middleware.UserID(c), c.Params("id"))
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": successMessage,
		"liked":   liked,
	})
}

// CommentPost handles POST /post/comment/:id
// @Summary Comment on a post
// @Tags post
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Param request body object{message=string} true "Comment"
// @Success 201 {object} object{message=string,comment=models.Comment}
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 406 {object} models.ErrorResponse
// @Router /post/comment/{id} [post]
func (s *Server) CommentPost(c *fiber.Ctx) error {
	var req struct {
		Message string `json:"message"`
	}
	if err := s.parseBody(c, &req); err != nil {
		return nil
	}

	comment, err := s.postService.CommentPost(c.UserContext(), service.CommentInput{
		UserID:  middleware.UserID(c),
		PostID:  c.Params("id"),
		Message: req.Message,
	})
	if err != nil {
		return s.respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": successMessage,
		"comment": comment,
	})
}
