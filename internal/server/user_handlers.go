package server

import (
	"labook/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// ToggleFriend handles POST /user/friend/:id
// @Summary Toggle friendship
// @Description Befriend the user with the given ID, or unfriend them if already friends
// @Tags user
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} object{message=string,friends=bool}
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 406 {object} models.ErrorResponse
// @Router /user/friend/{id} [post]
func (s *Server) ToggleFriend(c *fiber.Ctx) error {
	friends, err := s.userService.ToggleFriend(c.UserContext(), middleware.UserID(c), c.Params("id"))
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": successMessage,
		"friends": friends,
	})
}
