package server

import (
	"errors"

	"labook/internal/models"

	"github.com/gofiber/fiber/v2"
)

const successMessage = "Success!"

// errResponseWritten signals that a helper already committed the response.
// Handlers must return nil rather than this error so the ErrorHandler does
// not overwrite it.
var errResponseWritten = errors.New("response already written")

// respondError writes err with the status its code maps to. Wrapped causes
// are only exposed outside production.
func (s *Server) respondError(c *fiber.Ctx, err error) error {
	includeDetails := s.config != nil && !s.config.IsProduction()
	return models.RespondWithError(c, models.StatusFor(err), err, includeDetails)
}

// parseBody decodes the request body into dst. A malformed body is reported
// like a missing field and errResponseWritten is returned.
func (s *Server) parseBody(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		_ = s.respondError(c, models.NewValidationError("Invalid request body"))
		return errResponseWritten
	}
	return nil
}

// pageParam reads the 1-based page query; anything non-numeric collapses to 1.
func pageParam(c *fiber.Ctx) int {
	return c.QueryInt("page", 1)
}
