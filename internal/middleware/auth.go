package middleware

import (
	"context"

	"labook/internal/models"

	"github.com/gofiber/fiber/v2"
)

// TokenVerifier resolves an access token to the user ID it was issued for.
type TokenVerifier interface {
	GetTokenData(token string) (string, error)
}

// AuthRequired is a middleware that enforces authentication for protected routes.
// The Authorization header may carry "Bearer <token>" or the raw token.
func AuthRequired(tokens TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := tokens.GetTokenData(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid credentials"), false)
		}

		c.Locals("userID", userID)
		// Sync to UserContext for logging and downstream services
		ctx := context.WithValue(c.UserContext(), UserIDKey, userID)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// UserID returns the authenticated user ID stored by AuthRequired.
func UserID(c *fiber.Ctx) string {
	uid, _ := c.Locals("userID").(string)
	return uid
}
