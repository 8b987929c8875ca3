package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"compliance-backend/apperr"
	"compliance-backend/models"
	"compliance-backend/services"
)

const (
	authHeader   = "Authorization"
	bearerPrefix = "Bearer "
	userLocal    = "user"
)

// RequireAuth validates the Bearer token on every protected request and
// stashes the resolved user in c.Locals. Tokens are stateless; nothing is
// cached between requests.
func RequireAuth(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		h := c.Get(authHeader)
		if h == "" || !strings.HasPrefix(strings.ToLower(h), strings.ToLower(bearerPrefix)) {
			return apperr.ErrUnauthorized
		}
		raw := strings.TrimSpace(h[len(bearerPrefix):])
		if raw == "" {
			return apperr.ErrUnauthorized
		}

		user, err := auth.Authenticate(c.UserContext(), raw)
		if err != nil {
			return err
		}
		c.Locals(userLocal, user)
		return c.Next()
	}
}

// CurrentUser returns the authenticated user stashed by RequireAuth, or nil
// on unprotected routes.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(userLocal).(*models.User)
	return user
}
