package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	applog "adboard/internal/log"
	"adboard/internal/services"
)

// TokenHeader carries the bearer token on authenticated requests.
const TokenHeader = "X-Token"

// RequireToken resolves the X-Token header to an identity and stores it in
// the request locals. A missing or non-uuid value is a structural client
// error (400); a well-formed value that is unknown or expired is 401, with no
// hint as to which.
func RequireToken(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Get(TokenHeader)
		if raw == "" {
			return jsonError(c, fiber.StatusBadRequest, "token required")
		}
		if _, err := uuid.Parse(raw); err != nil {
			applog.Security(c, "auth.token.malformed", nil)
			return jsonError(c, fiber.StatusBadRequest, "malformed token")
		}
		u, tok, err := auth.Resolve(raw)
		if err != nil {
			applog.Security(c, "auth.token.rejected", nil)
			return serviceError(c, err)
		}
		c.Locals("user", u)
		c.Locals("token", tok)
		return c.Next()
	}
}
