package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"adboard/internal/domain"
	applog "adboard/internal/log"
	"adboard/internal/services"
)

func jsonError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

func success(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "success"})
}

// currentUser returns the identity the token middleware resolved, or nil on
// public routes.
func currentUser(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals("user").(*domain.User)
	return u
}

// serviceError maps the service error taxonomy onto HTTP statuses. Anything
// outside the taxonomy is a server fault and falls through to the global
// error handler.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		return jsonError(c, fiber.StatusUnauthorized, services.ErrInvalidCredentials.Error())
	case errors.Is(err, services.ErrUnauthenticated):
		return jsonError(c, fiber.StatusUnauthorized, services.ErrUnauthenticated.Error())
	case errors.Is(err, services.ErrForbidden):
		applog.Security(c, "access.denied", nil)
		return jsonError(c, fiber.StatusForbidden, services.ErrForbidden.Error())
	case errors.Is(err, services.ErrNotFound):
		return jsonError(c, fiber.StatusNotFound, "not found")
	case errors.Is(err, services.ErrConflict):
		return jsonError(c, fiber.StatusConflict, "already exists")
	case errors.Is(err, services.ErrIssuanceFailed):
		applog.Error(c, "token.issue.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "internal error")
	default:
		return err
	}
}
