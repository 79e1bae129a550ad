package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"adboard/internal/auth"
	"adboard/internal/domain"
	applog "adboard/internal/log"
	"adboard/internal/services"
	"adboard/internal/validate"
)

type AuthHandler struct {
	Auth *services.AuthService
}

type credentialsRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	name, ok := validate.Name(req.Name)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "name"})
		return jsonError(c, fiber.StatusBadRequest, "invalid name")
	}
	if !validate.Password(req.Password) {
		applog.Security(c, "validation.fail", map[string]any{"field": "password"})
		return jsonError(c, fiber.StatusBadRequest, "invalid password")
	}

	u, err := h.Auth.Register(name, req.Password)
	if err != nil {
		return serviceError(c, err)
	}
	applog.Audit(c, "user.register", map[string]any{"name": name, "id": u.ID})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": u.ID})
}

// Login answers a uniform 401 whether the name is unknown or the password is
// wrong; only the log can tell a corrupt stored hash from a bad credential.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid body")
	}

	tok, err := h.Auth.Login(req.Name, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrCorruptHash) {
			applog.Error(c, "auth.hash.corrupt", err, map[string]any{"name": req.Name})
		} else {
			applog.Security(c, "auth.login.fail", map[string]any{"name": req.Name})
		}
		return serviceError(c, err)
	}

	applog.Audit(c, "auth.login.success", map[string]any{"name": req.Name})
	return c.JSON(fiber.Map{"token": tok.Value})
}

// Logout revokes the presented token. Runs behind RequireToken.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	tok, _ := c.Locals("token").(*domain.Token)
	if tok == nil {
		return jsonError(c, fiber.StatusBadRequest, "token required")
	}
	if err := h.Auth.Logout(tok.Value); err != nil {
		return err
	}
	applog.Audit(c, "auth.logout", nil)
	return success(c)
}
