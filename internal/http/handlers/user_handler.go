package handlers

import (
	"github.com/gofiber/fiber/v2"

	"adboard/internal/domain"
	applog "adboard/internal/log"
	"adboard/internal/services"
	"adboard/internal/validate"
)

type UserHandler struct {
	Auth *services.AuthService
}

type userResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Role: u.Role}
}

// Get is a public read; the password hash never leaves the store layer.
func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	u, err := h.Auth.GetUser(id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(toUserResponse(u))
}

type updateUserRequest struct {
	Name     *string `json:"name"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	var req updateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	if req.Name != nil {
		n, ok := validate.Name(*req.Name)
		if !ok {
			return jsonError(c, fiber.StatusBadRequest, "invalid name")
		}
		req.Name = &n
	}
	if req.Password != nil && !validate.Password(*req.Password) {
		return jsonError(c, fiber.StatusBadRequest, "invalid password")
	}
	if req.Role != nil && !domain.ValidRole(*req.Role) {
		return jsonError(c, fiber.StatusBadRequest, "invalid role")
	}

	err := h.Auth.UpdateUser(currentUser(c), id, services.UserUpdate{
		Name:     req.Name,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return serviceError(c, err)
	}
	applog.Audit(c, "user.update", map[string]any{"target": id})
	return success(c)
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	if err := h.Auth.DeleteUser(currentUser(c), id); err != nil {
		return serviceError(c, err)
	}
	applog.Audit(c, "user.delete", map[string]any{"target": id})
	return success(c)
}
