package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"adboard/internal/domain"
	applog "adboard/internal/log"
	"adboard/internal/repos"
	"adboard/internal/services"
	"adboard/internal/validate"
)

type AdHandler struct {
	Ads *services.AdService
}

type adResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	UserID      int64   `json:"user_id"`
	StatusOpen  bool    `json:"status_open"`
	CreatedAt   string  `json:"creation_date"`
}

func toAdResponse(ad domain.Advertisement) adResponse {
	return adResponse{
		ID:          ad.ID,
		Title:       ad.Title,
		Description: ad.Description,
		Price:       ad.Price,
		UserID:      ad.UserID,
		StatusOpen:  ad.StatusOpen,
		CreatedAt:   time.Unix(ad.CreatedAt, 0).UTC().Format(time.RFC3339),
	}
}

type createAdRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	StatusOpen  *bool   `json:"status_open"`
}

func (h *AdHandler) Create(c *fiber.Ctx) error {
	var req createAdRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	title, ok := validate.Title(req.Title)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "title"})
		return jsonError(c, fiber.StatusBadRequest, "invalid title")
	}
	if !validate.Price(req.Price) {
		return jsonError(c, fiber.StatusBadRequest, "invalid price")
	}
	open := true
	if req.StatusOpen != nil {
		open = *req.StatusOpen
	}

	id, err := h.Ads.Create(currentUser(c), title, req.Description, req.Price, open)
	if err != nil {
		return serviceError(c, err)
	}
	applog.Audit(c, "advertisement.create", map[string]any{"id": id})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

func (h *AdHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	ad, err := h.Ads.Get(id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(toAdResponse(ad))
}

func (h *AdHandler) Search(c *fiber.Ctx) error {
	var f repos.AdFilter
	f.Title = strings.TrimSpace(c.Query("title"))
	f.Description = strings.TrimSpace(c.Query("description"))
	if v := c.Query("price"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil || p < 0 {
			return jsonError(c, fiber.StatusBadRequest, "invalid price")
		}
		f.Price = &p
	}
	if v := c.Query("user_id"); v != "" {
		id, ok := validate.ID(v)
		if !ok {
			return jsonError(c, fiber.StatusBadRequest, "invalid user_id")
		}
		f.UserID = &id
	}
	if v := c.Query("status_open"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return jsonError(c, fiber.StatusBadRequest, "invalid status_open")
		}
		f.StatusOpen = &b
	}
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "20"))

	ads, err := h.Ads.Search(f, page, pageSize)
	if err != nil {
		applog.Error(c, "advertisement.search.error", err, nil)
		return err
	}
	out := make([]adResponse, 0, len(ads))
	for _, ad := range ads {
		out = append(out, toAdResponse(ad))
	}
	return c.JSON(fiber.Map{"advertisements": out})
}

type updateAdRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	StatusOpen  *bool    `json:"status_open"`
}

func (h *AdHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	var req updateAdRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	if req.Title != nil {
		t, ok := validate.Title(*req.Title)
		if !ok {
			return jsonError(c, fiber.StatusBadRequest, "invalid title")
		}
		req.Title = &t
	}
	if req.Price != nil && !validate.Price(*req.Price) {
		return jsonError(c, fiber.StatusBadRequest, "invalid price")
	}

	err := h.Ads.Update(currentUser(c), id, repos.AdPatch{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		StatusOpen:  req.StatusOpen,
	})
	if err != nil {
		return serviceError(c, err)
	}
	applog.Audit(c, "advertisement.update", map[string]any{"id": id})
	return success(c)
}

func (h *AdHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	if err := h.Ads.Delete(currentUser(c), id); err != nil {
		return serviceError(c, err)
	}
	applog.Audit(c, "advertisement.delete", map[string]any{"id": id})
	return success(c)
}
