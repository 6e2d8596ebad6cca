package handlers

import (
	"errors"

	applog "cherrybud/internal/log"
	"cherrybud/internal/repos"
	"cherrybud/internal/validate"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gofiber/fiber/v2"
)

type ShopHandler struct {
	Catalog *repos.CatalogRepo
}

// GET /shop
func (h *ShopHandler) List(c *fiber.Ctx) error {
	items, err := h.Catalog.List()
	if err != nil {
		applog.Error(c, "shop.list.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load the shop"})
	}
	return render(c, "shop", fiber.Map{"Items": items})
}

// GET /item/:id
func (h *ShopHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	it, err := h.Catalog.Get(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	count, err := h.Catalog.ImageCount(id)
	if err != nil {
		applog.Error(c, "shop.detail.images.fail", err, map[string]any{"item_id": id})
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load this item"})
	}
	hasImage := count > 0 || it.Picture != nil
	return render(c, "view_item", fiber.Map{
		"Item":       it,
		"HasImage":   hasImage,
		"ImageCount": count,
		"Flash":      c.Query("flash"),
	})
}

// GET /item_image/:id — the legacy single-image endpoint.
func (h *ShopHandler) Image(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.SendStatus(fiber.StatusNotFound)
	}
	data, err := h.Catalog.LegacyImage(id)
	if err != nil {
		return c.SendStatus(fiber.StatusNotFound)
	}
	return sendImage(c, data)
}

// GET /item_image/:id/:idx — the idx-th gallery image, legacy fallback at 0.
func (h *ShopHandler) ImageAt(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.SendStatus(fiber.StatusNotFound)
	}
	idx, err := c.ParamsInt("idx")
	if err != nil || idx < 0 {
		return c.SendStatus(fiber.StatusNotFound)
	}
	data, err := h.Catalog.ImageAt(id, idx)
	if err != nil {
		if !errors.Is(err, repos.ErrNotFound) {
			applog.Error(c, "shop.image.fail", err, map[string]any{"item_id": id, "idx": idx})
		}
		return c.SendStatus(fiber.StatusNotFound)
	}
	return sendImage(c, data)
}

func sendImage(c *fiber.Ctx, data []byte) error {
	c.Set(fiber.HeaderContentType, mimetype.Detect(data).String())
	return c.Send(data)
}
