package handlers

import (
	"errors"
	"strings"

	"cherrybud/internal/domain"
	applog "cherrybud/internal/log"
	"cherrybud/internal/services"
	"cherrybud/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CartHandler struct {
	Cart *services.CartService
}

// POST /add_to_cart/:id
func (h *CartHandler) Add(c *fiber.Ctx) error {
	sid := ensureSID(c)
	itemID, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	size := strings.TrimSpace(c.FormValue("size"))
	qty := validate.Qty(c.FormValue("qty"))

	if err := h.Cart.Add(sid, itemID, size, qty); err != nil {
		if errors.Is(err, services.ErrBadSize) {
			// validation failure: back to the item page, cart untouched
			return c.Redirect("/item/" + c.Params("id") + "?flash=Please+select+a+size+(Small,+Medium,+or+Large).")
		}
		applog.Error(c, "cart.add.fail", err, map[string]any{"item_id": itemID})
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not update your cart"})
	}
	return c.Redirect("/cart")
}

// GET /cart
func (h *CartHandler) View(c *fiber.Ctx) error {
	sid := ensureSID(c)
	cv, err := h.Cart.View(sid)
	if err != nil {
		applog.Error(c, "cart.view.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load your cart"})
	}
	return render(c, "cart", fiber.Map{"Cart": cv})
}

// POST /update_cart — qty inputs keyed qty_<id>_<Size>. Keys whose size
// suffix is not one of the three offered values are skipped outright.
func (h *CartHandler) Update(c *fiber.Ctx) error {
	sid := ensureSID(c)

	lines := []services.UpdateLine{}
	c.Request().PostArgs().VisitAll(func(key, val []byte) {
		name := string(key)
		if !strings.HasPrefix(name, "qty_") {
			return
		}
		rest := name[len("qty_"):]
		cut := strings.LastIndex(rest, "_")
		if cut <= 0 {
			return
		}
		itemID, ok := validate.ID(rest[:cut])
		size := rest[cut+1:]
		if !ok || !domain.ValidSize(size) {
			applog.Security(c, "cart.update.badkey", map[string]any{"key": name})
			return
		}
		lines = append(lines, services.UpdateLine{
			ItemID: itemID,
			Size:   size,
			Qty:    validate.UpdateQty(string(val)),
		})
	})

	if err := h.Cart.Update(sid, lines); err != nil {
		applog.Error(c, "cart.update.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not update your cart"})
	}
	return c.Redirect("/cart")
}

// POST /clear_cart
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	sid := ensureSID(c)
	if err := h.Cart.Clear(sid); err != nil {
		applog.Error(c, "cart.clear.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not update your cart"})
	}
	return c.Redirect("/cart")
}
