package handlers

import (
	"errors"

	applog "cherrybud/internal/log"
	"cherrybud/internal/services"

	"github.com/gofiber/fiber/v2"
)

type CheckoutHandler struct {
	Checkout *services.CheckoutService
	Cart     *services.CartService
}

// POST /create_checkout_session
func (h *CheckoutHandler) Create(c *fiber.Ctx) error {
	sid := ensureSID(c)
	url, err := h.Checkout.CreateSession(sid)
	if err != nil {
		if errors.Is(err, services.ErrEmptyCart) {
			return c.Redirect("/cart")
		}
		applog.Error(c, "checkout.create.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not start checkout. Please try again."})
	}
	applog.Audit(c, "checkout.create", map[string]any{"sid": sid})
	return c.Redirect(url, fiber.StatusSeeOther)
}

// GET /checkout/success — clears the cart on browser return from the
// processor. Order creation itself is the webhook's job.
func (h *CheckoutHandler) Success(c *fiber.Ctx) error {
	sid := ensureSID(c)
	if err := h.Cart.Clear(sid); err != nil {
		applog.Error(c, "checkout.success.clear.fail", err, nil)
	}
	return render(c, "success", fiber.Map{})
}
