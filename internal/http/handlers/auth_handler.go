package handlers

import (
	"errors"

	applog "cherrybud/internal/log"
	"cherrybud/internal/services"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Auth *services.AuthService
}

// GET /login
func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	return render(c, "login", fiber.Map{"Err": ""})
}

// POST /login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	sid := ensureSID(c)
	if err := h.Auth.Login(sid, c.FormValue("password")); err != nil {
		if errors.Is(err, services.ErrBadPassword) {
			applog.Security(c, "login.fail", map[string]any{"sid": sid})
			return render(c, "login", fiber.Map{"Err": "Incorrect password"})
		}
		applog.Error(c, "login.error", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not log in"})
	}
	applog.Audit(c, "login.ok", map[string]any{"sid": sid})
	return c.Redirect("/admin")
}

// GET /logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if sid := c.Cookies("sid"); sid != "" {
		if err := h.Auth.Logout(sid); err != nil {
			applog.Error(c, "logout.error", err, nil)
		}
	}
	return c.Redirect("/login")
}
