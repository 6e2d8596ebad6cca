package handlers

import (
	applog "cherrybud/internal/log"
	"cherrybud/internal/repos"
	"cherrybud/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ContactHandler struct {
	Ledger *repos.LedgerRepo
}

// GET /contact
func (h *ContactHandler) Form(c *fiber.Ctx) error {
	return render(c, "contact", fiber.Map{"Success": false})
}

// POST /contact
func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	name, okName := validate.Name(c.FormValue("name"))
	email, okEmail := validate.Email(c.FormValue("email"))
	message := c.FormValue("message")
	if !okName || !okEmail || message == "" {
		applog.Security(c, "contact.validation.fail", nil)
		return c.Status(fiber.StatusBadRequest).Render("contact", fiber.Map{"Success": false, "Err": "Please fill in name, email, and message."})
	}
	if err := h.Ledger.InsertContact(name, email, message); err != nil {
		applog.Error(c, "contact.save.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not send your message"})
	}
	return render(c, "contact", fiber.Map{"Success": true})
}
