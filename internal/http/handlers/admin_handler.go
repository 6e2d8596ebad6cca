package handlers

import (
	"io"
	"mime/multipart"
	"strconv"
	"strings"

	applog "cherrybud/internal/log"
	"cherrybud/internal/repos"
	"cherrybud/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	Ledger  *repos.LedgerRepo
	Catalog *repos.CatalogRepo
	Orders  *repos.OrderRepo
}

// GET /admin — the office-hours dashboard: ledger totals, contacts, shop
// items, and orders with their line items.
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	expenses, err := h.Ledger.ListExpenses()
	if err != nil {
		return h.dashboardFail(c, "expenses", err)
	}
	totalExpenses, err := h.Ledger.TotalExpenses()
	if err != nil {
		return h.dashboardFail(c, "expense total", err)
	}
	breakdown, err := h.Ledger.ExpenseBreakdown()
	if err != nil {
		return h.dashboardFail(c, "expense breakdown", err)
	}
	contacts, err := h.Ledger.ListContacts()
	if err != nil {
		return h.dashboardFail(c, "contacts", err)
	}
	items, err := h.Catalog.List()
	if err != nil {
		return h.dashboardFail(c, "shop items", err)
	}
	incomes, err := h.Ledger.ListIncomes()
	if err != nil {
		return h.dashboardFail(c, "incomes", err)
	}
	totalIncome, err := h.Ledger.TotalIncome()
	if err != nil {
		return h.dashboardFail(c, "income total", err)
	}
	orders, err := h.Orders.ListLatest()
	if err != nil {
		return h.dashboardFail(c, "orders", err)
	}
	orderItems, err := h.Orders.ItemsByOrder()
	if err != nil {
		return h.dashboardFail(c, "order items", err)
	}

	return render(c, "dashboard", fiber.Map{
		"Expenses":         expenses,
		"TotalExpenses":    totalExpenses,
		"ExpenseBreakdown": breakdown,
		"Contacts":         contacts,
		"Items":            items,
		"Incomes":          incomes,
		"TotalIncome":      totalIncome,
		"Net":              totalIncome - totalExpenses,
		"Orders":           orders,
		"OrderItems":       orderItems,
	})
}

func (h *AdminHandler) dashboardFail(c *fiber.Ctx, what string, err error) error {
	applog.Error(c, "admin.dashboard.fail", err, map[string]any{"loading": what})
	return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load the dashboard"})
}

// POST /submit — add an expense row.
func (h *AdminHandler) AddExpense(c *fiber.Ctx) error {
	date, okDate := validate.Date(c.FormValue("date"))
	cost, errCost := strconv.ParseFloat(strings.TrimSpace(c.FormValue("cost")), 64)
	store := strings.TrimSpace(c.FormValue("store_name"))
	if !okDate || errCost != nil || store == "" {
		return c.Status(fiber.StatusBadRequest).SendString("invalid expense")
	}
	err := h.Ledger.InsertExpense(date, cost, store,
		c.FormValue("item_description"), c.FormValue("purchased_by"))
	if err != nil {
		applog.Error(c, "admin.expense.add.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).SendString("could not save expense")
	}
	applog.Audit(c, "admin.expense.add", map[string]any{"store": store, "cost": cost})
	return c.Redirect("/admin")
}

// POST /delete/:id
func (h *AdminHandler) DeleteExpense(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("invalid id")
	}
	if err := h.Ledger.DeleteExpense(id); err != nil {
		applog.Error(c, "admin.expense.delete.fail", err, map[string]any{"id": id})
		return c.Status(fiber.StatusInternalServerError).SendString("could not delete expense")
	}
	applog.Audit(c, "admin.expense.delete", map[string]any{"id": id})
	return c.Redirect("/admin")
}

// POST /add_income
func (h *AdminHandler) AddIncome(c *fiber.Ctx) error {
	date, okDate := validate.Date(c.FormValue("income_date"))
	source := strings.TrimSpace(c.FormValue("income_source"))
	amount, errAmount := strconv.ParseFloat(strings.TrimSpace(c.FormValue("income_amount")), 64)
	if !okDate || source == "" || errAmount != nil {
		// matches the legacy behavior: incomplete form is a silent no-op
		return c.Redirect("/admin")
	}
	if err := h.Ledger.InsertIncome(date, source, amount, c.FormValue("income_notes")); err != nil {
		applog.Error(c, "admin.income.add.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).SendString("could not save income")
	}
	applog.Audit(c, "admin.income.add", map[string]any{"source": source, "amount": amount})
	return c.Redirect("/admin")
}

// POST /delete_income/:id
func (h *AdminHandler) DeleteIncome(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("invalid id")
	}
	if err := h.Ledger.DeleteIncome(id); err != nil {
		applog.Error(c, "admin.income.delete.fail", err, map[string]any{"id": id})
		return c.Status(fiber.StatusInternalServerError).SendString("could not delete income")
	}
	applog.Audit(c, "admin.income.delete", map[string]any{"id": id})
	return c.Redirect("/admin")
}

// POST /delete_contact/:id
func (h *AdminHandler) DeleteContact(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("invalid id")
	}
	if err := h.Ledger.DeleteContact(id); err != nil {
		applog.Error(c, "admin.contact.delete.fail", err, map[string]any{"id": id})
		return c.Status(fiber.StatusInternalServerError).SendString("could not delete contact")
	}
	applog.Audit(c, "admin.contact.delete", map[string]any{"id": id})
	return c.Redirect("/admin")
}

// GET /add_item
func (h *AdminHandler) AddItemForm(c *fiber.Ctx) error {
	return render(c, "add_item", fiber.Map{})
}

// POST /add_item — multipart form with any number of item_pictures files.
func (h *AdminHandler) AddItem(c *fiber.Ctx) error {
	name, okName := validate.Name(c.FormValue("item_name"))
	price := strings.TrimSpace(c.FormValue("item_price"))
	description := c.FormValue("item_description")
	if !okName || price == "" || description == "" {
		return c.Status(fiber.StatusBadRequest).SendString("invalid item")
	}

	images, err := readUploads(c)
	if err != nil {
		applog.Error(c, "admin.item.upload.fail", err, nil)
		return c.Status(fiber.StatusBadRequest).SendString("could not read images")
	}

	itemID, err := h.Catalog.Insert(name, price, description, images)
	if err != nil {
		applog.Error(c, "admin.item.add.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).SendString("could not save item")
	}
	applog.Audit(c, "admin.item.add", map[string]any{"item_id": itemID, "images": len(images)})
	return c.Redirect("/admin")
}

// POST /delete_item/:id
func (h *AdminHandler) DeleteItem(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("invalid id")
	}
	if err := h.Catalog.Delete(id); err != nil {
		applog.Error(c, "admin.item.delete.fail", err, map[string]any{"id": id})
		return c.Status(fiber.StatusInternalServerError).SendString("could not delete item")
	}
	applog.Audit(c, "admin.item.delete", map[string]any{"id": id})
	return c.Redirect("/admin")
}

func readUploads(c *fiber.Ctx) ([][]byte, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil // no multipart body, item goes in without images
	}
	out := [][]byte{}
	for _, fh := range form.File["item_pictures"] {
		if fh == nil || fh.Filename == "" {
			continue
		}
		data, err := readFileHeader(fh)
		if err != nil {
			return nil, err
		}
		out = append(out, data)
	}
	return out, nil
}

func readFileHeader(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
