package main

import (
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"github.com/joho/godotenv"

	"cherrybud/internal/config"
	"cherrybud/internal/http/handlers"
	applog "cherrybud/internal/log"
	"cherrybud/internal/money"
	"cherrybud/internal/payments"
	"cherrybud/internal/repos"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("[env] no .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			log.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	stripeClient := payments.NewStripeClient(cfg.StripeKey, cfg.Domain, cfg.WebhookSecret)
	deps, err := handlers.NewDeps(db, stripeClient, stripeClient, cfg.AdminPassword)
	if err != nil {
		log.Fatal(err)
	}

	engine := html.New("./web/templates", ".html")
	engine.AddFunc("cents", money.FormatCents)

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			if rerr := c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
				"Message": "Something went wrong. Please try again.",
			}); rerr != nil {
				return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong. Please try again.")
			}
			return nil
		},
	})
	// Image uploads can be a few MiB each
	app.Server().MaxRequestBodySize = 16 << 20

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			p := c.Path()
			return strings.HasPrefix(p, "/item_image/") || p == "/stripe_webhook"
		},
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   false, // set true behind HTTPS
		// The payment processor posts here from outside the origin; its
		// request is authenticated by signature instead.
		Next: func(c *fiber.Ctx) bool { return c.Path() == "/stripe_webhook" },
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", map[string]any{"form": c.FormValue("csrf")})
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Security check failed. Please refresh and try again."})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok := c.Locals("csrf"); tok != nil {
			c.Locals("CSRFToken", tok.(string))
		}
		return c.Next()
	})

	// ---------- Public shop ----------
	app.Get("/", func(c *fiber.Ctx) error { return c.Redirect("/shop") })
	app.Get("/shop", deps.Shop.List)
	app.Get("/item/:id", deps.Shop.Detail)
	app.Get("/item_image/:id", deps.Shop.Image)
	app.Get("/item_image/:id/:idx", deps.Shop.ImageAt)

	// Cart
	app.Post("/add_to_cart/:id", deps.Cart.Add)
	app.Get("/cart", deps.Cart.View)
	app.Post("/update_cart", deps.Cart.Update)
	app.Post("/clear_cart", deps.Cart.Clear)

	// Checkout
	app.Post("/create_checkout_session", deps.Checkout.Create)
	app.Get("/checkout/success", deps.Checkout.Success)
	app.Post("/stripe_webhook", deps.Webhook.Handle)

	// Contact
	app.Get("/contact", deps.Contact.Form)
	app.Post("/contact", deps.Contact.Submit)

	// Auth (login throttled)
	app.Get("/login", deps.Auth.LoginForm)
	app.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).Render("login", fiber.Map{"Err": "Too many attempts. Please try again later."})
		},
	}), deps.Auth.Login)
	app.Get("/logout", deps.Auth.Logout)

	// ---------- Admin (password-gated) ----------
	gate := handlers.RequireAdmin(deps.AuthSvc)
	app.Get("/admin", gate, deps.Admin.Dashboard)
	app.Post("/submit", gate, deps.Admin.AddExpense)
	app.Post("/delete/:id", gate, deps.Admin.DeleteExpense)
	app.Post("/add_income", gate, deps.Admin.AddIncome)
	app.Post("/delete_income/:id", gate, deps.Admin.DeleteIncome)
	app.Post("/delete_contact/:id", gate, deps.Admin.DeleteContact)
	app.Get("/add_item", gate, deps.Admin.AddItemForm)
	app.Post("/add_item", gate, deps.Admin.AddItem)
	app.Post("/delete_item/:id", gate, deps.Admin.DeleteItem)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Page not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
