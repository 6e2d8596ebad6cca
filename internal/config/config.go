package config

import (
	"fmt"
	"log"
	"os"
)

type Config struct {
	Port          string
	DBDSN         string
	LogFile       string
	Domain        string // public base URL for success/cancel redirects
	StripeKey     string
	WebhookSecret string
	AdminPassword string
}

func Load() (Config, error) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "cherrybud.db" // sqlite file in project root
	}
	domain := os.Getenv("APP_DOMAIN")
	if domain == "" {
		domain = "http://127.0.0.1:" + port
	}

	cfg := Config{
		Port:          port,
		DBDSN:         dsn,
		LogFile:       os.Getenv("LOG_FILE"),
		Domain:        domain,
		StripeKey:     os.Getenv("STRIPE_SECRET_KEY"),
		WebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}

	if cfg.StripeKey == "" {
		return Config{}, fmt.Errorf("STRIPE_SECRET_KEY is required")
	}
	if cfg.WebhookSecret == "" {
		return Config{}, fmt.Errorf("STRIPE_WEBHOOK_SECRET is required")
	}
	if cfg.AdminPassword == "" {
		return Config{}, fmt.Errorf("ADMIN_PASSWORD is required")
	}

	log.Printf("[config] PORT=%s DB_DSN=%s APP_DOMAIN=%s", cfg.Port, cfg.DBDSN, cfg.Domain)
	return cfg, nil
}
