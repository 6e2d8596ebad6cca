package handlers

import (
	applog "cherrybud/internal/log"
	"cherrybud/internal/payments"
	"cherrybud/internal/services"

	"github.com/gofiber/fiber/v2"
)

// WebhookHandler receives payment-completion notifications. Signature
// failure is the only 400; every recognized or ignorable event acks 200 so
// the processor stops retrying.
type WebhookHandler struct {
	Verify    payments.Verifier
	Reconcile *services.ReconcileService
}

// POST /stripe_webhook
func (h *WebhookHandler) Handle(c *fiber.Ctx) error {
	ev, err := h.Verify.VerifyEvent(c.Body(), c.Get("Stripe-Signature"))
	if err != nil {
		applog.Security(c, "webhook.verify.fail", map[string]any{"error": err.Error()})
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}

	if ev.Type != payments.EventCheckoutCompleted {
		return c.SendStatus(fiber.StatusOK)
	}

	orderID, err := h.Reconcile.HandleCompletedSession(ev.SessionID)
	if err != nil {
		// Let the processor retry; idempotent inserts absorb the replay.
		applog.Error(c, "webhook.reconcile.fail", err, map[string]any{"session_id": ev.SessionID})
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	applog.Audit(c, "webhook.order.recorded", map[string]any{"session_id": ev.SessionID, "order_id": orderID})
	return c.SendStatus(fiber.StatusOK)
}
