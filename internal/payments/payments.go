// Package payments wraps the Stripe hosted-checkout API behind small domain
// types so the checkout and webhook services can be exercised without the
// network.
package payments

// LineItem is one priced cart line headed for a checkout session. ItemID and
// Size ride along as product metadata so the webhook can rebuild the order
// without the cart.
type LineItem struct {
	Name            string
	UnitAmountCents int64
	Quantity        int64
	ItemID          int64
	Size            string
}

// CheckoutSession is the subset of a hosted session this system reads back.
type CheckoutSession struct {
	ID               string
	URL              string
	CustomerEmail    string
	AmountTotalCents int64
	LineItems        []SessionLineItem
}

// SessionLineItem is a provider-reported line with the metadata attached at
// creation time. Metadata may be absent for legacy pre-size sessions.
type SessionLineItem struct {
	Description     string
	ProductName     string
	UnitAmountCents int64
	Quantity        int64
	Metadata        map[string]string
}

// Event is a verified webhook notification.
type Event struct {
	Type      string
	SessionID string
}

const EventCheckoutCompleted = "checkout.session.completed"

type Client interface {
	// CreateCheckoutSession opens a single-payment hosted session and returns
	// it with the redirect URL populated.
	CreateCheckoutSession(clientRef string, items []LineItem) (CheckoutSession, error)
	// GetCheckoutSession re-fetches the authoritative session record with
	// line items and customer details expanded.
	GetCheckoutSession(id string) (CheckoutSession, error)
}

// Verifier authenticates a raw webhook payload against its signature header.
type Verifier interface {
	VerifyEvent(payload []byte, sigHeader string) (Event, error)
}
