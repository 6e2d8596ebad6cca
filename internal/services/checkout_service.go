package services

import (
	"errors"

	"cherrybud/internal/money"
	"cherrybud/internal/payments"
	"cherrybud/internal/repos"
)

// ErrEmptyCart means no cart line survived pricing; the caller sends the
// user back to the cart view instead of opening a payment session.
var ErrEmptyCart = errors.New("no valid cart lines")

type CheckoutService struct {
	Carts    *repos.CartRepo
	Catalog  *repos.CatalogRepo
	Payments payments.Client
}

func NewCheckoutService(carts *repos.CartRepo, catalog *repos.CatalogRepo, pc payments.Client) *CheckoutService {
	return &CheckoutService{Carts: carts, Catalog: catalog, Payments: pc}
}

// CreateSession prices the cart against the live catalog and opens a hosted
// checkout session. Prices are resolved here, not at add-to-cart time, so a
// catalog price change applies at checkout. Returns the hosted page URL.
func (s *CheckoutService) CreateSession(sessionID string) (string, error) {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return "", err
	}
	lines, err := s.Carts.Lines(cartID)
	if err != nil {
		return "", err
	}
	if len(lines) == 0 {
		return "", ErrEmptyCart
	}

	items, err := s.Catalog.ByIDs(itemIDs(lines))
	if err != nil {
		return "", err
	}

	lineItems := []payments.LineItem{}
	for _, ln := range lines {
		it, ok := items[ln.ItemID]
		if !ok {
			continue // item deleted since it was added
		}
		unit, err := money.ParseCents(it.Price)
		if err != nil {
			return "", err
		}
		if unit <= 0 || ln.Qty <= 0 {
			continue
		}
		lineItems = append(lineItems, payments.LineItem{
			Name:            it.Name,
			UnitAmountCents: unit,
			Quantity:        ln.Qty,
			ItemID:          ln.ItemID,
			Size:            ln.Size,
		})
	}
	if len(lineItems) == 0 {
		return "", ErrEmptyCart
	}

	sess, err := s.Payments.CreateCheckoutSession(sessionID, lineItems)
	if err != nil {
		return "", err
	}
	return sess.URL, nil
}
