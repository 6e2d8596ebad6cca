package services

import (
	"strconv"

	"cherrybud/internal/payments"
	"cherrybud/internal/repos"
)

// ReconcileService turns a payment-completion notification into order rows.
// Every step is idempotent: the processor may deliver the same event more
// than once.
type ReconcileService struct {
	Orders   *repos.OrderRepo
	Payments payments.Client
}

func NewReconcileService(orders *repos.OrderRepo, pc payments.Client) *ReconcileService {
	return &ReconcileService{Orders: orders, Payments: pc}
}

// HandleCompletedSession re-fetches the authoritative session record and
// materializes the order. The webhook payload itself is minimal; line items
// and customer details come from the fetched session.
func (s *ReconcileService) HandleCompletedSession(sessionID string) (int64, error) {
	sess, err := s.Payments.GetCheckoutSession(sessionID)
	if err != nil {
		return 0, err
	}

	orderID, err := s.Orders.CreateIfAbsent(sess.ID, sess.CustomerEmail, sess.AmountTotalCents, "paid")
	if err != nil {
		return 0, err
	}

	// Line items insert only once, even across replayed deliveries.
	hasItems, err := s.Orders.HasItems(orderID)
	if err != nil {
		return 0, err
	}
	if hasItems {
		return orderID, nil
	}

	for _, li := range sess.LineItems {
		var itemID *int64
		size := ""
		if li.Metadata != nil {
			if v, err := strconv.ParseInt(li.Metadata["item_id"], 10, 64); err == nil {
				itemID = &v
			}
			size = li.Metadata["size"]
		}
		name := li.Description
		if name == "" {
			name = li.ProductName
		}
		if name == "" {
			name = "Item"
		}
		if err := s.Orders.InsertItem(orderID, itemID, name, li.UnitAmountCents, li.Quantity, size); err != nil {
			return 0, err
		}
	}
	return orderID, nil
}
