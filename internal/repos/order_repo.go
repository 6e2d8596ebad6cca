package repos

import (
	"time"

	"cherrybud/internal/domain"

	"github.com/jmoiron/sqlx"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

// CreateIfAbsent inserts an order keyed by the Stripe session id and returns
// the row id. A replayed webhook hits the UNIQUE constraint, the insert is
// ignored, and the existing id comes back instead.
func (r *OrderRepo) CreateIfAbsent(stripeSessionID, customerEmail string, totalCents int64, status string) (int64, error) {
	_, err := r.db.Exec(`
	  INSERT OR IGNORE INTO orders
	    (created_at, stripe_session_id, customer_email, total_cents, status)
	  VALUES (?, ?, ?, ?, ?)
	`, time.Now().UTC().Format(time.RFC3339), stripeSessionID, customerEmail, totalCents, status)
	if err != nil {
		return 0, err
	}
	var id int64
	if err := r.db.Get(&id, `SELECT id FROM orders WHERE stripe_session_id = ?`, stripeSessionID); err != nil {
		return 0, notFound(err)
	}
	return id, nil
}

// HasItems reports whether line items were already materialized for an order.
func (r *OrderRepo) HasItems(orderID int64) (bool, error) {
	var n int
	if err := r.db.Get(&n, `SELECT COUNT(1) FROM order_items WHERE order_id = ?`, orderID); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *OrderRepo) InsertItem(orderID int64, itemID *int64, itemName string, unitCents, qty int64, size string) error {
	_, err := r.db.Exec(`
	  INSERT INTO order_items (order_id, item_id, item_name, unit_amount_cents, quantity, size)
	  VALUES (?, ?, ?, ?, ?, ?)
	`, orderID, itemID, itemName, unitCents, qty, size)
	return err
}

func (r *OrderRepo) ListLatest() ([]domain.Order, error) {
	out := []domain.Order{}
	err := r.db.Select(&out, `
	  SELECT id, created_at, stripe_session_id, COALESCE(customer_email,'') AS customer_email,
	         total_cents, status
	  FROM orders
	  ORDER BY id DESC
	`)
	return out, err
}

// ItemsByOrder returns every order's line items grouped by order id, for the
// admin dashboard.
func (r *OrderRepo) ItemsByOrder() (map[int64][]domain.OrderItem, error) {
	var rows []domain.OrderItem
	err := r.db.Select(&rows, `
	  SELECT id, order_id, item_id, item_name, unit_amount_cents, quantity,
	         COALESCE(size,'') AS size
	  FROM order_items
	  ORDER BY order_id DESC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	out := map[int64][]domain.OrderItem{}
	for _, it := range rows {
		out[it.OrderID] = append(out[it.OrderID], it)
	}
	return out, nil
}

func (r *OrderRepo) Items(orderID int64) ([]domain.OrderItem, error) {
	out := []domain.OrderItem{}
	err := r.db.Select(&out, `
	  SELECT id, order_id, item_id, item_name, unit_amount_cents, quantity,
	         COALESCE(size,'') AS size
	  FROM order_items
	  WHERE order_id = ?
	  ORDER BY id ASC
	`, orderID)
	return out, err
}
