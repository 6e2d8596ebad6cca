package repos

import (
	"time"

	"github.com/jmoiron/sqlx"
)

type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

// CartLine is one stored (item, size) row; prices are resolved live at view
// and checkout time, never cached here.
type CartLine struct {
	ItemID int64  `db:"item_id"`
	Size   string `db:"size"`
	Qty    int64  `db:"qty"`
}

func (r *CartRepo) EnsureCart(sessionID string) (string, error) {
	var cartID string
	if err := r.db.Get(&cartID, `SELECT id FROM carts WHERE session_id = ?`, sessionID); err == nil {
		return cartID, nil
	}
	_, err := r.db.Exec(`INSERT INTO carts(id,session_id,updated_at) VALUES(?,?,?)`,
		sessionID, sessionID, time.Now().Format(time.RFC3339))
	if err != nil {
		return "", err
	}
	return sessionID, nil
}

// AddItem accumulates qty onto an existing (item, size) row or creates it.
func (r *CartRepo) AddItem(cartID string, itemID int64, size string, qty int64) error {
	_, err := r.db.Exec(`
	  INSERT INTO cart_items(cart_id,item_id,size,qty,created_at)
	  VALUES(?,?,?,?,CURRENT_TIMESTAMP)
	  ON CONFLICT(cart_id,item_id,size) DO UPDATE
	  SET qty = cart_items.qty + excluded.qty, updated_at = CURRENT_TIMESTAMP
	`, cartID, itemID, size, qty)
	return err
}

// SetQty overwrites a line's quantity; zero removes the line.
func (r *CartRepo) SetQty(cartID string, itemID int64, size string, qty int64) error {
	if qty == 0 {
		_, err := r.db.Exec(`
		  DELETE FROM cart_items WHERE cart_id = ? AND item_id = ? AND size = ?
		`, cartID, itemID, size)
		return err
	}
	_, err := r.db.Exec(`
	  INSERT INTO cart_items(cart_id,item_id,size,qty,created_at)
	  VALUES(?,?,?,?,CURRENT_TIMESTAMP)
	  ON CONFLICT(cart_id,item_id,size) DO UPDATE
	  SET qty = excluded.qty, updated_at = CURRENT_TIMESTAMP
	`, cartID, itemID, size, qty)
	return err
}

func (r *CartRepo) Lines(cartID string) ([]CartLine, error) {
	out := []CartLine{}
	err := r.db.Select(&out, `
	  SELECT item_id, size, qty FROM cart_items
	  WHERE cart_id = ?
	  ORDER BY item_id, size
	`, cartID)
	return out, err
}

func (r *CartRepo) Clear(cartID string) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE cart_id = ?`, cartID)
	return err
}
