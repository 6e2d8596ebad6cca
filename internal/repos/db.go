package repos

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned by repos when a row id does not exist.
var ErrNotFound = errors.New("not found")

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Ledger
CREATE TABLE IF NOT EXISTS expenses(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  date DATE NOT NULL,
  cost REAL NOT NULL,
  store_name TEXT NOT NULL,
  item_description TEXT,
  purchased_by TEXT
);

CREATE TABLE IF NOT EXISTS contacts(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  email TEXT NOT NULL,
  message TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS gross_income(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  date DATE NOT NULL,
  source TEXT NOT NULL,
  amount REAL NOT NULL,
  notes TEXT
);

-- Shop catalog. item_pictures is the legacy single-image column kept for
-- rows that predate the gallery table.
CREATE TABLE IF NOT EXISTS shop_items(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  item_name TEXT NOT NULL,
  item_pictures BLOB,
  item_price TEXT NOT NULL,
  item_description TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS shop_item_images(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  item_id INTEGER NOT NULL REFERENCES shop_items(id) ON DELETE CASCADE,
  img BLOB NOT NULL,
  position INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_shop_item_images_item ON shop_item_images(item_id);

-- Orders. stripe_session_id UNIQUE is what makes webhook replays no-ops.
CREATE TABLE IF NOT EXISTS orders(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  created_at TEXT NOT NULL,
  stripe_session_id TEXT UNIQUE NOT NULL,
  customer_email TEXT,
  total_cents INTEGER NOT NULL,
  status TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS order_items(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  order_id INTEGER NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
  item_id INTEGER,
  item_name TEXT NOT NULL,
  unit_amount_cents INTEGER NOT NULL,
  quantity INTEGER NOT NULL,
  size TEXT
);
CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id);

-- Session-scoped carts, keyed by the sid cookie. One row per (item, size).
CREATE TABLE IF NOT EXISTS carts(
  id TEXT PRIMARY KEY,
  session_id TEXT UNIQUE NOT NULL,
  updated_at TEXT
);

CREATE TABLE IF NOT EXISTS cart_items(
  cart_id TEXT NOT NULL REFERENCES carts(id) ON DELETE CASCADE,
  item_id INTEGER NOT NULL,
  size TEXT NOT NULL,
  qty INTEGER NOT NULL CHECK (qty >= 1),
  created_at TEXT,
  updated_at TEXT,
  PRIMARY KEY (cart_id, item_id, size)
);

-- Sessions back the sid cookie; is_admin is the password gate flag.
CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,
  is_admin INTEGER NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen TEXT
);
`
	_, err := db.Exec(schema)
	return err
}
