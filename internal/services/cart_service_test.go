package services_test

import (
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"cherrybud/internal/repos"
	"cherrybud/internal/services"
)

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	schema := `
	CREATE TABLE shop_items(id INTEGER PRIMARY KEY AUTOINCREMENT, item_name TEXT NOT NULL,
	  item_pictures BLOB, item_price TEXT NOT NULL, item_description TEXT NOT NULL);
	CREATE TABLE shop_item_images(id INTEGER PRIMARY KEY AUTOINCREMENT, item_id INTEGER NOT NULL,
	  img BLOB NOT NULL, position INTEGER NOT NULL DEFAULT 0);
	CREATE TABLE carts(id TEXT PRIMARY KEY, session_id TEXT UNIQUE NOT NULL, updated_at TEXT);
	CREATE TABLE cart_items(cart_id TEXT NOT NULL, item_id INTEGER NOT NULL, size TEXT NOT NULL,
	  qty INTEGER NOT NULL CHECK (qty >= 1), created_at TEXT, updated_at TEXT,
	  PRIMARY KEY (cart_id, item_id, size));
	CREATE TABLE orders(id INTEGER PRIMARY KEY AUTOINCREMENT, created_at TEXT NOT NULL,
	  stripe_session_id TEXT UNIQUE NOT NULL, customer_email TEXT,
	  total_cents INTEGER NOT NULL, status TEXT NOT NULL);
	CREATE TABLE order_items(id INTEGER PRIMARY KEY AUTOINCREMENT, order_id INTEGER NOT NULL,
	  item_id INTEGER, item_name TEXT NOT NULL, unit_amount_cents INTEGER NOT NULL,
	  quantity INTEGER NOT NULL, size TEXT);
	CREATE TABLE sessions(id TEXT PRIMARY KEY, is_admin INTEGER NOT NULL DEFAULT 0,
	  created_at TEXT DEFAULT CURRENT_TIMESTAMP, last_seen TEXT);

	INSERT INTO shop_items(id, item_name, item_price, item_description) VALUES
	  (5, 'Mug', '$10.00', 'A mug'),
	  (6, 'Shirt', '$12.50', 'A shirt');
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatal(err)
	}
	return db
}

func cartSvc(t *testing.T, db *sqlx.DB) *services.CartService {
	t.Helper()
	return services.NewCartService(repos.NewCartRepo(db), repos.NewCatalogRepo(db))
}

func TestCartAddAccumulatesPerItemSize(t *testing.T) {
	db := memdb(t)
	svc := cartSvc(t, db)
	sid := "test-session"

	if err := svc.Add(sid, 5, "Medium", 2); err != nil {
		t.Fatal(err)
	}
	if err := svc.Add(sid, 5, "Medium", 3); err != nil {
		t.Fatal(err)
	}
	if err := svc.Add(sid, 5, "Large", 1); err != nil {
		t.Fatal(err)
	}

	cv, err := svc.View(sid)
	if err != nil {
		t.Fatal(err)
	}
	if len(cv.Lines) != 2 {
		t.Fatalf("want 2 lines, got %+v", cv.Lines)
	}
	byKey := map[string]int64{}
	for _, ln := range cv.Lines {
		byKey[ln.Size] = ln.Qty
	}
	if byKey["Medium"] != 5 || byKey["Large"] != 1 {
		t.Fatalf("bad quantities: %+v", byKey)
	}
}

func TestCartAddRejectsBadSize(t *testing.T) {
	db := memdb(t)
	svc := cartSvc(t, db)
	sid := "test-session"

	if err := svc.Add(sid, 5, "XL", 1); !errors.Is(err, services.ErrBadSize) {
		t.Fatalf("want ErrBadSize, got %v", err)
	}
	if err := svc.Add(sid, 5, "", 1); !errors.Is(err, services.ErrBadSize) {
		t.Fatalf("want ErrBadSize, got %v", err)
	}

	cv, err := svc.View(sid)
	if err != nil {
		t.Fatal(err)
	}
	if len(cv.Lines) != 0 {
		t.Fatalf("rejected add mutated cart: %+v", cv.Lines)
	}
}

func TestCartAddClampsQty(t *testing.T) {
	db := memdb(t)
	svc := cartSvc(t, db)
	sid := "test-session"

	if err := svc.Add(sid, 5, "Small", 0); err != nil {
		t.Fatal(err)
	}
	cv, err := svc.View(sid)
	if err != nil {
		t.Fatal(err)
	}
	if len(cv.Lines) != 1 || cv.Lines[0].Qty != 1 {
		t.Fatalf("want qty clamped to 1, got %+v", cv.Lines)
	}
}

func TestCartViewPricesAndSubtotal(t *testing.T) {
	db := memdb(t)
	svc := cartSvc(t, db)
	sid := "test-session"

	if err := svc.Add(sid, 5, "Medium", 2); err != nil { // 2 x $10.00
		t.Fatal(err)
	}
	if err := svc.Add(sid, 6, "Small", 1); err != nil { // 1 x $12.50
		t.Fatal(err)
	}

	cv, err := svc.View(sid)
	if err != nil {
		t.Fatal(err)
	}
	if cv.SubtotalCents != 2000+1250 {
		t.Fatalf("subtotal = %d, want 3250", cv.SubtotalCents)
	}
	for _, ln := range cv.Lines {
		if ln.LineTotalCents != ln.UnitCents*ln.Qty {
			t.Fatalf("line total mismatch: %+v", ln)
		}
	}
}

func TestCartViewSkipsDeletedItems(t *testing.T) {
	db := memdb(t)
	svc := cartSvc(t, db)
	sid := "test-session"

	if err := svc.Add(sid, 5, "Medium", 2); err != nil {
		t.Fatal(err)
	}
	if err := svc.Add(sid, 6, "Small", 1); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`DELETE FROM shop_items WHERE id = 6`); err != nil {
		t.Fatal(err)
	}

	cv, err := svc.View(sid)
	if err != nil {
		t.Fatal(err)
	}
	if len(cv.Lines) != 1 || cv.Lines[0].ItemID != 5 {
		t.Fatalf("deleted item not skipped: %+v", cv.Lines)
	}
	if cv.SubtotalCents != 2000 {
		t.Fatalf("subtotal = %d, want 2000", cv.SubtotalCents)
	}
}

func TestCartViewFailsOnMalformedPrice(t *testing.T) {
	db := memdb(t)
	svc := cartSvc(t, db)
	sid := "test-session"

	if _, err := db.Exec(`UPDATE shop_items SET item_price = 'abc' WHERE id = 5`); err != nil {
		t.Fatal(err)
	}
	if err := svc.Add(sid, 5, "Medium", 1); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.View(sid); err == nil {
		t.Fatal("malformed price text should surface as an error")
	}
}

func TestCartUpdateSetsAndRemoves(t *testing.T) {
	db := memdb(t)
	svc := cartSvc(t, db)
	sid := "test-session"

	// End-to-end scenario: Mug, Medium, qty 2 -> subtotal 2000; update to 0 -> empty.
	if err := svc.Add(sid, 5, "Medium", 2); err != nil {
		t.Fatal(err)
	}
	cv, err := svc.View(sid)
	if err != nil {
		t.Fatal(err)
	}
	if cv.SubtotalCents != 2000 {
		t.Fatalf("subtotal = %d, want 2000", cv.SubtotalCents)
	}

	if err := svc.Update(sid, []services.UpdateLine{{ItemID: 5, Size: "Medium", Qty: 0}}); err != nil {
		t.Fatal(err)
	}
	cv, err = svc.View(sid)
	if err != nil {
		t.Fatal(err)
	}
	if len(cv.Lines) != 0 || cv.SubtotalCents != 0 {
		t.Fatalf("want empty cart after zero update, got %+v", cv)
	}

	// Overwrite, not accumulate.
	if err := svc.Add(sid, 5, "Medium", 2); err != nil {
		t.Fatal(err)
	}
	if err := svc.Update(sid, []services.UpdateLine{{ItemID: 5, Size: "Medium", Qty: 7}}); err != nil {
		t.Fatal(err)
	}
	cv, err = svc.View(sid)
	if err != nil {
		t.Fatal(err)
	}
	if len(cv.Lines) != 1 || cv.Lines[0].Qty != 7 {
		t.Fatalf("want qty overwritten to 7, got %+v", cv.Lines)
	}
}

func TestCartClear(t *testing.T) {
	db := memdb(t)
	svc := cartSvc(t, db)
	sid := "test-session"

	if err := svc.Add(sid, 5, "Medium", 2); err != nil {
		t.Fatal(err)
	}
	if err := svc.Clear(sid); err != nil {
		t.Fatal(err)
	}
	cv, err := svc.View(sid)
	if err != nil {
		t.Fatal(err)
	}
	if len(cv.Lines) != 0 {
		t.Fatalf("cart not cleared: %+v", cv.Lines)
	}
}
