package repos_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"cherrybud/internal/repos"
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
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatal(err)
	}
	return db
}

func TestListNewestFirstWithImageFlag(t *testing.T) {
	db := memdb(t)
	r := repos.NewCatalogRepo(db)

	db.MustExec(`INSERT INTO shop_items(id,item_name,item_price,item_description) VALUES
	  (1,'First','$1.00','a'), (2,'Second','$2.00','b'), (3,'Third','$3.00','c')`)
	db.MustExec(`UPDATE shop_items SET item_pictures = ? WHERE id = 1`, []byte{0x1})
	db.MustExec(`INSERT INTO shop_item_images(item_id,img,position) VALUES (2, ?, 0)`, []byte{0x2})

	items, err := r.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 3 || items[0].ID != 3 || items[2].ID != 1 {
		t.Fatalf("not newest-first: %+v", items)
	}
	flags := map[int64]bool{}
	for _, it := range items {
		flags[it.ID] = it.HasImage
	}
	if !flags[1] || !flags[2] || flags[3] {
		t.Fatalf("bad has_image flags: %+v", flags)
	}
}

func TestGetMissingItem(t *testing.T) {
	db := memdb(t)
	r := repos.NewCatalogRepo(db)
	if _, err := r.Get(42); !errors.Is(err, repos.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestImageAtOrdersByPositionThenID(t *testing.T) {
	db := memdb(t)
	r := repos.NewCatalogRepo(db)

	db.MustExec(`INSERT INTO shop_items(id,item_name,item_price,item_description) VALUES (1,'X','$1.00','x')`)
	// Inserted out of display order on purpose.
	db.MustExec(`INSERT INTO shop_item_images(item_id,img,position) VALUES (1, ?, 1)`, []byte("second"))
	db.MustExec(`INSERT INTO shop_item_images(item_id,img,position) VALUES (1, ?, 0)`, []byte("first"))

	got, err := r.ImageAt(1, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, []byte("first")) {
		t.Fatalf("idx 0 = %q", got)
	}
	got, err = r.ImageAt(1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, []byte("second")) {
		t.Fatalf("idx 1 = %q", got)
	}
	if _, err := r.ImageAt(1, 2); !errors.Is(err, repos.ErrNotFound) {
		t.Fatalf("idx past end: want ErrNotFound, got %v", err)
	}
}

func TestImageAtLegacyFallback(t *testing.T) {
	db := memdb(t)
	r := repos.NewCatalogRepo(db)

	db.MustExec(`INSERT INTO shop_items(id,item_name,item_pictures,item_price,item_description)
	  VALUES (1,'X', ?, '$1.00','x')`, []byte("legacy"))

	// No gallery rows: idx 0 falls back to the legacy blob, idx 1 does not.
	got, err := r.ImageAt(1, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, []byte("legacy")) {
		t.Fatalf("legacy fallback = %q", got)
	}
	if _, err := r.ImageAt(1, 1); !errors.Is(err, repos.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}

	// Once a gallery row exists it wins and the fallback is off.
	db.MustExec(`INSERT INTO shop_item_images(item_id,img,position) VALUES (1, ?, 0)`, []byte("gallery"))
	got, err = r.ImageAt(1, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, []byte("gallery")) {
		t.Fatalf("gallery should win: %q", got)
	}
}

func TestInsertStoresLegacyAndGallery(t *testing.T) {
	db := memdb(t)
	r := repos.NewCatalogRepo(db)

	id, err := r.Insert("Tote", "$15.00", "A tote", [][]byte{[]byte("one"), []byte("two")})
	if err != nil {
		t.Fatal(err)
	}
	it, err := r.Get(id)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(it.Picture, []byte("one")) {
		t.Fatalf("first image should land in the legacy column: %q", it.Picture)
	}
	n, err := r.ImageCount(id)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("gallery rows = %d, want 2", n)
	}
}
