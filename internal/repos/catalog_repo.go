package repos

import (
	"database/sql"
	"errors"

	"cherrybud/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CatalogRepo struct{ db *sqlx.DB }

func NewCatalogRepo(db *sqlx.DB) *CatalogRepo { return &CatalogRepo{db: db} }

// ListingRow is a shop item as the listing and admin pages need it: the
// image blob itself stays in the DB, only a has-image flag travels.
type ListingRow struct {
	ID          int64  `db:"id"`
	Name        string `db:"item_name"`
	HasImage    bool   `db:"has_image"`
	Price       string `db:"item_price"`
	Description string `db:"item_description"`
}

// List returns all shop items newest-first. has_image is true when a gallery
// row exists or the legacy blob is set.
func (r *CatalogRepo) List() ([]ListingRow, error) {
	out := []ListingRow{}
	err := r.db.Select(&out, `
	  SELECT s.id, s.item_name, s.item_price, s.item_description,
	         (s.item_pictures IS NOT NULL
	          OR EXISTS (SELECT 1 FROM shop_item_images g WHERE g.item_id = s.id)) AS has_image
	  FROM shop_items s
	  ORDER BY s.id DESC
	`)
	return out, err
}

func (r *CatalogRepo) Get(id int64) (domain.ShopItem, error) {
	var it domain.ShopItem
	err := r.db.Get(&it, `
	  SELECT id, item_name, item_pictures, item_price, item_description
	  FROM shop_items WHERE id = ?
	`, id)
	if err != nil {
		return domain.ShopItem{}, notFound(err)
	}
	return it, nil
}

func (r *CatalogRepo) ImageCount(id int64) (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM shop_item_images WHERE item_id = ?`, id)
	return n, err
}

// ByIDs fetches the subset of ids that still exist, keyed by id. Cart and
// checkout lines referencing deleted items simply miss the map.
func (r *CatalogRepo) ByIDs(ids []int64) (map[int64]domain.ShopItem, error) {
	out := map[int64]domain.ShopItem{}
	if len(ids) == 0 {
		return out, nil
	}
	query, args, err := sqlx.In(`
	  SELECT id, item_name, item_price, item_description
	  FROM shop_items WHERE id IN (?)
	`, ids)
	if err != nil {
		return nil, err
	}
	var rows []domain.ShopItem
	if err := r.db.Select(&rows, query, args...); err != nil {
		return nil, err
	}
	for _, it := range rows {
		out[it.ID] = it
	}
	return out, nil
}

// ImageAt returns the idx-th gallery image ordered by (position, id). When the
// item has no gallery rows, idx 0 falls back to the legacy blob.
func (r *CatalogRepo) ImageAt(itemID int64, idx int) ([]byte, error) {
	var img []byte
	err := r.db.Get(&img, `
	  SELECT img FROM shop_item_images
	  WHERE item_id = ?
	  ORDER BY position ASC, id ASC
	  LIMIT 1 OFFSET ?
	`, itemID, idx)
	if err == nil {
		return img, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if idx != 0 {
		return nil, ErrNotFound
	}
	n, err := r.ImageCount(itemID)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, ErrNotFound
	}
	return r.LegacyImage(itemID)
}

// LegacyImage returns the single-image blob from shop_items itself.
func (r *CatalogRepo) LegacyImage(itemID int64) ([]byte, error) {
	var img []byte
	err := r.db.Get(&img, `SELECT item_pictures FROM shop_items WHERE id = ?`, itemID)
	if err != nil {
		return nil, notFound(err)
	}
	if img == nil {
		return nil, ErrNotFound
	}
	return img, nil
}

// Insert stores a new item plus its gallery. The first image is also written
// to the legacy column so older rows and new rows render the same way.
func (r *CatalogRepo) Insert(name, price, description string, images [][]byte) (int64, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	var first []byte
	if len(images) > 0 {
		first = images[0]
	}
	res, err := tx.Exec(`
	  INSERT INTO shop_items (item_name, item_pictures, item_price, item_description)
	  VALUES (?, ?, ?, ?)
	`, name, first, price, description)
	if err != nil {
		return 0, err
	}
	itemID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	for idx, img := range images {
		if len(img) == 0 {
			continue
		}
		if _, err := tx.Exec(`
		  INSERT INTO shop_item_images (item_id, img, position)
		  VALUES (?, ?, ?)
		`, itemID, img, idx); err != nil {
			return 0, err
		}
	}
	return itemID, tx.Commit()
}

func (r *CatalogRepo) Delete(id int64) error {
	_, err := r.db.Exec(`DELETE FROM shop_items WHERE id = ?`, id)
	return err
}
