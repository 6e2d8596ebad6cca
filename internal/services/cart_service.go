package services

import (
	"errors"

	"cherrybud/internal/domain"
	"cherrybud/internal/money"
	"cherrybud/internal/repos"
)

// ErrBadSize rejects add-to-cart requests with a size outside the three
// offered values; the caller sends the user back to the item page.
var ErrBadSize = errors.New("size must be Small, Medium, or Large")

type CartService struct {
	Carts   *repos.CartRepo
	Catalog *repos.CatalogRepo
}

func NewCartService(carts *repos.CartRepo, catalog *repos.CatalogRepo) *CartService {
	return &CartService{Carts: carts, Catalog: catalog}
}

func (s *CartService) Add(sessionID string, itemID int64, size string, qty int64) error {
	if !domain.ValidSize(size) {
		return ErrBadSize
	}
	if qty < 1 {
		qty = 1
	}
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return err
	}
	return s.Carts.AddItem(cartID, itemID, size, qty)
}

// UpdateLine is one bulk cart-update entry, already parsed into its
// structured (item, size) key by the handler.
type UpdateLine struct {
	ItemID int64
	Size   string
	Qty    int64 // 0 removes the line
}

func (s *CartService) Update(sessionID string, lines []UpdateLine) error {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return err
	}
	for _, ln := range lines {
		if err := s.Carts.SetQty(cartID, ln.ItemID, ln.Size, ln.Qty); err != nil {
			return err
		}
	}
	return nil
}

func (s *CartService) Clear(sessionID string) error {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return err
	}
	return s.Carts.Clear(cartID)
}

// ViewLine is one cart line priced against the live catalog.
type ViewLine struct {
	ItemID         int64
	Name           string
	Size           string
	PriceText      string
	UnitCents      int64
	Qty            int64
	LineTotalCents int64
}

type CartView struct {
	Lines         []ViewLine
	SubtotalCents int64
}

// View joins every stored line against the catalog. Lines whose item has been
// deleted are skipped; malformed price text on a surviving item is an error.
func (s *CartService) View(sessionID string) (CartView, error) {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return CartView{}, err
	}
	lines, err := s.Carts.Lines(cartID)
	if err != nil {
		return CartView{}, err
	}
	if len(lines) == 0 {
		return CartView{Lines: []ViewLine{}}, nil
	}

	items, err := s.Catalog.ByIDs(itemIDs(lines))
	if err != nil {
		return CartView{}, err
	}

	out := CartView{Lines: []ViewLine{}}
	for _, ln := range lines {
		it, ok := items[ln.ItemID]
		if !ok {
			continue
		}
		unit, err := money.ParseCents(it.Price)
		if err != nil {
			return CartView{}, err
		}
		lineTotal := unit * ln.Qty
		out.SubtotalCents += lineTotal
		out.Lines = append(out.Lines, ViewLine{
			ItemID:         ln.ItemID,
			Name:           it.Name,
			Size:           ln.Size,
			PriceText:      it.Price,
			UnitCents:      unit,
			Qty:            ln.Qty,
			LineTotalCents: lineTotal,
		})
	}
	return out, nil
}

func itemIDs(lines []repos.CartLine) []int64 {
	seen := map[int64]bool{}
	out := []int64{}
	for _, ln := range lines {
		if !seen[ln.ItemID] {
			seen[ln.ItemID] = true
			out = append(out, ln.ItemID)
		}
	}
	return out
}
