package domain

// Size is the garment size attached to every cart and order line.
type Size string

const (
	SizeSmall  Size = "Small"
	SizeMedium Size = "Medium"
	SizeLarge  Size = "Large"
)

// ValidSize reports whether s is one of the three offered sizes.
func ValidSize(s string) bool {
	switch Size(s) {
	case SizeSmall, SizeMedium, SizeLarge:
		return true
	}
	return false
}

type ShopItem struct {
	ID          int64  `db:"id"`
	Name        string `db:"item_name"`
	Picture     []byte `db:"item_pictures"` // legacy single-image column
	Price       string `db:"item_price"`    // price text, e.g. "$12.50"
	Description string `db:"item_description"`
}

type ShopItemImage struct {
	ID       int64  `db:"id"`
	ItemID   int64  `db:"item_id"`
	Img      []byte `db:"img"`
	Position int    `db:"position"`
}

type Order struct {
	ID              int64  `db:"id"`
	CreatedAt       string `db:"created_at"`
	StripeSessionID string `db:"stripe_session_id"`
	CustomerEmail   string `db:"customer_email"`
	TotalCents      int64  `db:"total_cents"`
	Status          string `db:"status"`
}

type OrderItem struct {
	ID              int64  `db:"id"`
	OrderID         int64  `db:"order_id"`
	ItemID          *int64 `db:"item_id"` // nil when checkout metadata was absent
	ItemName        string `db:"item_name"`
	UnitAmountCents int64  `db:"unit_amount_cents"`
	Quantity        int64  `db:"quantity"`
	Size            string `db:"size"` // empty for legacy pre-size orders
}

type Expense struct {
	ID          int64   `db:"id"`
	Date        string  `db:"date"`
	Cost        float64 `db:"cost"`
	StoreName   string  `db:"store_name"`
	Description string  `db:"item_description"`
	PurchasedBy string  `db:"purchased_by"`
}

type Income struct {
	ID     int64   `db:"id"`
	Date   string  `db:"date"`
	Source string  `db:"source"`
	Amount float64 `db:"amount"`
	Notes  string  `db:"notes"`
}

type Contact struct {
	ID      int64  `db:"id"`
	Name    string `db:"name"`
	Email   string `db:"email"`
	Message string `db:"message"`
}
