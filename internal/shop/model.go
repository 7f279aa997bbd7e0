package shop

import (
	"github.com/shopspring/decimal"

	"Storefront/internal/cart"
)

// Model is the data handed to the renderer. Exactly one field is set,
// matching the active state.
type Model struct {
	Browse   *BrowseModel   `json:"browse,omitempty"`
	Cart     *CartModel     `json:"cart,omitempty"`
	Checkout *CheckoutModel `json:"checkout,omitempty"`
	Receipt  *ReceiptModel  `json:"receipt,omitempty"`
}

type BrowseRow struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Price     string `json:"price"`
}

type ProductDetail struct {
	ProductID   int64  `json:"product_id"`
	Name        string `json:"name"`
	Price       string `json:"price"`
	Description string `json:"description"`
	ImagePath   string `json:"image_path"`
}

type BrowseModel struct {
	Categories []string       `json:"categories"`
	Category   string         `json:"category"`
	Query      string         `json:"query"`
	FullText   bool           `json:"full_text"`
	Rows       []BrowseRow    `json:"rows"`
	Selected   *ProductDetail `json:"selected,omitempty"`
	CartUnits  int            `json:"cart_units"`
	Notice     string         `json:"notice,omitempty"`
}

type CartRow struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

type CartModel struct {
	Rows  []CartRow       `json:"rows"`
	Total decimal.Decimal `json:"total"`
	Units int             `json:"units"`
}

type CheckoutModel struct {
	Rate     decimal.Decimal `json:"tax_rate"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
	Missing  []string        `json:"missing,omitempty"`
}

type ReceiptModel struct {
	Receipt cart.Receipt `json:"receipt"`
	Text    string       `json:"text"`
}
