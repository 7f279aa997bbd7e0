package catalog

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrDuplicateID    = errors.New("duplicate product id")
	ErrInvalidProduct = errors.New("invalid product")
	ErrNotFound       = errors.New("product not found")
)

type Product struct {
	ID          int64           `json:"id"`
	Category    string          `json:"category"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	ImagePath   string          `json:"image_path"`
}

// Source supplies the records a Catalog is loaded from.
type Source interface {
	Products(ctx context.Context) ([]Product, error)
	Ping(ctx context.Context) error
}

// LoadFrom reads every record from src and builds a Catalog.
func LoadFrom(ctx context.Context, src Source) (*Catalog, error) {
	records, err := src.Products(ctx)
	if err != nil {
		return nil, err
	}
	return Load(records)
}
