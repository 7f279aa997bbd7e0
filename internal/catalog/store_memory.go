package catalog

import (
	"context"

	"github.com/shopspring/decimal"
)

// SeedSource serves the fixed demo catalog without a database.
type SeedSource struct {
	records []Product
}

func NewSeedSource() *SeedSource {
	return &SeedSource{records: SeedProducts()}
}

func (s *SeedSource) Ping(ctx context.Context) error { return nil }

func (s *SeedSource) Products(ctx context.Context) ([]Product, error) {
	out := make([]Product, len(s.records))
	copy(out, s.records)
	return out, nil
}

// SeedProducts is the demo inventory the catalog database is initialised with.
func SeedProducts() []Product {
	return []Product{
		{ID: 1, Category: "Consoles", Name: "PlayStation 5 Slim", Price: decimal.RequireFromString("499.99"),
			Description: "Next-gen gaming console", ImagePath: "images/ps5.jpg"},
		{ID: 2, Category: "Consoles", Name: "Xbox Series XS", Price: decimal.RequireFromString("499.99"),
			Description: "Powerful gaming and entertainment system", ImagePath: "images/xbox.jpg"},
		{ID: 3, Category: "Laptops", Name: "MacBook Pro 11", Price: decimal.RequireFromString("2499.99"),
			Description: "Sleek and powerful laptop", ImagePath: "images/macbook.jpg"},
		{ID: 4, Category: "Laptops", Name: "Dell XPS", Price: decimal.RequireFromString("999.99"),
			Description: "High-performance laptop for professionals", ImagePath: "images/dell_xps.jpg"},
		{ID: 5, Category: "Appliances", Name: "Samsung Refrigerator", Price: decimal.RequireFromString("1399.99"),
			Description: "Energy-efficient refrigerator", ImagePath: "images/samsung_refrigerator.jpg"},
		{ID: 6, Category: "Appliances", Name: "LG Bundle Washer & Dryer", Price: decimal.RequireFromString("499.99"),
			Description: "Front-loading washing machine and efficient drying machine", ImagePath: "images/lg_washer_dryer.jpg"},
	}
}
