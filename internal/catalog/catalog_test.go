package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func twoProducts() []Product {
	return []Product{
		{ID: 1, Category: "Consoles", Name: "PS5", Price: decimal.RequireFromString("469.99")},
		{ID: 2, Category: "Laptops", Name: "Dell XPS", Price: decimal.RequireFromString("999.99")},
	}
}

func TestLoad_DuplicateID(t *testing.T) {
	records := append(twoProducts(), Product{ID: 1, Category: "Laptops", Name: "Other", Price: decimal.Zero})

	_, err := Load(records)
	require.ErrorIs(t, err, ErrDuplicateID)
}

func TestLoad_InvalidRecords(t *testing.T) {
	_, err := Load([]Product{{ID: 1, Category: " ", Name: "x", Price: decimal.Zero}})
	require.ErrorIs(t, err, ErrInvalidProduct)

	_, err = Load([]Product{{ID: 1, Category: "A", Name: "x", Price: decimal.RequireFromString("-1")}})
	require.ErrorIs(t, err, ErrInvalidProduct)
}

func TestCatalogLoad_ReplacesOrKeepsContents(t *testing.T) {
	c, err := Load(twoProducts())
	require.NoError(t, err)

	err = c.Load([]Product{
		{ID: 7, Category: "Phones", Name: "Pixel", Price: decimal.RequireFromString("599.00")},
		{ID: 7, Category: "Phones", Name: "Pixel again", Price: decimal.Zero},
	})
	require.ErrorIs(t, err, ErrDuplicateID)
	require.Equal(t, 2, c.Len())
	_, ok := c.ByID(7)
	require.False(t, ok)
	p, ok := c.ByID(2)
	require.True(t, ok)
	require.Equal(t, "Dell XPS", p.Name)

	require.NoError(t, c.Load([]Product{{ID: 7, Category: "Phones", Name: "Pixel", Price: decimal.RequireFromString("599.00")}}))
	require.Equal(t, 1, c.Len())
	_, ok = c.ByID(1)
	require.False(t, ok)
	require.Equal(t, []string{AllCategories, "Phones"}, c.Categories())
}

func TestByID(t *testing.T) {
	c, err := Load(twoProducts())
	require.NoError(t, err)

	p, ok := c.ByID(2)
	require.True(t, ok)
	require.Equal(t, "Dell XPS", p.Name)

	_, ok = c.ByID(99)
	require.False(t, ok)
}

func TestByName_FirstMatchInLoadOrder(t *testing.T) {
	records := append(twoProducts(), Product{ID: 3, Category: "Consoles", Name: "PS5", Price: decimal.NewFromInt(1)})
	c, err := Load(records)
	require.NoError(t, err)

	p, ok := c.ByName("PS5")
	require.True(t, ok)
	require.Equal(t, int64(1), p.ID)

	_, ok = c.ByName("ps5")
	require.False(t, ok)
}

func TestByCategory(t *testing.T) {
	c, err := Load(SeedProducts())
	require.NoError(t, err)

	got := c.ByCategory("Laptops")
	require.Len(t, got, 2)
	require.Equal(t, int64(3), got[0].ID)
	require.Equal(t, int64(4), got[1].ID)

	require.Empty(t, c.ByCategory("Toys"))
	require.Empty(t, c.ByCategory(AllCategories))
}

func TestAll_EveryRecordOnceInLoadOrder(t *testing.T) {
	records := []Product{
		{ID: 9, Category: "B", Name: "nine", Price: decimal.Zero},
		{ID: 3, Category: "A", Name: "three", Price: decimal.Zero},
		{ID: 5, Category: "B", Name: "five", Price: decimal.Zero},
	}
	c, err := Load(records)
	require.NoError(t, err)

	got := c.All()
	require.Len(t, got, 3)
	for i := range records {
		require.Equal(t, records[i].ID, got[i].ID)
	}
	require.Equal(t, got, c.Search(AllCategories, ""))
}

func TestSearch(t *testing.T) {
	c, err := Load(SeedProducts())
	require.NoError(t, err)

	require.Equal(t, c.ByCategory("Consoles"), c.Search("Consoles", ""))
	require.Equal(t, c.ByCategory("Consoles"), c.Search("Consoles", "   "))

	got := c.Search(AllCategories, "DELL")
	require.Len(t, got, 1)
	require.Equal(t, "Dell XPS", got[0].Name)

	require.Empty(t, c.Search("Consoles", "dell"))

	// "powerful" only appears in descriptions
	require.Empty(t, c.Search(AllCategories, "powerful"))
	got = c.SearchText(AllCategories, "powerful")
	require.Len(t, got, 2)
	require.Equal(t, int64(2), got[0].ID)
	require.Equal(t, int64(3), got[1].ID)
}

func TestCategories(t *testing.T) {
	c, err := Load(SeedProducts())
	require.NoError(t, err)

	require.Equal(t, []string{AllCategories, "Consoles", "Laptops", "Appliances"}, c.Categories())
}

func TestSeedSource(t *testing.T) {
	src := NewSeedSource()
	c, err := LoadFrom(context.Background(), src)
	require.NoError(t, err)
	require.Equal(t, 6, c.Len())

	// callers get a copy
	records, err := src.Products(context.Background())
	require.NoError(t, err)
	records[0].Name = "changed"
	again, _ := src.Products(context.Background())
	require.Equal(t, "PlayStation 5 Slim", again[0].Name)
}

type errSource struct{ err error }

func (e errSource) Products(context.Context) ([]Product, error) { return nil, e.err }
func (e errSource) Ping(context.Context) error                   { return e.err }

func TestLoadFrom_SourceError(t *testing.T) {
	boom := errors.New("boom")
	_, err := LoadFrom(context.Background(), errSource{boom})
	require.ErrorIs(t, err, boom)
}
