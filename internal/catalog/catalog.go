package catalog

import (
	"fmt"
	"strings"
)

// AllCategories is the selector value meaning "no category filter". It is
// never stored as a product category.
const AllCategories = "All"

// Catalog is an immutable, load-ordered set of products.
type Catalog struct {
	order []int64
	byID  map[int64]Product
}

// Load validates records and builds a Catalog preserving their order.
func Load(records []Product) (*Catalog, error) {
	c := &Catalog{
		order: make([]int64, 0, len(records)),
		byID:  make(map[int64]Product, len(records)),
	}

	for _, p := range records {
		if strings.TrimSpace(p.Category) == "" {
			return nil, fmt.Errorf("%w: id %d has no category", ErrInvalidProduct, p.ID)
		}
		if p.Price.IsNegative() {
			return nil, fmt.Errorf("%w: id %d has negative price %s", ErrInvalidProduct, p.ID, p.Price)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateID, p.ID)
		}
		c.byID[p.ID] = p
		c.order = append(c.order, p.ID)
	}
	return c, nil
}

// Load replaces the contents of c with records. On error c keeps its
// previous contents.
func (c *Catalog) Load(records []Product) error {
	next, err := Load(records)
	if err != nil {
		return err
	}
	c.order, c.byID = next.order, next.byID
	return nil
}

func (c *Catalog) Len() int { return len(c.order) }

func (c *Catalog) ByID(id int64) (Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// ByName returns the first product with this exact name. Names are not
// unique, so this is a convenience lookup only.
func (c *Catalog) ByName(name string) (Product, bool) {
	for _, id := range c.order {
		if p := c.byID[id]; p.Name == name {
			return p, true
		}
	}
	return Product{}, false
}

func (c *Catalog) All() []Product {
	return c.filter(func(Product) bool { return true })
}

// ByCategory matches the stored category exactly; AllCategories is not
// special here.
func (c *Catalog) ByCategory(category string) []Product {
	return c.filter(func(p Product) bool { return p.Category == category })
}

// Categories returns AllCategories followed by each distinct category in
// first-seen order.
func (c *Catalog) Categories() []string {
	out := []string{AllCategories}
	seen := make(map[string]struct{})
	for _, id := range c.order {
		cat := c.byID[id].Category
		if _, ok := seen[cat]; ok {
			continue
		}
		seen[cat] = struct{}{}
		out = append(out, cat)
	}
	return out
}

// Search narrows by category (AllCategories means every product) and then
// by a case-insensitive substring of the name.
func (c *Catalog) Search(category, query string) []Product {
	return c.search(category, query, false)
}

// SearchText is Search that also matches the description.
func (c *Catalog) SearchText(category, query string) []Product {
	return c.search(category, query, true)
}

func (c *Catalog) search(category, query string, description bool) []Product {
	q := strings.ToLower(strings.TrimSpace(query))

	return c.filter(func(p Product) bool {
		if category != AllCategories && p.Category != category {
			return false
		}
		if q == "" {
			return true
		}
		if strings.Contains(strings.ToLower(p.Name), q) {
			return true
		}
		return description && strings.Contains(strings.ToLower(p.Description), q)
	})
}

func (c *Catalog) filter(keep func(Product) bool) []Product {
	out := make([]Product, 0, len(c.order))
	for _, id := range c.order {
		if p := c.byID[id]; keep(p) {
			out = append(out, p)
		}
	}
	return out
}
