package catalog

import (
	"errors"

	"stockpoint/internal/domain"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Catalog owns the in-memory inventory, keyed by product name.
//
// Catalog state is not durable: a process restart loses all stock levels.
// The type is not safe for concurrent use; the interactive loop is the
// single writer.
type Catalog struct {
	products map[string]*domain.Product
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{
		products: make(map[string]*domain.Product),
	}
}

// Add inserts a product, overwriting any existing product with the same
// name (last-write-wins, no error on collision). Numeric fields are stored
// as given; range validation is a caller concern.
func (c *Catalog) Add(p domain.Product) {
	c.products[p.Name] = &p
}

// Find returns the product with the given name. The lookup is exact and
// case-sensitive; absence is not an error.
func (c *Catalog) Find(name string) (domain.Product, bool) {
	p, ok := c.products[name]
	if !ok {
		return domain.Product{}, false
	}
	return *p, true
}

// Purchase restocks a product, increasing its available quantity. There is
// no upper bound on stock.
func (c *Catalog) Purchase(name string, quantity float64) error {
	p, ok := c.products[name]
	if !ok {
		return ErrProductNotFound
	}
	p.Available += quantity
	return nil
}

// Sell decreases a product's available quantity. It fails with
// ErrInsufficientStock if the sale would drive stock negative; the product
// is left unchanged on failure.
func (c *Catalog) Sell(name string, quantity float64) error {
	p, ok := c.products[name]
	if !ok {
		return ErrProductNotFound
	}
	if p.Available < quantity {
		return ErrInsufficientStock
	}
	p.Available -= quantity
	return nil
}

// IsBelowMinimum reports whether the named product is at or below its
// reorder threshold. Unlike Find, absence is not distinguished: a missing
// product is simply not low on stock.
func (c *Catalog) IsBelowMinimum(name string) bool {
	p, ok := c.products[name]
	if !ok {
		return false
	}
	return p.BelowMinimum()
}

// FirstBelowMinimum sweeps the catalog and returns the name of one product
// at or below its threshold, if any. Iteration order is unspecified; the
// sweep stops at the first match since only one warning is shown per
// mutation.
func (c *Catalog) FirstBelowMinimum() (string, bool) {
	for name, p := range c.products {
		if p.BelowMinimum() {
			return name, true
		}
	}
	return "", false
}
