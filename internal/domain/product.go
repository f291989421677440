package domain

// Product represents a product tracked by the catalog.
//
// Quantities are decimals so that weight-based goods (e.g. 1.5 kg of rice)
// can be tracked alongside unit-based ones. Available is allowed to fall
// below Minimum; that is a reportable low-stock condition, not an error.
type Product struct {
	Name        string
	Description string
	Price       float64
	Available   float64
	Minimum     float64
}

// BelowMinimum reports whether the product is at or below its reorder
// threshold.
func (p Product) BelowMinimum() bool {
	return p.Available <= p.Minimum
}
