package catalog

import (
	"testing"

	"stockpoint/internal/domain"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// genQuantity generates whole-number quantities so that stock arithmetic
// stays exact; integer-valued float64s add and subtract without rounding.
func genQuantity() gopter.Gen {
	return gen.IntRange(0, 10000).Map(func(n int) float64 {
		return float64(n)
	})
}

func genProduct() gopter.Gen {
	return gopter.CombineGens(
		gen.RegexMatch(`[A-Za-z][A-Za-z0-9 ]{0,20}`),
		gen.RegexMatch(`[A-Za-z0-9 ]{0,40}`),
		gen.Float64Range(0, 10000),
		genQuantity(),
		genQuantity(),
	).Map(func(values []interface{}) domain.Product {
		return domain.Product{
			Name:        values[0].(string),
			Description: values[1].(string),
			Price:       values[2].(float64),
			Available:   values[3].(float64),
			Minimum:     values[4].(float64),
		}
	})
}

func TestProperty_AddThenFindPreservesAttributes(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("adding and finding a product preserves all attributes", prop.ForAll(
		func(p domain.Product) bool {
			c := New()
			c.Add(p)

			got, found := c.Find(p.Name)
			if !found {
				t.Logf("product %q not found after add", p.Name)
				return false
			}
			return got == p
		},
		genProduct(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_SellThenPurchaseRestoresStock(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("purchase undoes a successful sale", prop.ForAll(
		func(p domain.Product, qty float64) bool {
			c := New()
			c.Add(p)

			if err := c.Sell(p.Name, qty); err != nil {
				// Sale rejected: stock must be untouched.
				got, _ := c.Find(p.Name)
				return got.Available == p.Available
			}
			if err := c.Purchase(p.Name, qty); err != nil {
				return false
			}

			got, _ := c.Find(p.Name)
			return got.Available == p.Available
		},
		genProduct(),
		genQuantity(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_SellFailsExactlyWhenStockInsufficient(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("sell fails iff quantity exceeds available stock", prop.ForAll(
		func(p domain.Product, qty float64) bool {
			c := New()
			c.Add(p)

			err := c.Sell(p.Name, qty)
			if qty > p.Available {
				return err == ErrInsufficientStock
			}
			return err == nil
		},
		genProduct(),
		gen.Float64Range(0, 10000),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_BelowMinimumMatchesThresholdComparison(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("low-stock condition holds iff available <= minimum", prop.ForAll(
		func(p domain.Product) bool {
			c := New()
			c.Add(p)

			return c.IsBelowMinimum(p.Name) == (p.Available <= p.Minimum)
		},
		genProduct(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
