// Package pricing computes bulk-quantity discounts and cart
// totals. Monetary values are whole currency units carried as
// int64, so all arithmetic is exact integer math.
//
// Bulk discounts and the loyalty discount are separate mechanisms:
// bulk applies to a single line on the product page, loyalty
// applies to the cart subtotal at checkout. They are never
// compounded in one step.
package pricing

// BulkTier maps an inclusive quantity range to a discount
// percentage. Max == NoUpperBound marks the open-ended top tier.
type BulkTier struct {
	Min             int
	Max             int
	DiscountPercent int64
}

// NoUpperBound is the Max sentinel for the unbounded top tier.
const NoUpperBound = 0

// DefaultBulkTiers is the store-wide quantity discount ladder.
var DefaultBulkTiers = []BulkTier{
	{Min: 1, Max: 9, DiscountPercent: 0},
	{Min: 10, Max: 49, DiscountPercent: 5},
	{Min: 50, Max: NoUpperBound, DiscountPercent: 10},
}

// Quote is the bulk-priced view of a single line.
type Quote struct {
	UnitPrice           int64 // list unit price
	DiscountPercent     int64 // the matched tier's discount
	DiscountedUnitPrice int64 // unit price after the bulk discount
	LineTotal           int64 // discounted unit price * quantity
}

// QuoteLine selects the single tier whose range contains qty and
// applies exactly that tier's discount multiplicatively against
// the unit price. Tiers must be ordered and non-overlapping; a
// quantity matching no tier is charged at list price.
func QuoteLine(unitPrice int64, qty int, tiers []BulkTier) Quote {
	var pct int64
	for _, t := range tiers {
		if qty < t.Min {
			continue
		}
		if t.Max != NoUpperBound && qty > t.Max {
			continue
		}
		pct = t.DiscountPercent
		break
	}
	unit := applyPercentOff(unitPrice, pct)
	return Quote{
		UnitPrice:           unitPrice,
		DiscountPercent:     pct,
		DiscountedUnitPrice: unit,
		LineTotal:           unit * int64(qty),
	}
}

// applyPercentOff returns amount reduced by pct percent, rounding
// toward zero. pct is clamped to [0,100].
func applyPercentOff(amount, pct int64) int64 {
	if pct <= 0 {
		return amount
	}
	if pct >= 100 {
		return 0
	}
	return amount * (100 - pct) / 100
}
