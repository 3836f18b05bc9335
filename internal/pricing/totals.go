package pricing

import "github.com/lumoshop/storefront/internal/model"

// Totals is the cart-level amount breakdown shown at checkout and
// persisted onto the order row.
type Totals struct {
	Subtotal        int64 // sum of price*quantity over all lines
	DiscountPercent int64 // the loyalty discount applied
	DiscountAmount  int64 // subtotal * percent / 100
	Total           int64 // subtotal minus the discount
}

// CartTotals computes the checkout breakdown for a cart with the
// given loyalty discount percent. Bulk tier discounts do not
// participate here; the loyalty discount applies to the plain
// subtotal only.
func CartTotals(items []model.CartItem, loyaltyPercent int64) Totals {
	var subtotal int64
	for _, it := range items {
		subtotal += it.Price * int64(it.Quantity)
	}
	discount := subtotal * loyaltyPercent / 100
	return Totals{
		Subtotal:        subtotal,
		DiscountPercent: loyaltyPercent,
		DiscountAmount:  discount,
		Total:           subtotal - discount,
	}
}
