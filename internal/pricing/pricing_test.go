package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lumoshop/storefront/internal/model"
)

func TestQuoteLineTierBoundaries(t *testing.T) {
	cases := []struct {
		qty      int
		wantUnit int64
		wantPct  int64
	}{
		{1, 1000, 0},
		{9, 1000, 0},
		{10, 950, 5},
		{49, 950, 5},
		{50, 900, 10},
		{999, 900, 10},
		{5000, 900, 10}, // top tier is unbounded
	}
	for _, tc := range cases {
		q := QuoteLine(1000, tc.qty, DefaultBulkTiers)
		assert.Equal(t, tc.wantUnit, q.DiscountedUnitPrice, "qty %d", tc.qty)
		assert.Equal(t, tc.wantPct, q.DiscountPercent, "qty %d", tc.qty)
		assert.Equal(t, tc.wantUnit*int64(tc.qty), q.LineTotal, "qty %d", tc.qty)
	}
}

func TestQuoteLineNoMatchingTier(t *testing.T) {
	tiers := []BulkTier{{Min: 10, Max: 20, DiscountPercent: 5}}
	q := QuoteLine(1000, 3, tiers)
	assert.Equal(t, int64(1000), q.DiscountedUnitPrice)
	assert.Zero(t, q.DiscountPercent)
}

func TestApplyPercentOffClamps(t *testing.T) {
	assert.Equal(t, int64(500), applyPercentOff(500, -3))
	assert.Equal(t, int64(0), applyPercentOff(500, 100))
	assert.Equal(t, int64(0), applyPercentOff(500, 150))
}

func TestCartTotalsCheckoutScenario(t *testing.T) {
	// cart [ {1000 x2}, {2000 x1} ] with a GOLD (5%) customer
	cart := []model.CartItem{
		{ProductID: "a", Price: 1000, Quantity: 2},
		{ProductID: "b", Price: 2000, Quantity: 1},
	}
	got := CartTotals(cart, 5)
	assert.Equal(t, int64(4000), got.Subtotal)
	assert.Equal(t, int64(200), got.DiscountAmount)
	assert.Equal(t, int64(3800), got.Total)
}

// Bulk and loyalty compose sequentially, bulk first: the line is
// repriced through QuoteLine and CartTotals then applies the loyalty
// percent to the already-reduced subtotal. Both checkout and the cart
// display total this way, so the two always agree.
func TestBulkThenLoyaltyComposition(t *testing.T) {
	// 50 units at list 100: bulk tier 10% brings the unit to 90
	q := QuoteLine(100, 50, DefaultBulkTiers)
	assert.Equal(t, int64(90), q.DiscountedUnitPrice)
	assert.Equal(t, int64(4500), q.LineTotal)

	// GOLD (5%) then comes off the bulk-reduced subtotal, not list
	cart := []model.CartItem{{ProductID: "a", Price: q.DiscountedUnitPrice, Quantity: 50}}
	got := CartTotals(cart, 5)
	assert.Equal(t, int64(4500), got.Subtotal)
	assert.Equal(t, int64(225), got.DiscountAmount)
	assert.Equal(t, int64(4275), got.Total)
}

func TestCartTotalsEmptyAndGuest(t *testing.T) {
	assert.Zero(t, CartTotals(nil, 5).Total)

	// guests get the floor tier: no discount
	cart := []model.CartItem{{ProductID: "a", Price: 100, Quantity: 3}}
	got := CartTotals(cart, 0)
	assert.Equal(t, int64(300), got.Subtotal)
	assert.Zero(t, got.DiscountAmount)
	assert.Equal(t, int64(300), got.Total)
}
